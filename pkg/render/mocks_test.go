package render

import (
	"bytes"
	"context"
	"io"

	"github.com/shouni/go-http-kit/pkg/httpkit"
)

// --- Mocks ---

// httpkit.Client が HTTPClient の要件を満たし続けることの確認なのだ。
var _ HTTPClient = (*httpkit.Client)(nil)

// mockHTTPClient は HTTPClient のテスト用モックなのだ。
// safeFunc が未設定の場合、すべてのURLを安全として扱います。
type mockHTTPClient struct {
	fetchFunc func(ctx context.Context, url string) ([]byte, error)
	safeFunc  func(urlStr string) (bool, error)
}

func (m *mockHTTPClient) FetchBytes(ctx context.Context, url string) ([]byte, error) {
	if m.fetchFunc != nil {
		return m.fetchFunc(ctx, url)
	}
	return nil, nil
}

func (m *mockHTTPClient) IsSafeURL(urlStr string) (bool, error) {
	if m.safeFunc != nil {
		return m.safeFunc(urlStr)
	}
	return true, nil
}

// mockReader は remoteio.InputReader を実装するのだ。
type mockReader struct {
	openFunc func(ctx context.Context, uri string) (io.ReadCloser, error)
}

func (m *mockReader) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	if m.openFunc != nil {
		return m.openFunc(ctx, uri)
	}
	return io.NopCloser(bytes.NewReader(nil)), nil
}

func (m *mockReader) List(ctx context.Context, uri string, fn func(string) error) error {
	return nil
}
