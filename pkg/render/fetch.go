package render

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shouni/go-remote-io/pkg/remoteio"
)

// HTTPClient は、URLからバイト列を取得し、取得前にSSRF検証を行うためのインターフェースです。
type HTTPClient interface {
	FetchBytes(ctx context.Context, url string) ([]byte, error)
	IsSafeURL(urlStr string) (bool, error)
}

// SourceFetcher はレンダリング対象のソース画像を取得します。
// ローカルパス、http(s) URL、GCS URI (gs://) の3種を透過的に扱います。
// httpClient / reader は nil を許容し、その場合は該当スキームが未対応になります。
type SourceFetcher struct {
	httpClient HTTPClient
	reader     remoteio.InputReader
}

// NewSourceFetcher は取得系の依存関係を注入して SourceFetcher を初期化します。
func NewSourceFetcher(httpClient HTTPClient, reader remoteio.InputReader) *SourceFetcher {
	return &SourceFetcher{httpClient: httpClient, reader: reader}
}

// IsRemote はソースがローカルファイルシステム外を指すかを判定します。
func IsRemote(src string) bool {
	return strings.HasPrefix(src, "http://") ||
		strings.HasPrefix(src, "https://") ||
		strings.HasPrefix(src, "gs://")
}

// Fetch はソース1件分のバイト列を取得します。
func (f *SourceFetcher) Fetch(ctx context.Context, src string) ([]byte, error) {
	switch {
	case strings.HasPrefix(src, "gs://"):
		if f.reader == nil {
			return nil, fmt.Errorf("gs:// ソースは未対応です (reader が未設定): %s", src)
		}
		rc, err := f.reader.Open(ctx, src)
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)

	case IsRemote(src):
		if f.httpClient == nil {
			return nil, fmt.Errorf("http(s) ソースは未対応です (httpClient が未設定): %s", src)
		}
		safe, err := f.httpClient.IsSafeURL(src)
		if err != nil {
			return nil, fmt.Errorf("安全ではないURLが指定されました: %w", err)
		}
		if !safe {
			return nil, fmt.Errorf("安全ではないURLが指定されました: %s", src)
		}
		return f.httpClient.FetchBytes(ctx, src)

	default:
		return os.ReadFile(src)
	}
}
