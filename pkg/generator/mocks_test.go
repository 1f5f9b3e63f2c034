package generator

import (
	"context"

	"github.com/shouni/gemini-image-tools/pkg/domain"
	"github.com/shouni/go-gemini-client/pkg/gemini"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"google.golang.org/genai"
)

// httpkit.Client が HTTPClient の要件を満たし続けることの確認なのだ。
var _ HTTPClient = (*httpkit.Client)(nil)

// --- Mocks ---

// mockModel は ImageModel のテスト用モックなのだ。
type mockModel struct {
	generateFunc func(ctx context.Context, prompt string, count int) (*domain.ImageBatch, error)
	lastPrompt   string
	lastCount    int
}

func (m *mockModel) GenerateImages(ctx context.Context, prompt string, count int) (*domain.ImageBatch, error) {
	m.lastPrompt = prompt
	m.lastCount = count
	if m.generateFunc != nil {
		return m.generateFunc(ctx, prompt, count)
	}
	return &domain.ImageBatch{}, nil
}

// mockHTTPClient は HTTPClient のテスト用モックなのだ。
type mockHTTPClient struct {
	postFunc func(ctx context.Context, url string, data any) ([]byte, error)
	lastURL  string
}

func (m *mockHTTPClient) PostJSONAndFetchBytes(ctx context.Context, url string, data any) ([]byte, error) {
	m.lastURL = url
	if m.postFunc != nil {
		return m.postFunc(ctx, url, data)
	}
	return nil, nil
}

// mockAIClient は gemini.GenerativeModel のテスト用モックなのだ。
type mockAIClient struct {
	generateWithPartsFunc func(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error)
	callCount             int
}

func (m *mockAIClient) GenerateWithParts(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error) {
	m.callCount++
	if m.generateWithPartsFunc != nil {
		return m.generateWithPartsFunc(ctx, model, parts, opts)
	}
	return nil, nil
}

// インターフェースを満たすための空実装を置いておくのだ
func (m *mockAIClient) GenerateContent(ctx context.Context, model string, prompt string) (*gemini.Response, error) {
	return nil, nil
}

func (m *mockAIClient) UploadFile(ctx context.Context, data []byte, mimeType, displayName string) (string, string, error) {
	return "", "", nil
}

func (m *mockAIClient) DeleteFile(ctx context.Context, name string) error { return nil }

func (m *mockAIClient) GetFile(ctx context.Context, name string) (*genai.File, error) {
	return nil, nil
}

// inlineImageResponse は InlineData 入りの応答を組み立てるテストヘルパーなのだ。
func inlineImageResponse(data []byte) *gemini.Response {
	return &gemini.Response{
		RawResponse: &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{
				Content: &genai.Content{
					Parts: []*genai.Part{{InlineData: &genai.Blob{MIMEType: "image/png", Data: data}}},
				},
			}},
		},
	}
}
