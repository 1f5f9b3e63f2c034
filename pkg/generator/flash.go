package generator

import (
	"context"
	"fmt"

	"github.com/shouni/gemini-image-tools/pkg/domain"
	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// FlashModel は flash-image 系モデル（1リクエスト1枚）向けの実装です。
// 要求枚数ぶん GenerateWithParts を繰り返し、InlineData から画像を取り出します。
type FlashModel struct {
	aiClient gemini.GenerativeModel
	model    string
}

// NewFlashModel は go-gemini-client のクライアントを注入して初期化します。
func NewFlashModel(aiClient gemini.GenerativeModel, model string) (*FlashModel, error) {
	if aiClient == nil {
		return nil, fmt.Errorf("aiClient is required")
	}
	if model == "" {
		return nil, fmt.Errorf("model is required")
	}
	return &FlashModel{aiClient: aiClient, model: model}, nil
}

// GenerateImages はプロンプトのみのパーツ構成で count 回生成を実行します。
// 途中の通信エラーはバッチ全体の失敗として即座に返します。
func (m *FlashModel) GenerateImages(ctx context.Context, prompt string, count int) (*domain.ImageBatch, error) {
	batch := &domain.ImageBatch{}
	parts := []*genai.Part{{Text: prompt}}

	for i := 0; i < count; i++ {
		resp, err := m.aiClient.GenerateWithParts(ctx, m.model, parts, gemini.GenerateOptions{})
		if err != nil {
			return nil, fmt.Errorf("flash-image 生成に失敗しました (%d枚目): %w", i+1, err)
		}
		batch.Images = append(batch.Images, extractInlineImage(resp))
	}
	return batch, nil
}

// extractInlineImage は応答の最初の候補から InlineData の画像を探します。
// 見つからない場合はペイロードなしエントリとして空の値を返します。
func extractInlineImage(resp *gemini.Response) domain.ImagePayload {
	if resp == nil || resp.RawResponse == nil || len(resp.RawResponse.Candidates) == 0 {
		return domain.ImagePayload{}
	}

	candidate := resp.RawResponse.Candidates[0]
	if candidate.Content == nil {
		return domain.ImagePayload{}
	}
	for _, part := range candidate.Content.Parts {
		if part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return domain.ImagePayload{
				Data:     part.InlineData.Data,
				MimeType: part.InlineData.MIMEType,
			}
		}
	}
	return domain.ImagePayload{}
}
