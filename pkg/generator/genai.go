package generator

import (
	"context"
	"fmt"

	"github.com/shouni/gemini-image-tools/pkg/domain"
	"google.golang.org/genai"
)

// GenAIModel は google.golang.org/genai SDK の Imagen バッチ生成を使う実装です。
// numberOfImages は SDK の GenerateImagesConfig にそのまま渡します。
type GenAIModel struct {
	client *genai.Client
	model  string
}

// NewGenAIModel は genai クライアントを注入して GenAIModel を初期化します。
func NewGenAIModel(client *genai.Client, model string) (*GenAIModel, error) {
	if client == nil {
		return nil, fmt.Errorf("client is required")
	}
	if model == "" {
		return nil, fmt.Errorf("model is required")
	}
	return &GenAIModel{client: client, model: model}, nil
}

// GenerateImages は Imagen へ1回の生成リクエストを発行します。
func (m *GenAIModel) GenerateImages(ctx context.Context, prompt string, count int) (*domain.ImageBatch, error) {
	cfg := &genai.GenerateImagesConfig{
		NumberOfImages: int32(count),
	}

	resp, err := m.client.Models.GenerateImages(ctx, m.model, prompt, cfg)
	if err != nil {
		return nil, fmt.Errorf("Imagen 生成リクエストに失敗しました: %w", err)
	}

	batch := &domain.ImageBatch{}
	if resp == nil {
		return batch, nil
	}
	for _, gi := range resp.GeneratedImages {
		if gi == nil || gi.Image == nil {
			// ペイロードなしエントリ。スキップ判定は呼び出し側に委ねる
			batch.Images = append(batch.Images, domain.ImagePayload{})
			continue
		}
		batch.Images = append(batch.Images, domain.ImagePayload{
			Data:     gi.Image.ImageBytes,
			MimeType: gi.Image.MIMEType,
		})
	}
	return batch, nil
}
