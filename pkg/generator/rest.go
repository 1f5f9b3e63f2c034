package generator

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/shouni/gemini-image-tools/pkg/domain"
)

// defaultPredictEndpoint は Generative Language API の Imagen predict エンドポイントです。
const defaultPredictEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/%s:predict?key=%s"

// ImagenRESTModel は SDK を介さず predict エンドポイントを直接叩く実装です。
// 応答の bytesBase64Encoded を自前でデコードします。
type ImagenRESTModel struct {
	httpClient HTTPClient
	model      string
	apiKey     string
}

// NewImagenRESTModel は HTTP クライアントと認証情報を注入して初期化します。
func NewImagenRESTModel(httpClient HTTPClient, model, apiKey string) (*ImagenRESTModel, error) {
	if httpClient == nil {
		return nil, fmt.Errorf("httpClient is required")
	}
	if model == "" {
		return nil, fmt.Errorf("model is required")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("apiKey is required")
	}
	return &ImagenRESTModel{httpClient: httpClient, model: model, apiKey: apiKey}, nil
}

type predictRequest struct {
	Instances  []predictInstance `json:"instances"`
	Parameters predictParameters `json:"parameters"`
}

type predictInstance struct {
	Prompt string `json:"prompt"`
}

type predictParameters struct {
	SampleCount int `json:"sampleCount"`
}

type predictResponse struct {
	Predictions []struct {
		BytesBase64Encoded string `json:"bytesBase64Encoded"`
		MimeType           string `json:"mimeType"`
	} `json:"predictions"`
}

// GenerateImages は predict API へ POST し、base64 ペイロードを生バイト列へ復元します。
func (m *ImagenRESTModel) GenerateImages(ctx context.Context, prompt string, count int) (*domain.ImageBatch, error) {
	req := predictRequest{
		Instances:  []predictInstance{{Prompt: prompt}},
		Parameters: predictParameters{SampleCount: count},
	}

	url := fmt.Sprintf(defaultPredictEndpoint, m.model, m.apiKey)
	body, err := m.httpClient.PostJSONAndFetchBytes(ctx, url, req)
	if err != nil {
		return nil, fmt.Errorf("predict リクエストに失敗しました: %w", err)
	}

	var resp predictResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("predict 応答の解析に失敗しました: %w", err)
	}

	batch := &domain.ImageBatch{}
	for i, pred := range resp.Predictions {
		if pred.BytesBase64Encoded == "" {
			batch.Images = append(batch.Images, domain.ImagePayload{})
			continue
		}
		data, err := base64.StdEncoding.DecodeString(pred.BytesBase64Encoded)
		if err != nil {
			// 壊れたエントリは1枚欠けとして扱い、バッチ全体は失敗させない
			slog.WarnContext(ctx, "base64デコードに失敗したエントリをスキップします", "index", i, "error", err)
			batch.Images = append(batch.Images, domain.ImagePayload{})
			continue
		}
		batch.Images = append(batch.Images, domain.ImagePayload{Data: data, MimeType: pred.MimeType})
	}
	return batch, nil
}
