package generator

import (
	"context"

	"github.com/shouni/gemini-image-tools/pkg/domain"
)

// ImageModel はテキストから画像を生成する外部サービスへの窓口です。
// 実装は SDK 経由 (GenAIModel)、REST 直叩き (ImagenRESTModel)、
// flash-image 系モデル (FlashModel) の3系統があります。
type ImageModel interface {
	// GenerateImages はプロンプトと要求枚数で生成を実行し、1バッチ分の結果を返します。
	// コレクション自体が得られなかった場合は Images が空のバッチを返します。
	GenerateImages(ctx context.Context, prompt string, count int) (*domain.ImageBatch, error)
}

// HTTPClient は、JSONボディをPOSTして応答バイト列を取得するためのインターフェースです。
type HTTPClient interface {
	PostJSONAndFetchBytes(ctx context.Context, url string, data any) ([]byte, error)
}
