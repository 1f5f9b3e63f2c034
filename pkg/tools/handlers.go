package tools

import (
	"context"

	"github.com/shouni/gemini-image-tools/pkg/domain"
	"github.com/shouni/gemini-image-tools/pkg/generator"
	"github.com/shouni/gemini-image-tools/pkg/render"
)

// 公開するツール名。
const (
	ToolGenerateImages  = "generate_images"
	ToolCreateImageHTML = "create_image_html"
)

// NewDefaultRegistry は2つの画像ツールを登録済みの Registry を組み立てます。
func NewDefaultRegistry(gen *generator.Tool, renderer *render.Renderer) *Registry {
	r := NewRegistry()

	r.Register(Definition{
		Name:        ToolGenerateImages,
		Description: "プロンプトから画像を生成してローカルへ保存し、保存先パスの一覧を返します。",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"prompt": map[string]any{
					"type":        "string",
					"description": "生成する画像の内容を表すテキストプロンプト",
				},
				"numberOfImages": map[string]any{
					"type":        "integer",
					"description": "生成枚数 (1〜4)",
					"minimum":     1,
					"maximum":     4,
					"default":     1,
				},
				"category": map[string]any{
					"type":        "string",
					"description": "保存先ベース配下のカテゴリサブフォルダ名",
					"default":     "",
				},
				"outputDir": map[string]any{
					"type":        "string",
					"description": "明示的な保存先ディレクトリ。category より優先される",
				},
				"subDir": map[string]any{
					"type":        "string",
					"description": "outputDir 配下のサブディレクトリ",
					"default":     "",
				},
			},
			"required": []string{"prompt"},
		},
	}, generateImagesHandler(gen))

	r.Register(Definition{
		Name:        ToolCreateImageHTML,
		Description: "画像パスの一覧をHTMLマークアップへ変換します。ギャラリーモードではスタイル付きのグリッドを生成します。",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"imagePaths": map[string]any{
					"type":        "array",
					"items":       map[string]any{"type": "string"},
					"description": "描画する画像のパスまたはURLの一覧",
				},
				"width": map[string]any{
					"type":        "number",
					"description": "描画幅 (px)",
					"default":     512,
				},
				"height": map[string]any{
					"type":        "number",
					"description": "描画高さ (px)",
					"default":     512,
				},
				"gallery": map[string]any{
					"type":        "boolean",
					"description": "スタイル付きギャラリーとして描画するか",
					"default":     true,
				},
				"useTemp": map[string]any{
					"type":        "boolean",
					"description": "ソースを一時ディレクトリへステージングするか",
					"default":     true,
				},
			},
			"required": []string{"imagePaths"},
		},
	}, createImageHTMLHandler(renderer))

	return r
}

func generateImagesHandler(gen *generator.Tool) Handler {
	return func(ctx context.Context, args map[string]any) (any, error) {
		prompt, err := requiredStringArg(args, "prompt")
		if err != nil {
			return nil, domain.NewGenerationError(err)
		}
		count, err := intArg(args, "numberOfImages", 1)
		if err != nil {
			return nil, domain.NewGenerationError(err)
		}

		return gen.Generate(ctx, domain.GenerateImagesRequest{
			Prompt:         prompt,
			NumberOfImages: count,
			Category:       stringArg(args, "category", ""),
			OutputDir:      stringArg(args, "outputDir", ""),
			SubDir:         stringArg(args, "subDir", ""),
		})
	}
}

func createImageHTMLHandler(renderer *render.Renderer) Handler {
	return func(ctx context.Context, args map[string]any) (any, error) {
		paths, err := stringSliceArg(args, "imagePaths")
		if err != nil {
			return nil, domain.NewRenderError(err)
		}
		width, err := intArg(args, "width", 512)
		if err != nil {
			return nil, domain.NewRenderError(err)
		}
		height, err := intArg(args, "height", 512)
		if err != nil {
			return nil, domain.NewRenderError(err)
		}

		return renderer.Render(ctx, domain.RenderHTMLRequest{
			ImagePaths: paths,
			Width:      width,
			Height:     height,
			Gallery:    boolArg(args, "gallery", true),
			UseTemp:    boolArg(args, "useTemp", true),
		})
	}
}
