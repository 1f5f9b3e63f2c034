package generator

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shouni/gemini-image-tools/pkg/domain"
	"github.com/shouni/gemini-image-tools/pkg/storage"
)

// Tool は generate_images ツールの本体です。
// 保存先の解決・生成サービスの呼び出し・デコード済みバイト列の書き込みまでを担当し、
// 境界を越えるエラーはすべて domain.GenerationError に包み直します。
type Tool struct {
	model    ImageModel
	resolver *storage.Resolver
	now      func() time.Time
}

// NewTool は依存関係を注入して Tool を初期化します。
func NewTool(model ImageModel, resolver *storage.Resolver) (*Tool, error) {
	if model == nil {
		return nil, fmt.Errorf("model is required")
	}
	if resolver == nil {
		return nil, fmt.Errorf("resolver is required")
	}
	return &Tool{model: model, resolver: resolver, now: time.Now}, nil
}

// Generate は1回分の生成要求を実行します。
// 下位の失敗は元メッセージを保持したまま GenerationError として通知されます。
func (t *Tool) Generate(ctx context.Context, req domain.GenerateImagesRequest) (*domain.GenerateImagesResult, error) {
	result, err := t.generate(ctx, req)
	if err != nil {
		return nil, domain.NewGenerationError(err)
	}
	return result, nil
}

func (t *Tool) generate(ctx context.Context, req domain.GenerateImagesRequest) (*domain.GenerateImagesResult, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, fmt.Errorf("prompt is required")
	}

	// 枚数の範囲(1〜4)はスキーマ側の契約。ここでは既定値の補完だけを行う
	count := req.NumberOfImages
	if count == 0 {
		count = 1
	}

	dir := t.resolver.ResolveOutputDir(req.OutputDir, req.SubDir, req.Category)
	if err := t.resolver.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("保存先ディレクトリの作成に失敗しました: %w", err)
	}

	slog.InfoContext(ctx, "画像生成を開始します", "count", count, "dir", dir)

	batch, err := t.model.GenerateImages(ctx, req.Prompt, count)
	if err != nil {
		return nil, err
	}
	if batch == nil || len(batch.Images) == 0 {
		return nil, fmt.Errorf("生成サービスから画像コレクションが返されませんでした")
	}

	// ファイル名のタイムスタンプはバッチ全体で共有し、連番で一意性を確保する
	timestamp := storage.BatchTimestamp(t.now())

	var files []string
	index := 1
	for i, img := range batch.Images {
		if len(img.Data) == 0 {
			slog.WarnContext(ctx, "ペイロードの無い生成エントリをスキップします", "entry", i)
			continue
		}

		path := filepath.Join(dir, storage.ImageFilename(req.Prompt, timestamp, index))
		if err := os.WriteFile(path, img.Data, 0o644); err != nil {
			return nil, fmt.Errorf("画像ファイルの書き込みに失敗しました: %w", err)
		}
		files = append(files, path)
		index++
	}

	return &domain.GenerateImagesResult{
		Message:    fmt.Sprintf("%d枚の画像を生成しました (保存先: %s)", len(files), dir),
		Files:      files,
		StorageDir: dir,
	}, nil
}
