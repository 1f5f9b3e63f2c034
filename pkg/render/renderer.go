package render

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/shouni/gemini-image-tools/pkg/domain"
	"github.com/shouni/gemini-image-tools/pkg/imgutil"
	"github.com/shouni/gemini-image-tools/pkg/storage"
)

// デフォルトの描画サイズ（ピクセル）。
const defaultImageSize = 512

// Renderer は create_image_html ツールの本体です。
// 必要に応じてソースを一時ディレクトリへステージングし、HTMLマークアップを組み立てます。
// 境界を越えるエラーはすべて domain.RenderError に包み直します。
type Renderer struct {
	resolver *storage.Resolver
	fetcher  *SourceFetcher

	// stagedJPEGQuality が正の値のとき、ステージングコピーをJPEGへ再圧縮します。
	stagedJPEGQuality int
	now               func() time.Time
}

// NewRenderer は依存関係を注入して Renderer を初期化します。
func NewRenderer(resolver *storage.Resolver, fetcher *SourceFetcher) (*Renderer, error) {
	if resolver == nil {
		return nil, fmt.Errorf("resolver is required")
	}
	if fetcher == nil {
		return nil, fmt.Errorf("fetcher is required")
	}
	return &Renderer{resolver: resolver, fetcher: fetcher, now: time.Now}, nil
}

// EnableStagedCompression はステージングコピーのJPEG再圧縮を有効化します。
// 元ファイルには手を付けず、一時ディレクトリ側のコピーだけが軽量化されます。
func (r *Renderer) EnableStagedCompression(quality int) {
	r.stagedJPEGQuality = quality
}

// Render は画像パス群をHTMLへ変換します。
// 下位の失敗は元メッセージを保持したまま RenderError として通知されます。
func (r *Renderer) Render(ctx context.Context, req domain.RenderHTMLRequest) (*domain.RenderHTMLResult, error) {
	result, err := r.render(ctx, req)
	if err != nil {
		return nil, domain.NewRenderError(err)
	}
	return result, nil
}

func (r *Renderer) render(ctx context.Context, req domain.RenderHTMLRequest) (*domain.RenderHTMLResult, error) {
	if len(req.ImagePaths) == 0 {
		return nil, fmt.Errorf("imagePaths is required")
	}

	width, height := req.Width, req.Height
	if width <= 0 {
		width = defaultImageSize
	}
	if height <= 0 {
		height = defaultImageSize
	}

	// ファイル操作の前に必ず正規化する。リモートURLは正規化の対象外
	resolved := make([]string, len(req.ImagePaths))
	for i, p := range req.ImagePaths {
		if IsRemote(p) {
			resolved[i] = p
			continue
		}
		resolved[i] = r.resolver.Resolve(p)
	}

	renderPaths := resolved
	var tempDir string
	var tempPaths []string

	if req.UseTemp {
		var err error
		tempDir, tempPaths, err = r.stage(ctx, resolved)
		if err != nil {
			return nil, err
		}
		renderPaths = tempPaths
	} else {
		// ステージングしない場合もソースの所在だけは確認し、無ければ警告して描画は続ける
		for _, p := range resolved {
			if IsRemote(p) {
				continue
			}
			if _, err := os.Stat(p); err != nil {
				slog.WarnContext(ctx, "ソースファイルが見つかりませんが、そのまま描画します", "path", p)
			}
		}
	}

	var html string
	if req.Gallery {
		html = buildGalleryHTML(renderPaths, width, height)
	} else {
		html = buildPlainHTML(renderPaths, width, height)
	}

	return &domain.RenderHTMLResult{
		HTML:            html,
		Message:         fmt.Sprintf("%d枚の画像をHTMLに変換しました", len(renderPaths)),
		StorageLocation: r.resolver.BaseDir(),
		AbsolutePaths:   resolved,
		TempDir:         tempDir,
		TempPaths:       tempPaths,
	}, nil
}

// stage はタイムスタンプ付きの一時ディレクトリを作成し、各ソースをコピーします。
// コピー先の名前は連番プレフィックスで互いに衝突しないため、並行に実行できます。
// 取得できないソースは警告して元パスのまま描画対象に残します（ソフト失敗）。
func (r *Renderer) stage(ctx context.Context, sources []string) (string, []string, error) {
	tempDir := filepath.Join(os.TempDir(), "image-html-"+storage.BatchTimestamp(r.now()))
	if err := r.resolver.EnsureDir(tempDir); err != nil {
		return "", nil, fmt.Errorf("一時ディレクトリの作成に失敗しました: %w", err)
	}

	staged := make([]string, len(sources))
	g, gctx := errgroup.WithContext(ctx)

	for i, src := range sources {
		g.Go(func() error {
			data, err := r.fetcher.Fetch(gctx, src)
			if err != nil {
				slog.WarnContext(gctx, "ソースを取得できないため元パスのまま描画します", "source", src, "error", err)
				staged[i] = src
				return nil
			}

			name := fmt.Sprintf("%d-%s", i+1, baseName(src))
			if r.stagedJPEGQuality > 0 {
				if compressed, cerr := imgutil.CompressToJPEG(data, r.stagedJPEGQuality); cerr == nil {
					data = compressed
					name = strings.TrimSuffix(name, filepath.Ext(name)) + ".jpg"
				}
			}

			dst := filepath.Join(tempDir, name)
			if werr := os.WriteFile(dst, data, 0o644); werr != nil {
				return fmt.Errorf("ステージングコピーの書き込みに失敗しました: %w", werr)
			}
			staged[i] = dst
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return "", nil, err
	}
	return tempDir, staged, nil
}

// baseName はローカルパスとURLの両方から末尾のファイル名部分を取り出します。
func baseName(src string) string {
	if IsRemote(src) {
		trimmed := src
		if idx := strings.IndexAny(trimmed, "?#"); idx >= 0 {
			trimmed = trimmed[:idx]
		}
		return filepath.Base(filepath.ToSlash(trimmed))
	}
	return filepath.Base(src)
}
