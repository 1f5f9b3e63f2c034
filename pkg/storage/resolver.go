package storage

import (
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
)

// Resolver は呼び出し元から渡された生のパス文字列を、
// 戦略の決めるベースディレクトリ配下のプラットフォーム正規パスへ変換します。
// ファイル操作（存在確認・読み書き・mkdir）の前には必ずここを通します。
type Resolver struct {
	strategy Strategy
}

// NewResolver は戦略を注入して Resolver を初期化します。
func NewResolver(strategy Strategy) *Resolver {
	return &Resolver{strategy: strategy}
}

// 外来のマウントプレフィックス（WSL / Docker Desktop）をドライブパスに写す。
var mountPrefixRe = regexp.MustCompile(`^/(?:mnt|host_mnt)/([a-zA-Z])(/|$)`)

// BaseDir は戦略に従ってベースディレクトリを返します。
// 探索はどの段階で失敗してもカレントディレクトリへ落ちるため、エラーを返しません。
func (r *Resolver) BaseDir() string {
	switch r.strategy.kind {
	case KindExplicit:
		return filepath.Clean(r.strategy.explicitDir)
	case KindTempRoot:
		return filepath.Join(os.TempDir(), r.strategy.subfolder)
	case KindDesktop:
		return filepath.Join(desktopDir(), r.strategy.subfolder)
	default: // KindWorkingDir
		return filepath.Join(workingDir(), r.strategy.subfolder)
	}
}

// Resolve は生のパスを正規化します。冪等です: Resolve(Resolve(p)) == Resolve(p)。
//  1. 既知の外来プレフィックス（file:// スキーム、コンテナ/WSLマウント）を剥がす
//  2. 相対パスならベースディレクトリに結合する
//  3. 区切り文字をホスト規約へ変換し、冗長な区切りを畳む
func (r *Resolver) Resolve(raw string) string {
	p := stripForeignPrefix(raw)
	if !filepath.IsAbs(p) {
		p = filepath.Join(r.BaseDir(), p)
	}
	return filepath.Clean(filepath.FromSlash(p))
}

// EnsureDir はディレクトリを再帰的に作成します。既存でも冪等にエラーなしです。
func (r *Resolver) EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}

// ResolveOutputDir は生成要求の保存先修飾子を単一のディレクトリに解決します。
// 優先順: 明示の outputDir（+subDir） > カテゴリサブフォルダ > 戦略のベース。
func (r *Resolver) ResolveOutputDir(outputDir, subDir, category string) string {
	switch {
	case outputDir != "":
		return r.Resolve(joinNonEmpty(outputDir, subDir))
	case category != "":
		return r.Resolve(category)
	default:
		return filepath.Clean(r.BaseDir())
	}
}

// FileURL はパスをHTML埋め込み用の file:// URL として描画します。
// バックスラッシュをスラッシュに置換してスキーマを前置するだけで、
// 特殊文字のURLエンコードは行いません（既知の制限）。
func FileURL(p string) string {
	s := strings.ReplaceAll(p, `\`, "/")
	if strings.HasPrefix(s, "file://") {
		return s
	}
	if !strings.HasPrefix(s, "/") {
		s = "/" + s
	}
	return "file://" + s
}

func stripForeignPrefix(raw string) string {
	p := strings.TrimPrefix(raw, "file://")

	if m := mountPrefixRe.FindStringSubmatch(p); m != nil && runtime.GOOS == "windows" {
		rest := p[len(m[0]):]
		p = strings.ToUpper(m[1]) + `:\` + rest
	}
	return p
}

func joinNonEmpty(base, sub string) string {
	if sub == "" {
		return base
	}
	return filepath.Join(base, sub)
}

func workingDir() string {
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}
