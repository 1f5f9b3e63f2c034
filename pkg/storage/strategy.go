// Package storage は、ツール群が触れるすべてのファイルパスの正規化と、
// 保存先ベースディレクトリの決定（ストレージ戦略）を担当します。
package storage

// Kind はベースディレクトリの決定方法を表します。
type Kind int

const (
	// KindDesktop はユーザーのデスクトップ直下のアプリ用サブフォルダを使います。
	KindDesktop Kind = iota
	// KindWorkingDir はプロセスのカレントディレクトリ配下のサブフォルダを使います。
	KindWorkingDir
	// KindTempRoot はOSの一時ディレクトリ配下のサブフォルダを使います。
	KindTempRoot
	// KindExplicit は設定で渡されたディレクトリをそのまま使います。
	KindExplicit
)

// DefaultSubfolder は戦略が作るアプリ用サブフォルダの既定名です。
const DefaultSubfolder = "gemini-images"

// Strategy は起動時に一度だけ選択され、Resolver に注入される保存先の方針です。
// 特定マシン固有のパスを既定値として埋め込むことは意図的にしていません。
type Strategy struct {
	kind        Kind
	explicitDir string
	subfolder   string
}

// Desktop はデスクトップ配下サブフォルダ方式の戦略を返します。
func Desktop(subfolder string) Strategy {
	return Strategy{kind: KindDesktop, subfolder: orDefault(subfolder)}
}

// WorkingDir はカレントディレクトリ配下サブフォルダ方式の戦略を返します。
func WorkingDir(subfolder string) Strategy {
	return Strategy{kind: KindWorkingDir, subfolder: orDefault(subfolder)}
}

// TempRoot はOS一時ディレクトリ配下サブフォルダ方式の戦略を返します。
func TempRoot(subfolder string) Strategy {
	return Strategy{kind: KindTempRoot, subfolder: orDefault(subfolder)}
}

// Explicit は渡されたディレクトリを直接ベースにする戦略を返します。
func Explicit(dir string) Strategy {
	return Strategy{kind: KindExplicit, explicitDir: dir}
}

func (s Strategy) Kind() Kind { return s.kind }

func orDefault(subfolder string) string {
	if subfolder == "" {
		return DefaultSubfolder
	}
	return subfolder
}
