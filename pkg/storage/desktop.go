package storage

import (
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// desktopProbe はデスクトップ候補を1つ返す試行です。失敗したら次の試行へ進みます。
type desktopProbe func() (string, bool)

// desktopDir はユーザーのデスクトップディレクトリを探索します。
// 試行列のどれかが成功するまで順に評価し、すべて失敗した場合は
// カレントディレクトリへ落とします。探索自体がツールを失敗させることはありません。
func desktopDir() string {
	probes := []desktopProbe{
		probeProfileEnv,
		probeXDGUserDirs,
		probeHomeDesktop,
	}

	for _, probe := range probes {
		if dir, ok := probe(); ok {
			return dir
		}
	}

	slog.Warn("デスクトップを特定できなかったため、カレントディレクトリへフォールバックします")
	return workingDir()
}

// probeProfileEnv はユーザープロファイル環境変数から Desktop を導きます。
func probeProfileEnv() (string, bool) {
	profile := os.Getenv("USERPROFILE")
	if profile == "" {
		return "", false
	}
	return existingDir(filepath.Join(profile, "Desktop"))
}

// probeXDGUserDirs は POSIX 系で ~/.config/user-dirs.dirs の
// XDG_DESKTOP_DIR 設定を参照します。読み取り・解析に失敗したら次へ進みます。
func probeXDGUserDirs() (string, bool) {
	if runtime.GOOS == "windows" {
		return "", false
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", false
	}

	data, err := os.ReadFile(filepath.Join(home, ".config", "user-dirs.dirs"))
	if err != nil {
		return "", false
	}

	dir, ok := parseXDGDesktopDir(string(data), home)
	if !ok {
		return "", false
	}
	return existingDir(dir)
}

// probeHomeDesktop はOS報告のホームディレクトリ直下の Desktop を最後の慣例として試します。
func probeHomeDesktop() (string, bool) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", false
	}
	return existingDir(filepath.Join(home, "Desktop"))
}

// parseXDGDesktopDir は user-dirs.dirs の本文から XDG_DESKTOP_DIR の値を抜き出します。
// 形式: XDG_DESKTOP_DIR="$HOME/Desktop"
func parseXDGDesktopDir(body, home string) (string, bool) {
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "XDG_DESKTOP_DIR=") {
			continue
		}
		value := strings.Trim(strings.TrimPrefix(line, "XDG_DESKTOP_DIR="), `"`)
		if value == "" {
			return "", false
		}
		value = strings.ReplaceAll(value, "$HOME", home)
		return value, true
	}
	return "", false
}

func existingDir(dir string) (string, bool) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", false
	}
	return dir, true
}
