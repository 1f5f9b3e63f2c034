package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDesktopDir_ProfileEnvProbe(t *testing.T) {
	t.Run("USERPROFILE 配下に Desktop があればそれを使うのだ", func(t *testing.T) {
		profile := t.TempDir()
		desktop := filepath.Join(profile, "Desktop")
		require.NoError(t, os.Mkdir(desktop, 0o755))
		t.Setenv("USERPROFILE", profile)

		assert.Equal(t, desktop, desktopDir())
	})

	t.Run("Desktop が無ければ次の試行へ進み、最終的にどこかへは必ず解決するのだ", func(t *testing.T) {
		t.Setenv("USERPROFILE", t.TempDir()) // Desktop サブフォルダを作らない

		got := desktopDir()
		assert.NotEmpty(t, got, "探索は決して空文字で失敗してはならない")
	})
}

func TestParseXDGDesktopDir(t *testing.T) {
	home := "/home/shouni"

	tests := []struct {
		name   string
		body   string
		want   string
		wantOK bool
	}{
		{
			"標準形式を解析できる",
			"# comment\nXDG_DESKTOP_DIR=\"$HOME/Desktop\"\nXDG_DOWNLOAD_DIR=\"$HOME/Downloads\"\n",
			"/home/shouni/Desktop", true,
		},
		{
			"日本語ロケールのデスクトップ名",
			"XDG_DESKTOP_DIR=\"$HOME/デスクトップ\"\n",
			"/home/shouni/デスクトップ", true,
		},
		{"設定行が無い", "XDG_DOWNLOAD_DIR=\"$HOME/Downloads\"\n", "", false},
		{"空の値", "XDG_DESKTOP_DIR=\"\"\n", "", false},
		{"本文が空", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseXDGDesktopDir(tt.body, home)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
