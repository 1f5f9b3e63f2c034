package storage

import (
	"fmt"
	"strings"
	"time"
)

// プロンプト由来セグメントの最大長。ファイル名の暴走を防ぐための上限です。
const maxPromptSegment = 30

// SanitizePrompt はプロンプトをファイル名に安全なセグメントへ変換します。
// 小文字化し、[a-z0-9] 以外をハイフンに置換して30文字に切り詰めます。
// 変換は決定的かつ冪等です。
func SanitizePrompt(prompt string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(prompt) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('-')
		}
	}
	s := b.String()
	if len(s) > maxPromptSegment {
		s = s[:maxPromptSegment]
	}
	return s
}

// BatchTimestamp はバッチ全体で共有するタイムスタンプ文字列を返します。
// ISO-8601 形式からファイル名に使えないコロンとピリオドをハイフンへ置換します。
func BatchTimestamp(t time.Time) string {
	s := t.UTC().Format(time.RFC3339)
	s = strings.ReplaceAll(s, ":", "-")
	return strings.ReplaceAll(s, ".", "-")
}

// ImageFilename はバッチ内で一意なPNGファイル名を組み立てます。
// index は書き込みに成功した画像ごとの1始まりの連番です。
func ImageFilename(prompt, timestamp string, index int) string {
	return fmt.Sprintf("%s-%s-%d.png", SanitizePrompt(prompt), timestamp, index)
}
