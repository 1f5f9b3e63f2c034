package render

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/shouni/gemini-image-tools/pkg/storage"
)

// ギャラリーモードで共有する1つの <style> ブロック。
// flex-wrap レイアウト、ホバー拡大、object-fit による収まり制御を定義します。
const galleryStyleTemplate = `<style>
.image-gallery {
  display: flex;
  flex-wrap: wrap;
  gap: 16px;
  justify-content: center;
}
.image-container {
  border: 1px solid #ddd;
  border-radius: 8px;
  padding: 8px;
  background: #fff;
  transition: transform 0.2s ease;
}
.image-container:hover {
  transform: scale(1.05);
}
.image-container img {
  width: %dpx;
  height: %dpx;
  object-fit: contain;
  display: block;
}
</style>`

// srcFor はパスを src 属性値に変換します。ローカルパスは file:// URL として
// 描画します（URLエンコードはしない、既知の制限）。リモートURLはそのまま使います。
func srcFor(path string) string {
	if IsRemote(path) {
		return path
	}
	return storage.FileURL(path)
}

// imageTag は1枚分の <img> タグを組み立てます。
func imageTag(path string, width, height int) string {
	return fmt.Sprintf(`<img src="%s" alt="%s" width="%d" height="%d" style="margin: 10px;" />`,
		srcFor(path), filepath.Base(path), width, height)
}

// buildPlainHTML は入力順のまま <img> タグを改行区切りで並べます。
func buildPlainHTML(paths []string, width, height int) string {
	tags := make([]string, 0, len(paths))
	for _, p := range paths {
		tags = append(tags, imageTag(p, width, height))
	}
	return strings.Join(tags, "\n")
}

// buildGalleryHTML はスタイルブロック1つとカードラップされた画像群を組み立てます。
func buildGalleryHTML(paths []string, width, height int) string {
	var b strings.Builder
	fmt.Fprintf(&b, galleryStyleTemplate, width, height)
	b.WriteString("\n<div class=\"image-gallery\">\n")
	for _, p := range paths {
		fmt.Fprintf(&b, "  <div class=\"image-container\">\n    <img src=\"%s\" alt=\"%s\" />\n  </div>\n",
			srcFor(p), filepath.Base(p))
	}
	b.WriteString("</div>")
	return b.String()
}
