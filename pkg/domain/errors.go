package domain

import "fmt"

// GenerationError は生成・保存パイプラインの失敗をツール境界で包むエラーです。
// 下位のエラーをそのまま外へ漏らさず、元のメッセージを保持して再通知します。
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("image generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// NewGenerationError は下位エラーを GenerationError に包みます。
func NewGenerationError(err error) *GenerationError {
	return &GenerationError{Err: err}
}

// RenderError はパス解決・ステージング・マークアップ組み立ての失敗を包むエラーです。
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("html rendering failed: %v", e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// NewRenderError は下位エラーを RenderError に包みます。
func NewRenderError(err error) *RenderError {
	return &RenderError{Err: err}
}

// ToolNotFoundError は未登録のツール名が指定されたことを示すディスパッチャ層のエラーです。
type ToolNotFoundError struct {
	Name string
}

func (e *ToolNotFoundError) Error() string {
	return fmt.Sprintf("no tool found: %s", e.Name)
}
