// Package tools は、外部のディスパッチャへ公開するツールカタログと
// 名前ベースの呼び出し口を提供します。トランスポート自体はここでは扱いません。
package tools

import (
	"context"

	"github.com/shouni/gemini-image-tools/pkg/domain"
)

// Handler はツール1つ分の実行関数です。引数はJSONデコード済みのマップで渡されます。
type Handler func(ctx context.Context, args map[string]any) (any, error)

// Definition はツールの名前・説明・入力契約（JSONスキーマ相当のマップ）です。
type Definition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

// Registry はツールの登録と名前解決を担当します。
// 共有可変状態は持たず、登録が終わったら読み取り専用で使います。
type Registry struct {
	order    []string
	handlers map[string]Handler
	defs     map[string]Definition
}

// NewRegistry は空の Registry を返します。
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[string]Handler),
		defs:     make(map[string]Definition),
	}
}

// Register はツールを登録します。同名の再登録は定義を上書きします。
func (r *Registry) Register(def Definition, handler Handler) {
	if _, exists := r.defs[def.Name]; !exists {
		r.order = append(r.order, def.Name)
	}
	r.defs[def.Name] = def
	r.handlers[def.Name] = handler
}

// Definitions は登録順のツールカタログを返します。
func (r *Registry) Definitions() []Definition {
	defs := make([]Definition, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.defs[name])
	}
	return defs
}

// Call は名前でツールを解決して実行します。
// 未登録の名前は ToolNotFoundError になり、副作用は一切発生しません。
func (r *Registry) Call(ctx context.Context, name string, args map[string]any) (any, error) {
	handler, ok := r.handlers[name]
	if !ok {
		return nil, &domain.ToolNotFoundError{Name: name}
	}
	return handler(ctx, args)
}
