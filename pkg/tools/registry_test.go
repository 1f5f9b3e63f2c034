package tools

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shouni/gemini-image-tools/pkg/domain"
	"github.com/shouni/gemini-image-tools/pkg/generator"
	"github.com/shouni/gemini-image-tools/pkg/render"
	"github.com/shouni/gemini-image-tools/pkg/storage"
)

// mockModel は generator.ImageModel のテスト用モックなのだ。
type mockModel struct {
	called bool
	batch  *domain.ImageBatch
}

func (m *mockModel) GenerateImages(ctx context.Context, prompt string, count int) (*domain.ImageBatch, error) {
	m.called = true
	if m.batch != nil {
		return m.batch, nil
	}
	return &domain.ImageBatch{Images: []domain.ImagePayload{{Data: []byte("img")}}}, nil
}

func newTestRegistry(t *testing.T) (*Registry, *mockModel, string) {
	t.Helper()
	base := t.TempDir()
	resolver := storage.NewResolver(storage.Explicit(base))

	model := &mockModel{}
	gen, err := generator.NewTool(model, resolver)
	require.NoError(t, err)

	renderer, err := render.NewRenderer(resolver, render.NewSourceFetcher(nil, nil))
	require.NoError(t, err)

	return NewDefaultRegistry(gen, renderer), model, base
}

func TestRegistry_Definitions(t *testing.T) {
	r, _, _ := newTestRegistry(t)

	defs := r.Definitions()
	require.Len(t, defs, 2)

	// 登録順のカタログ
	assert.Equal(t, ToolGenerateImages, defs[0].Name)
	assert.Equal(t, ToolCreateImageHTML, defs[1].Name)

	for _, def := range defs {
		assert.NotEmpty(t, def.Description)
		assert.Equal(t, "object", def.InputSchema["type"])
		assert.NotEmpty(t, def.InputSchema["required"])
	}
}

func TestRegistry_Call_UnknownTool(t *testing.T) {
	t.Run("ToolNotFoundError が返り、副作用は一切無いのだ", func(t *testing.T) {
		r, model, base := newTestRegistry(t)

		_, err := r.Call(context.Background(), "delete_everything", map[string]any{})

		var notFound *domain.ToolNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "delete_everything", notFound.Name)

		assert.False(t, model.called, "未知のツール名で生成サービスを呼んではならない")
		entries, readErr := os.ReadDir(base)
		require.NoError(t, readErr)
		assert.Empty(t, entries, "未知のツール名でディレクトリを作ってはならない")
	})
}

func TestRegistry_Call_RoutesToHandler(t *testing.T) {
	r, model, _ := newTestRegistry(t)

	result, err := r.Call(context.Background(), ToolGenerateImages, map[string]any{
		"prompt": "a red fox",
	})

	require.NoError(t, err)
	assert.True(t, model.called)

	genResult, ok := result.(*domain.GenerateImagesResult)
	require.True(t, ok, "result type mismatch: %T", result)
	assert.Len(t, genResult.Files, 1)
}

func TestRegistry_Register_Overwrite(t *testing.T) {
	r := NewRegistry()
	r.Register(Definition{Name: "x", Description: "old"}, func(ctx context.Context, args map[string]any) (any, error) {
		return "old", nil
	})
	r.Register(Definition{Name: "x", Description: "new"}, func(ctx context.Context, args map[string]any) (any, error) {
		return "new", nil
	})

	require.Len(t, r.Definitions(), 1)
	assert.Equal(t, "new", r.Definitions()[0].Description)

	got, err := r.Call(context.Background(), "x", nil)
	require.NoError(t, err)
	assert.Equal(t, "new", got)
}
