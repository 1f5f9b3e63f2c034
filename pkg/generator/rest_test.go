package generator

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImagenRESTModel_GenerateImages(t *testing.T) {
	ctx := context.Background()

	t.Run("成功: base64ペイロードが生バイト列へ復元されるのだ", func(t *testing.T) {
		raw := []byte{0x89, 'P', 'N', 'G'}
		body := fmt.Sprintf(`{"predictions":[{"bytesBase64Encoded":%q,"mimeType":"image/png"}]}`,
			base64.StdEncoding.EncodeToString(raw))

		httpMock := &mockHTTPClient{
			postFunc: func(ctx context.Context, url string, data any) ([]byte, error) {
				return []byte(body), nil
			},
		}
		model, err := NewImagenRESTModel(httpMock, "imagen-3.0-generate-002", "test-key")
		require.NoError(t, err)

		batch, err := model.GenerateImages(ctx, "a red fox", 1)

		require.NoError(t, err)
		require.Len(t, batch.Images, 1)
		assert.Equal(t, raw, batch.Images[0].Data)
		assert.Equal(t, "image/png", batch.Images[0].MimeType)
		assert.Contains(t, httpMock.lastURL, "imagen-3.0-generate-002:predict")
	})

	t.Run("壊れたbase64は欠けエントリになり、バッチは失敗しないのだ", func(t *testing.T) {
		body := `{"predictions":[{"bytesBase64Encoded":"%%%not-base64%%%"},{"bytesBase64Encoded":"` +
			base64.StdEncoding.EncodeToString([]byte("ok")) + `"}]}`

		httpMock := &mockHTTPClient{
			postFunc: func(ctx context.Context, url string, data any) ([]byte, error) {
				return []byte(body), nil
			},
		}
		model, _ := NewImagenRESTModel(httpMock, "imagen-3.0-generate-002", "k")

		batch, err := model.GenerateImages(ctx, "p", 2)

		require.NoError(t, err)
		require.Len(t, batch.Images, 2)
		assert.Empty(t, batch.Images[0].Data)
		assert.Equal(t, []byte("ok"), batch.Images[1].Data)
	})

	t.Run("通信エラーはそのまま失敗として返る", func(t *testing.T) {
		expectedErr := errors.New("connection refused")
		httpMock := &mockHTTPClient{
			postFunc: func(ctx context.Context, url string, data any) ([]byte, error) {
				return nil, expectedErr
			},
		}
		model, _ := NewImagenRESTModel(httpMock, "m", "k")

		_, err := model.GenerateImages(ctx, "p", 1)

		require.Error(t, err)
		assert.ErrorIs(t, err, expectedErr)
	})

	t.Run("応答がJSONでなければエラーなのだ", func(t *testing.T) {
		httpMock := &mockHTTPClient{
			postFunc: func(ctx context.Context, url string, data any) ([]byte, error) {
				return []byte("<html>502 Bad Gateway</html>"), nil
			},
		}
		model, _ := NewImagenRESTModel(httpMock, "m", "k")

		_, err := model.GenerateImages(ctx, "p", 1)
		assert.Error(t, err)
	})
}

func TestNewImagenRESTModel(t *testing.T) {
	t.Run("nilチェック: 依存関係が足りない場合はエラーを返すのだ", func(t *testing.T) {
		_, err := NewImagenRESTModel(nil, "m", "k")
		assert.Error(t, err)

		_, err = NewImagenRESTModel(&mockHTTPClient{}, "", "k")
		assert.Error(t, err)

		_, err = NewImagenRESTModel(&mockHTTPClient{}, "m", "")
		assert.Error(t, err)
	})
}
