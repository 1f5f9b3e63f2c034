// imagetoold は画像ツール群を標準入出力で公開する小さなランナーです。
//
// プロトコル: 標準入力の1行につき1つのJSON呼び出しを受け取り、
// 標準出力へ1行のJSON応答を書き出します。
//
//	{"tool": "list"}
//	{"tool": "generate_images", "arguments": {"prompt": "a red fox", "numberOfImages": 2}}
//	{"tool": "create_image_html", "arguments": {"imagePaths": ["a.png", "b.png"]}}
//
// 環境変数:
//
//	GEMINI_API_KEY      生成サービスの認証キー（必須）
//	IMAGE_TOOLS_MODEL   使用するモデル名（既定: imagen-3.0-generate-002）
//	IMAGE_TOOLS_STORAGE 保存先戦略: desktop | cwd | temp | 任意のディレクトリパス
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/shouni/go-http-kit/pkg/httpkit"
	"google.golang.org/genai"

	"github.com/shouni/gemini-image-tools/pkg/domain"
	"github.com/shouni/gemini-image-tools/pkg/generator"
	"github.com/shouni/gemini-image-tools/pkg/render"
	"github.com/shouni/gemini-image-tools/pkg/storage"
	"github.com/shouni/gemini-image-tools/pkg/tools"
)

const (
	defaultModel       = "imagen-3.0-generate-002"
	sourceFetchTimeout = 30 * time.Second
)

type invocation struct {
	Tool      string         `json:"tool"`
	Arguments map[string]any `json:"arguments"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type response struct {
	Result any        `json:"result,omitempty"`
	Tools  any        `json:"tools,omitempty"`
	Error  *errorBody `json:"error,omitempty"`
}

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, `{"error":%q}`+"\n", err.Error())
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}

	modelName := os.Getenv("IMAGE_TOOLS_MODEL")
	if modelName == "" {
		modelName = defaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return fmt.Errorf("genai クライアントの初期化に失敗しました: %w", err)
	}

	model, err := generator.NewGenAIModel(client, modelName)
	if err != nil {
		return err
	}

	resolver := storage.NewResolver(strategyFromEnv())

	gen, err := generator.NewTool(model, resolver)
	if err != nil {
		return err
	}
	// http(s) ソースの取得用。gs:// は GCS クライアントが必要なため未設定のままです。
	fetcher := render.NewSourceFetcher(httpkit.New(sourceFetchTimeout), nil)
	renderer, err := render.NewRenderer(resolver, fetcher)
	if err != nil {
		return err
	}

	registry := tools.NewDefaultRegistry(gen, renderer)
	return serve(ctx, registry, os.Stdin, os.Stdout)
}

// strategyFromEnv は IMAGE_TOOLS_STORAGE から保存先戦略を選択します。
// 未指定はカレントディレクトリ配下です。マシン固有の既定パスは持ちません。
func strategyFromEnv() storage.Strategy {
	switch value := os.Getenv("IMAGE_TOOLS_STORAGE"); value {
	case "", "cwd":
		return storage.WorkingDir("")
	case "desktop":
		return storage.Desktop("")
	case "temp":
		return storage.TempRoot("")
	default:
		return storage.Explicit(value)
	}
}

func serve(ctx context.Context, registry *tools.Registry, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	encoder := json.NewEncoder(out)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var inv invocation
		if err := json.Unmarshal(line, &inv); err != nil {
			writeError(encoder, "OPERATION_FAILED", fmt.Errorf("parse json: %w", err))
			continue
		}

		if inv.Tool == "list" {
			_ = encoder.Encode(response{Tools: registry.Definitions()})
			continue
		}

		result, err := registry.Call(ctx, inv.Tool, inv.Arguments)
		if err != nil {
			var notFound *domain.ToolNotFoundError
			code := "OPERATION_FAILED"
			if errors.As(err, &notFound) {
				code = "TOOL_NOT_FOUND"
			}
			slog.WarnContext(ctx, "ツール呼び出しが失敗しました", "tool", inv.Tool, "error", err)
			writeError(encoder, code, err)
			continue
		}

		_ = encoder.Encode(response{Result: result})
	}
	return scanner.Err()
}

func writeError(encoder *json.Encoder, code string, err error) {
	_ = encoder.Encode(response{Error: &errorBody{Code: code, Message: err.Error()}})
}
