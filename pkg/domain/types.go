package domain

// GenerateImagesRequest は画像生成ツールへの1回分の要求です。
// 保存先は OutputDir > Category > ストレージ戦略のベース の優先順で解決されます。
type GenerateImagesRequest struct {
	Prompt         string `json:"prompt"`
	NumberOfImages int    `json:"numberOfImages"` // 1〜4。スキーマ側で制約し、ここでは再検証しない
	Category       string `json:"category,omitempty"`
	OutputDir      string `json:"outputDir,omitempty"`
	SubDir         string `json:"subDir,omitempty"`
}

// GenerateImagesResult は生成・保存が完了したファイル群の報告です。
// Files の順序は生成された順（1始まりの連番）を保持します。
type GenerateImagesResult struct {
	Message    string   `json:"message"`
	Files      []string `json:"files"`
	StorageDir string   `json:"storageDir,omitempty"`
}

// ImagePayload は生成サービスから返された1枚分の画像データです。
// Data が空のエントリは「ペイロードなし」としてスキップ対象になります。
type ImagePayload struct {
	Data     []byte
	MimeType string
}

// ImageBatch は生成サービスの応答1回分です。
// Images が nil（コレクション自体が無い）の場合は全体失敗として扱います。
type ImageBatch struct {
	Images []ImagePayload
}

// RenderHTMLRequest はHTMLレンダリングツールへの要求です。
type RenderHTMLRequest struct {
	ImagePaths []string `json:"imagePaths"`
	Width      int      `json:"width"`   // 0 はデフォルト(512)
	Height     int      `json:"height"`  // 0 はデフォルト(512)
	Gallery    bool     `json:"gallery"` // true でスタイル付きギャラリー
	UseTemp    bool     `json:"useTemp"` // true で一時ディレクトリへステージング
}

// RenderHTMLResult は組み立て済みHTMLと解決済みパス情報です。
type RenderHTMLResult struct {
	HTML            string   `json:"html"`
	Message         string   `json:"message"`
	StorageLocation string   `json:"storageLocation,omitempty"`
	AbsolutePaths   []string `json:"absolutePaths,omitempty"`
	TempDir         string   `json:"tempDir,omitempty"`
	TempPaths       []string `json:"tempPaths,omitempty"`
}
