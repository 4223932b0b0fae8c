// Package entity はingredientscanフィーチャーのドメインモデルを定義します。
package entity

// DetectedLabel は画像から検出されたラベルを表します。
type DetectedLabel struct {
	Name       string  // ラベル名（例: "Tomato", "Bottle"）
	Confidence float32 // 信頼度スコア（0.0 ~ 1.0）
}

// ScanResult は冷蔵庫写真の解析結果です。
type ScanResult struct {
	Labels      []DetectedLabel // 閾値以上のラベル
	Ingredients []string        // 食材と判定された名前（小文字、重複なし）
}
