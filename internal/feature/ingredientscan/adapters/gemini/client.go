// Package gemini はGoogle Gemini APIを使用した食材フィルタークライアントを提供します。
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"cookwhat/internal/feature/ingredientscan/usecase"
)

const (
	// DefaultModel はGemini APIのデフォルトモデルです。
	DefaultModel      = "gemini-2.5-flash"
	// maxOutputTokens は返答の長さの上限です。
	maxOutputTokens   = 256
	systemInstruction = "You sort photo labels into cooking ingredients. " +
		"Answer with a plain comma-separated list and nothing else."
)

// GeminiFilter はGoogle Gemini APIを使用してラベルを食材に絞り込みます。
type GeminiFilter struct {
	client *genai.Client
	model  string
	config *genai.GenerateContentConfig
}

// GeminiFilterがIngredientFilterを実装していることをコンパイル時に検証します。
var _ usecase.IngredientFilter = (*GeminiFilter)(nil)

// NewGeminiFilter はADCを使用してGeminiFilterの新しいインスタンスを生成します。
// 環境変数 GOOGLE_GENAI_USE_VERTEXAI, GOOGLE_CLOUD_PROJECT, GOOGLE_CLOUD_LOCATION（または GOOGLE_API_KEY）が必要です。
// model が空の場合は DefaultModel を使用します。
func NewGeminiFilter(ctx context.Context, model string) (*GeminiFilter, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	if model == "" {
		model = DefaultModel
	}
	return &GeminiFilter{client: client, model: model, config: generateConfig()}, nil
}

// generateConfig は同じラベルに同じ返答が返るよう温度0で生成させます。
func generateConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Temperature:       genai.Ptr[float32](0),
		MaxOutputTokens:   maxOutputTokens,
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
	}
}

// Analyze はプロンプトに対するモデルの返答テキストを返します。
func (g *GeminiFilter) Analyze(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), g.config)
	if err != nil {
		return "", fmt.Errorf("gemini API request failed: %w", err)
	}
	return resp.Text(), nil
}
