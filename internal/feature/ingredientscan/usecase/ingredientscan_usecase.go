// Package usecase はingredientscanフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"cookwhat/internal/feature/ingredientscan/domain/entity"
)

const (
	// MaxImageSize は画像アップロードの最大サイズ（10MB）です。
	MaxImageSize = 10 * 1024 * 1024
	// MinConfidence は食材候補として扱うラベルの最低信頼度です。
	MinConfidence = 0.6
	// MaxIngredientNameLength は食材名の最大文字数（rune数）です。
	MaxIngredientNameLength = 64
	// FilterPromptTemplate は検出ラベルから食材だけを選ばせるプロンプトです。
	FilterPromptTemplate = "These labels were detected in a photo of the inside of a fridge: %s.\n" +
		"Reply with only the labels that are food ingredients usable in cooking, " +
		"as a comma-separated list of lowercase singular ingredient names. Reply NONE if there are none."
)

var (
	// ErrEmptyImage は画像データが空の場合に返されます。
	ErrEmptyImage = errors.New("image data is empty")
	// ErrImageTooLarge は画像が MaxImageSize を超える場合に返されます。
	ErrImageTooLarge = fmt.Errorf("image size exceeds maximum of %d bytes", MaxImageSize)
	// ErrScanFailed は外部API（Vision/Gemini）の失敗をラップします。
	ErrScanFailed = errors.New("ingredient scan failed")
)

// LabelDetector は画像からラベルを検出するインターフェースです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type LabelDetector interface {
	DetectLabels(ctx context.Context, imageData []byte) ([]entity.DetectedLabel, error)
}

// IngredientFilter はプロンプトからテキストを生成するインターフェースです。
type IngredientFilter interface {
	Analyze(ctx context.Context, prompt string) (string, error)
}

type ingredientScanUsecase struct {
	labels LabelDetector
	filter IngredientFilter
}

// NewIngredientScanUsecase はingredientScanUsecaseの新しいインスタンスを生成します。
func NewIngredientScanUsecase(ld LabelDetector, f IngredientFilter) *ingredientScanUsecase {
	return &ingredientScanUsecase{labels: ld, filter: f}
}

// Scan は画像からラベルを検出し、Geminiで食材だけに絞り込みます。
// 閾値以上のラベルが無い場合はGeminiを呼びません。
func (u *ingredientScanUsecase) Scan(ctx context.Context, imageData []byte) (*entity.ScanResult, error) {
	if len(imageData) == 0 {
		return nil, ErrEmptyImage
	}
	if len(imageData) > MaxImageSize {
		return nil, ErrImageTooLarge
	}

	detected, err := u.labels.DetectLabels(ctx, imageData)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanFailed, err)
	}

	res := &entity.ScanResult{Labels: []entity.DetectedLabel{}, Ingredients: []string{}}
	names := make([]string, 0, len(detected))
	for _, l := range detected {
		if l.Confidence < MinConfidence || strings.TrimSpace(l.Name) == "" {
			continue
		}
		res.Labels = append(res.Labels, l)
		names = append(names, l.Name)
	}
	if len(names) == 0 {
		return res, nil
	}

	reply, err := u.filter.Analyze(ctx, fmt.Sprintf(FilterPromptTemplate, strings.Join(names, ", ")))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanFailed, err)
	}
	res.Ingredients = ParseIngredientList(reply)
	return res, nil
}

// ParseIngredientList はモデルの返答を食材名のリストに正規化します。
// カンマと改行で区切り、箇条書き記号を除去し、小文字化して重複を取り除きます。
func ParseIngredientList(reply string) []string {
	out := []string{}
	seen := map[string]struct{}{}
	fields := strings.FieldsFunc(reply, func(r rune) bool { return r == ',' || r == '\n' })
	for _, f := range fields {
		name := strings.ToLower(strings.TrimSpace(f))
		name = strings.TrimLeft(name, "-*•0123456789. ")
		name = strings.TrimRight(name, ". ")
		if name == "" || name == "none" || utf8.RuneCountInString(name) > MaxIngredientNameLength {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
