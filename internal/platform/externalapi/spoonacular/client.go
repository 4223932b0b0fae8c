package spoonacular

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"cookwhat/internal/feature/recipes/domain/entity"
	"cookwhat/internal/feature/recipes/usecase"
	"cookwhat/internal/platform/externalapi/spoonacular/dto"
)

// Endpoint labels used for metrics and error messages.
const (
	EndpointIngredientSearch     = "ingredient_search"
	EndpointFindByIngredients    = "find_by_ingredients"
	EndpointRecipeInformation    = "recipe_information"
	EndpointAnalyzedInstructions = "analyzed_instructions"
)

// Observer records the latency and outcome of every upstream call.
type Observer interface {
	ObserveUpstream(endpoint, outcome string, d time.Duration)
}

type noopObserver struct{}

func (noopObserver) ObserveUpstream(string, string, time.Duration) {}

// Client はSpoonacular APIを呼び出すRecipeGateway実装です。
// すべての呼び出しはサーキットブレーカーを通り、リトライは行いません。
type Client struct {
	cfg    Config
	client *http.Client
	cb     *gobreaker.CircuitBreaker
	obs    Observer
}

// ClientがRecipeGatewayを実装していることをコンパイル時に検証します。
var _ usecase.RecipeGateway = (*Client)(nil)

// breakerSettings trips after five consecutive failures and probes again after 30s.
func breakerSettings() gobreaker.Settings {
	return gobreaker.Settings{
		Name:        "spoonacular",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful:  countsAsHealthy,
		OnStateChange: func(name string, from, to gobreaker.State) {
			zap.S().Warnw("circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	}
}

// StatusError is a non-2xx reply from the API.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("http %d", e.Code)
}

// countsAsHealthy reports whether a failed call still says the API is up.
// Replies caused by the request itself (unknown recipe id, bad query) and
// callers that went away must not trip the shared breaker. Key, quota and
// rate-limit replies affect every caller and do count.
func countsAsHealthy(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return true
	}
	var se *StatusError
	if !errors.As(err, &se) || se.Code < 400 || se.Code >= 500 {
		return false
	}
	switch se.Code {
	case http.StatusUnauthorized, http.StatusPaymentRequired, http.StatusForbidden, http.StatusTooManyRequests:
		return false
	}
	return true
}

// NewClient は指定された設定とHTTPクライアントでClientを生成します。obs が nil の場合は計測しません。
func NewClient(cfg Config, client *http.Client, obs Observer) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if obs == nil {
		obs = noopObserver{}
	}
	return &Client{
		cfg:    cfg,
		client: client,
		cb:     gobreaker.NewCircuitBreaker(breakerSettings()),
		obs:    obs,
	}
}

// SearchIngredients は食材名で検索します。
func (c *Client) SearchIngredients(ctx context.Context, query string, limit int) ([]entity.IngredientResult, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("number", strconv.Itoa(limit))

	var body dto.IngredientSearchResponse
	if err := c.get(ctx, EndpointIngredientSearch, "/food/ingredients/search", q, &body); err != nil {
		return nil, err
	}

	out := make([]entity.IngredientResult, 0, len(body.Results))
	for _, r := range body.Results {
		out = append(out, entity.IngredientResult{
			ExternalID: r.ID,
			Name:       r.Name,
			Image:      ingredientImage(r.Image),
		})
	}
	return out, nil
}

// SearchRecipesByIngredients は食材名のリストで作れるレシピを検索します。
// 食材は ", " で連結され、クエリ上では ",+" としてエンコードされます。
func (c *Client) SearchRecipesByIngredients(ctx context.Context, names []string, count int) ([]entity.RecipeSummary, error) {
	q := url.Values{}
	q.Set("ingredients", strings.Join(names, ", "))
	q.Set("number", strconv.Itoa(count))

	var body []dto.FindByIngredientsItem
	if err := c.get(ctx, EndpointFindByIngredients, "/recipes/findByIngredients", q, &body); err != nil {
		return nil, err
	}

	out := make([]entity.RecipeSummary, 0, len(body))
	for _, r := range body {
		out = append(out, entity.RecipeSummary{
			ID:                    r.ID,
			Title:                 r.Title,
			Image:                 r.Image,
			UsedIngredientCount:   r.UsedIngredientCount,
			MissedIngredientCount: r.MissedIngredientCount,
			UsedIngredients:       refNames(r.UsedIngredients),
			MissedIngredients:     refNames(r.MissedIngredients),
		})
	}
	return out, nil
}

// GetRecipeDetail はレシピの詳細を取得します。手順は含みません。
func (c *Client) GetRecipeDetail(ctx context.Context, id int) (*entity.RecipeDetail, error) {
	var body dto.RecipeInformation
	path := fmt.Sprintf("/recipes/%d/information", id)
	if err := c.get(ctx, EndpointRecipeInformation, path, url.Values{}, &body); err != nil {
		return nil, err
	}

	ingredients := make([]string, 0, len(body.ExtendedIngredients))
	for _, ing := range body.ExtendedIngredients {
		if ing.Original != "" {
			ingredients = append(ingredients, ing.Original)
		} else {
			ingredients = append(ingredients, ing.Name)
		}
	}
	return &entity.RecipeDetail{
		ID:             body.ID,
		Title:          body.Title,
		Image:          body.Image,
		ReadyInMinutes: body.ReadyInMinutes,
		Servings:       body.Servings,
		SourceURL:      body.SourceURL,
		Summary:        body.Summary,
		Ingredients:    ingredients,
	}, nil
}

// GetRecipeInstructions は手順をブロック順・ステップ順に平坦化して返します。
func (c *Client) GetRecipeInstructions(ctx context.Context, id int) ([]string, error) {
	var body []dto.AnalyzedInstruction
	path := fmt.Sprintf("/recipes/%d/analyzedInstructions", id)
	if err := c.get(ctx, EndpointAnalyzedInstructions, path, url.Values{}, &body); err != nil {
		return nil, err
	}

	steps := []string{}
	for _, block := range body {
		for _, s := range block.Steps {
			if s.Step = strings.TrimSpace(s.Step); s.Step != "" {
				steps = append(steps, s.Step)
			}
		}
	}
	return steps, nil
}

// get はブレーカー越しにGETを実行し、結果を計測します。
// 失敗はすべて usecase.ErrUpstream でラップされます。
func (c *Client) get(ctx context.Context, endpoint, path string, q url.Values, out any) error {
	start := time.Now()
	_, err := c.cb.Execute(func() (interface{}, error) {
		return nil, c.do(ctx, path, q, out)
	})

	outcome := "ok"
	switch {
	case err == nil:
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		outcome = "rejected"
	default:
		outcome = "error"
	}
	c.obs.ObserveUpstream(endpoint, outcome, time.Since(start))

	if err != nil {
		zap.S().Warnw("spoonacular call failed", "endpoint", endpoint, "outcome", outcome, "error", err)
		return fmt.Errorf("%w: %s: %w", usecase.ErrUpstream, endpoint, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, path string, q url.Values, out any) error {
	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	q.Set("apiKey", c.cfg.APIKey)
	u := fmt.Sprintf("%s%s?%s", strings.TrimRight(c.cfg.BaseURL, "/"), path, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			zap.S().Warnw("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, 4<<10))
		return &StatusError{Code: res.StatusCode}
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func ingredientImage(name string) string {
	if name == "" || strings.HasPrefix(name, "http://") || strings.HasPrefix(name, "https://") {
		return name
	}
	return IngredientImageBaseURL + name
}

func refNames(refs []dto.IngredientRef) []string {
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		out = append(out, r.Name)
	}
	return out
}
