package enricher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Provider configuration
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderNoop   = "noop"

	DefaultGeminiModel = "gemini-2.0-flash-lite"
	DefaultOpenAIModel = "gpt-4o-mini"

	geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"
	openAIBaseURL = "https://api.openai.com/v1/chat/completions"

	// Requests per second against the hosted model APIs
	DefaultRateLimitRPS = 2
)

const enrichPrompt = `Analyze the following text segment and respond with JSON only, no additional text, in exactly this format:
{
  "summary": "one or two sentence summary",
  "topics": ["topic1", "topic2"],
  "entities": ["entity1", "entity2"]
}

Text:
%s`

// parseReply strips optional markdown fences from a model reply and
// decodes the enrichment JSON. Hosted models routinely wrap JSON in
// fences despite instructions not to.
func parseReply(reply string) (*Enrichment, error) {
	reply = strings.TrimSpace(reply)
	if strings.HasPrefix(reply, "```json") {
		reply = strings.TrimPrefix(reply, "```json")
		reply = strings.TrimSuffix(reply, "```")
	} else if strings.HasPrefix(reply, "```") {
		reply = strings.TrimPrefix(reply, "```")
		reply = strings.TrimSuffix(reply, "```")
	}
	reply = strings.TrimSpace(reply)

	var e Enrichment
	if err := json.Unmarshal([]byte(reply), &e); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedReply, err)
	}
	return clampReply(&e), nil
}

// GeminiProvider implements Enricher using the Gemini generateContent API.
type GeminiProvider struct {
	apiKey     string
	model      string
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      *Cache
}

// NewGeminiProvider creates a Gemini-backed enricher.
func NewGeminiProvider(apiKey string, cache *Cache) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: %s not set", ErrNotConfigured, EnvGeminiAPIKey)
	}
	return &GeminiProvider{
		apiKey: apiKey,
		model:  DefaultGeminiModel,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimitRPS), DefaultRateLimitRPS),
		cache:   cache,
	}, nil
}

func (g *GeminiProvider) Enrich(ctx context.Context, text string) (*Enrichment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	text = Truncate(text)
	hash := ComputeHash(text)
	if g.cache != nil {
		if e, ok := g.cache.Get(hash); ok {
			return e, nil
		}
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	config := DefaultRetryConfig()
	result, err := retryWithBackoff(ctx, config, func() (*Enrichment, error) {
		return g.callAPI(ctx, text)
	})
	if err != nil {
		return nil, fmt.Errorf("%w after %d attempts: %v", ErrProviderFailed, config.MaxRetries, err)
	}

	result.Provider = ProviderGemini
	result.Model = g.model
	result.Hash = hash
	if g.cache != nil {
		g.cache.Set(hash, result)
	}
	return result, nil
}

func (g *GeminiProvider) callAPI(ctx context.Context, text string) (*Enrichment, error) {
	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]string{
					{"text": fmt.Sprintf(enrichPrompt, text)},
				},
			},
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", geminiBaseURL, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api call: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("api error %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var apiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(apiResp.Candidates) == 0 || len(apiResp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("%w: empty candidates", ErrMalformedReply)
	}

	return parseReply(apiResp.Candidates[0].Content.Parts[0].Text)
}

func (g *GeminiProvider) Provider() string { return ProviderGemini }
func (g *GeminiProvider) Model() string    { return g.model }

func (g *GeminiProvider) Close() error {
	g.httpClient.CloseIdleConnections()
	return nil
}

// OpenAIProvider implements Enricher using the chat completions API.
type OpenAIProvider struct {
	apiKey     string
	model      string
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      *Cache
}

// NewOpenAIProvider creates an OpenAI-backed enricher.
func NewOpenAIProvider(apiKey string, cache *Cache) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: %s not set", ErrNotConfigured, EnvOpenAIAPIKey)
	}
	return &OpenAIProvider{
		apiKey: apiKey,
		model:  DefaultOpenAIModel,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimitRPS), DefaultRateLimitRPS),
		cache:   cache,
	}, nil
}

func (o *OpenAIProvider) Enrich(ctx context.Context, text string) (*Enrichment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	text = Truncate(text)
	hash := ComputeHash(text)
	if o.cache != nil {
		if e, ok := o.cache.Get(hash); ok {
			return e, nil
		}
	}

	if err := o.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	config := DefaultRetryConfig()
	result, err := retryWithBackoff(ctx, config, func() (*Enrichment, error) {
		return o.callAPI(ctx, text)
	})
	if err != nil {
		return nil, fmt.Errorf("%w after %d attempts: %v", ErrProviderFailed, config.MaxRetries, err)
	}

	result.Provider = ProviderOpenAI
	result.Model = o.model
	result.Hash = hash
	if o.cache != nil {
		o.cache.Set(hash, result)
	}
	return result, nil
}

func (o *OpenAIProvider) callAPI(ctx context.Context, text string) (*Enrichment, error) {
	reqBody := map[string]interface{}{
		"model": o.model,
		"messages": []map[string]string{
			{"role": "user", "content": fmt.Sprintf(enrichPrompt, text)},
		},
		"temperature": 0,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", openAIBaseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api call: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("api error %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var apiResp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(apiResp.Choices) == 0 {
		return nil, fmt.Errorf("%w: empty choices", ErrMalformedReply)
	}

	return parseReply(apiResp.Choices[0].Message.Content)
}

func (o *OpenAIProvider) Provider() string { return ProviderOpenAI }
func (o *OpenAIProvider) Model() string    { return o.model }

func (o *OpenAIProvider) Close() error {
	o.httpClient.CloseIdleConnections()
	return nil
}

// NoopProvider is the capability-absent implementation. Every call
// reports ErrNotConfigured; the metadata generator treats that as
// "enrichment disabled" and leaves the semantic fields unset.
type NoopProvider struct{}

// NewNoopProvider creates the no-op enricher.
func NewNoopProvider() *NoopProvider { return &NoopProvider{} }

func (n *NoopProvider) Enrich(ctx context.Context, text string) (*Enrichment, error) {
	return nil, ErrNotConfigured
}

func (n *NoopProvider) Provider() string { return ProviderNoop }
func (n *NoopProvider) Model() string    { return "" }
func (n *NoopProvider) Close() error     { return nil }
