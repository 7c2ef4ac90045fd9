package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
)

// Request is one structured completion.
type Request struct {
	Instructions string
	Input        string
	// SchemaName and Schema request strict JSON output; empty means free text.
	SchemaName      string
	Schema          map[string]any
	MaxOutputTokens int64
}

// Completer returns the model's text output for a request.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Config configures Client.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
	// Backoff defaults to DefaultBackoff.
	Backoff *Backoff
}

// Client calls the OpenAI Responses API.
type Client struct {
	api     openai.Client
	model   string
	backoff Backoff
}

// New creates a client. Model is required.
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, errors.New("llm: model required")
	}
	opts := []option.RequestOption{option.WithMaxRetries(0)}
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}
	backoff := DefaultBackoff()
	if cfg.Backoff != nil {
		backoff = *cfg.Backoff
	}
	return &Client{
		api:     openai.NewClient(opts...),
		model:   cfg.Model,
		backoff: backoff,
	}, nil
}

// Complete implements Completer.
func (c *Client) Complete(ctx context.Context, req Request) (string, error) {
	params := responses.ResponseNewParams{
		Model: c.model,
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(req.Input, responses.EasyInputMessageRoleUser),
			},
		},
	}
	if req.Instructions != "" {
		params.Instructions = openai.String(req.Instructions)
	}
	if req.MaxOutputTokens > 0 {
		params.MaxOutputTokens = openai.Int(req.MaxOutputTokens)
	}
	if req.Schema != nil {
		params.Text = responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Name:   req.SchemaName,
					Schema: req.Schema,
					Strict: openai.Bool(true),
					Type:   "json_schema",
				},
			},
		}
	}

	resp, err := CallWithRetry(ctx, c.backoff, func(ctx context.Context) (*responses.Response, error) {
		return c.api.Responses.New(ctx, params)
	})
	if err != nil {
		return "", err
	}
	out := resp.OutputText()
	if strings.TrimSpace(out) == "" {
		return "", fmt.Errorf("llm: empty response")
	}
	return out, nil
}

// Backoff lists the waits before each retry, per failure class. The number
// of retries is the length of the list.
type Backoff struct {
	RateLimit   []time.Duration
	ServerError []time.Duration
}

// DefaultBackoff waits long enough for per-minute rate limits to reset.
func DefaultBackoff() Backoff {
	return Backoff{
		RateLimit:   []time.Duration{65 * time.Second, 100 * time.Second},
		ServerError: []time.Duration{5 * time.Second, 30 * time.Second},
	}
}

// Limit keeps at most n retries per failure class.
func (b Backoff) Limit(n int) Backoff {
	n = max(n, 0)
	return Backoff{
		RateLimit:   b.RateLimit[:min(n, len(b.RateLimit))],
		ServerError: b.ServerError[:min(n, len(b.ServerError))],
	}
}

// CallWithRetry runs call, retrying rate-limit and server errors after the
// configured waits. Waiting stops early when ctx is done.
func CallWithRetry[T any](ctx context.Context, b Backoff, call func(context.Context) (T, error)) (T, error) {
	rateAttempt, serverAttempt := 0, 0
	for {
		out, err := call(ctx)
		if err == nil {
			return out, nil
		}
		var wait time.Duration
		switch {
		case isRateLimitError(err) && rateAttempt < len(b.RateLimit):
			wait = b.RateLimit[rateAttempt]
			rateAttempt++
		case isServerError(err) && serverAttempt < len(b.ServerError):
			wait = b.ServerError[serverAttempt]
			serverAttempt++
		default:
			return out, err
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			var zero T
			return zero, ctx.Err()
		case <-timer.C:
		}
	}
}

func statusCode(err error) int {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

func isRateLimitError(err error) bool {
	if statusCode(err) == http.StatusTooManyRequests {
		return true
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "too many requests")
}

func isServerError(err error) bool {
	if code := statusCode(err); code >= 500 {
		return true
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "internal server error") ||
		strings.Contains(errStr, "server_error")
}
