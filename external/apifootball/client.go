// Package apifootball is the API-Football v3 adapter. It performs one GET per
// call with no retries; retry policy belongs to the callers.
package apifootball

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/football-stats/internal/domain/feed"
	"github.com/riskibarqy/football-stats/internal/observability"
	"github.com/riskibarqy/football-stats/internal/platform/logging"
	"github.com/riskibarqy/football-stats/internal/platform/resilience"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL   = "https://v3.football.api-sports.io"
	defaultTimeout   = 20 * time.Second
	maxResponseBytes = 8 << 20
	apiKeyHeader     = "x-apisports-key"
)

var apiKeyParamRegex = regexp.MustCompile(`(?i)(x-apisports-key[=:]\s*)[^&\s"']+`)

type ClientConfig struct {
	HTTPClient     *fasthttp.Client
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	RatePerMinute  int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	http    *fasthttp.Client
	baseURL string
	apiKey  string
	timeout time.Duration
	limiter *rate.Limiter
	breaker *resilience.Breaker
	flight  singleflight.Group
	logger  *logging.Logger
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &fasthttp.Client{
			Name:                "football-stats",
			MaxResponseBodySize: maxResponseBytes,
		}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		http:    httpClient,
		baseURL: baseURL,
		apiKey:  strings.TrimSpace(cfg.APIKey),
		timeout: timeout,
		limiter: resilience.NewPerMinuteLimiter(cfg.RatePerMinute),
		breaker: resilience.NewBreaker("api-football", cfg.CircuitBreaker, isBreakerFailure, logger),
		logger:  logger,
	}
}

// BreakerState exposes the circuit state for health reporting.
func (c *Client) BreakerState() string {
	return c.breaker.State()
}

// Fetch performs one GET against resource (e.g. "/fixtures") and returns
// the raw envelope body. Identical concurrent calls share one request.
func (c *Client) Fetch(ctx context.Context, resource string, params map[string]string) ([]byte, error) {
	fullURL, key := c.buildURL(resource, params)

	out, err, _ := c.flight.Do(key, func() (any, error) {
		return resilience.Execute(c.breaker, func() ([]byte, error) {
			return c.executeRequest(ctx, resource, fullURL)
		})
	})
	if err != nil {
		if errors.Is(err, resilience.ErrCircuitOpen) {
			observability.ObserveProviderRequest(resource, "circuit_open", 0)
			c.logger.WarnContext(ctx, "api-football circuit breaker rejected request", "resource", resource, "state", c.breaker.State())
			return nil, &FetchError{Kind: KindNetwork, Resource: resource, Err: err}
		}
		return nil, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, &FetchError{Kind: KindMalformedResponse, Resource: resource, Err: fmt.Errorf("unexpected payload type %T", out)}
	}
	return raw, nil
}

func (c *Client) buildURL(resource string, params map[string]string) (string, string) {
	values := url.Values{}
	for key, value := range params {
		values.Set(key, value)
	}
	encoded := values.Encode()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	_, _ = buf.WriteString(c.baseURL)
	if !strings.HasPrefix(resource, "/") {
		_ = buf.WriteByte('/')
	}
	_, _ = buf.WriteString(resource)
	if encoded != "" {
		_ = buf.WriteByte('?')
		_, _ = buf.WriteString(encoded)
	}
	fullURL := buf.String()
	return fullURL, resource + "?" + encoded
}

func (c *Client) executeRequest(ctx context.Context, resource, fullURL string) ([]byte, error) {
	if err := resilience.Wait(ctx, c.limiter); err != nil {
		return nil, c.contextError(resource, err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fullURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set(apiKeyHeader, c.apiKey)
	}

	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}

	started := time.Now()
	err := c.http.DoDeadline(req, resp, deadline)
	elapsed := time.Since(started)
	if err != nil {
		fetchErr := c.transportError(ctx, resource, err)
		observability.ObserveProviderRequest(resource, string(fetchErr.Kind), elapsed)
		c.logger.WarnContext(ctx, "api-football request failed", "url", redactAPIURL(fullURL), "elapsed", elapsed, "error", fetchErr)
		return nil, fetchErr
	}

	status := resp.StatusCode()
	body := append([]byte(nil), resp.Body()...)
	if status < 200 || status >= 300 {
		fetchErr := &FetchError{
			Kind:       KindUnexpectedStatus,
			Resource:   resource,
			StatusCode: status,
			Err:        fmt.Errorf("body=%s", c.sanitizeSensitiveText(abbreviateBody(body))),
		}
		observability.ObserveProviderRequest(resource, string(KindUnexpectedStatus), elapsed)
		c.logger.WarnContext(ctx, "api-football unexpected status", "url", redactAPIURL(fullURL), "status", status)
		return nil, fetchErr
	}

	if err := checkEnvelope(body); err != nil {
		observability.ObserveProviderRequest(resource, string(KindMalformedResponse), elapsed)
		c.logger.WarnContext(ctx, "api-football malformed response", "url", redactAPIURL(fullURL), "error", err)
		return nil, &FetchError{Kind: KindMalformedResponse, Resource: resource, StatusCode: status, Err: err}
	}

	observability.ObserveProviderRequest(resource, "ok", elapsed)
	return body, nil
}

// checkEnvelope rejects bodies that are not JSON or that report errors.
// The provider answers 200 with a non-empty "errors" field for bad
// parameters and quota problems.
func checkEnvelope(body []byte) error {
	if !sonic.Valid(body) {
		return fmt.Errorf("invalid json body=%s", abbreviateBody(body))
	}
	var envelope struct {
		Errors feed.Scalar `json:"errors"`
	}
	if err := sonic.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("decode envelope: %w", err)
	}
	if !envelope.Errors.IsEmpty() {
		return fmt.Errorf("provider errors=%s", abbreviateBody(envelope.Errors))
	}
	return nil
}

func (c *Client) transportError(ctx context.Context, resource string, err error) *FetchError {
	if errors.Is(err, fasthttp.ErrTimeout) || errors.Is(err, fasthttp.ErrDialTimeout) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &FetchError{Kind: KindTimeout, Resource: resource, Err: err}
	}
	return &FetchError{Kind: KindNetwork, Resource: resource, Err: fmt.Errorf("send request: %s", c.sanitizeSensitiveText(err.Error()))}
}

func (c *Client) contextError(resource string, err error) *FetchError {
	if errors.Is(err, context.DeadlineExceeded) {
		return &FetchError{Kind: KindTimeout, Resource: resource, Err: err}
	}
	return &FetchError{Kind: KindNetwork, Resource: resource, Err: err}
}

func (c *Client) sanitizeSensitiveText(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	if c.apiKey != "" {
		value = strings.ReplaceAll(value, c.apiKey, "REDACTED")
	}
	return apiKeyParamRegex.ReplaceAllString(value, "${1}REDACTED")
}

func redactAPIURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	query := parsed.Query()
	if query.Has(apiKeyHeader) {
		query.Set(apiKeyHeader, "REDACTED")
		parsed.RawQuery = query.Encode()
	}
	return parsed.String()
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
