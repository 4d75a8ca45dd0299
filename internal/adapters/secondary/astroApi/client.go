package astroApi

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"
	"unicode/utf8"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"

	"github.com/sitandoucara/astro-app-sub001/internal/domain"
	"github.com/sitandoucara/astro-app-sub001/internal/pkg/metrics"
	"github.com/sitandoucara/astro-app-sub001/internal/ports/service"
)

const defaultTimeout = 15 * time.Second

// truncateString обрезает строку до maxLen байт, не разрезая UTF-8 символ
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

// Client - клиент провайдера позиций планет
type Client struct {
	cfg     *Config
	http    *resty.Client
	metrics *metrics.Collector
	Log     *slog.Logger
}

// NewClient создаёт клиент. Ретраев нет: одна попытка, ограниченная таймаутом.
func NewClient(cfg *Config, collector *metrics.Collector, log *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	if cfg.ShouldSkipSSL() {
		httpClient.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}

	return &Client{
		cfg:     cfg,
		http:    httpClient,
		metrics: collector,
		Log:     log,
	}
}

var _ service.IPlanetsProvider = (*Client)(nil)

// FetchPlanetPositions отправляет payload провайдеру и возвращает ответ без пересчёта
func (c *Client) FetchPlanetPositions(ctx context.Context, payload json.RawMessage, sessionToken string) (*domain.ChartResult, error) {
	req := c.http.R().
		SetContext(ctx).
		SetBody([]byte(payload))

	switch c.cfg.AuthMode {
	case AuthModeBearer:
		if sessionToken == "" {
			return nil, domain.ErrUnauthenticated
		}
		req.SetAuthToken(sessionToken)
		req.SetHeader("apikey", c.cfg.ApiKey)
	default:
		req.SetHeader("x-api-key", c.cfg.ApiKey)
	}

	start := time.Now()
	resp, err := req.Post(c.cfg.PlanetsPath)
	if err != nil {
		status := "error"
		if isTimeout(err) {
			status = "timeout"
		}
		c.metrics.ProviderCall(status, time.Since(start))
		c.Log.Warn("planets provider request failed", "error", err, "status", status)
		return nil, domain.NewDownstreamError(0, "", fmt.Errorf("planets request failed: %w", err))
	}

	body := resp.Body()

	if !resp.IsSuccess() {
		c.metrics.ProviderCall("error", time.Since(start))
		c.Log.Debug("planets provider returned non-2xx status",
			"status_code", resp.StatusCode(),
			"body_preview", truncateString(string(body), 200),
		)
		return nil, domain.NewDownstreamError(resp.StatusCode(), downstreamMessage(body), nil)
	}

	c.metrics.ProviderCall("ok", time.Since(start))

	result, err := c.parseChartResult(body)
	if err != nil {
		return nil, domain.NewDownstreamError(resp.StatusCode(), "", err)
	}

	return result, nil
}

// parseChartResult тело должно быть JSON; типизированный разбор best-effort,
// клиенту в любом случае уходит Raw как есть
func (c *Client) parseChartResult(body []byte) (*domain.ChartResult, error) {
	if !gjson.ValidBytes(body) {
		c.Log.Debug("planets provider returned invalid JSON",
			"body_preview", truncateString(string(body), 200),
		)
		return nil, fmt.Errorf("planets provider returned invalid JSON")
	}

	result := &domain.ChartResult{}
	if gjson.ParseBytes(body).IsObject() {
		if err := json.Unmarshal(body, result); err != nil {
			c.Log.Debug("planets response does not match chart shape", "error", err)
			result = &domain.ChartResult{}
		}
	}

	raw := make([]byte, len(body))
	copy(raw, body)
	result.Raw = raw

	return result, nil
}

// downstreamMessage достаёт сообщение об ошибке провайдера, если оно есть
func downstreamMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}
	for _, path := range []string{"error", "error.message", "message"} {
		v := gjson.GetBytes(body, path)
		if v.Type == gjson.String && v.Str != "" {
			return v.Str
		}
	}
	return ""
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
