package kickbase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://api.kickbase.com"

	// Kickbase no documenta rate limits; un request por segundo nunca nos
	// devolvió un 429. El intervalo es configurable desde config/pacing.
	defaultInterval = time.Second
	defaultBurst    = 1

	// defaultPageSize es lo que el feed de actividades devuelve por página.
	defaultPageSize = 26

	maxRetries    = 3
	baseRetryWait = 500 * time.Millisecond
)

// Client es el HTTP client de Kickbase con pacing y retries. Todas las
// llamadas autenticadas mandan el token de sesión como cookie kkstrauth.
type Client struct {
	http     *http.Client
	base     string
	limiter  *rate.Limiter
	token    string
	pageSize int
}

// NewClient crea un Client contra el base URL dado. Si baseURL está vacío
// usa el URL de producción; interval <= 0 usa el pacing default y
// pageSize <= 0 el tamaño de página del feed de producción.
func NewClient(baseURL string, interval time.Duration, burst, pageSize int) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if interval <= 0 {
		interval = defaultInterval
	}
	if burst <= 0 {
		burst = defaultBurst
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &Client{
		http:     &http.Client{Timeout: 15 * time.Second},
		base:     baseURL,
		limiter:  rate.NewLimiter(rate.Every(interval), burst),
		pageSize: pageSize,
	}
}

// SetToken fija el token de sesión para las llamadas autenticadas.
func (c *Client) SetToken(token string) {
	c.token = token
}

// get hace un GET autenticado con pacing y retries.
func (c *Client) get(ctx context.Context, url string, out any) error {
	return c.doWithRetry(ctx, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Content-Type", "application/json")
		if c.token != "" {
			req.Header.Set("Cookie", "kkstrauth="+c.token+";")
		}
		return c.http.Do(req)
	}, out)
}

// post hace un POST JSON con pacing y retries.
func (c *Client) post(ctx context.Context, url string, body, out any) error {
	return c.doWithRetry(ctx, func() (*http.Response, error) {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		return c.http.Do(req)
	}, out)
}

// doWithRetry ejecuta la función con backoff exponencial.
func (c *Client) doWithRetry(ctx context.Context, fn func() (*http.Response, error), out any) error {
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}

		resp, err := fn()
		if err != nil {
			if attempt == maxRetries {
				return fmt.Errorf("request failed after %d retries: %w", maxRetries, err)
			}
			c.sleep(ctx, attempt)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			resp.Body.Close()
			slog.Warn("rate limited by API", "attempt", attempt+1)
			c.sleep(ctx, attempt)
			continue
		}

		if resp.StatusCode >= 500 {
			resp.Body.Close()
			if attempt == maxRetries {
				return fmt.Errorf("server error %d after %d retries", resp.StatusCode, maxRetries)
			}
			c.sleep(ctx, attempt)
			continue
		}

		if resp.StatusCode >= 400 {
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			return fmt.Errorf("client error %d: %s", resp.StatusCode, string(body))
		}

		defer resp.Body.Close()
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}
	return fmt.Errorf("exhausted %d retries", maxRetries)
}

// sleep espera con backoff exponencial, respetando el contexto.
func (c *Client) sleep(ctx context.Context, attempt int) {
	wait := time.Duration(math.Pow(2, float64(attempt))) * baseRetryWait
	select {
	case <-time.After(wait):
	case <-ctx.Done():
	}
}
