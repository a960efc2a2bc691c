package lister

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/docker/go-units"

	"github.com/thushan/llmsource/internal/core/constants"
	"github.com/thushan/llmsource/internal/core/domain"
	"github.com/thushan/llmsource/internal/logger"
	"github.com/thushan/llmsource/internal/util"
	"github.com/thushan/llmsource/internal/version"
)

const (
	ClientHTTP = "http"

	DefaultTimeout     = 30 * time.Second
	MaxResponseSize    = 10 * 1024 * 1024 // 10MB limit for model listings unless configured
	DefaultContentType = "application/json"

	DefaultMaxIdleConnections        = 10
	DefaultIdleConnTimeout           = 60 * time.Second
	DefaultMaxIdleConnectionsPerHost = 5
)

// ListMetrics counts list calls made by one client since it was created
type ListMetrics struct {
	LastListTime       time.Time
	ErrorsByHost       map[string]int64
	TotalLists         int64
	SuccessfulRequests int64
	FailedRequests     int64
	AverageLatency     time.Duration
}

// MetricsReporter is implemented by clients that keep list call counters
type MetricsReporter interface {
	GetMetrics() ListMetrics
}

var _ MetricsReporter = (*HTTPClient)(nil)

// HTTPClient lists models with a plain GET against /v1/models
type HTTPClient struct {
	httpClient *http.Client
	parser     *ResponseParser
	logger     *logger.StyledLogger
	userAgent  string
	metrics    ListMetrics
	maxBytes   int64
	mu         sync.RWMutex
}

func NewHTTPClient(timeout time.Duration, logger *logger.StyledLogger) *HTTPClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPClient{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        DefaultMaxIdleConnections,
				IdleConnTimeout:     DefaultIdleConnTimeout,
				MaxIdleConnsPerHost: DefaultMaxIdleConnectionsPerHost,
			},
		},
		parser:    NewResponseParser(logger),
		logger:    logger,
		userAgent: version.UserAgent(),
		maxBytes:  MaxResponseSize,
		metrics: ListMetrics{
			ErrorsByHost: make(map[string]int64),
		},
	}
}

func (c *HTTPClient) SetUserAgent(userAgent string) {
	if userAgent != "" {
		c.userAgent = userAgent
	}
}

// SetMaxResponseSize caps how much of a listing is read, zero keeps the default
func (c *HTTPClient) SetMaxResponseSize(maxBytes int64) {
	if maxBytes > 0 {
		c.maxBytes = maxBytes
	}
}

func (c *HTTPClient) ListModels(ctx context.Context, access domain.Access) ([]domain.RemoteModel, error) {
	startTime := time.Now()

	c.updateMetrics(func(m *ListMetrics) {
		m.TotalLists++
	})

	host, err := normaliseHost(access.OAIHost)
	if err != nil {
		c.recordError(access.OAIHost)
		return nil, NewDiscoveryError(access.OAIHost, ClientHTTP, "validate_host", 0, 0, err)
	}
	modelsURL := util.ResolveURLPath(host, constants.ModelsPath)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, modelsURL, nil)
	if err != nil {
		c.recordError(host)
		return nil, NewDiscoveryError(host, ClientHTTP, "create_request", 0, time.Since(startTime), err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", DefaultContentType)
	for k, v := range accessHeaders(access) {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.recordError(host)
		networkErr := &NetworkError{URL: modelsURL, Err: err}
		return nil, NewDiscoveryError(host, ClientHTTP, "http_request", 0, time.Since(startTime), networkErr)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	duration := time.Since(startTime)

	if resp.StatusCode != http.StatusOK {
		c.recordError(host)
		err := fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
		return nil, NewDiscoveryError(host, ClientHTTP, "http_status", resp.StatusCode, duration, err)
	}

	// one byte past the cap tells a full listing from a cut off one
	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		c.recordError(host)
		return nil, NewDiscoveryError(host, ClientHTTP, "read_response", resp.StatusCode, duration, err)
	}
	if int64(len(body)) > c.maxBytes {
		c.recordError(host)
		err := fmt.Errorf("%w: limit is %s", ErrResponseTooLarge, units.HumanSize(float64(c.maxBytes)))
		return nil, NewDiscoveryError(host, ClientHTTP, "read_response", resp.StatusCode, duration, err)
	}

	models, err := c.parser.ParseModelsResponse(body)
	if err != nil {
		c.recordError(host)
		return nil, NewDiscoveryError(host, ClientHTTP, "parse_response", resp.StatusCode, duration, err)
	}

	c.updateMetrics(func(m *ListMetrics) {
		m.SuccessfulRequests++
		m.LastListTime = time.Now()

		if m.SuccessfulRequests == 1 {
			m.AverageLatency = duration
		} else {
			m.AverageLatency = time.Duration((int64(m.AverageLatency) + int64(duration)) / 2)
		}
	})

	c.logger.Debug("Listed models", "host", host, "count", len(models), "latency", duration)
	return models, nil
}

// GetMetrics returns a copy of the counters, safe to hold on to
func (c *HTTPClient) GetMetrics() ListMetrics {
	c.mu.RLock()
	defer c.mu.RUnlock()

	errorsByHost := make(map[string]int64, len(c.metrics.ErrorsByHost))
	for k, v := range c.metrics.ErrorsByHost {
		errorsByHost[k] = v
	}

	return ListMetrics{
		TotalLists:         c.metrics.TotalLists,
		SuccessfulRequests: c.metrics.SuccessfulRequests,
		FailedRequests:     c.metrics.FailedRequests,
		AverageLatency:     c.metrics.AverageLatency,
		LastListTime:       c.metrics.LastListTime,
		ErrorsByHost:       errorsByHost,
	}
}

func (c *HTTPClient) recordError(host string) {
	c.updateMetrics(func(m *ListMetrics) {
		m.FailedRequests++
		m.ErrorsByHost[host]++
	})
}

func (c *HTTPClient) updateMetrics(updateFn func(*ListMetrics)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	updateFn(&c.metrics)
}
