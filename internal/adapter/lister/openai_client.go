package lister

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/thushan/llmsource/internal/core/constants"
	"github.com/thushan/llmsource/internal/core/domain"
	"github.com/thushan/llmsource/internal/logger"
	"github.com/thushan/llmsource/internal/util"
	"github.com/thushan/llmsource/internal/version"
)

const ClientOpenAI = "openai"

// OpenAIClient lists models through the official OpenAI Go SDK
type OpenAIClient struct {
	httpClient *http.Client
	logger     *logger.StyledLogger
	userAgent  string
}

func NewOpenAIClient(timeout time.Duration, logger *logger.StyledLogger) *OpenAIClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &OpenAIClient{
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
		userAgent:  version.UserAgent(),
	}
}

func (c *OpenAIClient) SetUserAgent(userAgent string) {
	if userAgent != "" {
		c.userAgent = userAgent
	}
}

func (c *OpenAIClient) ListModels(ctx context.Context, access domain.Access) ([]domain.RemoteModel, error) {
	startTime := time.Now()

	host, err := normaliseHost(access.OAIHost)
	if err != nil {
		return nil, NewDiscoveryError(access.OAIHost, ClientOpenAI, "validate_host", 0, 0, err)
	}

	// the SDK resolves "models" relative to the base, so the base carries /v1/
	opts := []option.RequestOption{
		option.WithBaseURL(util.ResolveURLPath(host, "/v1") + "/"),
		option.WithHTTPClient(c.httpClient),
		option.WithMaxRetries(0),
		option.WithHeader("User-Agent", c.userAgent),
	}
	// OPENAI_API_KEY from the environment must not leak to a keyless source
	if access.OAIKey != "" {
		opts = append(opts, option.WithAPIKey(access.OAIKey))
	} else {
		opts = append(opts, option.WithHeaderDel(HeaderAuthorization))
	}
	if access.OAIOrg != "" {
		opts = append(opts, option.WithOrganization(access.OAIOrg))
	}
	if access.HeliKey != "" {
		opts = append(opts, option.WithHeader(HeaderHelicone, "Bearer "+access.HeliKey))
	}

	client := openai.NewClient(opts...)

	page, err := client.Models.List(ctx)
	if err != nil {
		duration := time.Since(startTime)

		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return nil, NewDiscoveryError(host, ClientOpenAI, "http_status", apiErr.StatusCode, duration, err)
		}
		if ctx.Err() != nil {
			return nil, NewDiscoveryError(host, ClientOpenAI, "http_request", 0, duration, ctx.Err())
		}
		networkErr := &NetworkError{URL: util.ResolveURLPath(host, constants.ModelsPath), Err: err}
		return nil, NewDiscoveryError(host, ClientOpenAI, "http_request", 0, duration, networkErr)
	}

	models := make([]domain.RemoteModel, 0, len(page.Data))
	for _, m := range page.Data {
		if m.ID == "" {
			continue
		}
		object := string(m.Object)
		if object == "" {
			object = constants.ModelObjectType
		}
		models = append(models, domain.RemoteModel{ID: m.ID, Object: object})
	}

	c.logger.Debug("Listed models", "host", host, "count", len(models), "latency", time.Since(startTime), "client", ClientOpenAI)
	return models, nil
}
