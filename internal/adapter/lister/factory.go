package lister

import (
	"fmt"
	"time"

	"github.com/thushan/llmsource/internal/core/ports"
	"github.com/thushan/llmsource/internal/logger"
)

type Options struct {
	Client          string
	UserAgent       string
	MaxResponseSize int64
	Timeout         time.Duration
}

// New picks the list models client named in the options, "http" when empty
func New(opts Options, logger *logger.StyledLogger) (ports.ModelLister, error) {
	switch opts.Client {
	case "", ClientHTTP:
		c := NewHTTPClient(opts.Timeout, logger)
		c.SetUserAgent(opts.UserAgent)
		c.SetMaxResponseSize(opts.MaxResponseSize)
		return c, nil
	case ClientOpenAI:
		c := NewOpenAIClient(opts.Timeout, logger)
		c.SetUserAgent(opts.UserAgent)
		return c, nil
	default:
		return nil, fmt.Errorf("unknown discovery client %q (expected %q or %q)", opts.Client, ClientHTTP, ClientOpenAI)
	}
}
