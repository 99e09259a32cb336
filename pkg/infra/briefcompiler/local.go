package briefcompiler

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fastjson"

	"github.com/arbetsytan/arbetsytan/pkg/infra/httpx"
)

// localProvider talks to a llama.cpp-style completion server. This is
// the default: briefs never leave the machine unless the operator
// explicitly configures a cloud provider.
type localProvider struct {
	url     string
	timeout time.Duration
	client  *fasthttp.Client
	breaker httpx.CircuitBreaker
	logger  *logrus.Logger
	parsers fastjson.ParserPool
}

type localCompletionRequest struct {
	Prompt      string  `json:"prompt"`
	NPredict    int     `json:"n_predict"`
	Temperature float64 `json:"temperature"`
}

func NewLocalProvider(logger *logrus.Logger, url string, timeout time.Duration) Provider {
	return &localProvider{
		url:     url,
		timeout: timeout,
		client: &fasthttp.Client{
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		},
		breaker: httpx.NewCircuitBreaker("brief-local", 30*time.Second, 3),
		logger:  logger,
	}
}

func (p *localProvider) Name() string {
	return "local"
}

func (p *localProvider) Compile(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(localCompletionRequest{
		Prompt:      prompt,
		NPredict:    1024,
		Temperature: 0.2,
	})
	if err != nil {
		return "", fmt.Errorf("marshal completion request: %w", err)
	}

	var brief string
	err = p.breaker.Execute(func() error {
		req := fasthttp.AcquireRequest()
		resp := fasthttp.AcquireResponse()
		defer fasthttp.ReleaseRequest(req)
		defer fasthttp.ReleaseResponse(resp)

		req.SetRequestURI(p.url + "/completion")
		req.Header.SetMethod(fasthttp.MethodPost)
		req.Header.SetContentType("application/json")
		req.SetBodyRaw(payload)

		if err := p.client.DoTimeout(req, resp, p.timeout); err != nil {
			return fmt.Errorf("brief engine request: %w", err)
		}
		if resp.StatusCode() != fasthttp.StatusOK {
			return fmt.Errorf("brief engine status %d", resp.StatusCode())
		}

		parser := p.parsers.Get()
		defer p.parsers.Put(parser)
		value, err := parser.ParseBytes(resp.Body())
		if err != nil {
			return fmt.Errorf("brief engine response: %w", err)
		}

		brief = string(value.GetStringBytes("content"))
		return nil
	})
	if err != nil {
		p.logger.WithField("provider", p.Name()).WithError(err).Error("brief compilation failed")
		return "", err
	}

	return brief, nil
}
