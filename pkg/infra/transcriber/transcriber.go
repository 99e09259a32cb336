package transcriber

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fastjson"

	"github.com/arbetsytan/arbetsytan/pkg/infra/httpx"
)

// Transcriber converts a voice-memo reference into text. Implementations
// must never log transcript content; only refs, durations and errors.
type Transcriber interface {
	Transcribe(ctx context.Context, sourceRef string) (Result, error)
	Name() string
}

type Result struct {
	Text            string
	DurationSeconds float64
}

// localClient talks to a whisper.cpp-style HTTP server that resolves the
// source ref to audio itself.
type localClient struct {
	url     string
	timeout time.Duration
	client  *fasthttp.Client
	breaker httpx.CircuitBreaker
	logger  *logrus.Logger
	parsers fastjson.ParserPool
}

func NewLocalClient(logger *logrus.Logger, url string, timeout time.Duration) Transcriber {
	return &localClient{
		url:     url,
		timeout: timeout,
		client: &fasthttp.Client{
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		},
		breaker: httpx.NewCircuitBreaker("transcriber", 30*time.Second, 3),
		logger:  logger,
	}
}

func (c *localClient) Name() string {
	return "whisper-local"
}

func (c *localClient) Transcribe(ctx context.Context, sourceRef string) (Result, error) {
	if sourceRef == "" {
		return Result{}, fmt.Errorf("source ref is required")
	}

	var result Result
	err := c.breaker.Execute(func() error {
		req := fasthttp.AcquireRequest()
		resp := fasthttp.AcquireResponse()
		defer fasthttp.ReleaseRequest(req)
		defer fasthttp.ReleaseResponse(resp)

		req.SetRequestURI(c.url + "/transcribe")
		req.Header.SetMethod(fasthttp.MethodPost)
		req.Header.SetContentType("application/json")
		req.SetBodyString(fmt.Sprintf(`{"source_ref":%q}`, sourceRef))

		if err := c.client.DoTimeout(req, resp, c.timeout); err != nil {
			return fmt.Errorf("transcriber request: %w", err)
		}
		if resp.StatusCode() != fasthttp.StatusOK {
			return fmt.Errorf("transcriber status %d", resp.StatusCode())
		}

		parser := c.parsers.Get()
		defer c.parsers.Put(parser)
		value, err := parser.ParseBytes(resp.Body())
		if err != nil {
			return fmt.Errorf("transcriber response: %w", err)
		}

		result.Text = string(value.GetStringBytes("text"))
		result.DurationSeconds = value.GetFloat64("duration_seconds")
		return nil
	})
	if err != nil {
		c.logger.WithFields(logrus.Fields{
			"engine":     c.Name(),
			"source_ref": sourceRef,
		}).WithError(err).Error("transcription failed")
		return Result{}, err
	}

	return result, nil
}
