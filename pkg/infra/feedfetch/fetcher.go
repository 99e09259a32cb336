package feedfetch

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"

	"github.com/arbetsytan/arbetsytan/pkg/infra/httpx"
)

const (
	maxRedirects  = 5
	maxBodyBytes  = 5 * 1024 * 1024
	fetchTimeout  = 10 * time.Second
	defaultAgent  = "ArbetsytanScout/1.0"
	acceptHeader  = "application/rss+xml, application/atom+xml, application/xml, text/xml"
	acceptEncHdr  = "gzip, deflate, br, zstd"
)

// Fetcher retrieves feed documents from untrusted, user-registered URLs.
// Every hop is re-validated: scheme must be http/https and no resolved
// address may fall in private, loopback, link-local or otherwise
// non-global ranges. Redirects are followed manually so each target goes
// through the same checks.
type Fetcher struct {
	client    *fasthttp.Client
	logger    *logrus.Logger
	userAgent string
}

func NewFetcher(logger *logrus.Logger, userAgent string) *Fetcher {
	if userAgent == "" {
		userAgent = defaultAgent
	}
	return &Fetcher{
		client: &fasthttp.Client{
			ReadTimeout:         fetchTimeout,
			WriteTimeout:        fetchTimeout,
			MaxResponseBodySize: maxBodyBytes,
			MaxConnsPerHost:     16,
		},
		logger:    logger,
		userAgent: userAgent,
	}
}

// Fetch downloads the document at rawURL, following at most maxRedirects
// redirects, and returns the content-decoded body.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	current := rawURL

	for hop := 0; hop <= maxRedirects; hop++ {
		target, err := f.validateTarget(ctx, current)
		if err != nil {
			return nil, err
		}

		body, location, err := f.doRequest(current)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", target.Host, err)
		}
		if location == "" {
			return body, nil
		}

		next, err := target.Parse(location)
		if err != nil {
			return nil, fmt.Errorf("invalid redirect location: %w", err)
		}
		f.logger.WithFields(logrus.Fields{
			"host": target.Host,
			"hop":  hop + 1,
		}).Debug("following feed redirect")
		current = next.String()
	}

	return nil, fmt.Errorf("too many redirects (max %d)", maxRedirects)
}

func (f *Fetcher) validateTarget(ctx context.Context, rawURL string) (*url.URL, error) {
	target, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid feed url: %w", err)
	}
	if target.Scheme != "http" && target.Scheme != "https" {
		return nil, fmt.Errorf("unsupported url scheme: %q", target.Scheme)
	}
	if target.Hostname() == "" {
		return nil, fmt.Errorf("feed url has no host")
	}

	addrs, err := net.DefaultResolver.LookupIPAddr(ctx, target.Hostname())
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", target.Hostname(), err)
	}
	for _, addr := range addrs {
		if reason := forbiddenAddress(addr.IP); reason != "" {
			return nil, fmt.Errorf("host %s resolves to %s address", target.Hostname(), reason)
		}
	}
	return target, nil
}

// doRequest performs a single hop. It returns either the decoded body or
// a non-empty redirect location.
func (f *Fetcher) doRequest(rawURL string) ([]byte, string, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(rawURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("Accept-Encoding", acceptEncHdr)

	if err := f.client.DoTimeout(req, resp, fetchTimeout); err != nil {
		return nil, "", err
	}

	status := resp.StatusCode()
	if status >= 300 && status < 400 {
		location := string(resp.Header.Peek("Location"))
		if location == "" {
			return nil, "", fmt.Errorf("redirect status %d without location", status)
		}
		return nil, location, nil
	}
	if status != fasthttp.StatusOK {
		return nil, "", fmt.Errorf("unexpected status %d", status)
	}

	body, err := httpx.DecodeBody(resp, resp.Body())
	if err != nil {
		return nil, "", fmt.Errorf("decode body: %w", err)
	}
	if len(body) > maxBodyBytes {
		return nil, "", fmt.Errorf("response exceeds %d bytes", maxBodyBytes)
	}

	out := make([]byte, len(body))
	copy(out, body)
	return out, "", nil
}

// forbiddenAddress names the blocked range an IP falls into, or returns
// "" for globally routable addresses.
func forbiddenAddress(ip net.IP) string {
	switch {
	case ip.IsLoopback():
		return "loopback"
	case ip.IsPrivate():
		return "private"
	case ip.IsLinkLocalUnicast(), ip.IsLinkLocalMulticast():
		return "link-local"
	case ip.IsUnspecified():
		return "unspecified"
	case ip.IsMulticast():
		return "multicast"
	case !ip.IsGlobalUnicast():
		return "reserved"
	}
	return ""
}
