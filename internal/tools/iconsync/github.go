package iconsync

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	apperrors "github.com/louisbranch/iconkit/internal/platform/errors"
	"github.com/louisbranch/iconkit/internal/platform/otel"
)

const (
	userAgent       = "iconkit-builder"
	acceptHeader    = "application/vnd.github+json"
	defaultMaxTries = 3
	defaultTimeout  = 30 * time.Second
	maxResponseSize = 1 << 20
)

// StatusError is a non-2xx response from the GitHub API.
type StatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("GET %s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("GET %s: status %d: %s", e.URL, e.StatusCode, body)
}

// Client reads release and tag data from the GitHub REST API.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
	// MaxTries bounds attempts per request; transport errors and 5xx
	// responses are retried, 4xx responses are not.
	MaxTries uint
	// NewBackOff builds the wait policy for each request. Defaults to
	// exponential backoff.
	NewBackOff func() backoff.BackOff
}

// NewClient returns a Client with default retry and timeout settings.
func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL:    baseURL,
		Token:      token,
		HTTPClient: &http.Client{Timeout: defaultTimeout},
		MaxTries:   defaultMaxTries,
	}
}

// LatestRelease returns the tag name of the latest release of repo.
func (c *Client) LatestRelease(ctx context.Context, repo string) (string, error) {
	body, err := c.get(ctx, "/repos/"+repo+"/releases/latest")
	if err != nil {
		return "", apperrors.WrapWithMetadata(apperrors.CodeReleaseUnavailable,
			"fetch latest release", map[string]string{"repo": repo}, err)
	}
	tag := gjson.GetBytes(body, "tag_name").String()
	if tag == "" {
		return "", apperrors.WithMetadata(apperrors.CodeReleaseUnavailable,
			"latest release has no tag name", map[string]string{"repo": repo})
	}
	return tag, nil
}

// ResolveTag returns the commit SHA that tag points at, following annotated
// tag objects for at most maxDepth hops.
func (c *Client) ResolveTag(ctx context.Context, repo, tag string, maxDepth int) (string, error) {
	meta := map[string]string{"repo": repo, "tag": tag}
	unresolved := func(message string, err error) error {
		return apperrors.WrapWithMetadata(apperrors.CodeTagUnresolved, message, meta, err)
	}

	body, err := c.get(ctx, "/repos/"+repo+"/git/ref/tags/"+url.PathEscape(tag))
	if err != nil {
		return "", unresolved("fetch tag ref "+tag, err)
	}
	for hops := 0; ; hops++ {
		objType := gjson.GetBytes(body, "object.type").String()
		sha := gjson.GetBytes(body, "object.sha").String()
		if sha == "" {
			return "", unresolved(fmt.Sprintf("tag %s: object without sha", tag), nil)
		}
		switch objType {
		case "commit":
			return sha, nil
		case "tag":
			if hops >= maxDepth {
				return "", unresolved(fmt.Sprintf("tag %s: more than %d annotated tag hops", tag, maxDepth), nil)
			}
			body, err = c.get(ctx, "/repos/"+repo+"/git/tags/"+sha)
			if err != nil {
				return "", unresolved("fetch tag object "+sha, err)
			}
		default:
			return "", unresolved(fmt.Sprintf("tag %s: unexpected object type %q", tag, objType), nil)
		}
	}
}

func (c *Client) get(ctx context.Context, path string) (body []byte, err error) {
	endpoint := strings.TrimRight(c.BaseURL, "/") + path
	ctx, span := otel.Tracer().Start(ctx, "github.get")
	span.SetAttributes(attribute.String("url.full", endpoint))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	attempt := func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept", acceptHeader)
		if c.Token != "" {
			req.Header.Set("Authorization", "Bearer "+c.Token)
		}

		resp, err := c.httpClient().Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
		if err != nil {
			return nil, err
		}
		span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			statusErr := &StatusError{StatusCode: resp.StatusCode, URL: endpoint, Body: string(data)}
			if resp.StatusCode >= 500 {
				return nil, statusErr
			}
			return nil, backoff.Permanent(statusErr)
		}
		if !gjson.ValidBytes(data) {
			return nil, backoff.Permanent(fmt.Errorf("GET %s: response is not valid JSON", endpoint))
		}
		return data, nil
	}

	return backoff.Retry(ctx, attempt,
		backoff.WithBackOff(c.backOff()),
		backoff.WithMaxTries(c.maxTries()),
	)
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *Client) backOff() backoff.BackOff {
	if c.NewBackOff != nil {
		return c.NewBackOff()
	}
	return backoff.NewExponentialBackOff()
}

func (c *Client) maxTries() uint {
	if c.MaxTries == 0 {
		return defaultMaxTries
	}
	return c.MaxTries
}
