package dict

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/beastars1/lingvo-widget/pkg/tool"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

const (
	DefaultLangPair = "en-lt"
)

var ErrNotFound = errors.New("translation not found")

// APIError is the error object the dictionary service answers with.
type APIError struct {
	StatusCode int
	Code       int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("dictionary api error %d: %s", e.Code, e.Message)
}

type Client struct {
	baseUrl string
	apiKey  string
	cli     *http.Client
	limiter *rate.Limiter
}

func NewClient(baseUrl, apiKey string, timeout time.Duration, rps int) *Client {
	limiter := rate.NewLimiter(rate.Inf, 0)
	if rps > 0 {
		limiter = rate.NewLimiter(rate.Limit(rps), rps)
	}
	return &Client{
		baseUrl: baseUrl,
		apiKey:  apiKey,
		cli:     &http.Client{Timeout: timeout},
		limiter: limiter,
	}
}

func (c *Client) lookupUrl(word, langPair string) string {
	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("lang", langPair)
	q.Set("text", word)
	sep := "?"
	if strings.Contains(c.baseUrl, "?") {
		sep = "&"
	}
	return c.baseUrl + sep + q.Encode()
}

func (c *Client) Lookup(ctx context.Context, word, langPair string) (*LookupResp, error) {
	if langPair == "" {
		langPair = DefaultLangPair
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, errors.Wrap(err, "wait for dictionary limiter")
	}
	body, err := tool.HttpGetCtx(ctx, c.cli, c.lookupUrl(word, langPair))
	if err != nil {
		var httpErr *tool.HttpError
		if errors.As(err, &httpErr) {
			apiErr := &APIError{StatusCode: httpErr.StatusCode, Code: httpErr.StatusCode}
			var resp errResp
			if json.Unmarshal(httpErr.Body, &resp) == nil && resp.Code != 0 {
				apiErr.Code = resp.Code
				apiErr.Message = resp.Message
			}
			return nil, apiErr
		}
		return nil, errors.Wrapf(err, "lookup %q", word)
	}
	resp := &LookupResp{}
	if err = json.Unmarshal(body, resp); err != nil {
		return nil, errors.Wrap(err, "decode lookup response")
	}
	return resp, nil
}

// Translate returns the translation of word, or ErrNotFound when the
// dictionary has no entry for it.
func (c *Client) Translate(ctx context.Context, word, langPair string) (string, error) {
	resp, err := c.Lookup(ctx, word, langPair)
	if err != nil {
		return "", err
	}
	tr, ok := resp.FirstTranslation(word)
	if !ok {
		return "", ErrNotFound
	}
	return tr, nil
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
