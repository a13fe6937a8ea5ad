package words

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/beastars1/lingvo-widget/pkg/tool"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

var ErrEmptyResponse = errors.New("random word api returned no words")

type Client struct {
	url     string
	cli     *http.Client
	limiter *rate.Limiter
}

// NewClient builds a random word client. A non-positive rps disables
// throttling.
func NewClient(url string, timeout time.Duration, rps int) *Client {
	limiter := rate.NewLimiter(rate.Inf, 0)
	if rps > 0 {
		limiter = rate.NewLimiter(rate.Limit(rps), rps)
	}
	return &Client{
		url:     url,
		cli:     &http.Client{Timeout: timeout},
		limiter: limiter,
	}
}

func (c *Client) RandomWord(ctx context.Context) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", errors.Wrap(err, "wait for word api limiter")
	}
	body, err := tool.HttpGetCtx(ctx, c.cli, c.url)
	if err != nil {
		return "", errors.Wrap(err, "fetch random word")
	}
	var list []string
	if err = json.Unmarshal(body, &list); err != nil {
		return "", errors.Wrap(err, "decode random word")
	}
	if len(list) == 0 || strings.TrimSpace(list[0]) == "" {
		return "", ErrEmptyResponse
	}
	return strings.TrimSpace(list[0]), nil
}
