package tool

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/avast/retry-go"
	"github.com/beastars1/lingvo-widget/services/logger"
	"github.com/getsentry/sentry-go"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	defaultAttempts = 3
	userAgent       = "lingvo-widget"
)

// HttpError is returned for any non-2xx response. Body keeps the raw
// payload so callers can decode service specific error objects.
type HttpError struct {
	StatusCode int
	Body       []byte
}

func (e *HttpError) Error() string {
	return fmt.Sprintf("unexpected http status %d", e.StatusCode)
}

func HttpGet(url string) []byte {
	var body []byte
	err := retry.Do(func() error {
		resp, err := http.Get(url)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		body, err = io.ReadAll(resp.Body)
		return err
	}, retry.Delay(time.Millisecond*10), retry.Attempts(5))
	if err != nil {
		captureHttpErr(url, err)
		logger.Debug("http request failed", zap.Error(err), "url", url)
		return nil
	}
	return body
}

// HttpGetCtx performs a GET with retries. Transport errors and 5xx answers
// are retried, 4xx answers are returned at once as *HttpError.
func HttpGetCtx(ctx context.Context, cli *http.Client, url string, opts ...retry.Option) ([]byte, error) {
	if cli == nil {
		cli = http.DefaultClient
	}
	var body []byte
	attempt := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		req.Header.Set("user-agent", userAgent)
		resp, err := cli.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		bts, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return &HttpError{StatusCode: resp.StatusCode, Body: bts}
		}
		body = bts
		return nil
	}
	retryOpts := append([]retry.Option{
		retry.Attempts(defaultAttempts),
		retry.Delay(time.Millisecond * 100),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			if ctx.Err() != nil {
				return false
			}
			var httpErr *HttpError
			if errors.As(err, &httpErr) {
				return httpErr.StatusCode >= http.StatusInternalServerError
			}
			return true
		}),
	}, opts...)
	if err := retry.Do(attempt, retryOpts...); err != nil {
		var httpErr *HttpError
		if !errors.As(err, &httpErr) || httpErr.StatusCode >= http.StatusInternalServerError {
			captureHttpErr(url, err)
		}
		logger.Debug("http request failed", zap.Error(err), "url", url)
		return nil, err
	}
	return body, nil
}

func captureHttpErr(url string, err error) {
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetLevel(sentry.LevelError)
		scope.SetExtra("url", url)
		scope.SetExtra("error", err.Error())
		scope.SetExtra("errorVerbose", errors.Errorf("%+v", err))
		sentry.CaptureMessage("http request failed")
	})
}
