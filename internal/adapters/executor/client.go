// Package executor calls the external worker that performs marketplace
// listing and delisting actions.
package executor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"resaleops/internal/domain"
)

type Config struct {
	BaseURL string
	Timeout time.Duration
	// Retries is the number of extra attempts after a transient failure.
	Retries uint64
	Backoff time.Duration
}

// HTTPClient posts {job_id} to <BaseURL>/process-job. Only 2xx counts as an
// acknowledgment; 5xx and transport errors are retried, 4xx is not.
type HTTPClient struct {
	cfg     Config
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
	log     logrus.FieldLogger
}

func NewHTTPClient(cfg Config, log logrus.FieldLogger) *HTTPClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = 200 * time.Millisecond
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	c := &HTTPClient{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  log,
	}
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "process-job",
		MaxRequests: 1,
		Interval:    30 * time.Second,
		Timeout:     15 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.6
		},
		// A rejected job is the worker answering, not the worker being down.
		IsSuccessful: func(err error) bool {
			var se *StatusError
			return err == nil || (errors.As(err, &se) && se.Code < 500)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.WithFields(logrus.Fields{"breaker": name, "from": from.String(), "to": to.String()}).Warn("executor circuit state changed")
		},
	})
	return c
}

type processRequest struct {
	JobID string `json:"job_id"`
}

// StatusError is a non-2xx reply from the worker.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("process-job returned %d: %s", e.Code, e.Body)
}

func (c *HTTPClient) Process(ctx context.Context, job domain.Job) error {
	body, err := json.Marshal(processRequest{JobID: job.ID})
	if err != nil {
		return err
	}
	backoff := retry.WithMaxRetries(c.cfg.Retries, retry.NewExponential(c.cfg.Backoff))
	attempt := 0
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		_, err := c.breaker.Execute(func() (interface{}, error) {
			return nil, c.post(ctx, body)
		})
		if err == nil {
			return nil
		}
		var se *StatusError
		if errors.As(err, &se) && se.Code < 500 {
			return err
		}
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return err
		}
		c.log.WithError(err).WithFields(logrus.Fields{
			"event":   "executor_retry",
			"job_id":  job.ID,
			"attempt": attempt,
		}).Warn("process-job call failed")
		return retry.RetryableError(err)
	})
}

func (c *HTTPClient) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/process-job", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
}

// Noop acknowledges every job without a network call. It stands in for the
// worker endpoint on local runs.
type Noop struct {
	Log logrus.FieldLogger
}

func (n Noop) Process(ctx context.Context, job domain.Job) error {
	if n.Log != nil {
		n.Log.WithFields(logrus.Fields{"event": "job_acknowledged", "job_id": job.ID, "targets": job.Targets}).Info("no executor configured, acknowledging job")
	}
	return ctx.Err()
}
