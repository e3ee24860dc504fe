package api

import (
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client talks to the mod registries. Each session constructs its own client
// so rate-limit and retry state never leak between sessions.
type Client struct {
	http        *resty.Client
	minInterval time.Duration

	mu       sync.Mutex
	lastCall time.Time
}

func NewClient() *Client {
	return &Client{
		http:        resty.New().SetTimeout(30 * time.Second).SetHeader("User-Agent", "modsync"),
		minInterval: 350 * time.Millisecond,
	}
}

// throttle enforces a minimum interval between registry calls. Cooperative
// only: a single shared last-call timestamp, not a token bucket.
func (c *Client) throttle() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if wait := c.minInterval - time.Since(c.lastCall); wait > 0 {
		time.Sleep(wait)
	}
	c.lastCall = time.Now()
}

func (c *Client) get(url string, out interface{}) (*resty.Response, error) {
	c.throttle()
	req := c.http.R()
	if out != nil {
		req.SetResult(out)
	}

	resp, err := req.Get(url)
	if err != nil {
		return resp, err
	}
	if resp.StatusCode() >= 400 {
		return resp, errors.New("registry returned " + strconv.Itoa(resp.StatusCode()) + " for " + url)
	}
	return resp, nil
}

// getWithRetry backs off and retries twice. Only the resolver-critical
// project and version lookups go through here, search stays single-shot.
func (c *Client) getWithRetry(url string, out interface{}) (*resty.Response, error) {
	backoff := 250 * time.Millisecond

	var resp *resty.Response
	var err error
	for attempt := 0; attempt <= 2; attempt++ {
		resp, err = c.get(url, out)
		if err == nil {
			return resp, nil
		}
		//client errors won't heal themselves
		if resp != nil && resp.StatusCode() >= 400 && resp.StatusCode() < 500 {
			return resp, err
		}
		time.Sleep(backoff)
		backoff *= 2
	}
	return resp, err
}

// Failure categories derived from error text. Brittle by nature, used for
// log texture and user-facing messages only, never for control flow.
const (
	ErrKindTimeout   = "timeout"
	ErrKindNotFound  = "not_found"
	ErrKindForbidden = "forbidden"
	ErrKindServer    = "server_error"
	ErrKindUnknown   = "unknown"
)

func ClassifyError(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline exceeded"):
		return ErrKindTimeout
	case strings.Contains(msg, "not found") || strings.Contains(msg, "404"):
		return ErrKindNotFound
	case strings.Contains(msg, "403") || strings.Contains(msg, "forbidden"):
		return ErrKindForbidden
	case strings.Contains(msg, "500") || strings.Contains(msg, "server error"):
		return ErrKindServer
	}
	return ErrKindUnknown
}
