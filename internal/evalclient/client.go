// Package evalclient talks to the eval server over HTTP/JSON (§6.1). It
// is the transport layer beneath internal/orchestrator: session
// lifecycle, round submission, and the retry/backoff policy that turns
// transient server hiccups into a handful of extra milliseconds instead
// of a lost round.
package evalclient

import (
	"time"

	"github.com/valyala/fasthttp"

	"rotablekit/internal/rkerrors"
	"rotablekit/internal/wire"
)

// Client wraps a fasthttp.Client with the eval server's headers and
// retry policy. The server it talks to is the only thing in this domain
// shaped like a request/response service, so fasthttp is scoped to this
// one package rather than spread through the codebase.
type Client struct {
	http      *fasthttp.Client
	baseURL   string
	apiKey    string
	sessionID string
}

// Retry policy: base 100ms, factor 2, +/-20% jitter, 3 attempts max — the
// spec's transport contract (§6.1) for retriable (5xx, timeout) errors.
const (
	retryBase    = 100 * time.Millisecond
	retryFactor  = 2
	retryJitter  = 0.2
	retryMaxTrys = 3
)

func New(baseURL, apiKey string) *Client {
	return &Client{
		http:    &fasthttp.Client{Name: "rotablekit-client"},
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

// SessionID returns the session established by StartSession, or "" before
// one exists.
func (c *Client) SessionID() string { return c.sessionID }

// StartSession opens a new game session and stores the returned session
// id for subsequent requests.
func (c *Client) StartSession() (wire.SessionStartResponse, error) {
	var resp wire.SessionStartResponse
	body, err := c.doWithRetry("POST", "/session/start", nil)
	if err != nil {
		return resp, err
	}
	if err := wire.Unmarshal(body, &resp); err != nil {
		return resp, rkerrors.Protocol("decode session/start response", err)
	}
	c.sessionID = resp.SessionID
	return resp, nil
}

// PlayRound submits one round's decision and returns the server's
// response for that hour.
func (c *Client) PlayRound(req wire.PlayRoundRequest) (wire.PlayRoundResponse, error) {
	var resp wire.PlayRoundResponse
	payload, err := wire.Marshal(req)
	if err != nil {
		return resp, rkerrors.Protocol("encode play/round request", err)
	}
	body, err := c.doWithRetry("POST", "/play/round", payload)
	if err != nil {
		return resp, err
	}
	if err := wire.Unmarshal(body, &resp); err != nil {
		return resp, rkerrors.Protocol("decode play/round response", err)
	}
	return resp, nil
}

// EndSession tells the server the client is done. Best effort: transport
// errors here are logged by the caller, not fatal to the run.
func (c *Client) EndSession() error {
	_, err := c.doWithRetry("POST", "/session/end", nil)
	return err
}

func (c *Client) doWithRetry(method, path string, body []byte) ([]byte, error) {
	var lastErr error
	delay := retryBase
	for attempt := 1; attempt <= retryMaxTrys; attempt++ {
		respBody, status, err := c.do(method, path, body)
		if err == nil && status < 500 {
			if status >= 400 {
				return nil, rkerrors.Protocol("eval server rejected request", nil)
			}
			return respBody, nil
		}
		lastErr = err
		if attempt == retryMaxTrys {
			break
		}
		time.Sleep(jitter(delay))
		delay *= retryFactor
	}
	return nil, rkerrors.New(rkerrors.KindTransport, "eval server unreachable after retries", lastErr)
}

func (c *Client) do(method, path string, body []byte) ([]byte, int, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + path)
	req.Header.SetMethod(method)
	req.Header.Set("API-KEY", c.apiKey)
	if c.sessionID != "" {
		req.Header.Set("SESSION-ID", c.sessionID)
	}
	if body != nil {
		req.Header.SetContentType("application/json")
		req.SetBody(body)
	}

	if err := c.http.DoTimeout(req, resp, 10*time.Second); err != nil {
		return nil, 0, err
	}

	out := make([]byte, len(resp.Body()))
	copy(out, resp.Body())
	return out, resp.StatusCode(), nil
}

func jitter(d time.Duration) time.Duration {
	f := 1 - retryJitter + 2*retryJitter*pseudoRandFraction()
	return time.Duration(float64(d) * f)
}

// pseudoRandFraction avoids pulling math/rand into the retry path for a
// single jitter draw; nanotime low bits are good enough for spreading
// retries and this path must never block on entropy.
func pseudoRandFraction() float64 {
	return float64(time.Now().Nanosecond()%1000) / 1000
}
