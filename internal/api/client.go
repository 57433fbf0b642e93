package api

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

	"github.com/google/uuid"
	"github.com/suPer8Hu/gopherchat/internal/common"
	"github.com/suPer8Hu/gopherchat/internal/logging"
	"github.com/suPer8Hu/gopherchat/internal/session"
)

const maxBodyBytes = 4 << 20

// Client talks to the chat REST API. Every exported call is exactly one HTTP
// round trip, except Logout which makes none.
type Client struct {
	BaseURL string
	Session *session.Session
	Client  *http.Client
}

func NewClient(baseURL string, sess *session.Session, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Session: sess,
		Client:  &http.Client{Timeout: timeout},
	}
}

type rawResponse struct {
	Op        string
	RequestID string
	Status    int
	Header    http.Header
	Body      []byte
}

func (c *Client) get(ctx context.Context, op, path string) (*rawResponse, error) {
	return c.do(ctx, op, http.MethodGet, path, nil)
}

func (c *Client) post(ctx context.Context, op, path string, body any) (*rawResponse, error) {
	return c.do(ctx, op, http.MethodPost, path, body)
}

func (c *Client) do(ctx context.Context, op, method, path string, body any) (*rawResponse, error) {
	if c.Client == nil {
		return nil, errors.New("api: http client is nil")
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%s: encode body: %w", op, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	reqID := uuid.NewString()
	req.Header.Set("X-Request-ID", reqID)

	if c.Session != nil {
		if tok := c.Session.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	log := logging.Ctx(ctx)
	start := time.Now()
	resp, err := c.Client.Do(req)
	if err != nil {
		log.Warn().
			Str(logging.FieldRequestID, reqID).
			Str(logging.FieldMethod, method).
			Str(logging.FieldPath, path).
			Err(err).
			Msg("request failed")
		return nil, &common.NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &common.NetworkError{Op: op, Err: err}
	}

	log.Debug().
		Str(logging.FieldRequestID, reqID).
		Str(logging.FieldMethod, method).
		Str(logging.FieldPath, path).
		Int(logging.FieldStatus, resp.StatusCode).
		Int64(logging.FieldLatency, time.Since(start).Milliseconds()).
		Msg("request done")

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, &common.AuthError{Op: op, Reason: "unauthorized"}
	}

	return &rawResponse{Op: op, RequestID: reqID, Status: resp.StatusCode, Header: resp.Header, Body: b}, nil
}

// decode parses the envelope and logs rejected results with their code.
func decode[T any](ctx context.Context, resp *rawResponse) (Result[T], error) {
	r, err := decodeResult[T](resp.Op, resp.Status, resp.Body)
	if err == nil && !r.OK {
		log := logging.Ctx(ctx)
		log.Debug().
			Str(logging.FieldRequestID, resp.RequestID).
			Int(logging.FieldCode, r.Code).
			Str("message", r.Message).
			Msg(resp.Op + " rejected")
	}
	return r, err
}
