// Package api is the single client of the backend REST API.
//
// A Client is shared by the whole process. Page handlers talk to the backend
// through a Conn bound to the bearer token of the current browser session.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"tracer-web/internal/metrics"
)

type Options struct {
	BaseURL string
	// Timeout of zero keeps the transport default.
	Timeout   time.Duration
	Logger    zerolog.Logger
	Transport http.RoundTripper
}

type Client struct {
	rc  *resty.Client
	log zerolog.Logger
}

func New(opts Options) *Client {
	rc := resty.New().
		SetBaseURL(strings.TrimRight(opts.BaseURL, "/")).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "tracer-web").
		SetRetryCount(0)
	if opts.Timeout > 0 {
		rc.SetTimeout(opts.Timeout)
	}
	if opts.Transport != nil {
		rc.SetTransport(opts.Transport)
	}
	return &Client{rc: rc, log: opts.Logger}
}

// Conn binds the client to a bearer token. An empty token sends no
// Authorization header.
func (c *Client) Conn(token string) *Conn {
	return &Conn{c: c, token: token}
}

// Ping reports whether the backend answers at all. Any HTTP status counts.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.rc.R().SetContext(ctx).Get("/")
	if err != nil {
		return &Error{Op: "ping", Err: err}
	}
	return nil
}

type Conn struct {
	c     *Client
	token string
}

func (cn *Conn) Token() string { return cn.token }

// Upload is one file forwarded in a multipart body.
type Upload struct {
	Field string
	File  *multipart.FileHeader
}

type call struct {
	op      string
	method  string
	path    string
	body    interface{}
	fields  map[string]string
	uploads []Upload
	out     interface{}
}

func (cn *Conn) do(ctx context.Context, cl call) error {
	req := cn.c.rc.R().SetContext(ctx)
	if cn.token != "" {
		req.SetAuthToken(cn.token)
	}

	if cl.fields != nil || len(cl.uploads) > 0 {
		req.SetMultipartFormData(cl.fields)
		for _, u := range cl.uploads {
			f, err := u.File.Open()
			if err != nil {
				return &Error{Op: cl.op, Err: fmt.Errorf("open %s: %w", u.File.Filename, err)}
			}
			defer f.Close()
			req.SetFileReader(u.Field, u.File.Filename, f)
		}
	} else if cl.body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(cl.body)
	}

	start := time.Now()
	resp, err := req.Execute(cl.method, cl.path)
	took := time.Since(start)

	status := 0
	if err == nil && resp != nil {
		status = resp.StatusCode()
	}
	metrics.ObserveBackend(cl.op, status, took)
	cn.c.log.Debug().
		Str("op", cl.op).
		Str("method", cl.method).
		Str("path", cl.path).
		Int("status", status).
		Dur("took", took).
		Msg("backend call")

	if err != nil {
		return &Error{Op: cl.op, Err: err}
	}
	if resp.IsError() {
		return newStatusError(cl.op, status, resp.Body())
	}
	if cl.out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), cl.out); err != nil {
		return &Error{Op: cl.op, Status: status, Message: "invalid response body", Err: err}
	}
	return nil
}
