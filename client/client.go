package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Client talks to the management API of a single Outline server. It
// holds no mutable state besides the pinned transport, concurrent use
// is fine. Every call is a single request, retry policy belongs to the
// caller.
type Client struct {
	options Options
	http    *http.Client
}

type Options struct {
	// management API base URL, i.e. https://1.2.3.4:40163/SecretPath
	APIURL string
	// sha256 hex fingerprint of the server's self-signed certificate
	CertSHA256 string
	// per-request cap, zero inherits the transport default (no timeout)
	Timeout time.Duration
}

func NewClient(options Options) (*Client, error) {
	transport, err := pinnedTransport(options.CertSHA256)
	if err != nil {
		return nil, err
	}
	options.APIURL = strings.TrimSuffix(options.APIURL, "/")
	return &Client{
		options: options,
		http: &http.Client{
			Transport: transport,
			Timeout:   options.Timeout,
		},
	}, nil
}

// Healthcheck primes the pinned connection with one request and reports
// whether the server is reachable and trusted.
func (c *Client) Healthcheck(ctx context.Context) error {
	_, err := c.GetServerInformation(ctx)
	return err
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf := &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(in); err != nil {
			return err
		}
		body = buf
	}
	req, err := http.NewRequestWithContext(ctx, method, c.options.APIURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	t1 := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return &ConnectivityError{Err: err}
	}
	defer resp.Body.Close()
	logrus.Debugf("%s %s: %s in %s", method, path, resp.Status, time.Since(t1))

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return &ConnectivityError{Err: err}
	}
	if resp.StatusCode/100 != 2 {
		return &ServerError{StatusCode: resp.StatusCode, Body: string(b)}
	}
	if out != nil {
		if err := json.Unmarshal(b, out); err != nil {
			return &ServerError{StatusCode: resp.StatusCode, Body: string(b)}
		}
	}
	return nil
}
