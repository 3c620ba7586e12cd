// Package qtest holds the API client for qTest Manager & supporting types. It maps the few HTTP calls a CI job needs
// (submitting automation test logs and saving the CI setting) to Go methods.
package qtest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"strings"

	qtestci "github.com/qasymphony/qtest-ci"
	"github.com/qasymphony/qtest-ci/internal/errors"
	"github.com/qasymphony/qtest-ci/internal/jsonutil"
)

// Client is the main client for the qTest API.
type Client struct {
	ClientConfig
	RoundTrip func(*http.Request) (*http.Response, error)
}

// NewClient is the preferred constructor for the API client. It makes sure that the configuration is valid & necessary
// defaults are applied.
func NewClient(cfg ClientConfig) (Client, error) {
	cfg = cfg.WithDefaults()

	if err := cfg.Validate(); err != nil {
		return Client{}, err
	}

	baseURL, err := cfg.baseURL()
	if err != nil {
		return Client{}, err
	}

	client := &http.Client{Timeout: cfg.Timeout}

	roundTrip := func(req *http.Request) (*http.Response, error) {
		requestID, err := cfg.NewUUID()
		if err != nil {
			return nil, errors.NewInternalError("Unable to generate new UUID: %s", err)
		}

		req.URL.Scheme = baseURL.Scheme
		req.URL.Host = baseURL.Host
		req.URL.Path = baseURL.Path + req.URL.Path

		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", cfg.Token))
		req.Header.Set("User-Agent", fmt.Sprintf("qtest-ci/%s", strings.TrimPrefix(qtestci.Version, "v")))
		req.Header.Set(headerRequestID, requestID.String())

		if cfg.Debug {
			hasBody := req.Body != nil
			dump, _ := httputil.DumpRequest(req, hasBody)
			sanitizedDump := bearerTokenRegexp.ReplaceAll(dump, []byte("Bearer <redacted>"))
			cfg.Log.Debugf("Executing following HTTP request:\n\n%s\n", sanitizedDump)
		}

		resp, err := client.Do(req)
		if err != nil {
			return resp, errors.NewSystemError("unable to perform HTTP request to %q: %s", req.URL, err)
		}

		if cfg.Debug {
			dump, _ := httputil.DumpResponse(resp, true)
			sanitizedDump := setCookieHeaderRegexp.ReplaceAll(dump, []byte("Set-Cookie: <redacted>"))
			cfg.Log.Debugf("Received following response:\n\n%s\n", sanitizedDump)
		}

		return resp, nil
	}

	return Client{cfg, roundTrip}, nil
}

func (c Client) codec() *jsonutil.Codec {
	if c.Codec == nil {
		return jsonutil.New(c.Log)
	}

	return c.Codec
}

func (c Client) postJSON(ctx context.Context, endpoint string, query map[string]string, body any) (*http.Response, error) {
	encodedBody := c.codec().ToJSON(body)
	if encodedBody == "" {
		return nil, errors.NewInternalError("unable to construct JSON object for request to %q", endpoint)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBufferString(encodedBody))
	if err != nil {
		return nil, errors.NewInternalError("unable to construct HTTP request: %s", err)
	}

	if len(query) > 0 {
		queryValues := req.URL.Query()
		for key, value := range query {
			queryValues.Add(key, value)
		}
		req.URL.RawQuery = queryValues.Encode()
	}

	req.Header.Set(headerContentType, contentTypeJSON)

	resp, err := c.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	return resp, nil
}

// readBody reads a response body leniently. qTest answers with loosely structured JSON, and sometimes with nothing.
func (c Client) readBody(endpoint string, resp *http.Response) (*jsonutil.Node, error) {
	if resp.Body == nil {
		return nil, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewInternalError(
			"Unable to read HTTP response body from API. Endpoint was %q, Status Code %d",
			endpoint,
			resp.StatusCode,
		)
	}

	return c.codec().ReadTree(string(body)), nil
}

func checkStatus(endpoint string, resp *http.Response) error {
	if resp.StatusCode >= 400 {
		return errors.NewInternalError(
			"qTest API encountered an error. Endpoint was %q, Status Code %d",
			endpoint,
			resp.StatusCode,
		)
	}

	return nil
}
