// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package restclient

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/bureau-foundation/gomatic/lib/netutil"
	"github.com/bureau-foundation/gomatic/lib/secret"
	"github.com/bureau-foundation/gomatic/lib/version"
)

// Endpoint paths, relative to the server URL.
const (
	ConfigGetPath  = "/go/admin/restful/configuration/file/GET/xml"
	ConfigPostPath = "/go/admin/restful/configuration/file/POST/xml"
)

// MD5Header carries the config md5 on GET responses.
const MD5Header = "X-CRUISE-CONFIG-MD5"

// ClientConfig holds configuration for creating a Client.
type ClientConfig struct {
	// ServerURL is the GoCD base URL (e.g., "http://localhost:8153").
	// A bare "host:port" is accepted and treated as http.
	ServerURL string
	// Username enables HTTP basic authentication. Password may be nil
	// for an empty password; the Client takes ownership of it and
	// releases it in Close.
	Username string
	Password *secret.Buffer
	// HTTPClient is used for all requests. If nil, http.DefaultClient is used.
	HTTPClient *http.Client
	// Logger is used for structured logging. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// ConfigFile is the document returned by the GET endpoint.
type ConfigFile struct {
	XML []byte
	MD5 string
}

// Client is a GoCD configuration client. It is safe for concurrent use.
type Client struct {
	baseURL    string
	username   string
	password   *secret.Buffer
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient validates config and returns a Client.
func NewClient(config ClientConfig) (*Client, error) {
	if config.ServerURL == "" {
		return nil, fmt.Errorf("restclient: ServerURL is required")
	}
	serverURL := config.ServerURL
	if !strings.Contains(serverURL, "://") {
		serverURL = "http://" + serverURL
	}
	parsed, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("restclient: invalid ServerURL %q: %w", config.ServerURL, err)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("restclient: ServerURL %q has no host", config.ServerURL)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    strings.TrimRight(serverURL, "/"),
		username:   config.Username,
		password:   config.Password,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

func (c *Client) String() string {
	return fmt.Sprintf("restclient.Client(%q)", c.baseURL)
}

// Close releases the password buffer. The Client must not be used
// afterwards.
func (c *Client) Close() error {
	if c.password == nil {
		return nil
	}
	return c.password.Close()
}

// BaseURL returns the normalized server URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchConfig downloads the current configuration and its md5.
func (c *Client) FetchConfig(ctx context.Context) (*ConfigFile, error) {
	response, body, err := c.do(ctx, http.MethodGet, ConfigGetPath, "", nil)
	if err != nil {
		return nil, err
	}
	md5 := response.Header.Get(MD5Header)
	if md5 == "" {
		return nil, fmt.Errorf("restclient: response from %s has no %s header", ConfigGetPath, MD5Header)
	}
	c.logger.Debug("fetched gocd configuration", "bytes", len(body), "md5", md5)
	return &ConfigFile{XML: body, MD5: md5}, nil
}

// PostConfig uploads xml as the new configuration. md5 must be the
// value returned by the FetchConfig the edit started from.
func (c *Client) PostConfig(ctx context.Context, xml []byte, md5 string) error {
	form := url.Values{
		"xmlFile": {string(xml)},
		"md5":     {md5},
	}
	_, _, err := c.do(ctx, http.MethodPost, ConfigPostPath,
		"application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	c.logger.Debug("posted gocd configuration", "bytes", len(xml), "md5", md5)
	return nil
}

// do performs a request and returns the response with its body read.
// Non-2xx responses are returned as *ServerError.
func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader) (*http.Response, []byte, error) {
	requestURL := c.baseURL + path
	request, err := http.NewRequestWithContext(ctx, method, requestURL, body)
	if err != nil {
		return nil, nil, fmt.Errorf("restclient: failed to create request: %w", err)
	}
	request.Header.Set("User-Agent", version.UserAgent())
	if contentType != "" {
		request.Header.Set("Content-Type", contentType)
	}
	if c.username != "" {
		c.setBasicAuth(request)
	}

	c.logger.Debug("gocd request", "method", method, "path", path)
	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, nil, fmt.Errorf("restclient: request to %s %s failed: %w", method, path, err)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, nil, parseServerError(method, requestURL, response.StatusCode, netutil.ErrorBody(response.Body))
	}
	responseBody, err := netutil.ReadResponse(response.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("restclient: failed to read response body: %w", err)
	}
	return response, responseBody, nil
}

// setBasicAuth writes the Authorization header from the locked
// password. The credentials are assembled in a scratch slice that is
// zeroed afterwards; only the encoded header value reaches the heap.
func (c *Client) setBasicAuth(request *http.Request) {
	var password []byte
	if c.password != nil {
		password = c.password.Bytes()
	}
	credentials := make([]byte, 0, len(c.username)+1+len(password))
	credentials = append(credentials, c.username...)
	credentials = append(credentials, ':')
	credentials = append(credentials, password...)
	defer secret.Zero(credentials)
	request.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString(credentials))
}
