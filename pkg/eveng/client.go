// Package eveng is a minimal client for the EVE-NG REST API, covering
// session login and the node/interface listing the resolver needs.
package eveng

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/evelink/evelink/pkg/util"
)

// Config holds EVE-NG connection parameters.
type Config struct {
	// Host is the server name or URL. A bare host name is treated as https.
	Host     string
	Username string
	Password string

	// Insecure skips TLS certificate verification. Lab servers commonly
	// run with self-signed certificates.
	Insecure bool

	// Timeout bounds each HTTP request. Zero means 30 seconds.
	Timeout time.Duration
}

// Client is a session-holding EVE-NG API client. Login must succeed before
// any listing call; the session cookie is reused for the life of the process.
type Client struct {
	httpClient *http.Client
	baseURL    string
	username   string
	password   string
	logger     *logrus.Logger
}

// NewClient creates a Client from cfg. It does not contact the server.
func NewClient(cfg Config, logger *logrus.Logger) (*Client, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("eveng: host required")
	}

	base := cfg.Host
	if !strings.Contains(base, "://") {
		base = "https://" + base
	}
	base = strings.TrimRight(base, "/")

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("eveng: cookie jar: %w", err)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	httpClient := &http.Client{
		Timeout: timeout,
		Jar:     jar,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				MinVersion:         tls.VersionTLS12,
				InsecureSkipVerify: cfg.Insecure,
			},
		},
	}

	if cfg.Insecure {
		logger.Debug("TLS certificate verification disabled")
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    base,
		username:   cfg.Username,
		password:   cfg.Password,
		logger:     logger,
	}, nil
}

// Login authenticates and stores the session cookie. A rejected login is
// fatal to the run: the returned error wraps util.ErrAuthFailed.
func (c *Client) Login(ctx context.Context) error {
	c.logger.WithField("host", c.baseURL).Info("connecting to EVE-NG server")

	body := map[string]string{
		"username": c.username,
		"password": c.password,
		"html5":    "-1",
	}
	var env envelope
	if err := c.doRequest(ctx, http.MethodPost, "/api/auth/login", body, &env); err != nil {
		return fmt.Errorf("eveng: login %s: %v: %w", c.baseURL, err, util.ErrAuthFailed)
	}
	if env.Status != "success" {
		return fmt.Errorf("eveng: login %s rejected: %s: %w", c.baseURL, env.Message, util.ErrAuthFailed)
	}

	c.logger.Info("successfully connected to EVE-NG")
	return nil
}

// ListNodes returns all nodes in the lab keyed by node ID.
func (c *Client) ListNodes(ctx context.Context, lab string) (map[string]Node, error) {
	var resp struct {
		envelope
		Data map[string]Node `json:"data"`
	}
	path := "/api/labs/" + escapeLabPath(APIPath(lab)) + ".unl/nodes"
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("eveng: list nodes for lab %s: %w", lab, err)
	}
	if resp.Status != "success" {
		return nil, fmt.Errorf("eveng: list nodes for lab %s: %s", lab, resp.Message)
	}
	return resp.Data, nil
}

// NodeInterfaces returns the node's interfaces grouped by class
// ("ethernet", "serial") and keyed by local interface ID. Payload entries
// that are not objects (some EVE-NG versions mix in scalar bookkeeping
// fields) are skipped.
func (c *Client) NodeInterfaces(ctx context.Context, lab, nodeID string) (map[string]map[string]Interface, error) {
	var resp struct {
		envelope
		Data map[string]json.RawMessage `json:"data"`
	}
	path := "/api/labs/" + escapeLabPath(APIPath(lab)) + ".unl/nodes/" + url.PathEscape(nodeID) + "/interfaces"
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("eveng: interfaces for node %s: %w", nodeID, err)
	}
	if resp.Status != "success" {
		return nil, fmt.Errorf("eveng: interfaces for node %s: %s", nodeID, resp.Message)
	}

	result := make(map[string]map[string]Interface)
	for class, raw := range resp.Data {
		var bucket map[string]Interface
		if err := json.Unmarshal(raw, &bucket); err != nil {
			c.logger.WithField("class", class).Debug("skipping non-object interface entry")
			continue
		}
		if len(bucket) > 0 {
			result[class] = bucket
		}
	}
	return result, nil
}

// doRequest marshals body (when non-nil), executes the request, and decodes
// the JSON response into result.
func (c *Client) doRequest(ctx context.Context, method, path string, body, result any) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("HTTP %d from %s", resp.StatusCode, path)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// escapeLabPath escapes each segment of a lab path, preserving the
// folder separators EVE-NG expects in the URL.
func escapeLabPath(lab string) string {
	segments := strings.Split(lab, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}
