// Package acclient implements the Agent Client: the thin HTTP client an
// AI agent process uses to start a gateway-mediated tool session, poll it
// to readiness, and invoke tools. It never sees a raw OAuth token — the
// gateway holds that server-side — so this client's surface is limited
// to the gateway's own session/tool contract, the same shape the
// reference Muster agent client gives its OAuth-protected MCP servers.
package acclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// ErrLoginRequired is returned when the gateway reports no ready session
// for the scope a tool call needs.
var ErrLoginRequired = fmt.Errorf("login required: no ready gateway session for this scope")

// Client talks to one gateway instance on behalf of an agent process.
type Client struct {
	GatewayBase string
	HTTP        *http.Client
}

func NewClient(gatewayBase string) *Client {
	return &Client{GatewayBase: gatewayBase, HTTP: &http.Client{Timeout: 15 * time.Second}}
}

type StartSessionRequest struct {
	ToolID  string         `json:"tool_id"`
	Scope   string         `json:"scope"`
	Context map[string]any `json:"context,omitempty"`
}

type StartSessionResponse struct {
	SID          string `json:"sid"`
	AuthorizeURL string `json:"authorize_url,omitempty"`
}

// StartSession asks the gateway to begin a session for a tool/scope pair.
// The caller is responsible for presenting AuthorizeURL to the end user
// (opening a browser), exactly as the upstream OAuth flow requires.
func (c *Client) StartSession(ctx context.Context, req StartSessionRequest) (StartSessionResponse, error) {
	var resp StartSessionResponse
	err := c.postJSON(ctx, "/session/start", req, &resp)
	return resp, err
}

// PollStatus polls /session/status by sid until ready, ctx is done, or
// the ceiling is reached.
func (c *Client) PollStatus(ctx context.Context, sid string, interval, ceiling time.Duration) (bool, error) {
	deadline := time.Now().Add(ceiling)
	for {
		ready, err := c.sessionReady(ctx, sid)
		if err != nil {
			return false, err
		}
		if ready {
			return true, nil
		}
		if time.Now().After(deadline) {
			return false, nil
		}
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(interval):
		}
	}
}

func (c *Client) sessionReady(ctx context.Context, sid string) (bool, error) {
	var out struct {
		Ready bool `json:"ready"`
	}
	url := c.GatewayBase + "/session/status?sid=" + sid
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return false, err
	}
	return out.Ready, nil
}

// CallTool invokes a gateway-proxied tool endpoint, e.g. "/mcp/echo".
// query and body are optional; body is only sent for non-empty maps.
func (c *Client) CallTool(ctx context.Context, method, toolPath, query string, body map[string]any) (int, []byte, error) {
	url := c.GatewayBase + toolPath
	if query != "" {
		url += "?" + query
	}

	var bodyReader *bytes.Reader
	if len(body) > 0 {
		buf, err := json.Marshal(body)
		if err != nil {
			return 0, nil, err
		}
		bodyReader = bytes.NewReader(buf)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return 0, nil, err
	}
	if bodyReader.Len() > 0 {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return resp.StatusCode, nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return resp.StatusCode, buf.Bytes(), ErrLoginRequired
	}
	return resp.StatusCode, buf.Bytes(), nil
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	buf, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.GatewayBase+path, bytes.NewReader(buf))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		var errBody map[string]any
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		return fmt.Errorf("gateway %s returned status %d: %v", path, resp.StatusCode, errBody)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
