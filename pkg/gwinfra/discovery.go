package gwinfra

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/abraxas-iag/gateway/pkg/gwcore"
)

// DiscoveryClient probes a resource server, parses its WWW-Authenticate
// challenge, and fetches RFC 9728 / RFC 8414 metadata documents.
type DiscoveryClient struct {
	HTTP           *http.Client
	ProbePath      string
	FallbackPRMURL string
}

func NewDiscoveryClient(fallbackPRM string) *DiscoveryClient {
	return &DiscoveryClient{
		HTTP:           &http.Client{Timeout: 10 * time.Second},
		ProbePath:      "/mcp/echo",
		FallbackPRMURL: fallbackPRM,
	}
}

var resourceMetadataRe = regexp.MustCompile(`resource_metadata="([^"]+)"`)

// DiscoverRS probes <upstream>/<probe-path> unauthenticated, expects a 401
// with a WWW-Authenticate challenge carrying resource_metadata, and fetches
// that document. If the probe or the parse fails, it falls back to the
// configured fallback metadata URL. start_failed is returned only if both
// paths fail.
func (d *DiscoveryClient) DiscoverRS(ctx context.Context, upstream string) (gwcore.RSMetadata, error) {
	prmURL, probeErr := d.probeChallenge(ctx, upstream)
	if probeErr == nil {
		meta, err := d.fetchRSMetadata(ctx, prmURL)
		if err == nil {
			return meta, nil
		}
	}

	if d.FallbackPRMURL == "" {
		return gwcore.RSMetadata{}, gwcore.ErrStartFailed(fmt.Sprintf("probe failed: %v", probeErr))
	}
	meta, err := d.fetchRSMetadata(ctx, d.FallbackPRMURL)
	if err != nil {
		return gwcore.RSMetadata{}, gwcore.ErrStartFailed(fmt.Sprintf("probe and fallback both failed: %v", err))
	}
	return meta, nil
}

func (d *DiscoveryClient) probeChallenge(ctx context.Context, upstream string) (string, error) {
	url := strings.TrimRight(upstream, "/") + d.ProbePath
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := d.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		return "", fmt.Errorf("expected 401 from probe, got %d", resp.StatusCode)
	}
	challenge := resp.Header.Get("WWW-Authenticate")
	m := resourceMetadataRe.FindStringSubmatch(challenge)
	if len(m) != 2 {
		return "", fmt.Errorf("no resource_metadata in challenge: %q", challenge)
	}
	return m[1], nil
}

func (d *DiscoveryClient) fetchRSMetadata(ctx context.Context, url string) (gwcore.RSMetadata, error) {
	var meta gwcore.RSMetadata
	if err := d.fetchJSON(ctx, url, &meta); err != nil {
		return gwcore.RSMetadata{}, err
	}
	if meta.Resource == "" {
		return gwcore.RSMetadata{}, fmt.Errorf("protected resource metadata missing resource field")
	}
	return meta, nil
}

// DiscoverAS picks the first authorization_servers entry from rsMeta,
// normalizes it to the well-known AS metadata path if needed, and fetches
// RFC 8414 metadata.
func (d *DiscoveryClient) DiscoverAS(ctx context.Context, rsMeta gwcore.RSMetadata) (gwcore.ASMetadata, error) {
	if len(rsMeta.AuthorizationServers) == 0 {
		return gwcore.ASMetadata{}, gwcore.ErrStartFailed("protected resource metadata lists no authorization servers")
	}
	origin := rsMeta.AuthorizationServers[0]
	metaURL := origin
	if !strings.HasSuffix(origin, "/.well-known/oauth-authorization-server") {
		metaURL = strings.TrimRight(origin, "/") + "/.well-known/oauth-authorization-server"
	}

	var meta gwcore.ASMetadata
	if err := d.fetchJSON(ctx, metaURL, &meta); err != nil {
		return gwcore.ASMetadata{}, gwcore.ErrStartFailed(fmt.Sprintf("as metadata fetch failed: %v", err))
	}
	return meta, nil
}

func (d *DiscoveryClient) fetchJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := d.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, url)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
