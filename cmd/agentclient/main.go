// Command agentclient is a demo AI agent driving one gateway-mediated
// tool call end to end: start a session, wait for the operator to
// complete the browser-based consent flow, poll for readiness, then
// invoke the tool.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/abraxas-iag/gateway/pkg/acclient"
)

func main() {
	gatewayBase := flag.String("gateway", "http://localhost:8081", "gateway base URL")
	toolID := flag.String("tool-id", "mcp.echo", "tool id to request")
	scope := flag.String("scope", "echo:read", "scope to request")
	toolPath := flag.String("path", "/mcp/echo", "gateway tool path to call once ready")
	method := flag.String("method", "GET", "HTTP method for the tool call")
	query := flag.String("query", "msg=hi", "query string for the tool call")
	body := flag.String("body", "", "JSON body for the tool call, e.g. POST /mcp/pay")
	pollInterval := flag.Duration("poll-interval", 2*time.Second, "status poll interval")
	pollCeiling := flag.Duration("poll-ceiling", 2*time.Minute, "maximum time to wait for session readiness")
	flag.Parse()

	ctx := context.Background()
	client := acclient.NewClient(*gatewayBase)

	start, err := client.StartSession(ctx, acclient.StartSessionRequest{
		ToolID: *toolID,
		Scope:  *scope,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "session start failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("session %s started\n", start.SID)
	if start.AuthorizeURL != "" {
		fmt.Printf("open this URL to authorize, then press enter:\n%s\n", start.AuthorizeURL)
		bufio.NewReader(os.Stdin).ReadString('\n')
	}

	ready, err := client.PollStatus(ctx, start.SID, *pollInterval, *pollCeiling)
	if err != nil {
		fmt.Fprintf(os.Stderr, "polling session status failed: %v\n", err)
		os.Exit(1)
	}
	if !ready {
		fmt.Fprintln(os.Stderr, "session never became ready within the poll ceiling")
		os.Exit(1)
	}

	var bodyMap map[string]any
	if *body != "" {
		if err := json.Unmarshal([]byte(*body), &bodyMap); err != nil {
			fmt.Fprintf(os.Stderr, "invalid -body JSON: %v\n", err)
			os.Exit(1)
		}
	}

	status, respBody, err := client.CallTool(ctx, *method, *toolPath, *query, bodyMap)
	if err != nil && err != acclient.ErrLoginRequired {
		fmt.Fprintf(os.Stderr, "tool call failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("status %d\n%s\n", status, string(respBody))
}
