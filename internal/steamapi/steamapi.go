// Package steamapi resolves Steam persona names for the SteamId projection
// of a player's identity. It is ambient/domain enrichment, not part of the
// analysis core: a demo that never observes a valid Steam id64 simply gets
// no persona name.
package steamapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client is a minimal Steam Web API client for persona-name lookups.
type Client struct {
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a Steam client authenticated with the given Steam Web
// API key.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// PlayerSummary is the subset of Valve's ISteamUser/GetPlayerSummaries
// response this tool cares about.
type PlayerSummary struct {
	SteamID     string `json:"steamid"`
	PersonaName string `json:"personaname"`
}

// GetPlayerSummaries resolves persona names for up to 100 id64s per call
// (Valve's documented batch limit), keyed by id64 string. IDs the API
// doesn't recognize (private profile, bad id) are simply absent from the
// result map rather than causing an error.
func (c *Client) GetPlayerSummaries(id64s []string) (map[string]PlayerSummary, error) {
	if len(id64s) == 0 {
		return map[string]PlayerSummary{}, nil
	}
	if len(id64s) > 100 {
		id64s = id64s[:100]
	}

	endpoint := fmt.Sprintf(
		"https://api.steampowered.com/ISteamUser/GetPlayerSummaries/v2?key=%s&steamids=%s",
		c.apiKey, strings.Join(id64s, ","),
	)

	resp, err := c.httpClient.Get(endpoint) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("steamapi: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusForbidden:
		return nil, fmt.Errorf("steamapi: invalid API key")
	case http.StatusServiceUnavailable:
		return nil, fmt.Errorf("steamapi: rate limited by Valve API, wait a moment and retry")
	default:
		snippet := string(body)
		if len(snippet) > 200 {
			snippet = snippet[:200]
		}
		return nil, fmt.Errorf("steamapi: HTTP %d: %s", resp.StatusCode, snippet)
	}

	var result struct {
		Response struct {
			Players []PlayerSummary `json:"players"`
		} `json:"response"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("steamapi: decode response: %w", err)
	}

	out := make(map[string]PlayerSummary, len(result.Response.Players))
	for _, p := range result.Response.Players {
		out[p.SteamID] = p
	}
	return out, nil
}
