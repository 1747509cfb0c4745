package roblox

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Sentinels for place-name enrichment. Lookup failures never fail the
// request; they degrade to a string the frontend shows as-is.
const (
	UnknownPlace      = "Unknown Place"
	PlaceLookupFailed = "Unknown Place (Access Denied or Game Info Failed)"
)

// PlaceName resolves a place/universe id to a human-readable name, using
// the universe id when present and falling back to the place id. This is
// the one call that carries the credential as the Roblox session cookie
// rather than an authorization value; place details for private
// experiences are only visible to an authenticated session.
func (c *Client) PlaceName(ctx context.Context, universeID, placeID *int64, credential string) string {
	id := universeID
	if id == nil {
		id = placeID
	}
	if id == nil {
		return UnknownPlace
	}

	url := fmt.Sprintf("%s/v1/games/multiget-place-details?placeIds=%d", c.GamesBaseURL, *id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return PlaceLookupFailed
	}
	if credential != "" {
		req.Header.Set("Cookie", sessionCookie(credential))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("place_lookup_failed", "place_id", *id, "error", err)
		return PlaceLookupFailed
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Warn("place_lookup_failed", "place_id", *id, "status", resp.StatusCode)
		return PlaceLookupFailed
	}

	var places []struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return PlaceLookupFailed
	}
	if len(places) == 0 || places[0].Name == "" {
		return UnknownPlace
	}
	return places[0].Name
}
