package roblox

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Presence type codes as reported by the presence endpoint.
const (
	PresenceOffline  = 0
	PresenceOnline   = 1
	PresenceInStudio = 2
	PresenceInGame   = 3
)

// ErrInvalidCredential is returned when the presence endpoint rejects the
// caller's cookie with 403. The handler maps it to its own 403; any other
// presence failure becomes a 500.
var ErrInvalidCredential = errors.New("roblox: invalid or unauthorized credential")

type PresenceRecord struct {
	UserID       int64  `json:"userId"`
	Type         int    `json:"userPresenceType"`
	PlaceID      *int64 `json:"placeId"`
	UniverseID   *int64 `json:"universeId"`
	LastLocation string `json:"lastLocation"`
}

type presenceRequest struct {
	UserIDs []int64 `json:"userIds"`
}

type presenceResponse struct {
	UserPresences []PresenceRecord `json:"userPresences"`
}

// FetchPresences issues the single bulk presence call for all resolved ids,
// forwarding the caller's credential verbatim as the authorization value.
// An empty id set skips the network entirely. Unlike username resolution
// there is no partial success here: any failure aborts the whole request,
// with ErrInvalidCredential distinguishing a rejected cookie.
func (c *Client) FetchPresences(ctx context.Context, userIDs []int64, credential string) (map[int64]PresenceRecord, error) {
	presences := make(map[int64]PresenceRecord, len(userIDs))
	if len(userIDs) == 0 {
		return presences, nil
	}

	body, err := json.Marshal(presenceRequest{UserIDs: userIDs})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	url := c.PresenceBaseURL + "/v1/presence/users"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if credential != "" {
		req.Header.Set("Authorization", credential)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("presence request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden {
		return nil, ErrInvalidCredential
	}
	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("presence api error: status=%d body=%s", resp.StatusCode, string(bodyBytes))
	}

	var parsed presenceResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	for _, p := range parsed.UserPresences {
		presences[p.UserID] = p
	}
	return presences, nil
}
