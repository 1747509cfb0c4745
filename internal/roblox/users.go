package roblox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/samber/lo"
)

// usernameChunkSize is the hard cap the bulk lookup endpoint puts on one call.
const usernameChunkSize = 100

type usernamesRequest struct {
	Usernames []string `json:"usernames"`
}

type usernamesResponse struct {
	Data []struct {
		Name string `json:"name"`
		ID   int64  `json:"id"`
	} `json:"data"`
}

// ResolveUsernames maps usernames to numeric user ids via the bulk lookup
// endpoint, one call per chunk of at most usernameChunkSize names. Keys of
// the returned map are lowercased. A failed chunk is logged and skipped:
// its names are simply absent from the result, which the caller reports as
// not-found rows.
func (c *Client) ResolveUsernames(ctx context.Context, usernames []string) map[string]int64 {
	userMap := make(map[string]int64, len(usernames))
	if len(usernames) == 0 {
		return userMap
	}

	for _, chunk := range lo.Chunk(usernames, usernameChunkSize) {
		if err := c.resolveChunk(ctx, chunk, userMap); err != nil {
			c.log.Warn("username_chunk_failed", "chunk_size", len(chunk), "error", err)
		}
	}
	return userMap
}

func (c *Client) resolveChunk(ctx context.Context, chunk []string, userMap map[string]int64) error {
	body, err := json.Marshal(usernamesRequest{Usernames: chunk})
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	url := c.UsersBaseURL + "/v1/usernames/users"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("usernames request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("usernames api error: status=%d body=%s", resp.StatusCode, string(bodyBytes))
	}

	var parsed usernamesResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	for _, u := range parsed.Data {
		userMap[strings.ToLower(u.Name)] = u.ID
	}
	return nil
}
