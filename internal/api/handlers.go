package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ErregeaHub/api-fishit/internal/logging"
	"github.com/ErregeaHub/api-fishit/internal/roblox"
)

// cookieHeader is the inbound header the frontend uses to hand over the
// caller's Roblox session token (the bare value, no cookie prefix).
const cookieHeader = "x-roblox-cookie"

const (
	errEmptyUsers     = "Daftar pengguna kosong."
	errInvalidCookie  = "Cookie Roblox tidak valid atau tidak memiliki izin akses."
	errPresenceFailed = "Gagal memuat status dari Roblox."
)

func (s *Server) health(c *gin.Context) {
	c.String(http.StatusOK, "Roblox Status API is LIVE and Healthy.")
}

type statusRequest struct {
	Users []string `json:"users"`
}

// queryName is one entry of the de-duplicated username query: the lowercase
// key used against upstream responses plus the first-seen spelling echoed
// back in result rows.
type queryName struct {
	Key     string
	Display string
}

func (s *Server) status(c *gin.Context) {
	credential := c.GetHeader(cookieHeader)

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Users) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": errEmptyUsers})
		return
	}

	query := dedupeUsernames(req.Users)
	if len(query) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": errEmptyUsers})
		return
	}

	ctx, cancel := s.ctx(c)
	defer cancel()

	s.log.Info("status_request",
		"usernames", len(query),
		"has_cookie", credential != "",
		"cookie", logging.MaskToken(credential),
	)

	names := make([]string, len(query))
	for i, q := range query {
		names[i] = q.Key
	}
	userMap := s.roblox.ResolveUsernames(ctx, names)

	userIDs := make([]int64, 0, len(userMap))
	for _, q := range query {
		if id, ok := userMap[q.Key]; ok {
			userIDs = append(userIDs, id)
		}
	}

	presences, err := s.roblox.FetchPresences(ctx, userIDs, credential)
	if err != nil {
		if errors.Is(err, roblox.ErrInvalidCredential) {
			s.log.Warn("presence_unauthorized", "cookie", logging.MaskToken(credential))
			c.JSON(http.StatusForbidden, gin.H{"error": errInvalidCookie})
			return
		}
		s.log.Error("presence_fetch_failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errPresenceFailed})
		return
	}

	c.JSON(http.StatusOK, s.assembleRows(ctx, query, userMap, presences, credential))
}

// dedupeUsernames trims the raw input, drops empties, and collapses
// case-insensitive duplicates while keeping first-occurrence order.
func dedupeUsernames(raw []string) []queryName {
	seen := make(map[string]struct{}, len(raw))
	query := make([]queryName, 0, len(raw))
	for _, name := range raw {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		query = append(query, queryName{Key: key, Display: name})
	}
	return query
}
