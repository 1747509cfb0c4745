package roblox

import (
	"log/slog"
	"net"
	"net/http"
	"time"
)

const (
	defaultUsersBaseURL    = "https://users.roblox.com"
	defaultPresenceBaseURL = "https://presence.roblox.com"
	defaultGamesBaseURL    = "https://games.roblox.com"
)

// Client talks to the three Roblox endpoints this service consumes. It
// holds no per-request state; the caller's session cookie is passed into
// each call and forwarded upstream, never stored.
type Client struct {
	log        *slog.Logger
	httpClient *http.Client

	// overridable so tests can point at httptest servers
	UsersBaseURL    string
	PresenceBaseURL string
	GamesBaseURL    string
}

func NewClient(log *slog.Logger) *Client {
	return &Client{
		log:             log,
		httpClient:      newHTTPClient(),
		UsersBaseURL:    defaultUsersBaseURL,
		PresenceBaseURL: defaultPresenceBaseURL,
		GamesBaseURL:    defaultGamesBaseURL,
	}
}

// newHTTPClient builds the shared HTTP client for Roblox API calls:
// connection pooling, keep-alive, and timeouts so a wedged upstream
// cannot hang a request forever.
func newHTTPClient() *http.Client {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20,
		MaxConnsPerHost:     50,
		IdleConnTimeout:     90 * time.Second,

		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,

		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 15 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,

		ForceAttemptHTTP2: true,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   30 * time.Second,
	}
}

// sessionCookie formats the caller's raw credential as the Roblox
// authentication cookie header value. The frontend sends only the token
// value; the .ROBLOSECURITY= prefix is added here.
func sessionCookie(credential string) string {
	return ".ROBLOSECURITY=" + credential
}
