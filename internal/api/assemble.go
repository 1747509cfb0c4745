package api

import (
	"context"

	"github.com/ErregeaHub/api-fishit/internal/roblox"
)

const errUserNotFound = "Pengguna tidak ditemukan di Roblox."

const (
	statusInGame   = "In Game"
	statusInStudio = "In Studio"
	statusOnline   = "Online"
	statusOffline  = "Offline"

	mapNameHiddenPlace = "In Game (placeId hidden)"
	mapNameInStudio    = "In Studio"
	mapNameOnline      = "Online di Website"
	mapNameOffline     = "Offline"
)

type errorRow struct {
	Username string `json:"username"`
	Error    string `json:"error"`
}

type statusRow struct {
	Username     string  `json:"username"`
	UserID       int64   `json:"userId"`
	Status       string  `json:"status"`
	PlaceID      *int64  `json:"placeId"`
	UniverseID   *int64  `json:"universeId"`
	MapName      string  `json:"mapName"`
	LastLocation *string `json:"lastLocation"`
}

// assembleRows joins the pipeline stages back into one row per queried
// username, in query order. Unresolved names get an error row; a resolved
// user with no presence record is reported offline. Place-name enrichment
// runs here, one lookup per in-game user with a visible place id.
func (s *Server) assembleRows(ctx context.Context, query []queryName, userMap map[string]int64, presences map[int64]roblox.PresenceRecord, credential string) []any {
	rows := make([]any, 0, len(query))

	for _, q := range query {
		userID, ok := userMap[q.Key]
		if !ok {
			rows = append(rows, errorRow{Username: q.Display, Error: errUserNotFound})
			continue
		}

		row := statusRow{
			Username: q.Display,
			UserID:   userID,
			Status:   statusOffline,
			MapName:  mapNameOffline,
		}

		if presence, ok := presences[userID]; ok {
			row.PlaceID = presence.PlaceID
			row.UniverseID = presence.UniverseID
			lastLocation := presence.LastLocation
			row.LastLocation = &lastLocation

			switch presence.Type {
			case roblox.PresenceInGame:
				row.Status = statusInGame
				if presence.PlaceID == nil {
					// joins/place details are hidden for this user
					row.MapName = mapNameHiddenPlace
				} else {
					row.MapName = s.roblox.PlaceName(ctx, presence.UniverseID, presence.PlaceID, credential)
				}
			case roblox.PresenceInStudio:
				row.Status = statusInStudio
				row.MapName = mapNameInStudio
			case roblox.PresenceOnline:
				row.Status = statusOnline
				row.MapName = mapNameOnline
			}
		}

		rows = append(rows, row)
	}

	return rows
}
