package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jordisipkens/spiral-race/database"
	"github.com/jordisipkens/spiral-race/models"
)

// baseURL is where the admin review page lives; set once at startup.
var baseURL = "http://localhost:8080"

func SetBaseURL(url string) {
	if url != "" {
		baseURL = url
	}
}

var notifyClient = &http.Client{Timeout: 10 * time.Second}

// NotifyNewSubmission posts a message to the configured webhook when a team
// submits evidence. Best effort by design: it runs after the submission row
// is committed, and any failure here is logged and swallowed so a dead
// webhook can never fail or roll back a submission.
func NotifyNewSubmission(teamID, tileID uint32) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	webhookURL, err := GetSetting(ctx, models.SettingDiscordWebhookURL)
	if err != nil {
		slog.Error("notification: failed to load webhook url", "error", err)
		return
	}
	if webhookURL == "" {
		return
	}

	var team models.Team
	if err := database.DB.Select("name").First(&team, teamID).Error; err != nil {
		slog.Error("notification: failed to load team", "team_id", teamID, "error", err)
		return
	}
	var tile models.Tile
	if err := database.DB.Select("title, board").First(&tile, tileID).Error; err != nil {
		slog.Error("notification: failed to load tile", "tile_id", tileID, "error", err)
		return
	}

	message := fmt.Sprintf(
		"@here There is a new submission for you guys to approve from team **%s** for tile **%s** (%s)!\n[Review submissions](%s/admin)",
		team.Name, tile.Title, tile.Board, baseURL)

	payload, err := json.Marshal(map[string]string{"content": message})
	if err != nil {
		slog.Error("notification: failed to encode payload", "error", err)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(payload))
	if err != nil {
		slog.Error("notification: failed to build request", "error", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := notifyClient.Do(req)
	if err != nil {
		slog.Error("notification: webhook call failed", "error", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		slog.Error("notification: webhook rejected message", "status", resp.StatusCode)
	}
}
