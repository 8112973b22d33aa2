package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jordisipkens/spiral-race/database"
	"github.com/jordisipkens/spiral-race/dto"
	"github.com/jordisipkens/spiral-race/models"
	"github.com/jordisipkens/spiral-race/services"
	"github.com/jordisipkens/spiral-race/utils"
)

// CreateSubmission records a piece of evidence for a (team, tile) pair.
// Always starts pending; the webhook notification runs detached so it can
// never fail the request.
func CreateSubmission(c *gin.Context) {
	var req dto.CreateSubmissionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, 1001, "invalid request body: "+err.Error())
		return
	}
	req.Normalize()

	if req.TeamID == 0 || req.TileID == 0 || req.ImageURL == "" {
		utils.Error(c, http.StatusBadRequest, 1001, "missing required fields: team_id, tile_id, image_url")
		return
	}

	var team models.Team
	if err := database.DB.First(&team, req.TeamID).Error; err != nil {
		utils.Error(c, http.StatusNotFound, 4004, "team not found")
		return
	}
	var tile models.Tile
	if err := database.DB.First(&tile, req.TileID).Error; err != nil {
		utils.Error(c, http.StatusNotFound, 4004, "tile not found")
		return
	}

	submission := models.Submission{
		TeamID:      req.TeamID,
		TileID:      req.TileID,
		ImageURL:    req.ImageURL,
		Status:      models.SubmissionPending,
		SubmittedAt: time.Now().UTC(),
	}
	if err := database.DB.Create(&submission).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, 5000, "failed to create submission")
		return
	}

	go services.NotifyNewSubmission(submission.TeamID, submission.TileID)

	utils.Success(c, "submission created", gin.H{"submission": submission})
}

// ListSubmissions returns a team's submission history, newest first, for
// the board view's per-tile history panel.
func ListSubmissions(c *gin.Context) {
	teamID := c.Query("team_id")
	if teamID == "" {
		utils.Error(c, http.StatusBadRequest, 1001, "team_id is required")
		return
	}

	db := database.DB.Preload("Tile").
		Where("team_id = ?", teamID).
		Order("submitted_at desc")

	if tileID := c.Query("tile_id"); tileID != "" {
		db = db.Where("tile_id = ?", tileID)
	}

	var submissions []models.Submission
	if err := db.Find(&submissions).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, 5000, "failed to fetch submissions")
		return
	}

	utils.Success(c, "success", gin.H{"submissions": submissions})
}
