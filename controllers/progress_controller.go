package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jordisipkens/spiral-race/database"
	"github.com/jordisipkens/spiral-race/dto"
	"github.com/jordisipkens/spiral-race/models"
	"github.com/jordisipkens/spiral-race/services"
	"github.com/jordisipkens/spiral-race/utils"
)

// AdminUpsertProgress manually marks a tile completed for a team. Same
// idempotent upsert the review workflow uses.
func AdminUpsertProgress(c *gin.Context) {
	var req dto.ProgressReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, 1001, "team_id and tile_id are required")
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

	if err := services.UpsertProgress(req.TeamID, req.TileID); err != nil {
		utils.Error(c, http.StatusInternalServerError, 5000, "failed to record progress")
		return
	}

	utils.Success(c, "progress recorded", nil)
}

// AdminDeleteProgress removes a single progress row.
func AdminDeleteProgress(c *gin.Context) {
	var req dto.ProgressReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, 1001, "team_id and tile_id are required")
		return
	}

	if err := services.DeleteProgress(req.TeamID, req.TileID); err != nil {
		utils.Error(c, http.StatusInternalServerError, 5000, "failed to delete progress")
		return
	}

	utils.Success(c, "progress deleted", nil)
}
