package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jordisipkens/spiral-race/database"
	"github.com/jordisipkens/spiral-race/dto"
	"github.com/jordisipkens/spiral-race/models"
	"github.com/jordisipkens/spiral-race/services"
	"github.com/jordisipkens/spiral-race/utils"
)

// GetTeamBySlug resolves a team from its public URL identifier.
func GetTeamBySlug(c *gin.Context) {
	var team models.Team
	err := database.DB.Where("slug = ?", c.Param("slug")).First(&team).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(c, http.StatusNotFound, 4004, "team not found")
			return
		}
		utils.Error(c, http.StatusInternalServerError, 5000, "failed to fetch team")
		return
	}

	utils.Success(c, "success", gin.H{"team": team})
}

// GetTeamBoard is the read model behind the team's board page: tiles per
// board with their derived states, path progress, active ring and total
// points. Recomputed from the progress rows on every call; clients cache
// it, the server never does.
func GetTeamBoard(c *gin.Context) {
	var team models.Team
	err := database.DB.Where("slug = ?", c.Param("slug")).First(&team).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(c, http.StatusNotFound, 4004, "team not found")
			return
		}
		utils.Error(c, http.StatusInternalServerError, 5000, "failed to fetch team")
		return
	}

	var tiles []models.Tile
	if err := database.DB.
		Order("board").Order("is_center").Order("ring").Order("path").
		Find(&tiles).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, 5000, "failed to fetch tiles")
		return
	}

	var records []models.Progress
	if err := database.DB.Preload("Tile").
		Where("team_id = ?", team.ID).
		Find(&records).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, 5000, "failed to fetch progress")
		return
	}

	progress := services.DeriveProgress(records)

	type tileView struct {
		models.Tile
		State services.TileState `json:"state"`
	}
	type boardView struct {
		Paths           [models.NumPaths]int `json:"paths"`
		CenterCompleted bool                 `json:"center_completed"`
		ActiveRing      int                  `json:"active_ring"`
		Tiles           []tileView           `json:"tiles"`
	}

	boards := make(map[models.BoardType]*boardView, len(models.Boards))
	for _, b := range models.Boards {
		bp := progress[b]
		boards[b] = &boardView{
			Paths:           bp.Paths,
			CenterCompleted: bp.CenterCompleted,
			ActiveRing:      bp.ActiveRing(),
		}
	}
	for _, t := range tiles {
		bv, ok := boards[t.Board]
		if !ok {
			continue
		}
		bv.Tiles = append(bv.Tiles, tileView{Tile: t, State: progress[t.Board].TileState(t)})
	}

	utils.Success(c, "success", gin.H{
		"team":         team,
		"boards":       boards,
		"total_points": services.TotalPoints(tiles, progress),
	})
}

// AdminCreateTeam creates a team; the slug falls back to one generated from
// the name and must be unique, since it is the team's only credential.
func AdminCreateTeam(c *gin.Context) {
	var req dto.CreateTeamReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, 1001, "team name is required")
		return
	}

	slug := req.Slug
	if slug == "" {
		slug = utils.GenerateSlug(req.Name)
	}
	if slug == "" {
		utils.Error(c, http.StatusBadRequest, 1001, "could not derive a slug from the team name")
		return
	}

	var count int64
	database.DB.Model(&models.Team{}).Where("slug = ?", slug).Count(&count)
	if count > 0 {
		utils.Error(c, http.StatusConflict, 4009, "this slug already exists")
		return
	}

	team := models.Team{Name: req.Name, Slug: slug}
	if err := database.DB.Create(&team).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, 5000, "failed to create team")
		return
	}

	utils.Success(c, "team created", gin.H{"team": team})
}

func AdminListTeams(c *gin.Context) {
	var teams []models.Team
	if err := database.DB.Order("created_at desc").Find(&teams).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, 5000, "failed to fetch teams")
		return
	}

	utils.Success(c, "success", gin.H{"teams": teams})
}

func AdminUpdateTeam(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, 1002, "invalid team id")
		return
	}

	var team models.Team
	if err := database.DB.First(&team, id).Error; err != nil {
		utils.Error(c, http.StatusNotFound, 4004, "team not found")
		return
	}

	var req dto.UpdateTeamReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, 1001, "invalid request body: "+err.Error())
		return
	}

	if req.Name != nil && *req.Name != "" {
		team.Name = *req.Name
	}
	if req.Slug != nil && *req.Slug != "" && *req.Slug != team.Slug {
		var count int64
		database.DB.Model(&models.Team{}).
			Where("slug = ? AND id <> ?", *req.Slug, team.ID).
			Count(&count)
		if count > 0 {
			utils.Error(c, http.StatusConflict, 4009, "this slug already exists")
			return
		}
		team.Slug = *req.Slug
	}

	if err := database.DB.Save(&team).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, 5000, "failed to update team")
		return
	}

	utils.Success(c, "team updated", gin.H{"team": team})
}

// AdminDeleteTeam removes a team with its submissions and progress.
func AdminDeleteTeam(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, 1002, "invalid team id")
		return
	}

	teamID := uint32(id)
	if err := database.DB.Where("team_id = ?", teamID).Delete(&models.Submission{}).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, 5000, "failed to delete team submissions")
		return
	}
	if err := services.ResetTeamProgress(teamID); err != nil {
		utils.Error(c, http.StatusInternalServerError, 5000, "failed to delete team progress")
		return
	}
	if err := database.DB.Delete(&models.Team{}, teamID).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, 5000, "failed to delete team")
		return
	}

	utils.Success(c, "team deleted", nil)
}

// AdminResetTeamProgress wipes every progress row of a team, the explicit
// admin reset.
func AdminResetTeamProgress(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, 1002, "invalid team id")
		return
	}

	var team models.Team
	if err := database.DB.First(&team, id).Error; err != nil {
		utils.Error(c, http.StatusNotFound, 4004, "team not found")
		return
	}

	if err := services.ResetTeamProgress(team.ID); err != nil {
		utils.Error(c, http.StatusInternalServerError, 5000, "failed to reset progress")
		return
	}

	utils.Success(c, "progress reset", nil)
}
