package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jordisipkens/spiral-race/database"
	"github.com/jordisipkens/spiral-race/dto"
	"github.com/jordisipkens/spiral-race/models"
	"github.com/jordisipkens/spiral-race/services"
	"github.com/jordisipkens/spiral-race/utils"
)

// ListTiles returns a board's tiles ordered (ring, path) ascending with the
// center tile last; without a board filter, all tiles ordered per board.
func ListTiles(c *gin.Context) {
	db := database.DB.Model(&models.Tile{}).
		Order("board").Order("is_center").Order("ring").Order("path")

	if board := c.Query("board"); board != "" {
		if !models.BoardType(board).Valid() {
			utils.Error(c, http.StatusBadRequest, 1001, "invalid board, must be easy, medium or hard")
			return
		}
		db = db.Where("board = ?", board)
	}

	var tiles []models.Tile
	if err := db.Find(&tiles).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, 5000, "failed to fetch tiles")
		return
	}

	utils.Success(c, "success", gin.H{"tiles": tiles})
}

// GenerateTiles fills the gaps of one board: any missing (ring, path) slot
// and the center. Existing tiles are never overwritten, so the operation is
// safe to repeat.
func GenerateTiles(c *gin.Context) {
	var req dto.GenerateTilesReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, 1001, "invalid board, must be easy, medium or hard")
		return
	}
	board := models.BoardType(req.Board)

	var existing []models.Tile
	if err := database.DB.Where("board = ?", board).Find(&existing).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, 5000, "failed to fetch tiles")
		return
	}

	missing := services.GenerateMissingTiles(board, existing)
	if len(missing) == 0 {
		utils.Success(c, "all tiles already exist", gin.H{"generated": 0})
		return
	}

	if err := database.DB.Create(&missing).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, 5000, "failed to generate tiles")
		return
	}

	utils.Success(c, "tiles generated", gin.H{"generated": len(missing)})
}

func normalizeMultiItem(isMulti bool, required int) int {
	if !isMulti {
		return 1
	}
	// Multi-item means more than one by definition.
	if required < 2 {
		return 2
	}
	return required
}

// CreateTile adds a single tile, guarding the board invariants: valid
// ring/path ranges, one tile per (board, ring, path), one center per board.
func CreateTile(c *gin.Context) {
	var req dto.CreateTileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, 1001, "invalid request body: "+err.Error())
		return
	}

	board := models.BoardType(req.Board)
	if !board.Valid() {
		utils.Error(c, http.StatusBadRequest, 1001, "invalid board, must be easy, medium or hard")
		return
	}
	if req.Title == "" {
		utils.Error(c, http.StatusBadRequest, 1001, "title is required")
		return
	}
	if req.Points < 0 {
		utils.Error(c, http.StatusBadRequest, 1001, "points must not be negative")
		return
	}

	tile := models.Tile{
		Board:               board,
		Title:               req.Title,
		Description:         req.Description,
		Points:              req.Points,
		IsCenter:            req.IsCenter,
		IsMultiItem:         req.IsMultiItem,
		RequiredSubmissions: normalizeMultiItem(req.IsMultiItem, req.RequiredSubmissions),
	}

	if req.IsCenter {
		var count int64
		database.DB.Model(&models.Tile{}).
			Where("board = ? AND is_center = ?", board, true).
			Count(&count)
		if count > 0 {
			utils.Error(c, http.StatusConflict, 4009, "this board already has a center tile")
			return
		}
		tile.Ring = 1
		tile.Path = 0
	} else {
		if req.Ring < 1 || req.Ring > models.NumRings {
			utils.Error(c, http.StatusBadRequest, 1002, "ring must be between 1 and 5")
			return
		}
		if req.Path < 0 || req.Path >= models.NumPaths {
			utils.Error(c, http.StatusBadRequest, 1002, "path must be between 0 and 2")
			return
		}
		var count int64
		database.DB.Model(&models.Tile{}).
			Where("board = ? AND ring = ? AND path = ? AND is_center = ?", board, req.Ring, req.Path, false).
			Count(&count)
		if count > 0 {
			utils.Error(c, http.StatusConflict, 4009, "a tile already exists at this ring and path")
			return
		}
		tile.Ring = req.Ring
		tile.Path = req.Path
	}

	if err := database.DB.Create(&tile).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, 5000, "failed to create tile")
		return
	}

	utils.Success(c, "tile created", gin.H{"id": tile.ID})
}

// UpdateTile edits tile config. Changing the multi-item settings can lower
// the completion bar, so the completion predicate is re-run for every team
// with approved submissions on this tile afterwards.
func UpdateTile(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, 1002, "invalid tile id")
		return
	}

	var tile models.Tile
	if err := database.DB.First(&tile, id).Error; err != nil {
		utils.Error(c, http.StatusNotFound, 4004, "tile not found")
		return
	}

	var req dto.UpdateTileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, 1001, "invalid request body: "+err.Error())
		return
	}

	if req.Title != nil {
		tile.Title = *req.Title
	}
	if req.Description != nil {
		tile.Description = *req.Description
	}
	if req.Points != nil {
		if *req.Points < 0 {
			utils.Error(c, http.StatusBadRequest, 1001, "points must not be negative")
			return
		}
		tile.Points = *req.Points
	}

	multiChanged := req.IsMultiItem != nil || req.RequiredSubmissions != nil
	if req.IsMultiItem != nil {
		tile.IsMultiItem = *req.IsMultiItem
	}
	if req.RequiredSubmissions != nil {
		tile.RequiredSubmissions = *req.RequiredSubmissions
	}
	tile.RequiredSubmissions = normalizeMultiItem(tile.IsMultiItem, tile.RequiredSubmissions)

	if err := database.DB.Save(&tile).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, 5000, "failed to update tile")
		return
	}

	if multiChanged {
		if err := services.RecheckTileCompletion(tile.ID); err != nil {
			utils.Error(c, http.StatusInternalServerError, 5000, "tile saved but completion re-check failed")
			return
		}
	}

	utils.Success(c, "tile updated", gin.H{"tile": tile})
}

func DeleteTile(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, 1002, "invalid tile id")
		return
	}

	if err := database.DB.Delete(&models.Tile{}, id).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, 5000, "failed to delete tile")
		return
	}

	utils.Success(c, "tile deleted", nil)
}
