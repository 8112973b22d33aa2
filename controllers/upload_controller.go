package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jordisipkens/spiral-race/services"
	"github.com/jordisipkens/spiral-race/utils"
)

const maxUploadSize = 5 * 1024 * 1024

var allowedImageExts = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// UploadEvidence accepts one screenshot and stores it under
// {team_id}/{tile_id}/{timestamp}-{rand}.{ext}, returning the durable URL
// the submission will reference.
func UploadEvidence(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		utils.Error(c, http.StatusBadRequest, 1001, "no file provided")
		return
	}

	teamID, err1 := strconv.Atoi(c.PostForm("team_id"))
	tileID, err2 := strconv.Atoi(c.PostForm("tile_id"))
	if err1 != nil || err2 != nil || teamID <= 0 || tileID <= 0 {
		utils.Error(c, http.StatusBadRequest, 1001, "missing team_id or tile_id")
		return
	}

	contentType := file.Header.Get("Content-Type")
	ext, ok := allowedImageExts[contentType]
	if !ok {
		utils.Error(c, http.StatusBadRequest, 1001, "invalid file type, upload a JPEG, PNG or WebP image")
		return
	}
	if file.Size > maxUploadSize {
		utils.Error(c, http.StatusBadRequest, 1001, "file too large, maximum size is 5MB")
		return
	}

	src, err := file.Open()
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, 5000, "failed to read uploaded file")
		return
	}
	defer src.Close()

	key := services.EvidenceKey(uint32(teamID), uint32(tileID), ext)
	url, err := services.Store.Save(key, contentType, src)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, 5000, "failed to store uploaded file")
		return
	}

	utils.Success(c, "upload complete", gin.H{"url": url, "path": key})
}
