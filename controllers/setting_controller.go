package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jordisipkens/spiral-race/dto"
	"github.com/jordisipkens/spiral-race/services"
	"github.com/jordisipkens/spiral-race/utils"
)

func GetSettings(c *gin.Context) {
	settings, err := services.GetAllSettings()
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, 5000, "failed to fetch settings")
		return
	}

	utils.Success(c, "success", gin.H{"settings": settings})
}

func UpdateSetting(c *gin.Context) {
	var req dto.UpdateSettingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, 1001, "key is required")
		return
	}

	if err := services.UpsertSetting(c.Request.Context(), req.Key, req.Value); err != nil {
		utils.Error(c, http.StatusInternalServerError, 5000, "failed to update setting")
		return
	}

	utils.Success(c, "setting updated", nil)
}
