package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jordisipkens/spiral-race/database"
	"github.com/jordisipkens/spiral-race/dto"
	"github.com/jordisipkens/spiral-race/models"
	"github.com/jordisipkens/spiral-race/services"
	"github.com/jordisipkens/spiral-race/utils"
)

// AdminListSubmissions is the review queue. Exact statuses come back oldest
// first so reviewers work FIFO; status=reviewed is the composite
// approved-or-rejected history, newest review first.
func AdminListSubmissions(c *gin.Context) {
	status := c.DefaultQuery("status", "pending")

	db := database.DB.Preload("Team").Preload("Tile")

	switch status {
	case "reviewed":
		db = db.Where("status IN ?", []models.SubmissionStatus{
			models.SubmissionApproved, models.SubmissionRejected,
		}).Order("reviewed_at desc")
	case string(models.SubmissionPending), string(models.SubmissionApproved), string(models.SubmissionRejected):
		db = db.Where("status = ?", status).Order("submitted_at asc")
	default:
		utils.Error(c, http.StatusBadRequest, 1001, "invalid status filter")
		return
	}

	var submissions []models.Submission
	if err := db.Find(&submissions).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, 5000, "failed to fetch submissions")
		return
	}

	utils.Success(c, "success", gin.H{"submissions": submissions})
}

// ReviewSubmission approves or rejects one pending submission.
func ReviewSubmission(c *gin.Context) {
	var req dto.ReviewSubmissionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, 1001, "invalid request body: "+err.Error())
		return
	}
	req.Normalize()

	if req.ID == 0 {
		utils.Error(c, http.StatusBadRequest, 1001, "submission id is required")
		return
	}

	result, err := services.ReviewSubmission(req.ID, req.Action, req.RejectionReason, "admin")
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidAction):
			utils.Error(c, http.StatusBadRequest, 1001, err.Error())
		case errors.Is(err, services.ErrSubmissionNotFound):
			utils.Error(c, http.StatusNotFound, 4004, err.Error())
		case errors.Is(err, services.ErrAlreadyReviewed):
			utils.Error(c, http.StatusConflict, 4009, err.Error())
		case errors.Is(err, services.ErrRollbackFailed):
			utils.Error(c, http.StatusInternalServerError, 5000, err.Error())
		case errors.Is(err, services.ErrProgressRolledBack):
			utils.Error(c, http.StatusInternalServerError, 5001, err.Error())
		default:
			utils.Error(c, http.StatusInternalServerError, 5000, "failed to process submission")
		}
		return
	}

	utils.Success(c, "submission "+string(result.Submission.Status), result)
}
