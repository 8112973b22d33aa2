package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jordisipkens/spiral-race/database"
	"github.com/jordisipkens/spiral-race/models"
)

const (
	ReviewActionApprove = "approve"
	ReviewActionReject  = "reject"
)

var (
	ErrInvalidAction      = errors.New("invalid action, must be approve or reject")
	ErrSubmissionNotFound = errors.New("submission not found")
	// ErrAlreadyReviewed covers both a stale client and the loser of two
	// concurrent reviews of the same submission.
	ErrAlreadyReviewed = errors.New("submission has already been reviewed")
	// ErrProgressRolledBack means the approval was undone because the
	// progress write failed; the submission is pending again.
	ErrProgressRolledBack = errors.New("failed to update progress, submission rolled back")
	// ErrRollbackFailed means the compensating write itself failed and the
	// submission is stuck approved without progress. Operator territory.
	ErrRollbackFailed = errors.New("progress write and rollback both failed, manual reconciliation required")
)

type ReviewResult struct {
	Submission      models.Submission `json:"submission"`
	ApprovedCount   int               `json:"approved_count"`
	RequiredCount   int               `json:"required_count"`
	ProgressCreated bool              `json:"progress_created"`
}

// ReviewSubmission applies the pending -> approved/rejected transition and,
// on approval, turns a satisfied completion criterion into a progress row.
//
// The status flip is a conditional update keyed on the current status, so
// of two concurrent reviews exactly one sees a row affected. The approved
// count is taken after the flip, never from a pre-transition snapshot. If
// the progress upsert fails the flip is compensated with a single write
// back to pending; approval only counts once both writes have succeeded.
func ReviewSubmission(id uint64, action, reason, reviewer string) (*ReviewResult, error) {
	if action != ReviewActionApprove && action != ReviewActionReject {
		return nil, ErrInvalidAction
	}

	var submission models.Submission
	if err := database.DB.Preload("Tile").First(&submission, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}
	if submission.Status != models.SubmissionPending {
		return nil, ErrAlreadyReviewed
	}

	status := models.SubmissionApproved
	if action == ReviewActionReject {
		status = models.SubmissionRejected
	}
	now := time.Now().UTC()

	updates := map[string]interface{}{
		"status":      status,
		"reviewed_at": now,
		"reviewed_by": reviewer,
	}
	if action == ReviewActionReject && reason != "" {
		updates["rejection_reason"] = reason
	}

	res := database.DB.Model(&models.Submission{}).
		Where("id = ? AND status = ?", id, models.SubmissionPending).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrAlreadyReviewed
	}

	submission.Status = status
	submission.ReviewedAt = &now
	submission.ReviewedBy = reviewer
	if action == ReviewActionReject {
		if reason != "" {
			submission.RejectionReason = reason
		}
		return &ReviewResult{Submission: submission}, nil
	}

	var approvedCount int64
	if err := database.DB.Model(&models.Submission{}).
		Where("team_id = ? AND tile_id = ? AND status = ?",
			submission.TeamID, submission.TileID, models.SubmissionApproved).
		Count(&approvedCount).Error; err != nil {
		return nil, err
	}

	required := 1
	if submission.Tile != nil {
		required = RequiredCount(*submission.Tile)
	}

	result := &ReviewResult{
		Submission:    submission,
		ApprovedCount: int(approvedCount),
		RequiredCount: required,
	}

	if int(approvedCount) >= required {
		if err := UpsertProgress(submission.TeamID, submission.TileID); err != nil {
			rollback := database.DB.Model(&models.Submission{}).
				Where("id = ?", id).
				Updates(map[string]interface{}{
					"status":      models.SubmissionPending,
					"reviewed_at": nil,
					"reviewed_by": "",
				})
			if rollback.Error != nil {
				return nil, fmt.Errorf("%w: %v", ErrRollbackFailed, rollback.Error)
			}
			return nil, fmt.Errorf("%w: %v", ErrProgressRolledBack, err)
		}
		result.ProgressCreated = true
	}

	return result, nil
}

// UpsertProgress records that a team has satisfied a tile. Keyed on the
// unique (team_id, tile_id) pair: a second qualifying approval refreshes
// completed_at instead of inserting a duplicate.
func UpsertProgress(teamID, tileID uint32) error {
	progress := models.Progress{
		TeamID:      teamID,
		TileID:      tileID,
		CompletedAt: time.Now().UTC(),
	}
	return database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "team_id"}, {Name: "tile_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"completed_at"}),
	}).Create(&progress).Error
}

// DeleteProgress removes a single progress row, the manual admin correction
// path.
func DeleteProgress(teamID, tileID uint32) error {
	return database.DB.
		Where("team_id = ? AND tile_id = ?", teamID, tileID).
		Delete(&models.Progress{}).Error
}

// ResetTeamProgress bulk-deletes every progress row of one team. This is
// the only other deletion path for progress.
func ResetTeamProgress(teamID uint32) error {
	return database.DB.Where("team_id = ?", teamID).Delete(&models.Progress{}).Error
}

// RecheckTileCompletion re-runs the completion predicate for every team
// with approved submissions on a tile. Lowering required_submissions can
// retroactively satisfy teams that already cleared the new bar; this picks
// them up without a new submission. Idempotent for teams that already hold
// progress.
func RecheckTileCompletion(tileID uint32) error {
	var tile models.Tile
	if err := database.DB.First(&tile, tileID).Error; err != nil {
		return err
	}
	required := RequiredCount(tile)

	type teamCount struct {
		TeamID uint32
		Total  int
	}
	var counts []teamCount
	if err := database.DB.Model(&models.Submission{}).
		Select("team_id, COUNT(*) as total").
		Where("tile_id = ? AND status = ?", tileID, models.SubmissionApproved).
		Group("team_id").
		Scan(&counts).Error; err != nil {
		return err
	}

	for _, tc := range counts {
		if tc.Total < required {
			continue
		}
		if err := UpsertProgress(tc.TeamID, tileID); err != nil {
			return err
		}
	}
	return nil
}
