package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordisipkens/spiral-race/database"
	"github.com/jordisipkens/spiral-race/models"
	"github.com/jordisipkens/spiral-race/testutil"
)

func countProgress(t *testing.T, teamID, tileID uint32) int64 {
	t.Helper()
	var count int64
	err := database.DB.Model(&models.Progress{}).
		Where("team_id = ? AND tile_id = ?", teamID, tileID).
		Count(&count).Error
	require.NoError(t, err)
	return count
}

func TestReviewInvalidAction(t *testing.T) {
	testutil.SetupDB(t)

	_, err := ReviewSubmission(1, "escalate", "", "admin")
	assert.ErrorIs(t, err, ErrInvalidAction)
}

func TestReviewSubmissionNotFound(t *testing.T) {
	testutil.SetupDB(t)

	_, err := ReviewSubmission(999, ReviewActionApprove, "", "admin")
	assert.ErrorIs(t, err, ErrSubmissionNotFound)
}

func TestApproveSingleSubmissionCreatesProgress(t *testing.T) {
	testutil.SetupDB(t)
	team := testutil.CreateTeam(t, "Iron Scousers", "iron-scousers")
	tile := testutil.CreateTile(t, models.Tile{Board: models.BoardEasy, Ring: 1, Path: 0, Title: "Easy R1P1", Points: 10})
	sub := testutil.CreateSubmission(t, team.ID, tile.ID)

	result, err := ReviewSubmission(sub.ID, ReviewActionApprove, "", "admin")
	require.NoError(t, err)

	assert.Equal(t, models.SubmissionApproved, result.Submission.Status)
	assert.Equal(t, 1, result.ApprovedCount)
	assert.Equal(t, 1, result.RequiredCount)
	assert.True(t, result.ProgressCreated)
	assert.EqualValues(t, 1, countProgress(t, team.ID, tile.ID))

	var stored models.Submission
	require.NoError(t, database.DB.First(&stored, sub.ID).Error)
	assert.Equal(t, models.SubmissionApproved, stored.Status)
	assert.NotNil(t, stored.ReviewedAt)
	assert.Equal(t, "admin", stored.ReviewedBy)

	var progress models.Progress
	require.NoError(t, database.DB.Where("team_id = ?", team.ID).First(&progress).Error)
	assert.False(t, progress.CompletedAt.IsZero())
}

func TestRejectSubmissionNoProgress(t *testing.T) {
	testutil.SetupDB(t)
	team := testutil.CreateTeam(t, "Iron Scousers", "iron-scousers")
	tile := testutil.CreateTile(t, models.Tile{Board: models.BoardEasy, Ring: 1, Path: 0, Title: "Easy R1P1"})
	sub := testutil.CreateSubmission(t, team.ID, tile.ID)

	result, err := ReviewSubmission(sub.ID, ReviewActionReject, "screenshot is cropped", "admin")
	require.NoError(t, err)

	assert.Equal(t, models.SubmissionRejected, result.Submission.Status)
	assert.False(t, result.ProgressCreated)
	assert.EqualValues(t, 0, countProgress(t, team.ID, tile.ID))

	var stored models.Submission
	require.NoError(t, database.DB.First(&stored, sub.ID).Error)
	assert.Equal(t, "screenshot is cropped", stored.RejectionReason)
}

func TestReReviewIsConflict(t *testing.T) {
	testutil.SetupDB(t)
	team := testutil.CreateTeam(t, "Iron Scousers", "iron-scousers")
	tile := testutil.CreateTile(t, models.Tile{Board: models.BoardEasy, Ring: 1, Path: 0, Title: "Easy R1P1"})
	sub := testutil.CreateSubmission(t, team.ID, tile.ID)

	_, err := ReviewSubmission(sub.ID, ReviewActionApprove, "", "admin")
	require.NoError(t, err)

	_, err = ReviewSubmission(sub.ID, ReviewActionApprove, "", "admin")
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
	_, err = ReviewSubmission(sub.ID, ReviewActionReject, "", "admin")
	assert.ErrorIs(t, err, ErrAlreadyReviewed)

	// No duplicate progress, no state change.
	assert.EqualValues(t, 1, countProgress(t, team.ID, tile.ID))
	var stored models.Submission
	require.NoError(t, database.DB.First(&stored, sub.ID).Error)
	assert.Equal(t, models.SubmissionApproved, stored.Status)
}

func TestMultiItemTileProgressThreshold(t *testing.T) {
	testutil.SetupDB(t)
	team := testutil.CreateTeam(t, "Iron Scousers", "iron-scousers")
	tile := testutil.CreateTile(t, models.Tile{
		Board: models.BoardMedium, Ring: 2, Path: 1, Title: "Collect 3 uniques",
		IsMultiItem: true, RequiredSubmissions: 3,
	})

	first := testutil.CreateSubmission(t, team.ID, tile.ID)
	second := testutil.CreateSubmission(t, team.ID, tile.ID)
	third := testutil.CreateSubmission(t, team.ID, tile.ID)

	result, err := ReviewSubmission(first.ID, ReviewActionApprove, "", "admin")
	require.NoError(t, err)
	assert.Equal(t, 1, result.ApprovedCount)
	assert.Equal(t, 3, result.RequiredCount)
	assert.False(t, result.ProgressCreated)
	assert.EqualValues(t, 0, countProgress(t, team.ID, tile.ID))

	result, err = ReviewSubmission(second.ID, ReviewActionApprove, "", "admin")
	require.NoError(t, err)
	assert.False(t, result.ProgressCreated)
	assert.EqualValues(t, 0, countProgress(t, team.ID, tile.ID))

	result, err = ReviewSubmission(third.ID, ReviewActionApprove, "", "admin")
	require.NoError(t, err)
	assert.Equal(t, 3, result.ApprovedCount)
	assert.True(t, result.ProgressCreated)
	assert.EqualValues(t, 1, countProgress(t, team.ID, tile.ID))
}

func TestTwoApprovalsOneProgressRecord(t *testing.T) {
	testutil.SetupDB(t)
	team := testutil.CreateTeam(t, "Iron Scousers", "iron-scousers")
	tile := testutil.CreateTile(t, models.Tile{
		Board: models.BoardEasy, Ring: 1, Path: 1, Title: "Pair drop",
		IsMultiItem: true, RequiredSubmissions: 2,
	})

	first := testutil.CreateSubmission(t, team.ID, tile.ID)
	second := testutil.CreateSubmission(t, team.ID, tile.ID)
	third := testutil.CreateSubmission(t, team.ID, tile.ID)

	_, err := ReviewSubmission(first.ID, ReviewActionApprove, "", "admin")
	require.NoError(t, err)
	_, err = ReviewSubmission(second.ID, ReviewActionApprove, "", "admin")
	require.NoError(t, err)

	// A third approval past the threshold upserts, never duplicates.
	result, err := ReviewSubmission(third.ID, ReviewActionApprove, "", "admin")
	require.NoError(t, err)
	assert.True(t, result.ProgressCreated)
	assert.EqualValues(t, 1, countProgress(t, team.ID, tile.ID))
}

func TestUpsertProgressIdempotent(t *testing.T) {
	testutil.SetupDB(t)
	team := testutil.CreateTeam(t, "Iron Scousers", "iron-scousers")
	tile := testutil.CreateTile(t, models.Tile{Board: models.BoardEasy, Ring: 1, Path: 0, Title: "Easy R1P1"})

	require.NoError(t, UpsertProgress(team.ID, tile.ID))
	var first models.Progress
	require.NoError(t, database.DB.Where("team_id = ?", team.ID).First(&first).Error)

	require.NoError(t, UpsertProgress(team.ID, tile.ID))
	assert.EqualValues(t, 1, countProgress(t, team.ID, tile.ID))

	var second models.Progress
	require.NoError(t, database.DB.Where("team_id = ?", team.ID).First(&second).Error)
	assert.Equal(t, first.ID, second.ID)
	assert.False(t, second.CompletedAt.Before(first.CompletedAt))
}

func TestApproveRollsBackWhenProgressWriteFails(t *testing.T) {
	db := testutil.SetupDB(t)
	team := testutil.CreateTeam(t, "Iron Scousers", "iron-scousers")
	tile := testutil.CreateTile(t, models.Tile{Board: models.BoardEasy, Ring: 1, Path: 0, Title: "Easy R1P1"})
	sub := testutil.CreateSubmission(t, team.ID, tile.ID)

	// Make the progress upsert fail after the status flip succeeded.
	require.NoError(t, db.Migrator().DropTable(&models.Progress{}))

	_, err := ReviewSubmission(sub.ID, ReviewActionApprove, "", "admin")
	assert.ErrorIs(t, err, ErrProgressRolledBack)

	// The compensating write put the submission back in the queue.
	var stored models.Submission
	require.NoError(t, database.DB.First(&stored, sub.ID).Error)
	assert.Equal(t, models.SubmissionPending, stored.Status)
	assert.Nil(t, stored.ReviewedAt)
	assert.Empty(t, stored.ReviewedBy)
}

func TestRecheckAfterLoweringRequiredSubmissions(t *testing.T) {
	testutil.SetupDB(t)
	team := testutil.CreateTeam(t, "Iron Scousers", "iron-scousers")
	tile := testutil.CreateTile(t, models.Tile{
		Board: models.BoardHard, Ring: 4, Path: 2, Title: "Triple drop",
		IsMultiItem: true, RequiredSubmissions: 3,
	})

	first := testutil.CreateSubmission(t, team.ID, tile.ID)
	second := testutil.CreateSubmission(t, team.ID, tile.ID)
	_, err := ReviewSubmission(first.ID, ReviewActionApprove, "", "admin")
	require.NoError(t, err)
	_, err = ReviewSubmission(second.ID, ReviewActionApprove, "", "admin")
	require.NoError(t, err)
	require.EqualValues(t, 0, countProgress(t, team.ID, tile.ID))

	// Admin lowers the bar from 3 to 2; the team already cleared it.
	require.NoError(t, database.DB.Model(&models.Tile{}).
		Where("id = ?", tile.ID).
		Update("required_submissions", 2).Error)

	require.NoError(t, RecheckTileCompletion(tile.ID))
	assert.EqualValues(t, 1, countProgress(t, team.ID, tile.ID))

	// Re-running the check stays idempotent.
	require.NoError(t, RecheckTileCompletion(tile.ID))
	assert.EqualValues(t, 1, countProgress(t, team.ID, tile.ID))
}

func TestRecheckIgnoresTeamsBelowThreshold(t *testing.T) {
	testutil.SetupDB(t)
	cleared := testutil.CreateTeam(t, "Cleared", "cleared")
	behind := testutil.CreateTeam(t, "Behind", "behind")
	tile := testutil.CreateTile(t, models.Tile{
		Board: models.BoardEasy, Ring: 2, Path: 0, Title: "Pair drop",
		IsMultiItem: true, RequiredSubmissions: 2,
	})

	for _, teamID := range []uint32{cleared.ID, cleared.ID, behind.ID} {
		sub := testutil.CreateSubmission(t, teamID, tile.ID)
		_, err := ReviewSubmission(sub.ID, ReviewActionApprove, "", "admin")
		require.NoError(t, err)
	}

	require.NoError(t, RecheckTileCompletion(tile.ID))
	assert.EqualValues(t, 1, countProgress(t, cleared.ID, tile.ID))
	assert.EqualValues(t, 0, countProgress(t, behind.ID, tile.ID))
}

func TestResetTeamProgress(t *testing.T) {
	testutil.SetupDB(t)
	team := testutil.CreateTeam(t, "Iron Scousers", "iron-scousers")
	other := testutil.CreateTeam(t, "Rivals", "rivals")
	tileA := testutil.CreateTile(t, models.Tile{Board: models.BoardEasy, Ring: 1, Path: 0, Title: "A"})
	tileB := testutil.CreateTile(t, models.Tile{Board: models.BoardEasy, Ring: 1, Path: 1, Title: "B"})

	require.NoError(t, UpsertProgress(team.ID, tileA.ID))
	require.NoError(t, UpsertProgress(team.ID, tileB.ID))
	require.NoError(t, UpsertProgress(other.ID, tileA.ID))

	require.NoError(t, ResetTeamProgress(team.ID))

	assert.EqualValues(t, 0, countProgress(t, team.ID, tileA.ID))
	assert.EqualValues(t, 0, countProgress(t, team.ID, tileB.ID))
	assert.EqualValues(t, 1, countProgress(t, other.ID, tileA.ID))
}
