package models

import (
	"time"
)

type SubmissionStatus string

const (
	SubmissionPending  SubmissionStatus = "pending"
	SubmissionApproved SubmissionStatus = "approved"
	SubmissionRejected SubmissionStatus = "rejected"
)

// Submission is one piece of screenshot evidence for a (team, tile) pair.
// It is created as pending and transitions exactly once to approved or
// rejected; the only way back to pending is the compensating rollback when
// a progress write fails after approval.
type Submission struct {
	ID              uint64           `gorm:"primarykey" json:"id"`
	TeamID          uint32           `gorm:"not null;index" json:"team_id"`
	Team            *Team            `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE" json:"team,omitempty"`
	TileID          uint32           `gorm:"not null;index" json:"tile_id"`
	Tile            *Tile            `gorm:"foreignKey:TileID;constraint:OnDelete:CASCADE" json:"tile,omitempty"`
	ImageURL        string           `gorm:"size:500;not null" json:"image_url"`
	Status          SubmissionStatus `gorm:"size:10;not null;default:'pending';index" json:"status"`
	RejectionReason string           `gorm:"type:text" json:"rejection_reason,omitempty"`
	SubmittedAt     time.Time        `json:"submitted_at"`
	ReviewedAt      *time.Time       `json:"reviewed_at,omitempty"`
	ReviewedBy      string           `gorm:"size:50" json:"reviewed_by,omitempty"`
}

func (Submission) TableName() string {
	return "submissions"
}
