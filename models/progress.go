package models

import (
	"time"
)

// Progress marks that a team has satisfied a tile's completion criterion.
// The (team_id, tile_id) pair is unique so concurrent qualifying approvals
// converge on one row. Rows are only ever deleted by an explicit admin
// reset of the whole team.
type Progress struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	TeamID      uint32    `gorm:"not null;uniqueIndex:idx_team_tile" json:"team_id"`
	TileID      uint32    `gorm:"not null;uniqueIndex:idx_team_tile" json:"tile_id"`
	Tile        *Tile     `gorm:"foreignKey:TileID;constraint:OnDelete:CASCADE" json:"tile,omitempty"`
	CompletedAt time.Time `json:"completed_at"`
}

func (Progress) TableName() string {
	return "progress"
}
