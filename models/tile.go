package models

import (
	"time"
)

type BoardType string

const (
	BoardEasy   BoardType = "easy"
	BoardMedium BoardType = "medium"
	BoardHard   BoardType = "hard"
)

// Boards lists the three tiers in display order. All boards are open from
// the start; there is no cross-board unlock.
var Boards = []BoardType{BoardEasy, BoardMedium, BoardHard}

func (b BoardType) Valid() bool {
	return b == BoardEasy || b == BoardMedium || b == BoardHard
}

const (
	NumRings = 5
	NumPaths = 3
)

// Tile is one segment of a board: 5 rings x 3 paths of regular tiles plus a
// single center capstone per board. Ring and Path are meaningless when
// IsCenter is set.
type Tile struct {
	ID                  uint32    `gorm:"primarykey" json:"id"`
	Board               BoardType `gorm:"size:10;not null;uniqueIndex:idx_board_ring_path" json:"board"`
	Ring                int       `gorm:"not null;uniqueIndex:idx_board_ring_path" json:"ring"`
	Path                int       `gorm:"not null;uniqueIndex:idx_board_ring_path" json:"path"`
	IsCenter            bool      `gorm:"not null;default:false;uniqueIndex:idx_board_ring_path" json:"is_center"`
	Title               string    `gorm:"size:100;not null" json:"title"`
	Description         string    `gorm:"type:text" json:"description"`
	Points              int       `gorm:"not null;default:0" json:"points"`
	IsMultiItem         bool      `gorm:"not null;default:false" json:"is_multi_item"`
	RequiredSubmissions int       `gorm:"not null;default:1" json:"required_submissions"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func (Tile) TableName() string {
	return "tiles"
}
