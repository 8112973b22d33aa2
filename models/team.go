package models

import (
	"time"
)

// Team is identified publicly by its slug; the board page at /team/{slug}
// is the only "credential" a team holds.
type Team struct {
	ID        uint32    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Slug      string    `gorm:"size:100;unique;not null" json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

func (Team) TableName() string {
	return "teams"
}
