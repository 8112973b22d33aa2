package models

import (
	"time"
)

// Setting is a key/value row for event configuration, e.g. the
// discord_webhook_url used for submission notifications.
type Setting struct {
	ID        uint32    `gorm:"primarykey" json:"-"`
	Key       string    `gorm:"size:100;unique;not null" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

const SettingDiscordWebhookURL = "discord_webhook_url"

func (Setting) TableName() string {
	return "settings"
}
