package services

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jordisipkens/spiral-race/database"
	"github.com/jordisipkens/spiral-race/models"
)

const settingsCacheTTL = 60 * time.Second

func settingsCacheKey(key string) string {
	return "settings:" + key
}

// GetSetting reads one setting through the redis cache. The webhook URL is
// looked up on every submission creation, so a miss costs one select and a
// short-lived cache fill. An unset key returns "" without error; a nil
// redis client skips the cache entirely.
func GetSetting(ctx context.Context, key string) (string, error) {
	if database.RDB != nil {
		cached, err := database.RDB.Get(ctx, settingsCacheKey(key)).Result()
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, redis.Nil) {
			return "", err
		}
	}

	var setting models.Setting
	if err := database.DB.Where("key = ?", key).First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}

	if database.RDB != nil {
		_ = database.RDB.Set(ctx, settingsCacheKey(key), setting.Value, settingsCacheTTL).Err()
	}
	return setting.Value, nil
}

func GetAllSettings() (map[string]string, error) {
	var rows []models.Setting
	if err := database.DB.Find(&rows).Error; err != nil {
		return nil, err
	}
	settings := make(map[string]string, len(rows))
	for _, row := range rows {
		settings[row.Key] = row.Value
	}
	return settings, nil
}

// UpsertSetting writes a setting keyed on its unique key and drops the
// cache entry so the next read sees the new value.
func UpsertSetting(ctx context.Context, key, value string) error {
	setting := models.Setting{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}
	err := database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
	if err != nil {
		return err
	}

	if database.RDB != nil {
		_ = database.RDB.Del(ctx, settingsCacheKey(key)).Err()
	}
	return nil
}
