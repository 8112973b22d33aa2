package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordisipkens/spiral-race/models"
	"github.com/jordisipkens/spiral-race/testutil"
)

func TestSettingsUpsertAndGet(t *testing.T) {
	testutil.SetupDB(t)
	ctx := context.Background()

	val, err := GetSetting(ctx, models.SettingDiscordWebhookURL)
	require.NoError(t, err)
	assert.Empty(t, val)

	require.NoError(t, UpsertSetting(ctx, models.SettingDiscordWebhookURL, "https://discord.example/hook"))
	val, err = GetSetting(ctx, models.SettingDiscordWebhookURL)
	require.NoError(t, err)
	assert.Equal(t, "https://discord.example/hook", val)

	// Upsert on the same key replaces, never duplicates.
	require.NoError(t, UpsertSetting(ctx, models.SettingDiscordWebhookURL, "https://discord.example/hook2"))
	all, err := GetAllSettings()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		models.SettingDiscordWebhookURL: "https://discord.example/hook2",
	}, all)
}
