package jobs

import (
	"testing"
	"time"

	"github.com/ichi1107/bento-order-system/config"
	"github.com/ichi1107/bento-order-system/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDB(t *testing.T) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.PasswordResetToken{}))
	config.DB = db
}

func TestPurgeExpiredResetTokens(t *testing.T) {
	setupDB(t)

	now := time.Now()
	tokens := []models.PasswordResetToken{
		// Expired more than a day ago: purged
		{Token: "long-gone", Email: "a@example.com", ExpiresAt: now.Add(-48 * time.Hour)},
		// Expired recently: kept, redemption already rejects it
		{Token: "just-expired", Email: "b@example.com", ExpiresAt: now.Add(-time.Hour)},
		// Still valid: kept
		{Token: "fresh", Email: "c@example.com", ExpiresAt: now.Add(time.Hour)},
	}
	for i := range tokens {
		require.NoError(t, config.DB.Create(&tokens[i]).Error)
	}

	PurgeExpiredResetTokens()

	var remaining []models.PasswordResetToken
	require.NoError(t, config.DB.Order("token").Find(&remaining).Error)
	require.Len(t, remaining, 2)
	assert.Equal(t, "fresh", remaining[0].Token)
	assert.Equal(t, "just-expired", remaining[1].Token)
}

func TestPurgeOnEmptyTable(t *testing.T) {
	setupDB(t)
	assert.NotPanics(t, PurgeExpiredResetTokens)
}
