package jobs

import (
	"time"

	"github.com/ichi1107/bento-order-system/config"
	"github.com/ichi1107/bento-order-system/models"

	"github.com/sirupsen/logrus"
)

// PurgeExpiredResetTokens deletes password reset tokens that expired more
// than a day ago. Redemption checks expiry itself, so this is housekeeping
// that keeps the table from growing, not an enforcement step.
func PurgeExpiredResetTokens() {
	cutoff := time.Now().Add(-24 * time.Hour)

	result := config.DB.Where("expires_at < ?", cutoff).Delete(&models.PasswordResetToken{})
	if result.Error != nil {
		logrus.Errorf("Failed to purge expired reset tokens with error: %+v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		logrus.Infof("Purged %d expired password reset tokens", result.RowsAffected)
	}
}
