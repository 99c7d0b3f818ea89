// Package service holds background workers that keep server state tidy
package service

import (
	"time"

	"cliphaus/video-finder/model"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TokenCleanup periodically removes verification tokens that expired
// without ever being used
func TokenCleanup(t time.Duration, db *gorm.DB) {
	ticker := time.NewTicker(t)

	zap.L().Debug("Token cleanup attached", zap.Duration("tick_every", t))

	go func() {
		for range ticker.C {
			res := db.
				Where("expires_at < ? AND used = ?", time.Now(), false).
				Delete(model.VerificationToken{})
			if res.Error != nil {
				zap.L().Error("Failed to cleanup expired tokens", zap.Error(res.Error))
				continue
			}

			if res.RowsAffected > 0 {
				zap.L().Debug("Cleaned up expired tokens", zap.Int64("count", res.RowsAffected))
			}
		}
	}()
}
