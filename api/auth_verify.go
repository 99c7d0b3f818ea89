package api

import (
	"fmt"
	"net/http"
	"time"

	"cliphaus/video-finder/model"
	"cliphaus/video-finder/security"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type sendVerificationBody struct {
	Email string `json:"email"`
}

// SendVerification issues a fresh verification token for an account
// that hasn't confirmed its email yet. There is no mail collaborator
// in this deployment; the link is written to the server log and
// operators hand it out of band.
func (a *API) SendVerification(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data sendVerificationBody
	if err := c.ShouldBind(&data); err != nil || data.Email == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Email field can't be empty",
			"requestID": requestID,
		})
		return
	}

	var user model.User
	if err := a.DB.Where("email = ?", data.Email).First(&user).Error; err != nil {
		// Don't leak which addresses exist
		c.JSON(http.StatusOK, gin.H{
			"message": "If the address is registered a verification link has been issued",
		})
		return
	}

	if user.Verified {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Account is already verified",
			"requestID": requestID,
		})
		return
	}

	expireAt := time.Now().Add(time.Minute * 30)

	verifToken, err := security.MakeVerificationToken(&security.VerificationTokenOpts{
		UserID:    user.ID,
		Purpose:   "email_verify",
		ExpiresAt: &expireAt,
	})
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate verification token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := a.DB.Create(verifToken).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to save verification token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	logVerificationLink(user.ID, verifToken.Token)

	c.JSON(http.StatusOK, gin.H{
		"message": "If the address is registered a verification link has been issued",
	})
}

// VerifyEmail marks an account as verified when presented with a
// valid, unused, unexpired token.
func (a *API) VerifyEmail(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	token := c.Query("token")
	if token == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "No verification token provided",
			"requestID": requestID,
		})
		return
	}

	userID := c.Query("user_id")
	if userID == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "No user ID provided",
			"requestID": requestID,
		})
		return
	}

	var verifRecord model.VerificationToken

	err := a.DB.
		Where("user_id = ? AND token = ?", userID, token).
		First(&verifRecord).
		Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error":     "Token expired or invalid",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to get verification token record", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if verifRecord.Used {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Token was used already",
			"requestID": requestID,
		})
		return
	}

	if verifRecord.ExpiresAt.Before(time.Now()) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Token expired",
			"requestID": requestID,
		})
		return
	}

	err = a.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.VerificationToken{}).
			Where("user_id = ? AND token = ?", userID, token).
			Updates(map[string]any{
				"used":    true,
				"used_at": time.Now(),
			}).Error; err != nil {
			return err
		}

		if err := tx.Model(&model.User{}).
			Where("id = ?", userID).
			Update("verified", true).Error; err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Failed to validate user",
			"requestID": requestID,
		})

		zap.L().Error("Failed to update user and token in transaction", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "User validated successfully",
		"requestID": requestID,
	})
}

func logVerificationLink(userID, token string) {
	link := fmt.Sprintf("http://%v/api/auth/verify-email?user_id=%v&token=%v",
		viper.GetString("host.domain"), userID, token)

	zap.L().Info("Verification link issued", zap.String("link", link))
}
