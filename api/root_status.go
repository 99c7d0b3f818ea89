package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func (a *API) DBTest(c *gin.Context) {
	sqlDB, err := a.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Database connection failed",
			"error":   err.Error(),
		})

		zap.L().Error("Database ping failed", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Database connection test",
		"status":  viper.GetString("db.driver") + " ready",
	})
}

func (a *API) CacheTest(c *gin.Context) {
	if a.Redis == nil {
		c.JSON(http.StatusOK, gin.H{
			"message": "Cache test",
			"status":  "in-memory store ready",
		})
		return
	}

	if err := a.Redis.Ping(c.Request.Context()).Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Redis connection failed",
			"error":   err.Error(),
		})

		zap.L().Error("Redis ping failed", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cache test",
		"status":  "redis ready",
	})
}
