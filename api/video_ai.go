package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type videoAIBody struct {
	SelectedVideo string `json:"selectedVideo"`
	SelectedCount string `json:"selectedCount"`
	SelectedType  string `json:"selectedType"`
	Prompt        string `json:"prompt"`
}

// VideoAI forwards a prompt to the remote clipping agent and relays
// whatever JSON comes back. The agent's response shape varies by
// pipeline; normalizing it is the client's job, so the body passes
// through untouched.
func (a *API) VideoAI(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	endpoint := viper.GetString("ai.endpoint")
	if endpoint == "" {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
			"error":     "AI agent endpoint is not configured",
			"requestID": requestID,
		})
		return
	}

	var data videoAIBody
	if err := c.ShouldBind(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	if data.SelectedVideo == "" || data.Prompt == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "selectedVideo and prompt are required",
			"requestID": requestID,
		})
		return
	}

	// The agent keys its conversation state on the session ID, so
	// every job gets a fresh one
	payload, err := json.Marshal(gin.H{
		"selectedVideo": data.SelectedVideo,
		"selectedCount": data.SelectedCount,
		"selectedType":  data.SelectedType,
		"prompt":        data.Prompt,
		"sessionId":     uuid.NewString(),
	})
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})
		return
	}

	timeout := time.Duration(viper.GetInt("ai.timeout")) * time.Second
	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to build agent request", zap.Error(err), zap.String("requestID", requestID))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{
			"error":     "AI agent is unreachable",
			"requestID": requestID,
		})

		zap.L().Error("AI agent request failed", zap.Error(err), zap.String("requestID", requestID))
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{
			"error":     "Failed to read AI agent response",
			"requestID": requestID,
		})

		zap.L().Error("Failed to read agent response", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	zap.L().Debug("Agent settled",
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)),
		zap.String("requestID", requestID),
	)

	c.Data(resp.StatusCode, "application/json", body)
}
