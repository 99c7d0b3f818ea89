package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Placeholder endpoints kept for parity with the old Node server.
// Nothing here touches the real user table.

func (a *API) UserList(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"users": []gin.H{
			{"id": 1, "name": "user1", "email": "user1@example.com"},
			{"id": 2, "name": "user2", "email": "user2@example.com"},
		},
	})
}

type userCreateBody struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (a *API) UserCreate(c *gin.Context) {
	var data userCreateBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User created",
		"user": gin.H{
			"id":    time.Now().UnixMilli(),
			"name":  data.Name,
			"email": data.Email,
		},
	})
}
