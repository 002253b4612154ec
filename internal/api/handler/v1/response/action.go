package response

import (
	"github.com/gin-gonic/gin"

	"github.com/careerfair/jobfair-api/internal/domain"
)

type Action struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Render(ctx *gin.Context, status int, message string, data interface{}) {
	ctx.JSON(status, Action{
		Success: true,
		Message: message,
		Data:    data,
	})
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}
