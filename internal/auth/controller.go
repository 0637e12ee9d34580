package auth

import (
	"errors"
	"github.com/gin-gonic/gin"
	"net/http"
)

type ControllerImpl struct {
	service Service
}

func NewControllerImpl(service Service) *ControllerImpl {
	return &ControllerImpl{service: service}
}

// Login handler
func (c *ControllerImpl) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	token, err := c.service.Login(ctx.Request.Context(), req)
	if errors.Is(err, ErrInvalidCredentials) {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		logger.Errorf("login %q: %v", req.Username, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	ctx.JSON(http.StatusOK, token)
}

func (c *ControllerImpl) RegisterRoutes(router gin.IRouter, limiters ...gin.HandlerFunc) {
	router.POST("/login", append(limiters, c.Login)...)
}
