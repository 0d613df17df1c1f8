package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/steveyiyo/tts-clone-backend/pkg/types"
)

type HealthHandler struct {
	Storage func() string
}

func NewHealthHandler(storage func() string) *HealthHandler {
	return &HealthHandler{Storage: storage}
}

func (h *HealthHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, types.HealthResp{Status: "ok", Storage: h.Storage()})
}
