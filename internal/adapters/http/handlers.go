package http

import (
	"errors"
	"net/http"

	"github.com/dkeye/imposter/internal/app"
	"github.com/dkeye/imposter/internal/content"
	"github.com/dkeye/imposter/internal/core"
	"github.com/gin-gonic/gin"
)

type handlers struct {
	gw              *app.Gateway
	bank            content.Bank
	defaultCategory string
}

type CategoriesResponse struct {
	Categories []string `json:"categories"`
	Default    string   `json:"default"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Rooms    int    `json:"rooms"`
	Sessions int    `json:"sessions"`
}

func (h *handlers) categories(c *gin.Context) {
	c.JSON(http.StatusOK, CategoriesResponse{
		Categories: h.bank.Categories(),
		Default:    h.defaultCategory,
	})
}

func (h *handlers) probeRoom(c *gin.Context) {
	probe, err := h.gw.Probe(c.Param("code"))
	if errors.Is(err, core.ErrRoomNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": app.ErrorText(err)})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, probe)
}

func (h *handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:   "ok",
		Rooms:    h.gw.Rooms.Len(),
		Sessions: h.gw.Registry.Len(),
	})
}
