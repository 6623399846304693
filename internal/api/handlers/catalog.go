package handlers

import (
	"fmt"
	"net/http"

	"solar-thermal-sizing/internal/api/models"
	"solar-thermal-sizing/internal/data"
	"solar-thermal-sizing/internal/model"

	"github.com/gin-gonic/gin"
)

// ListCollectors handles GET /api/v1/collectors
func ListCollectors(c *gin.Context) {
	types := model.CollectorTypes()
	collectors := make([]models.CollectorInfo, 0, len(types))
	for _, ct := range types {
		p, err := model.CollectorFor(ct)
		if err != nil {
			continue
		}
		collectors = append(collectors, models.CollectorInfo{
			Type: string(p.Type),
			Eta0: p.Eta0,
			A1:   p.A1,
		})
	}

	c.JSON(http.StatusOK, gin.H{"collectors": collectors})
}

// ListClimates handles GET /api/v1/climates
func (h *SizingHandler) ListClimates(c *gin.Context) {
	datasets, err := data.ListDatasets(h.climateDir)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "CLIMATES_LOAD_ERROR",
				Message: fmt.Sprintf("Failed to list climate datasets: %v", err),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"climates": datasets,
		"count":    len(datasets),
	})
}
