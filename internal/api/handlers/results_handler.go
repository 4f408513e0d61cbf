package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jardineria-aranjuez/reposicion/internal/catalog"
	"github.com/jardineria-aranjuez/reposicion/internal/service"
)

type ResultsHandler struct {
	service *service.ResultsService
}

func NewResultsHandler(service *service.ResultsService) *ResultsHandler {
	return &ResultsHandler{service: service}
}

// parseWeekRef reads year and week from query params, defaulting to the
// current ISO week.
func parseWeekRef(c *gin.Context) (int, int, bool) {
	nowYear, nowWeek := time.Now().ISOWeek()

	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(nowYear)))
	if err != nil || year < 2000 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
		return 0, 0, false
	}
	week, err := strconv.Atoi(c.DefaultQuery("week", strconv.Itoa(nowWeek)))
	if err != nil || week < 1 || week > 53 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid week"})
		return 0, 0, false
	}
	return year, week, true
}

// GetWeeks returns the stored (year, week) pairs, newest first.
func (h *ResultsHandler) GetWeeks(c *gin.Context) {
	weeks, err := h.service.GetWeeks(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"weeks": weeks})
}

// GetSections returns the sections with results for a week.
func (h *ResultsHandler) GetSections(c *gin.Context) {
	year, week, ok := parseWeekRef(c)
	if !ok {
		return
	}
	sections, err := h.service.GetSections(c.Request.Context(), year, week)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"year": year, "week": week, "sections": sections})
}

// GetBatchMetrics returns the batch summary and alerts for one section.
func (h *ResultsHandler) GetBatchMetrics(c *gin.Context) {
	year, week, ok := parseWeekRef(c)
	if !ok {
		return
	}
	section := c.Param("section")
	if _, known := catalog.Sections[section]; !known {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown section"})
		return
	}

	metrics, alerts, err := h.service.GetBatchMetrics(c.Request.Context(), year, week, section)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no results for this week and section"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"year":    year,
		"week":    week,
		"section": section,
		"metrics": metrics,
		"alerts":  alerts,
	})
}

// GetCorrections returns the corrected order lines for one section, largest
// corrections first.
func (h *ResultsHandler) GetCorrections(c *gin.Context) {
	year, week, ok := parseWeekRef(c)
	if !ok {
		return
	}
	section := c.Param("section")
	if _, known := catalog.Sections[section]; !known {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown section"})
		return
	}

	corrections, err := h.service.GetCorrections(c.Request.Context(), year, week, section)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"year":        year,
		"week":        week,
		"section":     section,
		"corrections": corrections,
		"total":       len(corrections),
	})
}
