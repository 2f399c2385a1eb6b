package controllers

import (
	"net/http"

	"github.com/naoki6532b/cat-health-log/config"
	"github.com/naoki6532b/cat-health-log/services"

	"github.com/gin-gonic/gin"
)

func summaryService() *services.SummaryService {
	return services.NewSummaryService(config.DB, config.ReportLocation())
}

// SummaryMealRows is the flat per-entry chart feed with net values.
func SummaryMealRows(c *gin.Context) {
	rows, err := summaryService().MealRows(intQuery(c, "days", 30))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// SummaryMealDays is the zero-filled daily rollup.
func SummaryMealDays(c *gin.Context) {
	rows, err := summaryService().MealDays(intQuery(c, "days", 30))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// SummarySessions lists 15-minute feeding sessions with net totals.
func SummarySessions(c *gin.Context) {
	rows, err := summaryService().Sessions(intQuery(c, "days", 30))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// SummaryWeights returns measurements with a trailing average over the
// observed points (not calendar days — weight is logged sparsely).
func SummaryWeights(c *gin.Context) {
	rows, err := summaryService().WeightTrend(intQuery(c, "days", 365), intQuery(c, "window", 7))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
