package controllers

import (
	"net/http"

	"github.com/naoki6532b/cat-health-log/config"
	"github.com/naoki6532b/cat-health-log/services"

	"github.com/gin-gonic/gin"
)

func elimService() *services.ElimService {
	return services.NewElimService(config.DB, config.ReportLocation())
}

func ListElims(c *gin.Context) {
	rows, err := elimService().List(intQuery(c, "days", 14))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows})
}

func CreateElim(c *gin.Context) {
	var body services.ElimDraft
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	e, err := elimService().Create(body)
	if err != nil {
		respondError(c, err)
		return
	}
	services.Feed().Broadcast("elim.created", e)
	c.JSON(http.StatusCreated, e)
}

func UpdateElim(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var body services.ElimPatch
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	e, err := elimService().Update(id, body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func DeleteElim(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := elimService().Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// DailyElims feeds the litter-box chart: zero-filled per-day counts.
func DailyElims(c *gin.Context) {
	rows, err := elimService().Daily(intQuery(c, "days", 30))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
