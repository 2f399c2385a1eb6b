package controllers

import (
	"net/http"

	"github.com/naoki6532b/cat-health-log/config"
	"github.com/naoki6532b/cat-health-log/services"

	"github.com/gin-gonic/gin"
)

func ListWeights(c *gin.Context) {
	svc := services.NewWeightService(config.DB)
	rows, err := svc.List(intQuery(c, "days", 365))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows})
}

func CreateWeight(c *gin.Context) {
	var body services.WeightDraft
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	svc := services.NewWeightService(config.DB)
	w, err := svc.Create(body)
	if err != nil {
		respondError(c, err)
		return
	}
	services.Feed().Broadcast("weight.created", w)
	c.JSON(http.StatusCreated, w)
}

func UpdateWeight(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var body services.WeightPatch
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	svc := services.NewWeightService(config.DB)
	w, err := svc.Update(id, body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

func DeleteWeight(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	svc := services.NewWeightService(config.DB)
	if err := svc.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
