package controllers

import (
	"net/http"

	"github.com/naoki6532b/cat-health-log/config"
	"github.com/naoki6532b/cat-health-log/services"

	"github.com/gin-gonic/gin"
)

func ListFoods(c *gin.Context) {
	svc := services.NewFoodService(config.DB)
	foods, err := svc.List()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, foods)
}

func GetFood(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	svc := services.NewFoodService(config.DB)
	food, err := svc.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, food)
}

func CreateFood(c *gin.Context) {
	var body services.FoodDraft
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	svc := services.NewFoodService(config.DB)
	food, err := svc.Create(body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, food)
}

func UpdateFood(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var body services.FoodPatch
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	svc := services.NewFoodService(config.DB)
	food, err := svc.Update(id, body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, food)
}

func DeleteFood(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	svc := services.NewFoodService(config.DB)
	if err := svc.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
