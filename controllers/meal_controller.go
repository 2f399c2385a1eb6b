package controllers

import (
	"net/http"
	"strconv"

	"github.com/naoki6532b/cat-health-log/config"
	"github.com/naoki6532b/cat-health-log/services"

	"github.com/gin-gonic/gin"
)

func ListMeals(c *gin.Context) {
	svc := services.NewMealService(config.DB)
	meals, err := svc.List(intQuery(c, "limit", 50))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meals)
}

func RecentMeals(c *gin.Context) {
	svc := services.NewMealService(config.DB)
	meals, err := svc.Recent(intQuery(c, "limit", 3))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meals)
}

func GetMeal(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	svc := services.NewMealService(config.DB)
	meal, err := svc.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meal)
}

func CreateMeal(c *gin.Context) {
	var body services.MealDraft
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	svc := services.NewMealService(config.DB)
	meal, err := svc.Create(body)
	if err != nil {
		respondError(c, err)
		return
	}
	services.Feed().Broadcast("meal.created", meal)
	c.JSON(http.StatusCreated, meal)
}

func UpdateMeal(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var body services.MealPatch
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	svc := services.NewMealService(config.DB)
	meal, err := svc.Update(id, body)
	if err != nil {
		respondError(c, err)
		return
	}
	services.Feed().Broadcast("meal.updated", meal)
	c.JSON(http.StatusOK, meal)
}

func DeleteMeal(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	svc := services.NewMealService(config.DB)
	if err := svc.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	services.Feed().Broadcast("meal.deleted", gin.H{"id": id})
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// MealSession returns every entry of the feeding session containing
// ?anchor_id, with derived net values.
func MealSession(c *gin.Context) {
	anchor, err := strconv.ParseUint(c.Query("anchor_id"), 10, 32)
	if err != nil || anchor == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "anchor_id is required"})
		return
	}
	svc := services.NewMealService(config.DB)
	meals, err := svc.SessionOf(uint(anchor))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meals)
}

func RecordLeftover(c *gin.Context) {
	var body services.LeftoverRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	svc := services.NewMealService(config.DB)
	updated, err := svc.RecordLeftover(body)
	if err != nil {
		respondError(c, err)
		return
	}
	services.Feed().Broadcast("meal.leftover", gin.H{"anchor_id": body.AnchorID, "updated": updated})
	c.JSON(http.StatusOK, gin.H{"ok": true, "updated": updated})
}
