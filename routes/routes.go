package routes

import (
	"github.com/naoki6532b/cat-health-log/controllers"
	"github.com/naoki6532b/cat-health-log/middlewares"

	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	api := r.Group("/")
	api.Use(middlewares.PinMiddleware())
	{
		foods := api.Group("/foods")
		{
			foods.GET("", controllers.ListFoods)
			foods.POST("", controllers.CreateFood)
			foods.GET("/:id", controllers.GetFood)
			foods.PATCH("/:id", controllers.UpdateFood)
			foods.DELETE("/:id", controllers.DeleteFood)
		}

		meals := api.Group("/meals")
		{
			meals.GET("", controllers.ListMeals)
			meals.POST("", controllers.CreateMeal)
			meals.GET("/recent", controllers.RecentMeals)
			meals.GET("/group", controllers.MealSession)
			meals.POST("/leftover", controllers.RecordLeftover)
			meals.GET("/:id", controllers.GetMeal)
			meals.PATCH("/:id", controllers.UpdateMeal)
			meals.DELETE("/:id", controllers.DeleteMeal)
		}

		weights := api.Group("/weights")
		{
			weights.GET("", controllers.ListWeights)
			weights.POST("", controllers.CreateWeight)
			weights.PATCH("/:id", controllers.UpdateWeight)
			weights.DELETE("/:id", controllers.DeleteWeight)
		}

		elims := api.Group("/elims")
		{
			elims.GET("", controllers.ListElims)
			elims.POST("", controllers.CreateElim)
			elims.GET("/daily", controllers.DailyElims)
			elims.PATCH("/:id", controllers.UpdateElim)
			elims.DELETE("/:id", controllers.DeleteElim)
		}

		summary := api.Group("/summary")
		{
			summary.GET("/meals", controllers.SummaryMealRows)
			summary.GET("/days", controllers.SummaryMealDays)
			summary.GET("/sessions", controllers.SummarySessions)
			summary.GET("/weights", controllers.SummaryWeights)
		}

		api.GET("/ws/feed", controllers.FeedWS)
	}

	return r
}
