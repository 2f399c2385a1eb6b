package main

import (
	"os"

	"github.com/naoki6532b/cat-health-log/config"
	"github.com/naoki6532b/cat-health-log/routes"
)

func main() {
	config.InitDB()
	r := routes.SetupRouter()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
