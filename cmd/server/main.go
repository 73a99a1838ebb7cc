package main

import (
	"log"

	"github.com/Palco-Teams-2/internal-dashboard/app"
)

func main() {
	app.MustInitServices()
	router, err := app.NewRouter()
	if err != nil {
		log.Fatalf("failed to initialize router: %v", err)
	}
	router.Run("0.0.0.0:8080")
}
