package main

import (
	"log"

	"github.com/VendleServices/vendle-backend/internal/app"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found, relying on the process environment")
	}
	app.Run()
}
