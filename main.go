package main

import (
	"github.com/joho/godotenv"

	"livescore/internal/app"
)

// @title           Livescore API
// @version         1.0
// @description     Auth and sports-score backend for the livescore frontend.
// @BasePath        /
func main() {
	// .env — удобство локальной разработки; в деплое переменные уже в окружении
	_ = godotenv.Load()

	app.Run()
}
