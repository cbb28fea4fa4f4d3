package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/accesshub/campus-back/internal/api"
	"github.com/accesshub/campus-back/internal/config"
	"github.com/accesshub/campus-back/internal/cron"
	"github.com/accesshub/campus-back/internal/db"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system env")
	}

	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	db.InitDB(cfg.DBUrl)
	db.InitRedis(cfg.RedisAddr, cfg.RedisPassword)

	r := api.SetupRouter(cfg)

	cron.StartJobs(cfg)

	log.Printf("server running on %s", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
