package main

import (
	"context"
	"log"
	"time"

	"mystore-backend/internal/config"
	"mystore-backend/internal/repository"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := config.ConnectDB(ctx, cfg)
	if err != nil {
		log.Fatalf("connect db: %v", err)
	}
	defer db.Close()

	if err := repository.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("ensure schema: %v", err)
	}
	log.Println("All tables created successfully!")
}
