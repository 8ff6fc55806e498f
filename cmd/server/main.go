package main

import (
	"context"
	"log"

	"github.com/chatlite/chatlite/internal/config"
	"github.com/chatlite/chatlite/internal/db"
	"github.com/chatlite/chatlite/internal/handler"
	"github.com/chatlite/chatlite/internal/service"
	"github.com/joho/godotenv"

	_ "github.com/chatlite/chatlite/docs"
)

// @title chatlite API
// @version 1.0
// @description Authentication and credit API for the chatlite chat client.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	ttl, err := cfg.Auth.ParseTokenTTL()
	if err != nil {
		log.Fatalf("auth config: %v", err)
	}

	ctx := context.Background()
	pool, err := db.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	store := db.New(pool)
	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatalf("schema: %v", err)
	}

	tokens := service.NewTokenService(cfg.Auth.JWTSecret, ttl)
	authService := service.NewAuthService(store, tokens)

	router := handler.NewRouter(authService, cfg.Server.AllowedOrigins)
	if err := router.Run(cfg.Server.Addr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
