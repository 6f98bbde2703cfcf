package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/PrivatePlace/PP-Backend/internal/auth"
	"github.com/PrivatePlace/PP-Backend/internal/config"
	"github.com/PrivatePlace/PP-Backend/internal/seeds"
	"github.com/PrivatePlace/PP-Backend/internal/server"
	"github.com/joho/godotenv"
)

var file = flag.String("file", "internal/seeds/data/demo.yaml", "YAML file with users and ads")

func main() {
	_ = godotenv.Load(".env.local")
	flag.Parse()

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("❌ Config: %v", err)
	}
	// Seeding never needs sessions or media.
	cfg.Session.Backend = config.SessionMemory
	cfg.Media.Backend = config.MediaNone
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Config: %v", err)
	}

	f, err := seeds.Load(*file)
	if err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	ctx := context.Background()
	b, closeBackends, err := server.OpenBackends(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ Backends: %v", err)
	}
	defer closeBackends()

	svc := auth.NewService(b.Users, cfg.AdminUsername, cfg.BcryptCost)
	if _, err := seeds.SeedAll(ctx, f, svc, b.Ads); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}
}
