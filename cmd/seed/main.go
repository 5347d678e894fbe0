// Command seed creates the default admin account on demand, outside the
// normal server startup path.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/juanignacioalonso/prueba-backend-global-think/config"
	userapp "github.com/juanignacioalonso/prueba-backend-global-think/internal/application"
	"github.com/juanignacioalonso/prueba-backend-global-think/internal/infrastructure/mongodb"
	"github.com/juanignacioalonso/prueba-backend-global-think/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)

	ctx := context.Background()
	client, err := mongodb.NewClient(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatalf("failed to connect to mongodb: %v", err)
	}
	defer func() { _ = client.Disconnect(ctx) }()

	coll := client.Database(cfg.MongoDatabase).Collection(cfg.UsersCollection)
	if err := mongodb.EnsureIndexes(ctx, coll); err != nil {
		log.Fatalf("failed to ensure indexes: %v", err)
	}

	svc := userapp.NewService(
		mongodb.NewUserRepository(coll),
		helpers.NewJWTManager(cfg.JWTSecret, cfg.AccessTTL),
		nil, // no cache needed for a one-shot run
		logger,
		cfg.BcryptCost,
		cfg.UserCacheTTL,
	)

	if err := svc.EnsureAdmin(ctx, cfg.SeedAdminName, cfg.SeedAdminEmail, cfg.SeedAdminPassword); err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	fmt.Printf("admin account ensured: email=%s\n", cfg.SeedAdminEmail)
}
