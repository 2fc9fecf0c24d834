package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/fiqriashiddiqi/user-registry/config"
	userapp "github.com/fiqriashiddiqi/user-registry/internal/application"
	pginfra "github.com/fiqriashiddiqi/user-registry/internal/infrastructure/postgres"
	"github.com/fiqriashiddiqi/user-registry/pkg/helpers"
)

func strptr(s string) *string { return &s }

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)

	ctx := context.Background()
	db, err := pginfra.Connect(ctx, cfg.PostgresDSN(), pginfra.PoolConfig{
		MaxConns:        cfg.DBMaxConns,
		MinConns:        cfg.DBMinConns,
		MaxConnLifetime: cfg.DBMaxConnLife,
		AcquireTimeout:  cfg.DBAcquireTimeout,
		ConnectAttempts: cfg.DBConnectAttempts,
		ConnectBackoff:  cfg.DBConnectBackoff,
	}, logger)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer db.Close()

	repo := pginfra.NewUserRepository(db, logger)
	svc := userapp.NewService(repo, logger)

	// One fully-populated aggregate.
	demo, err := svc.CreateUser(ctx, userapp.CreateUserInput{
		CoreInput: userapp.CoreInput{
			Username:  "ariefwicaksana",
			Email:     "arief.wicaksana@example.com",
			FirstName: strptr("Arief"),
			LastName:  strptr("Wicaksana"),
			Gender:    strptr("male"),
		},
		Account: &userapp.AccountInput{Subscription: strptr("premium")},
		Address: &userapp.AddressInput{
			Street:     strptr("Jl. Sudirman 12"),
			City:       strptr("Jakarta"),
			Province:   strptr("DKI Jakarta"),
			PostalCode: strptr("10220"),
			Country:    strptr("ID"),
		},
		Preferences: &userapp.PreferencesInput{Language: strptr("id"), Timezone: strptr("Asia/Jakarta")},
		Profile: &userapp.ProfileInput{
			Bio:      strptr("Backend engineer"),
			Company:  strptr("PT Maju Jaya"),
			JobTitle: strptr("Engineer"),
		},
	})
	if err != nil {
		log.Fatalf("failed to seed demo user: %v", err)
	}
	fmt.Printf("seeded user: id=%d username=%s email=%s\n", demo.User.ID, demo.User.Username, demo.User.Email)

	// A core-only batch through the bulk path.
	batch := []userapp.CoreInput{
		{
			Username:  "sintadewi",
			Email:     "sinta.dewi@example.com",
			FirstName: strptr("Sinta"),
			LastName:  strptr("Dewi"),
			Gender:    strptr("female"),
		},
		{
			Username: "budisetiawan",
			Email:    "budi.setiawan@example.com",
		},
	}
	created, err := svc.CreateUsersBulk(ctx, batch)
	if err != nil {
		log.Fatalf("failed to seed users: %v", err)
	}
	for _, u := range created {
		fmt.Printf("seeded user: id=%d username=%s email=%s\n", u.ID, u.Username, u.Email)
	}
}
