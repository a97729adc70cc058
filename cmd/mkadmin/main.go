// Command mkadmin promotes a registered user to the admin role.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cableworks/storefront-api/internal/config"
	"github.com/cableworks/storefront-api/internal/model"
	"github.com/cableworks/storefront-api/internal/repository"
)

func main() {
	email := flag.String("email", "", "email of the account to promote")
	flag.Parse()

	if *email == "" {
		fmt.Fprintln(os.Stderr, "usage: mkadmin -email user@example.com")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DB.DSN())
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect to database: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	userRepo := repository.NewUserRepository(pool)
	promoted, err := userRepo.SetRole(ctx, *email, model.RoleAdmin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "promote user: %v\n", err)
		os.Exit(1)
	}
	if !promoted {
		fmt.Println("user not found")
		os.Exit(1)
	}
	fmt.Println("user is now admin")
}
