package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/mtl/myhackx-api/internal/config"
	"github.com/mtl/myhackx-api/internal/database"
	"github.com/mtl/myhackx-api/internal/store/mongodb"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Println("Usage: promote-admin <email>")
		os.Exit(1)
	}

	email := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	db, err := database.New(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Fatalf("Failed to connect to mongodb: %v", err)
	}
	defer db.Close(ctx)

	stores := mongodb.NewStores(db.Database)

	user, err := stores.Users.GetByEmail(ctx, email)
	if err != nil {
		log.Fatalf("No user found with email: %s", email)
	}

	user.IsAdmin = true
	if err := stores.Users.Put(ctx, user); err != nil {
		log.Fatalf("Failed to update user: %v", err)
	}

	fmt.Printf("Successfully promoted %s to admin\n", email)
}
