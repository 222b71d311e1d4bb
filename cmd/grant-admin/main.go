package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"time"

	"agencysite/internal/users"
	"agencysite/pkg/config"
	"agencysite/pkg/db"

	"github.com/sirupsen/logrus"
)

// grant-admin gives an existing account the admin role.
func main() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	email := flag.String("email", "", "email of the account to promote")
	flag.Parse()
	if *email == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.LoadConfig()
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		logrus.Fatalf("error connecting to database: %v", err)
	}
	defer database.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	svc := users.NewService(users.NewRepository(database))
	user, err := svc.GrantAdmin(ctx, *email)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			logrus.Fatalf("no account with email %s, register first", *email)
		}
		logrus.Fatalf("error granting admin role: %v", err)
	}
	logrus.Infof("user %s (%s) is now an admin", user.ID, user.Email)
}
