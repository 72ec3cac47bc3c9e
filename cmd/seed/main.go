package main

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"foldbox/internal/auth"
	"foldbox/internal/config"
	"foldbox/internal/db"
	"foldbox/internal/model"
	"foldbox/internal/repository"
)

// demoUser is one local-development account with its starter folders.
type demoUser struct {
	Name     string
	Email    string
	Country  string
	Password string
	Folders  []string
}

var demoUsers = []demoUser{
	{
		Name:     "Ann Example",
		Email:    "ann@example.com",
		Country:  "US",
		Password: "password123",
		Folders:  []string{"Receipts", "Photos"},
	},
	{
		Name:     "Bob Example",
		Email:    "bob@example.com",
		Country:  "DE",
		Password: "password123",
		Folders:  []string{"Invoices"},
	},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.Connect(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Folder{}, &model.File{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	folderRepo := repository.NewFolderRepository(gormDB)
	ctx := context.Background()

	created, skipped := 0, 0
	for _, du := range demoUsers {
		user, err := seedUser(ctx, userRepo, du)
		if err != nil {
			log.Fatalf("Failed to seed user %s: %v", du.Email, err)
		}
		if user == nil {
			skipped++
			continue
		}
		created++

		for _, name := range du.Folders {
			folder := &model.Folder{Name: name, UserID: user.ID}
			if err := folderRepo.Create(ctx, folder); err != nil {
				log.Fatalf("Failed to seed folder %q for %s: %v", name, du.Email, err)
			}
		}
	}

	log.Printf("Seed completed: %d users created, %d already present", created, skipped)
}

// seedUser creates the demo user unless it already exists; it returns nil for
// accounts that were already seeded.
func seedUser(ctx context.Context, repo repository.UserRepository, du demoUser) (*model.User, error) {
	existing, err := repo.FindByEmail(ctx, du.Email)
	if err == nil && existing != nil {
		log.Printf("User %s already exists, skipping", du.Email)
		return nil, nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(du.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         du.Name,
		Email:        du.Email,
		Country:      du.Country,
		PasswordHash: hash,
	}
	if err := repo.Create(ctx, user); err != nil {
		return nil, err
	}
	log.Printf("Seeded user: %s", du.Email)
	return user, nil
}
