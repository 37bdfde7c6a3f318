package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"
	"syscall"

	"corb3d-backend/internal/auth"
	"corb3d-backend/internal/config"
	"corb3d-backend/internal/database"
	"corb3d-backend/internal/models"

	"golang.org/x/term"
)

func main() {
	fmt.Println("Creating admin user")
	fmt.Println("===================")

	cfg := config.Load()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	userQueries := database.NewUserQueries(db)
	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Enter admin username: ")
	username, err := reader.ReadString('\n')
	if err != nil {
		log.Fatal("Failed to read username:", err)
	}
	username = strings.TrimSpace(username)
	if username == "" {
		log.Fatal("Username cannot be empty")
	}

	existing, err := userQueries.GetByUsername(username)
	if err != nil {
		log.Fatal("Failed to look up user:", err)
	}

	fmt.Print("Enter admin password: ")
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		log.Fatal("Failed to read password:", err)
	}
	password := string(passwordBytes)
	fmt.Println()

	if len(password) < 6 {
		log.Fatal("Password must be at least 6 characters long")
	}

	fmt.Print("Confirm admin password: ")
	confirmBytes, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		log.Fatal("Failed to read password confirmation:", err)
	}
	fmt.Println()

	if password != string(confirmBytes) {
		log.Fatal("Passwords do not match")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	if existing != nil {
		fmt.Printf("User %s already exists.\n", username)
		fmt.Print("Update the password? (y/N): ")
		confirm, err := reader.ReadString('\n')
		if err != nil {
			log.Fatal("Failed to read confirmation:", err)
		}
		confirm = strings.TrimSpace(strings.ToLower(confirm))
		if confirm != "y" && confirm != "yes" {
			fmt.Println("Operation cancelled.")
			return
		}

		existing.Password = hash
		if err := userQueries.Update(existing); err != nil {
			log.Fatal("Failed to update user:", err)
		}
		fmt.Printf("Successfully updated password for %s.\n", username)
		return
	}

	user := &models.User{
		Username: username,
		Password: hash,
	}
	if err := userQueries.Create(user); err != nil {
		log.Fatal("Failed to create admin user:", err)
	}

	fmt.Printf("Successfully created admin user: %s\n", username)
	fmt.Printf("User ID: %d\n", user.ID)
}
