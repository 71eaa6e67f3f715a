package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/magneticmemoriescz-bit/magnetic-memories-api/internal/config"
	"github.com/magneticmemoriescz-bit/magnetic-memories-api/internal/database"
)

func main() {
	fmt.Println("Creating Admin User")
	fmt.Println("===================")

	cfg := config.Load()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	userQueries := database.NewUserQueries(db)
	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Enter admin email: ")
	email, err := reader.ReadString('\n')
	if err != nil {
		log.Fatal("Failed to read email:", err)
	}
	email = strings.TrimSpace(email)

	if email == "" {
		log.Fatal("Email cannot be empty")
	}

	exists, err := userQueries.EmailExists(email)
	if err != nil {
		log.Fatal("Failed to check email:", err)
	}
	if exists {
		log.Fatalf("User with email %s already exists", email)
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

	user, err := userQueries.CreateAdminUser(email, password)
	if err != nil {
		log.Fatal("Failed to create admin user:", err)
	}

	fmt.Printf("Successfully created admin user: %s\n", user.Email)
	fmt.Printf("User ID: %d\n", user.ID)
	fmt.Printf("Created at: %s\n", user.CreatedAt.Format("2006-01-02 15:04:05"))
}
