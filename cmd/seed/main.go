package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"

	"quizhive-backend/internal/config"
	"quizhive-backend/internal/db"
	"quizhive-backend/internal/model"
	"quizhive-backend/internal/repository"
)

// Seeds the reference data (streams and institutions) and interactively
// creates the first user account.
func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig("config.xml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db.InitDBFromConfig(cfg)
	if err := db.GetDB().AutoMigrate(
		&model.Institution{},
		&model.Stream{},
		&model.User{},
		&model.Quiz{},
		&model.Question{},
		&model.Attempt{},
	); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	streamRepo := repository.NewStreamRepository()
	institutionRepo := repository.NewInstitutionRepository()
	userRepo := repository.NewUserRepository()

	streams := []model.Stream{
		{Name: "Computer Science"},
		{Name: "Mathematics"},
		{Name: "Physics"},
		{Name: "Biology"},
		{Name: "General Knowledge"},
	}
	for i := range streams {
		exists, err := streamRepo.ExistsByName(streams[i].Name, 0)
		if err != nil {
			log.Printf("failed to check stream %q: %v", streams[i].Name, err)
			continue
		}
		if exists {
			fmt.Println("stream already present:", streams[i].Name)
			continue
		}
		if err := streamRepo.Create(&streams[i]); err != nil {
			log.Printf("failed to insert stream %q: %v", streams[i].Name, err)
		} else {
			fmt.Println("inserted stream:", streams[i].Name)
		}
	}

	institutions := []model.Institution{
		{Name: "Open Learning Institute", City: "Nairobi"},
		{Name: "Riverside Technical College", City: "Kisumu"},
	}
	for i := range institutions {
		exists, err := institutionRepo.ExistsByNameAndCity(institutions[i].Name, institutions[i].City, 0)
		if err != nil {
			log.Printf("failed to check institution %q: %v", institutions[i].Name, err)
			continue
		}
		if exists {
			fmt.Println("institution already present:", institutions[i].Name)
			continue
		}
		if err := institutionRepo.Create(&institutions[i]); err != nil {
			log.Printf("failed to insert institution %q: %v", institutions[i].Name, err)
		} else {
			fmt.Println("inserted institution:", institutions[i].Name)
		}
	}

	if err := seedFirstUser(userRepo); err != nil {
		log.Fatalf("failed to seed first user: %v", err)
	}

	fmt.Println("Database seeding completed successfully!")
}

func seedFirstUser(userRepo repository.UserRepository) error {
	reader := bufio.NewReader(os.Stdin)

	fmt.Print("First user name: ")
	name, err := reader.ReadString('\n')
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)

	fmt.Print("First user email: ")
	email, err := reader.ReadString('\n')
	if err != nil {
		return err
	}
	email = strings.ToLower(strings.TrimSpace(email))

	if existing, err := userRepo.GetUserByEmail(email); err == nil && existing != nil {
		fmt.Println("user already present:", email)
		return nil
	}

	fmt.Print("Password: ")
	pw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return err
	}
	if len(pw) < 6 {
		return fmt.Errorf("password must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword(pw, bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &model.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
	}
	if err := userRepo.CreateUser(user); err != nil {
		return err
	}
	fmt.Println("inserted user:", email)
	return nil
}
