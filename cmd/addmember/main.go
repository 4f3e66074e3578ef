package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"aidat/models"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if len(os.Args) < 4 {
		fmt.Println("usage: go run ./cmd/addmember <username> <password> <full name...>")
		os.Exit(2)
	}
	username := os.Args[1]
	password := os.Args[2]
	fullName := strings.Join(os.Args[3:], " ")

	_ = godotenv.Load()
	dsn := os.Getenv("DB_DSN")
	if strings.TrimSpace(dsn) == "" {
		log.Fatal("DB_DSN not set in environment")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}

	// ensure the member role exists
	var role models.Role
	if err := db.Where("name = ?", models.RoleMember).First(&role).Error; err != nil {
		role = models.Role{Name: models.RoleMember, Description: "regular club member"}
		db.Create(&role)
	}

	var existing models.User
	if err := db.Where("username = ?", username).First(&existing).Error; err == nil {
		fmt.Printf("user %s already exists (id=%d)\n", username, existing.ID)
		os.Exit(0)
	}

	hpw, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("bcrypt failed: %v", err)
	}
	rid := role.ID
	user := models.User{Username: username, HashedPassword: hpw, RoleID: &rid}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("failed to create user: %v", err)
	}
	member := models.Member{UserID: user.ID, FullName: fullName}
	if err := db.Create(&member).Error; err != nil {
		log.Printf("warning: failed to create member profile: %v", err)
	}
	fmt.Printf("created member %s (%s) user_id=%d member_id=%d\n", fullName, username, user.ID, member.ID)
}
