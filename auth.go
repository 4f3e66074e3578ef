package main

import (
	"errors"
	"fmt"
	"strings"

	"aidat/models"

	"golang.org/x/crypto/bcrypt"
)

// ErrUserExists distinguishes the duplicate-username case from local
// validation failures so handlers can map it to a conflict status.
var ErrUserExists = errors.New("user already exists")

// RegisterUser creates a login and its one-to-one member profile.
func RegisterUser(username, password, fullName string) error {
	username = strings.TrimSpace(username)
	fullName = strings.TrimSpace(fullName)
	if username == "" {
		return fmt.Errorf("username required")
	}
	if fullName == "" {
		fullName = username
	}
	if len(password) < 6 { // basic password policy
		return fmt.Errorf("password too short (min 6)")
	}
	// pre-check existing (optimistic)
	var existing models.User
	if err := db.Where("username = ?", username).First(&existing).Error; err == nil {
		return ErrUserExists
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	// ensure role exists (idempotent)
	var role models.Role
	if err := db.Where("name = ?", models.RoleMember).First(&role).Error; err != nil {
		role = models.Role{Name: models.RoleMember, Description: "regular club member"}
		if err2 := db.Where("name = ?", role.Name).FirstOrCreate(&role).Error; err2 != nil {
			return fmt.Errorf("failed to ensure member role: %v", err2)
		}
	}
	rid := role.ID
	user := models.User{Username: username, HashedPassword: hashedPassword, RoleID: &rid}
	if err := db.Create(&user).Error; err != nil {
		if isUniqueConstraintError(err) { // race condition after initial check
			return ErrUserExists
		}
		return err
	}
	member := models.Member{UserID: user.ID, FullName: fullName}
	if err := db.Create(&member).Error; err != nil {
		return fmt.Errorf("failed to create member profile: %v", err)
	}
	return nil
}

// Authenticate checks credentials and returns the user with its role loaded.
func Authenticate(username, password string) (models.User, error) {
	username = strings.TrimSpace(username)
	var user models.User
	if err := db.Preload("Role").Where("username = ?", username).First(&user).Error; err != nil {
		return models.User{}, fmt.Errorf("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword(user.HashedPassword, []byte(password)); err != nil {
		return models.User{}, fmt.Errorf("invalid credentials")
	}
	return user, nil
}

// ChangePassword replaces the stored hash for a user.
func ChangePassword(userID uint, newPassword string) error {
	if len(newPassword) < 6 {
		return fmt.Errorf("password too short (min 6)")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return db.Model(&models.User{}).Where("id = ?", userID).
		Update("hashed_password", hashed).Error
}

func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint") || strings.Contains(s, "already exists")
}
