package model

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User represents a registered shop account.
type User struct {
	ID              uint      `gorm:"column:user_id;primaryKey" json:"user_id"`
	EmailAddress    string    `gorm:"column:email_address;type:varchar(255);uniqueIndex;not null" json:"email_address"`
	FullName        string    `gorm:"column:full_name;type:varchar(255);not null" json:"full_name"`
	HashedPassword  string    `gorm:"column:hashed_password;type:varchar(255);not null" json:"-"` // Hidden from JSON
	IsAdministrator bool      `gorm:"column:is_administrator;default:false" json:"is_administrator"`
	CreatedAt       time.Time `gorm:"column:account_created_at;autoCreateTime" json:"account_created_at"`
	UpdatedAt       time.Time `gorm:"column:account_updated_at;autoUpdateTime" json:"account_updated_at"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "user_accounts"
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.HashedPassword = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password))
	return err == nil
}

// UserResponse is used for API responses (without the password hash)
type UserResponse struct {
	ID              uint      `json:"user_id"`
	EmailAddress    string    `json:"email_address"`
	FullName        string    `json:"full_name"`
	IsAdministrator bool      `json:"is_administrator"`
	CreatedAt       time.Time `json:"account_created_at"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:              u.ID,
		EmailAddress:    u.EmailAddress,
		FullName:        u.FullName,
		IsAdministrator: u.IsAdministrator,
		CreatedAt:       u.CreatedAt,
	}
}
