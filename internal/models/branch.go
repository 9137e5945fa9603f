package models

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Branch is an office location. Shipments and payroll records reference a
// branch by name, not by foreign key, so the name is unique. The branch
// credential is write-only: the hash never leaves the server.
type Branch struct {
	gorm.Model
	Name         string `json:"name" gorm:"unique;not null"`
	Password     string `json:"-" gorm:"-"` // Temporary field for password handling
	PasswordHash string `json:"-" gorm:"column:password_hash;not null"`
}

// TableName specifies the table name
func (Branch) TableName() string {
	return "branches"
}

func (b *Branch) HashPassword() error {
	if b.Password == "" {
		return nil
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	b.PasswordHash = string(hashedPassword)
	return nil
}

func (b *Branch) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(b.PasswordHash), []byte(password))
}
