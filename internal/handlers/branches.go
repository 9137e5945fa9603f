package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/royalcourier/backoffice-backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// branchView is what leaves the server: never the credential.
type branchView struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func toBranchView(b models.Branch) branchView {
	return branchView{ID: b.ID, Name: b.Name}
}

// GetBranches lists all branches without credentials
func GetBranches(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var branches []models.Branch
		if err := db.Order("name ASC").Find(&branches).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch branches"})
			return
		}

		views := make([]branchView, 0, len(branches))
		for _, b := range branches {
			views = append(views, toBranchView(b))
		}
		c.JSON(200, views)
	}
}

type BranchCreateInput struct {
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

// CreateBranch registers a new branch with a hashed credential
func CreateBranch(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input BranchCreateInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		branch := models.Branch{Name: input.Name, Password: input.Password}
		if err := branch.HashPassword(); err != nil {
			c.JSON(500, gin.H{"error": "Failed to hash password"})
			return
		}

		if err := db.Create(&branch).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to create branch"})
			return
		}

		c.JSON(201, toBranchView(branch))
	}
}

type BranchLoginInput struct {
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// BranchLogin authenticates a branch by name and password
func BranchLogin(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input BranchLoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var branch models.Branch
		if result := db.Where("name = ?", input.Name).First(&branch); result.Error != nil {
			c.JSON(401, gin.H{"error": "Invalid credentials"})
			return
		}

		if err := branch.CheckPassword(input.Password); err != nil {
			c.JSON(401, gin.H{"error": "Invalid credentials"})
			return
		}

		c.JSON(200, toBranchView(branch))
	}
}

type BranchChangePasswordInput struct {
	Name        string `json:"name" binding:"required"`
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

// BranchChangePassword rotates a branch credential
func BranchChangePassword(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input BranchChangePasswordInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var branch models.Branch
		if result := db.Where("name = ?", input.Name).First(&branch); result.Error != nil {
			c.JSON(401, gin.H{"error": "Invalid credentials"})
			return
		}

		if err := branch.CheckPassword(input.OldPassword); err != nil {
			c.JSON(401, gin.H{"error": "Invalid credentials"})
			return
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to hash password"})
			return
		}

		if err := db.Model(&branch).Update("password_hash", string(hashedPassword)).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to change password"})
			return
		}

		c.JSON(200, gin.H{"message": "Password changed successfully"})
	}
}

// GetBranchByName fetches a single branch by its unique name
func GetBranchByName(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var branch models.Branch
		result := db.Where("name = ?", c.Param("name")).First(&branch)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				c.JSON(404, gin.H{"error": "Branch not found"})
				return
			}
			c.JSON(500, gin.H{"error": "Failed to fetch branch"})
			return
		}

		c.JSON(200, toBranchView(branch))
	}
}
