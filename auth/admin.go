package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Ambrose2002/the-gem-shop/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// POST /auth/admin/register
// New admins start unapproved; an approved admin must promote them before
// the dashboard accepts their logins.
func RegisterAdmin(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input registerInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email and a password of at least 8 characters are required"})
			return
		}
		email := strings.ToLower(strings.TrimSpace(input.Email))

		var existing models.Admin
		if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
			return
		}

		admin := models.Admin{
			Email:        email,
			Name:         strings.TrimSpace(input.Name),
			PasswordHash: string(hash),
			Approved:     false,
		}
		if err := db.Create(&admin).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Registration received, awaiting approval"})
	}
}

// POST /auth/admin/login
func LoginAdmin(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input loginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
			return
		}

		var admin models.Admin
		err := db.Where("email = ?", strings.ToLower(strings.TrimSpace(input.Email))).First(&admin).Error
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(input.Password)) != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		if !admin.Approved {
			c.JSON(http.StatusForbidden, gin.H{"error": "Account awaiting approval"})
			return
		}

		token, err := IssueToken(jwtSecret, admin.Email, admin.Email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token, "admin": admin})
	}
}
