package adminController

import (
	"net/http"
	"strings"

	"github.com/Ambrose2002/the-gem-shop/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type approvalInput struct {
	Email string `json:"email" binding:"required,email"`
}

func bindApproval(c *gin.Context) (string, bool) {
	var input approvalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "A valid email is required"})
		return "", false
	}
	return strings.ToLower(strings.TrimSpace(input.Email)), true
}

// GET /admin/admins/pending
func ListPendingAdmins(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var pending []models.Admin
		if err := db.Where("approved = ?", false).Order("email ASC").Find(&pending).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Failed to fetch pending admins"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "pending": pending})
	}
}

// POST /admin/admins/approve
// Flips the approval flag; approving an unknown or already-approved admin
// reports not found rather than succeeding silently.
func ApproveAdmin(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := bindApproval(c)
		if !ok {
			return
		}

		res := db.Model(&models.Admin{}).
			Where("email = ? AND approved = ?", email, false).
			Update("approved", true)
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Failed to approve admin"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "No pending admin with that email"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// POST /admin/admins/reject
// Removes the registration outright so the email can register again later.
func RejectAdmin(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := bindApproval(c)
		if !ok {
			return
		}

		res := db.Where("email = ?", email).Delete(&models.Admin{})
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Failed to reject admin"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "No admin with that email"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
