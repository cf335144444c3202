package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// POST /auth/guest
// Issues a token for an anonymous shopper so the cart endpoints work before
// sign-up. The client keeps its cart snapshot locally and merges it into the
// account cart after registering or logging in.
func GuestToken(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		guestID := "guest-" + uuid.NewString()
		token, err := IssueToken(jwtSecret, guestID, "")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token, "guest_id": guestID})
	}
}
