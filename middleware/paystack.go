package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RawBodyKey is where PaystackWebhookAuth stashes the verified request body.
const RawBodyKey = "paystack_raw_body"

// PaystackWebhookAuth recomputes the HMAC-SHA512 of the raw request body with
// the shared secret and compares it to the X-Paystack-Signature header. A
// mismatch hard-fails with 401 before anything parses the payload.
func PaystackWebhookAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "failed to read body"})
			c.Abort()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(raw))

		mac := hmac.New(sha512.New, []byte(secret))
		mac.Write(raw)
		expected := hex.EncodeToString(mac.Sum(nil))

		signature := c.GetHeader("X-Paystack-Signature")
		if signature == "" || !hmac.Equal([]byte(signature), []byte(expected)) {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false})
			c.Abort()
			return
		}

		c.Set(RawBodyKey, raw)
		c.Next()
	}
}
