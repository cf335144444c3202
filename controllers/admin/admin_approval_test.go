package adminController

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func postApproval(handler gin.HandlerFunc, body string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/approve", handler)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/approve", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

// Input validation runs before any database work, so a nil handle proves the
// request was rejected up front.
func TestApprovalInputValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing email", `{}`},
		{"blank email", `{"email":""}`},
		{"not an email", `{"email":"not-an-address"}`},
		{"invalid json", `{email`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postApproval(ApproveAdmin(nil), tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			w = postApproval(RejectAdmin(nil), tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}
