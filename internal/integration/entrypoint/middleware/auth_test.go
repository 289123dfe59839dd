package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/life-planner/backend/internal/application/adapter"
	domainerror "github.com/life-planner/backend/internal/domain/error"
	"github.com/life-planner/backend/internal/integration/entrypoint/dto"
)

type stubTokenService struct {
	claims map[string]*adapter.TokenClaims
}

func (s stubTokenService) ValidateAccessToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	if token == "expired" {
		return nil, fmt.Errorf("%w: token is expired", domainerror.ErrExpiredToken)
	}
	if c, ok := s.claims[token]; ok {
		return c, nil
	}
	return nil, domainerror.ErrInvalidToken
}

func TestAuthenticate(t *testing.T) {
	gin.SetMode(gin.TestMode)

	userID := uuid.New()
	m := NewAuthMiddleware(stubTokenService{claims: map[string]*adapter.TokenClaims{
		"good": {UserID: userID, Email: "ada@example.com"},
	}})

	engine := gin.New()
	engine.GET("/me", m.Authenticate(), func(c *gin.Context) {
		id, _ := GetUserIDFromContext(c)
		email, _ := GetUserEmailFromContext(c)
		c.JSON(http.StatusOK, gin.H{"id": id.String(), "email": email})
	})

	tests := []struct {
		name   string
		header string
		status int
		code   domainerror.AuthErrorCode
	}{
		{name: "missing header", header: "", status: http.StatusUnauthorized, code: domainerror.ErrCodeMissingToken},
		{name: "not bearer", header: "Basic abc", status: http.StatusUnauthorized, code: domainerror.ErrCodeInvalidToken},
		{name: "empty token", header: "Bearer ", status: http.StatusUnauthorized, code: domainerror.ErrCodeMissingToken},
		{name: "unknown token", header: "Bearer forged", status: http.StatusUnauthorized, code: domainerror.ErrCodeInvalidToken},
		{name: "expired token", header: "Bearer expired", status: http.StatusUnauthorized, code: domainerror.ErrCodeExpiredToken},
		{name: "valid token", header: "Bearer good", status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Fatalf("expected %d, got %d: %s", tt.status, rec.Code, rec.Body.String())
			}
			if tt.status == http.StatusOK {
				var body map[string]string
				if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
					t.Fatalf("failed to decode body: %v", err)
				}
				if body["id"] != userID.String() || body["email"] != "ada@example.com" {
					t.Errorf("unexpected identity %v", body)
				}
				return
			}
			var resp dto.ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode error: %v", err)
			}
			if resp.Code != string(tt.code) {
				t.Errorf("expected code %s, got %s", tt.code, resp.Code)
			}
		})
	}
}
