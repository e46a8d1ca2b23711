package jwt

import (
	"testing"
	"time"

	"clinic-appointment-service/config"

	"github.com/google/uuid"
)

func testService(secret string) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:       secret,
		AccessExpiry: 15 * time.Minute,
	})
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	service := testService("test-secret")
	userID := uuid.New()

	token, err := service.GenerateAccessToken(userID, "doctor@clinic.test", 2)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := service.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("expected user ID %s, got %s", userID, claims.UserID)
	}
	if claims.Email != "doctor@clinic.test" {
		t.Errorf("unexpected email %q", claims.Email)
	}
	if claims.RoleID != 2 {
		t.Errorf("unexpected role ID %d", claims.RoleID)
	}
	if claims.TokenType != AccessToken {
		t.Errorf("expected access token type, got %q", claims.TokenType)
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	token, err := testService("secret-a").GenerateAccessToken(uuid.New(), "patient@clinic.test", 3)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := testService("secret-b").ValidateToken(token); err == nil {
		t.Fatal("expected token signed with a different secret to be rejected")
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	if _, err := testService("test-secret").ValidateToken("not-a-token"); err == nil {
		t.Fatal("expected malformed token to be rejected")
	}
}
