package auth

import (
	"testing"
	"time"

	"github.com/accesshub/campus-back/internal/models"
)

func TestIssueAndParseTokens(t *testing.T) {
	secret := []byte("test-secret")
	user := &models.User{ID: 42, Email: "faculty@campus.edu", Role: models.RoleFaculty}

	access, refresh, err := IssueTokens(user, secret, 15*time.Minute, 24*time.Hour)
	if err != nil {
		t.Fatalf("IssueTokens: %v", err)
	}
	if access == "" || refresh == "" {
		t.Fatal("empty token issued")
	}

	claims, err := ParseToken(access, secret)
	if err != nil {
		t.Fatalf("ParseToken(access): %v", err)
	}
	if claims["email"] != "faculty@campus.edu" {
		t.Fatalf("unexpected email claim: %v", claims["email"])
	}
	if claims["role"] != models.RoleFaculty {
		t.Fatalf("unexpected role claim: %v", claims["role"])
	}
	if _, ok := claims["type"]; ok {
		t.Fatal("access token must not carry the refresh marker")
	}

	refreshClaims, err := ParseToken(refresh, secret)
	if err != nil {
		t.Fatalf("ParseToken(refresh): %v", err)
	}
	if refreshClaims["type"] != "refresh" {
		t.Fatalf("refresh token missing type claim: %v", refreshClaims["type"])
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	user := &models.User{ID: 1, Email: "a@b.c", Role: models.RoleStudent}
	access, _, err := IssueTokens(user, []byte("secret-a"), time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("IssueTokens: %v", err)
	}
	if _, err := ParseToken(access, []byte("secret-b")); err == nil {
		t.Fatal("token verified under the wrong secret")
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	user := &models.User{ID: 1, Email: "a@b.c", Role: models.RoleStudent}
	access, _, err := IssueTokens(user, []byte("secret"), -time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("IssueTokens: %v", err)
	}
	if _, err := ParseToken(access, []byte("secret")); err == nil {
		t.Fatal("expired token accepted")
	}
}
