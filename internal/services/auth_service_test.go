package services

import (
	"errors"
	"testing"
	"time"

	"github.com/carewatch/backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func createTestUser(t *testing.T, db *gorm.DB, username, password string, role models.UserRole, shiftStart, shiftEnd *string) *models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	user := models.User{
		Username:   username,
		Password:   string(hashed),
		Role:       role,
		ShiftStart: shiftStart,
		ShiftEnd:   shiftEnd,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return &user
}

func clockAt(hour, minute int) func() time.Time {
	return func() time.Time {
		return time.Date(2024, 1, 15, hour, minute, 0, 0, time.UTC)
	}
}

func strPtr(s string) *string {
	return &s
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	db := newTestDB(t)
	svc := NewAuthService(db)
	createTestUser(t, db, "admin", "s3cret", models.RoleAdmin, nil, nil)

	token, user, err := svc.Login("admin", "s3cret")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if user.Password != "" {
		t.Error("Login response must not carry the password hash")
	}

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed on a freshly issued token: %v", err)
	}
	if claims.UserID != user.ID || claims.Username != "admin" || claims.Role != models.RoleAdmin {
		t.Errorf("Claims do not match the user: %+v", claims)
	}
}

func TestLoginUniformCredentialError(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	db := newTestDB(t)
	svc := NewAuthService(db)
	createTestUser(t, db, "worker", "rightpass", models.RoleWorker, nil, nil)

	_, _, unknownErr := svc.Login("nobody", "whatever")
	_, _, wrongPassErr := svc.Login("worker", "wrongpass")

	var authErr *AuthError
	if !errors.As(unknownErr, &authErr) {
		t.Fatalf("Expected AuthError for unknown user, got %v", unknownErr)
	}
	if !errors.As(wrongPassErr, &authErr) {
		t.Fatalf("Expected AuthError for wrong password, got %v", wrongPassErr)
	}
	// The message must not reveal whether the username or the password was wrong.
	if unknownErr.Error() != wrongPassErr.Error() {
		t.Errorf("Credential errors must be indistinguishable: %q vs %q", unknownErr.Error(), wrongPassErr.Error())
	}
}

func TestLoginShiftWindow(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	tests := []struct {
		name    string
		start   string
		end     string
		hour    int
		minute  int
		allowed bool
	}{
		{"day shift inside", "08:00", "16:00", 12, 0, true},
		{"day shift at start", "08:00", "16:00", 8, 0, true},
		{"day shift at end", "08:00", "16:00", 16, 0, true},
		{"day shift before", "08:00", "16:00", 7, 59, false},
		{"day shift after", "08:00", "16:00", 16, 1, false},
		{"overnight late evening", "22:00", "06:00", 23, 30, true},
		{"overnight small hours", "22:00", "06:00", 2, 0, true},
		{"overnight midday", "22:00", "06:00", 12, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := newTestDB(t)
			svc := NewAuthService(db)
			svc.now = clockAt(tt.hour, tt.minute)
			createTestUser(t, db, "worker", "pass123", models.RoleWorker, strPtr(tt.start), strPtr(tt.end))

			_, _, err := svc.Login("worker", "pass123")
			if tt.allowed && err != nil {
				t.Errorf("Expected login to succeed, got %v", err)
			}
			if !tt.allowed {
				var authErr *AuthError
				if !errors.As(err, &authErr) {
					t.Errorf("Expected AuthError outside the shift window, got %v", err)
				}
			}
		})
	}
}

func TestLoginAdminExemptFromShiftWindow(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	db := newTestDB(t)
	svc := NewAuthService(db)
	svc.now = clockAt(12, 0)
	createTestUser(t, db, "boss", "pass123", models.RoleAdmin, strPtr("22:00"), strPtr("06:00"))

	if _, _, err := svc.Login("boss", "pass123"); err != nil {
		t.Errorf("Administrators must not be shift-restricted, got %v", err)
	}
}

func TestLoginWithoutShiftBoundsUnrestricted(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	db := newTestDB(t)
	svc := NewAuthService(db)
	svc.now = clockAt(3, 0)
	// Only one bound set: no restriction applies.
	createTestUser(t, db, "worker", "pass123", models.RoleWorker, strPtr("08:00"), nil)

	if _, _, err := svc.Login("worker", "pass123"); err != nil {
		t.Errorf("A single shift bound must not restrict login, got %v", err)
	}
}

func TestVerifyRejectsBadTokens(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	db := newTestDB(t)
	svc := NewAuthService(db)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, err := svc.Verify(token)
		var authErr *AuthError
		if !errors.As(err, &authErr) {
			t.Errorf("Expected AuthError for token %q, got %v", token, err)
		}
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	db := newTestDB(t)
	svc := NewAuthService(db)
	// Issue a token whose 24h lifetime is already over.
	svc.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }
	createTestUser(t, db, "worker", "pass123", models.RoleWorker, nil, nil)

	token, _, err := svc.Login("worker", "pass123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	_, err = svc.Verify(token)
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Errorf("Expected AuthError for expired token, got %v", err)
	}
}

func TestVerifyRejectsForgedSignature(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	db := newTestDB(t)
	svc := NewAuthService(db)
	createTestUser(t, db, "worker", "pass123", models.RoleWorker, nil, nil)

	token, _, err := svc.Login("worker", "pass123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	t.Setenv("JWT_SECRET", "a-different-secret")
	_, err = svc.Verify(token)
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Errorf("Expected AuthError for forged signature, got %v", err)
	}
}
