package services

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/carewatch/backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenLifetime = 24 * time.Hour

type AuthService struct {
	db *gorm.DB

	// now is swapped out in tests to pin the shift-window clock.
	now func() time.Time
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db, now: time.Now}
}

// Claims is the minimal identity carried by a session token.
type Claims struct {
	UserID   uint            `json:"userId"`
	Username string          `json:"username"`
	Role     models.UserRole `json:"role"`
}

// Login validates credentials and issues a signed 24h token. Unknown
// usernames and wrong passwords produce the same message so the response does
// not reveal which one was wrong. Workers with a configured shift window may
// only log in inside it; administrators are exempt.
func (as *AuthService) Login(username, password string) (string, *models.User, error) {
	var user models.User
	if err := as.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, &AuthError{Message: "invalid credentials"}
		}
		return "", nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, &AuthError{Message: "invalid credentials"}
	}

	if user.Role != models.RoleAdmin {
		if err := checkShiftWindow(&user, as.now()); err != nil {
			return "", nil, err
		}
	}

	token, err := as.generateToken(&user)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	user.Password = ""
	return token, &user, nil
}

// Verify parses a bearer token and returns its claims.
func (as *AuthService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return nil, &AuthError{Message: "invalid or expired token"}
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, &AuthError{Message: "invalid or expired token"}
	}

	claims := &Claims{}
	if v, ok := mapClaims["user_id"].(string); ok {
		if id, err := strconv.ParseUint(v, 10, 64); err == nil {
			claims.UserID = uint(id)
		}
	}
	if v, ok := mapClaims["username"].(string); ok {
		claims.Username = v
	}
	if v, ok := mapClaims["role"].(string); ok {
		claims.Role = models.UserRole(v)
	}
	return claims, nil
}

func (as *AuthService) generateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  strconv.FormatUint(uint64(user.ID), 10),
		"username": user.Username,
		"role":     string(user.Role),
		"exp":      as.now().Add(tokenLifetime).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

// checkShiftWindow enforces the [start, end] time-of-day window. An end
// before the start means an overnight shift (e.g. 22:00-06:00), which matches
// the complement interval.
func checkShiftWindow(user *models.User, now time.Time) error {
	if user.ShiftStart == nil || user.ShiftEnd == nil {
		return nil
	}
	start, err := parseClock(*user.ShiftStart)
	if err != nil {
		return fmt.Errorf("malformed shift start for %s: %w", user.Username, err)
	}
	end, err := parseClock(*user.ShiftEnd)
	if err != nil {
		return fmt.Errorf("malformed shift end for %s: %w", user.Username, err)
	}

	minute := now.Hour()*60 + now.Minute()
	var inside bool
	if end < start {
		inside = minute >= start || minute <= end
	} else {
		inside = minute >= start && minute <= end
	}
	if !inside {
		return &AuthError{Message: "outside shift window"}
	}
	return nil
}

// parseClock converts an "HH:MM" string to minutes since midnight.
func parseClock(s string) (int, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}
