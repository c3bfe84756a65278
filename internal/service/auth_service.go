package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"task_manager/internal/config"
	"task_manager/internal/models"
	"task_manager/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenTTL   = 24 * time.Hour
	bcryptCost = 10
)

// Domain errors for auth flows.
var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidToken    = errors.New("invalid token")
	ErrEmailTaken      = errors.New("email already registered")
)

// AuthService handles user auth logic. The signing secret comes from the
// injected config, never from the environment at call sites.
type AuthService struct {
	users      repository.Users
	signingKey []byte
}

func NewAuthService(users repository.Users, cfg *config.Config) *AuthService {
	return &AuthService{users: users, signingKey: []byte(cfg.JWTSecret)}
}

// Claims defines JWT claims
type Claims struct {
	jwt.RegisteredClaims
	UserID int `json:"user_id"`
}

// Register hashes the password and creates a new user.
// Returns ErrEmailTaken when the email is already registered.
func (s *AuthService) Register(ctx context.Context, email, password string) (int, error) {
	hash, err := hashPassword(password)
	if err != nil {
		return 0, fmt.Errorf("invalid password: %w", err)
	}
	id, err := s.users.Create(ctx, normalizeEmail(email), hash)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return 0, ErrEmailTaken
		}
		return 0, err
	}
	return id, nil
}

// Login validates credentials and returns a signed JWT.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", ErrUserNotFound
	}

	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return "", ErrInvalidPassword
	}

	return s.issueToken(u.ID)
}

// ParseToken parses a JWT and returns the embedded user id.
func (s *AuthService) ParseToken(accessToken string) (int, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return 0, ErrInvalidToken
	}
	if claims.UserID == 0 {
		// signed by us but carries no usable identity
		return 0, ErrInvalidToken
	}

	return claims.UserID, nil
}

// UserByID resolves a token's user id to the stored user, sans password hash.
// Returns ErrUserNotFound when the user no longer exists.
func (s *AuthService) UserByID(ctx context.Context, id int) (*models.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// normalizeEmail applies the same canonical form used at registration.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// helper: issue a signed JWT for a user
func (s *AuthService) issueToken(userID int) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
	})
	return token.SignedString(s.signingKey)
}
