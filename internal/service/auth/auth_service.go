package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/zvrva/railbooking/internal/domain"
	"github.com/zvrva/railbooking/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

type AuthUseCase interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, string, error)
	Login(ctx context.Context, username, password string) (*domain.User, string, error)
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

type AuthService struct {
	users      repository.UserRepository
	jwtSecret  string
	tokenTTL   time.Duration
	bcryptCost int
}

type RegisterInput struct {
	Username        string `json:"username"`
	Name            string `json:"name"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// Claims is the JWT payload carried by every authenticated request.
type Claims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

var usernameRe = regexp.MustCompile(`^\w{3,20}$`)

func NewAuthService(users repository.UserRepository, jwtSecret string, tokenTTL time.Duration, bcryptCost int) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{users: users, jwtSecret: jwtSecret, tokenTTL: tokenTTL, bcryptCost: bcryptCost}
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, string, error) {
	input.Username = strings.TrimSpace(input.Username)
	if !usernameRe.MatchString(input.Username) {
		return nil, "", fmt.Errorf("%w: username must be 3-20 word characters", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, "", fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if len(input.Password) < 8 {
		return nil, "", fmt.Errorf("%w: password must be at least 8 characters", domain.ErrInvalidInput)
	}
	// bcrypt rejects inputs longer than 72 bytes
	if len(input.Password) > 72 {
		return nil, "", fmt.Errorf("%w: password must be at most 72 characters", domain.ErrInvalidInput)
	}
	if input.Password != input.ConfirmPassword {
		return nil, "", fmt.Errorf("%w: passwords must match", domain.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		Username:     input.Username,
		Name:         input.Name,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, "", domain.ErrInvalidLogin
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", domain.ErrInvalidLogin
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Authenticate parses and verifies a bearer token and resolves its user.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return s.users.GetByID(ctx, claims.UserID)
}

func (s *AuthService) issueToken(userID int64) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

var _ AuthUseCase = (*AuthService)(nil)
