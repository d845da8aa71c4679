// backend-go/internal/service/auth_service.go
package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/storedispatch/backend-go/internal/config"
	"github.com/storedispatch/backend-go/internal/domain"
	"github.com/storedispatch/backend-go/internal/repository"
)

// RegisterInput is a new user registration request.
type RegisterInput struct {
	Username   string `json:"username"`
	Password   string `json:"Password"`
	Email      string `json:"Email"`
	Roles      string `json:"Roles"`
	Permission string `json:"Permission"`
}

// ErrInvalidCredentials is returned for both a missing user and a wrong
// password, so a caller cannot probe which emails exist.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService issues bearer tokens after verifying credentials. Token
// validation on later requests belongs to the routing layer, not here.
type AuthService struct {
	users repository.UserRepository
	cfg   config.AuthConfig
	now   func() time.Time
}

func NewAuthService(users repository.UserRepository, cfg config.AuthConfig) *AuthService {
	if cfg.BcryptCost <= 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	if cfg.TokenTTLHr <= 0 {
		cfg.TokenTTLHr = 24
	}
	return &AuthService{users: users, cfg: cfg, now: time.Now}
}

// Register hashes the password and creates the account in the local database.
func (s *AuthService) Register(ctx context.Context, in *RegisterInput) (int64, error) {
	if in.Username == "" || in.Password == "" || in.Email == "" {
		return 0, domain.NewValidationError("username/Password/Email", "missing required field")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cfg.BcryptCost)
	if err != nil {
		return 0, err
	}

	user := &domain.User{
		Username: in.Username,
		Email:    in.Email,
		Password: string(hash),
		Roles:    in.Roles,
		Permiss:  in.Permission,
	}
	id, err := s.users.Create(ctx, user)
	if err != nil {
		return 0, domain.NewPersistenceError(repository.TargetLocal, "register user", err)
	}
	return id, nil
}

// Login verifies the password and returns a signed token plus the account.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.NewValidationError("Email/password", "missing required field")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, domain.NewPersistenceError(repository.TargetLocal, "login/find user", err)
	}
	if user == nil || user.Password == "" {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) issueToken(user *domain.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"userId": user.ID,
		"roles":  user.Roles,
		"store":  user.StoreName,
		"iat":    now.Unix(),
		"exp":    now.Add(time.Duration(s.cfg.TokenTTLHr) * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// ParseToken verifies a token issued by this service. Exposed for the
// routing layer and for tests; core endpoints never call it.
func (s *AuthService) ParseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
