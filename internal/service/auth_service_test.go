// backend-go/internal/service/auth_service_test.go
package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/storedispatch/backend-go/internal/config"
	"github.com/storedispatch/backend-go/internal/domain"
	"github.com/storedispatch/backend-go/internal/service"
)

func newAuthService(users *fakeUserRepo) *service.AuthService {
	return service.NewAuthService(users, config.AuthConfig{
		JWTSecret:  "test-secret",
		BcryptCost: 4, // keep hashing cheap in tests
		TokenTTLHr: 1,
	})
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	users := newFakeUserRepo()
	svc := newAuthService(users)

	id, err := svc.Register(context.Background(), &service.RegisterInput{
		Username: "clerk",
		Password: "hunter2",
		Email:    "clerk@example.com",
		Roles:    "store",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if id == 0 {
		t.Fatal("expected a user id")
	}

	stored := users.users["clerk@example.com"]
	if stored == nil {
		t.Fatal("user not stored")
	}
	if stored.Password == "hunter2" {
		t.Error("password must be stored hashed")
	}

	token, user, err := svc.Login(context.Background(), "Clerk@Example.COM", "hunter2")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.ID != id {
		t.Errorf("logged in user id = %d, want %d", user.ID, id)
	}

	claims, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims["roles"] != "store" {
		t.Errorf("roles claim = %v, want store", claims["roles"])
	}
}

func TestAuthService_LoginFailures(t *testing.T) {
	users := newFakeUserRepo()
	svc := newAuthService(users)

	if _, err := svc.Register(context.Background(), &service.RegisterInput{
		Username: "clerk", Password: "hunter2", Email: "clerk@example.com",
	}); err != nil {
		t.Fatal(err)
	}

	if _, _, err := svc.Login(context.Background(), "nobody@example.com", "hunter2"); !errors.Is(err, service.ErrInvalidCredentials) {
		t.Errorf("unknown email: got %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := svc.Login(context.Background(), "clerk@example.com", "wrong"); !errors.Is(err, service.ErrInvalidCredentials) {
		t.Errorf("wrong password: got %v, want ErrInvalidCredentials", err)
	}

	var ve *domain.ValidationError
	if _, _, err := svc.Login(context.Background(), "", "hunter2"); !errors.As(err, &ve) {
		t.Errorf("missing email: got %v, want ValidationError", err)
	}
}

func TestAuthService_RegisterValidation(t *testing.T) {
	svc := newAuthService(newFakeUserRepo())

	var ve *domain.ValidationError
	if _, err := svc.Register(context.Background(), &service.RegisterInput{Username: "clerk"}); !errors.As(err, &ve) {
		t.Errorf("missing fields: got %v, want ValidationError", err)
	}
}

func TestAuthService_ParseRejectsForeignToken(t *testing.T) {
	users := newFakeUserRepo()
	issuer := newAuthService(users)
	if _, err := issuer.Register(context.Background(), &service.RegisterInput{
		Username: "clerk", Password: "hunter2", Email: "clerk@example.com",
	}); err != nil {
		t.Fatal(err)
	}
	token, _, err := issuer.Login(context.Background(), "clerk@example.com", "hunter2")
	if err != nil {
		t.Fatal(err)
	}

	other := service.NewAuthService(users, config.AuthConfig{JWTSecret: "different-secret", BcryptCost: 4, TokenTTLHr: 1})
	if _, err := other.ParseToken(token); err == nil {
		t.Error("token signed with another secret must not verify")
	}
}
