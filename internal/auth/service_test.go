package auth

import (
	"context"
	"testing"
)

func TestEnsureAdminHashesPassword(t *testing.T) {
	repo := NewInMemoryAdminRepository()
	service := NewService(repo)

	password := "Password@123"

	created, err := service.EnsureAdmin(context.Background(), "admin@sanfeliz.cl", password)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Fatalf("expected admin to be created")
	}

	admin := repo.admins["admin@sanfeliz.cl"]
	if admin == nil {
		t.Fatalf("admin not found")
	}
	if admin.Password == password {
		t.Fatalf("password was stored in plain text")
	}
	if admin.Role != RoleAdmin {
		t.Fatalf("expected role %s, got %s", RoleAdmin, admin.Role)
	}

	created, err = service.EnsureAdmin(context.Background(), "ADMIN@sanfeliz.cl", "other")
	if err != nil || created {
		t.Fatalf("second EnsureAdmin should be a no-op, got created=%v err=%v", created, err)
	}
}

func TestLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	service := NewService(NewInMemoryAdminRepository())
	if _, err := service.EnsureAdmin(context.Background(), "admin@sanfeliz.cl", "Password@123"); err != nil {
		t.Fatal(err)
	}

	if _, _, err := service.Login(context.Background(), "admin@sanfeliz.cl", "wrong"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := service.Login(context.Background(), "nobody@sanfeliz.cl", "Password@123"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	admin, token, err := service.Login(context.Background(), "admin@sanfeliz.cl", "Password@123")
	if err != nil {
		t.Fatal(err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.AdminID != admin.ID || claims.Role != RoleAdmin {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestValidateTokenRejectsOtherSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "one")
	token, err := GenerateToken("id", "a@b.cl", RoleAdmin)
	if err != nil {
		t.Fatal(err)
	}

	t.Setenv("JWT_SECRET", "two")
	if _, err := ValidateToken(token); err == nil {
		t.Fatal("expected token signed with another secret to be rejected")
	}
}
