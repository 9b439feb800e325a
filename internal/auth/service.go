package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type Service struct {
	repo AdminRepository
}

func NewService(repo AdminRepository) *Service {
	return &Service{repo: repo}
}

// EnsureAdmin creates the bootstrap account when it does not exist yet.
// It reports whether an account was created.
func (s *Service) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	if email == "" || password == "" {
		return false, errors.New("missing admin credentials")
	}

	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword(
		[]byte(password),
		bcrypt.DefaultCost,
	)
	if err != nil {
		return false, err
	}

	admin := &Admin{
		Name:     "Administrador",
		Email:    email,
		Password: string(hashedPassword),
		Role:     RoleAdmin,
	}
	if err := s.repo.Save(ctx, admin); err != nil {
		return false, err
	}
	return true, nil
}

// LOGIN
func (s *Service) Login(ctx context.Context, email, password string) (*Admin, string, error) {
	admin, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	err = bcrypt.CompareHashAndPassword(
		[]byte(admin.Password),
		[]byte(password),
	)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := GenerateToken(admin.ID, admin.Email, admin.Role)
	if err != nil {
		return nil, "", err
	}
	return admin, token, nil
}
