package auth

import (
	"context"
	"errors"
)

var ErrAdminNotFound = errors.New("admin not found")

// AdminRepository defines the data-access contract.
// Service depends ONLY on this interface.
type AdminRepository interface {
	Save(ctx context.Context, admin *Admin) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	FindByEmail(ctx context.Context, email string) (*Admin, error)
}
