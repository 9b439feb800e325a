package auth

const RoleAdmin = "ADMIN"

// Admin is a back-office account allowed to edit the catalog and read orders.
type Admin struct {
	ID       string
	Name     string
	Email    string
	Password string
	Role     string
}
