package domain

// A User is the resolved principal owning a shopping cart.
type User struct {
	ID       int
	Username string
}
