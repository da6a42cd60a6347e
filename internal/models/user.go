package models

// UserRole represents the role of a user in the marketplace
type UserRole string

const (
	UserRoleGuest     UserRole = "GUEST"
	UserRoleOrganizer UserRole = "ORGANIZER"
	UserRoleAdmin     UserRole = "ADMIN"
)

// User represents a marketplace user
type User struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Role   UserRole `json:"role"`
	Avatar string   `json:"avatar,omitempty"`
}

// MockUser is the single hardcoded visitor identity
var MockUser = User{
	ID:     "u1",
	Name:   "Alex Rivers",
	Email:  "alex@example.com",
	Role:   UserRoleGuest,
	Avatar: "https://picsum.photos/seed/u1/100/100",
}

// IsValid checks if the role is one of the known roles
func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleGuest, UserRoleOrganizer, UserRoleAdmin:
		return true
	default:
		return false
	}
}
