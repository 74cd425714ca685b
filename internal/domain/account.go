package domain

import "time"

// Account is a registered credential record. Login is unique across the
// system. Only the bcrypt hash of the password is ever stored.
type Account struct {
	ID           string    `json:"id"`
	Login        string    `json:"login"` // Should be unique
	PasswordHash string    `json:"-"`     // Never expose this via JSON
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// AsUser projects the account into a session identity without credentials.
func (a *Account) AsUser() User {
	return User{
		ID:    a.ID,
		Name:  a.Name,
		Email: a.Email,
		Role:  a.Role,
	}
}
