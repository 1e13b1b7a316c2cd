package domain

import "time"

// Client is the console-side view of a managed client account.
type Client struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	CompanyName string    `json:"companyName"`
	Plan        string    `json:"plan"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
}

// User is an account able to log into the console.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	ClientID  string    `json:"clientId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserInput carries the writable fields for user create and update calls.
type UserInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password,omitempty"`
	Role        Role   `json:"role"`
	CompanyName string `json:"companyName,omitempty"`
	Plan        string `json:"plan,omitempty"`
}
