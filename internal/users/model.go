package users

import "time"

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"displayName"`
	PictureURL   string    `json:"pictureUrl"`
	PasswordHash string    `json:"-"`
	AuthProvider string    `json:"-"`
	Admin        bool      `json:"admin"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

const (
	ProviderPassword = "password"
	ProviderGoogle   = "google"
)
