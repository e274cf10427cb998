package model

import "time"

type Credentials struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	StatusCode     int    `json:"statusCode,omitempty"`
	Message        string `json:"message,omitempty"`
	Token          string `json:"token,omitempty"`
	Role           string `json:"role,omitempty"`
	ExpirationTime string `json:"expirationTime,omitempty"`
}

// User is the dev backend's account record.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash []byte
	Role         string
	CreatedAt    time.Time
}
