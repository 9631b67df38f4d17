package models

import "github.com/golang-jwt/jwt/v5"

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStudent Role = "student"
)

type User struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	IsPaid bool   `json:"isPaid,omitempty"`
	Phone  string `json:"phone,omitempty"`
	School string `json:"school,omitempty"`
	Level  string `json:"level,omitempty"`
}

// Session is one authenticated role inside a visitor's client storage.
type Session struct {
	Role  Role   `json:"role"`
	Token string `json:"token"`
	User  User   `json:"user"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type RegisterRequest struct {
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Phone           string `json:"phone"`
	School          string `json:"school"`
	Level           string `json:"level"`
}

// UserRequest is the admin payload for creating or updating accounts.
type UserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password,omitempty"`
	Role     Role   `json:"role" binding:"required,oneof=admin student"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// VisitorClaims identifies a browser talking to the platform.
type VisitorClaims struct {
	VisitorID string `json:"visitor_id"`
	jwt.RegisteredClaims
}

type VisitorTokens struct {
	VisitorID    string `json:"visitor_id"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
