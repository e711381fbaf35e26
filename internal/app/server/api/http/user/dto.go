package user

import (
	"time"

	"querytrack/internal/domain/user"
)

type registerInput struct {
	Body user.BaseRequest
}

type registerOutput struct {
	Body RegisterResponse
}

type RegisterResponse struct {
	ID     string `json:"user_id"`
	Status string `json:"status"`
}

type loginInput struct {
	Body user.BaseRequest
}

type loginOutput struct {
	Body LoginResponse
}

type LoginResponse struct {
	UserID string `json:"user_id"`
	Token  string `json:"token"`
	Status string `json:"status"`
}

type logoutOutput struct {
	Body struct {
		Status string `json:"status"`
	}
}

type meOutput struct {
	Body MeResponse
}

type MeResponse struct {
	UserID    string    `json:"user_id"`
	Login     string    `json:"login"`
	CreatedAt time.Time `json:"created_at"`
}
