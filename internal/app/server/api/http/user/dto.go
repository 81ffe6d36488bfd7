package user

import "healthwatch/internal/domain/user"

type signupInput struct {
	Body struct {
		Name     string `json:"name" example:"Asha Devi" doc:"Display name"`
		Email    string `json:"email" example:"asha@example.org"`
		Password string `json:"password" example:"pw12345" doc:"At least 6 characters"`
	}
}

type loginInput struct {
	Body struct {
		Email    string `json:"email" example:"asha@example.org"`
		Password string `json:"password" example:"pw12345"`
	}
}

type authOutput struct {
	Body AuthResponse
}

type AuthResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    user.Profile `json:"user"`
}

type resetInput struct {
	Body struct {
		Email string `json:"email" example:"asha@example.org"`
	}
}

type resetOutput struct {
	Body MessageResponse
}

type MessageResponse struct {
	Message string `json:"message"`
}
