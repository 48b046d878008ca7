package domain

import (
	"errors"
)

var (
	MessageSuccessRegister       = "user registered successfully"
	MessageSuccessLogin          = "login success"
	MessageSuccessGetMe          = "success get profile"
	MessageSuccessGetUser        = "success get user"
	MessageSuccessUpdateUser     = "user updated successfully"
	MessageSuccessForgotPassword = "reset password email sent"
	MessageSuccessResetPassword  = "password reset successfully"

	MessageFailedRegister       = "failed to register user"
	MessageFailedLogin          = "failed to login"
	MessageFailedGetUser        = "failed to get user"
	MessageFailedUpdateUser     = "failed to update user"
	MessageFailedForgotPassword = "failed to send reset password email"
	MessageFailedResetPassword  = "failed to reset password"

	ErrUserNotFound          = errors.New("user not found")
	ErrEmailAlreadyExists    = errors.New("email already registered")
	ErrUsernameAlreadyExists = errors.New("username already taken")
	ErrCredentialsInvalid    = errors.New("invalid email or password")
)

type (
	UserRegisterRequest struct {
		Username  string `json:"username" validate:"required,max=150"`
		Email     string `json:"email" validate:"required,email,max=254"`
		FirstName string `json:"first_name" validate:"required,max=150"`
		LastName  string `json:"last_name" validate:"required,max=150"`
		Password  string `json:"password" validate:"required,min=8"`
	}

	UserLoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	UserUpdateRequest struct {
		Username  string `json:"username,omitempty"`
		FirstName string `json:"first_name,omitempty"`
		LastName  string `json:"last_name,omitempty"`
	}

	ForgotPasswordRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	ResetPasswordRequest struct {
		Token       string `json:"token" validate:"required"`
		NewPassword string `json:"new_password" validate:"required,min=8"`
	}

	UserLoginResponse struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}

	// UserResponse is the uniform user read shape. IsSubscribed is derived
	// from the viewer's follow state on every read, never stored.
	UserResponse struct {
		ID           string `json:"id"`
		Username     string `json:"username"`
		Email        string `json:"email"`
		FirstName    string `json:"first_name"`
		LastName     string `json:"last_name"`
		IsSubscribed bool   `json:"is_subscribed"`
	}
)
