package models

import (
	"errors"
	"strings"
)

type CreateUserRequest struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (r CreateUserRequest) Validate() error {
	var errs []string

	email := strings.TrimSpace(r.Email)
	if email == "" || !strings.Contains(email, "@") {
		errs = append(errs, "email must be a valid address")
	}
	if strings.TrimSpace(r.Username) == "" {
		errs = append(errs, "username is required")
	}
	if len(r.Password) < 8 {
		errs = append(errs, "password must be at least 8 characters")
	}
	if strings.TrimSpace(r.FirstName) == "" {
		errs = append(errs, "firstName is required")
	}
	if strings.TrimSpace(r.LastName) == "" {
		errs = append(errs, "lastName is required")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.Email) == "" {
		errs = append(errs, "email is required")
	}
	if r.Password == "" {
		errs = append(errs, "password is required")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	IsActive  bool   `json:"isActive"`
	CreatedAt string `json:"createdAt"`
}
