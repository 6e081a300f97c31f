package service_interfaces

import (
	"context"

	"github.com/api-sage/core-banking/internal/adapter/http/models"
	"github.com/api-sage/core-banking/internal/commons"
)

type UserService interface {
	CreateUser(ctx context.Context, req models.CreateUserRequest, actor models.Actor) (commons.Response[models.UserResponse], error)
	GetUser(ctx context.Context, userID string) (commons.Response[models.UserResponse], error)
	Authenticate(ctx context.Context, req models.LoginRequest, actor models.Actor) (commons.Response[models.UserResponse], error)
}
