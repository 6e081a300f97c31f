package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/api-sage/core-banking/internal/adapter/http/models"
	"github.com/api-sage/core-banking/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/core-banking/internal/commons"
	"github.com/api-sage/core-banking/internal/domain"
	"github.com/api-sage/core-banking/internal/logger"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	uow repo_interfaces.UnitOfWork
}

func NewUserService(uow repo_interfaces.UnitOfWork) *UserService {
	return &UserService{uow: uow}
}

func (s *UserService) CreateUser(ctx context.Context, req models.CreateUserRequest, actor models.Actor) (commons.Response[models.UserResponse], error) {
	logger.Info("user service create request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.UserResponse]("validation failed", err.Error()), fmt.Errorf("%v: %w", err, commons.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("user service password hash failed", err, nil)
		return commons.ErrorResponse[models.UserResponse]("failed to create user", "Unable to process the request right now"), err
	}

	var created domain.User
	err = s.uow.Do(ctx, func(ctx context.Context, db repo_interfaces.Session) error {
		created, err = db.Users().Create(ctx, domain.User{
			Email:        strings.ToLower(strings.TrimSpace(req.Email)),
			Username:     strings.TrimSpace(req.Username),
			PasswordHash: string(hash),
			FirstName:    strings.TrimSpace(req.FirstName),
			LastName:     strings.TrimSpace(req.LastName),
			IsActive:     true,
		})
		if err != nil {
			return err
		}

		_, err = db.AuditLogs().Create(ctx, auditEntry(domain.AuditActionCreate, "user", created.ID, actor, map[string]any{
			"email":    created.Email,
			"username": created.Username,
		}))
		return err
	})
	if err != nil {
		logger.Error("user service create failed", err, logger.Fields{
			"email": req.Email,
		})
		return errorResponseFor[models.UserResponse](err, "failed to create user"), err
	}

	logger.Info("user service create success", logger.Fields{
		"userId": created.ID,
	})
	return commons.SuccessResponse("user created", mapUserToResponse(created)), nil
}

func (s *UserService) GetUser(ctx context.Context, userID string) (commons.Response[models.UserResponse], error) {
	var user domain.User
	err := s.uow.Do(ctx, func(ctx context.Context, db repo_interfaces.Session) error {
		var err error
		user, err = db.Users().GetByID(ctx, strings.TrimSpace(userID))
		return err
	})
	if err != nil {
		return errorResponseFor[models.UserResponse](err, "failed to get user"), err
	}
	return commons.SuccessResponse("user found", mapUserToResponse(user)), nil
}

// Authenticate verifies credentials and records a login audit entry. The
// same generic failure is returned whether the email is unknown or the
// password wrong.
func (s *UserService) Authenticate(ctx context.Context, req models.LoginRequest, actor models.Actor) (commons.Response[models.UserResponse], error) {
	logger.Info("user service authenticate request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.UserResponse]("validation failed", err.Error()), fmt.Errorf("%v: %w", err, commons.ErrValidation)
	}

	var user domain.User
	err := s.uow.Do(ctx, func(ctx context.Context, db repo_interfaces.Session) error {
		var err error
		user, err = db.Users().GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
		if err != nil {
			return err
		}
		if !user.IsActive {
			return fmt.Errorf("user %s: %w", user.ID, commons.ErrAccountInactive)
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			return fmt.Errorf("password mismatch for user %s: %w", user.ID, commons.ErrRecordNotFound)
		}

		_, err = db.AuditLogs().Create(ctx, auditEntry(domain.AuditActionLogin, "user", user.ID, models.Actor{
			UserID:    user.ID,
			IPAddress: actor.IPAddress,
		}, map[string]any{
			"email": user.Email,
		}))
		return err
	})
	if err != nil {
		logger.Error("user service authenticate failed", err, logger.Fields{
			"email": req.Email,
		})
		s.recordFailedLogin(ctx, req.Email, actor)
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.UserResponse]("authentication failed", "Invalid email or password"), err
		}
		return errorResponseFor[models.UserResponse](err, "authentication failed"), err
	}

	logger.Info("user service authenticate success", logger.Fields{
		"userId": user.ID,
	})
	return commons.SuccessResponse("authenticated", mapUserToResponse(user)), nil
}

// recordFailedLogin audits a rejected login attempt, best effort. The
// rejected attempt's unit of work rolled back, so the entry needs a fresh
// one.
func (s *UserService) recordFailedLogin(ctx context.Context, email string, actor models.Actor) {
	err := s.uow.Do(ctx, func(ctx context.Context, db repo_interfaces.Session) error {
		_, err := db.AuditLogs().Create(ctx, auditEntry(domain.AuditActionLogin, "user", "", actor, map[string]any{
			"email":   strings.ToLower(strings.TrimSpace(email)),
			"success": false,
		}))
		return err
	})
	if err != nil {
		logger.Error("user service record failed login", err, nil)
	}
}
