package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/task-manager/internal/models"
	"github.com/adanyl0v/task-manager/internal/repositories"
)

type userServiceImpl struct {
	logger zerolog.Logger
	users  repositories.UserRepository
	options
}

func NewUserService(
	logger zerolog.Logger,
	users repositories.UserRepository,
	opts ...Option,
) UserService {
	return &userServiceImpl{
		logger:  logger,
		users:   users,
		options: newOptions(opts),
	}
}

func (s *userServiceImpl) CreateUser(ctx context.Context, params CreateUserParams) (*models.User, error) {
	exists, err := s.users.ExistsByEmail(ctx, params.Email)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to check user email")
		return nil, err
	}
	if exists {
		s.logger.Warn().
			Str("email", params.Email).
			Msg("user with this email already exists")
		return nil, emailConflict(params.Email)
	}

	userID, err := s.newID()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate user id")
		return nil, err
	}

	user, err := models.NewUser(userID, models.NewUserParams{
		Name:  params.Name,
		Email: params.Email,
		Role:  params.Role,
	}, s.now())
	if err != nil {
		s.logger.Warn().
			Err(err).
			Msg("invalid user")
		return nil, err
	}

	err = s.users.Save(ctx, user)
	if err != nil {
		if errors.Is(err, repositories.ErrAlreadyExists) {
			s.logger.Warn().
				Str("email", user.Email()).
				Msg("user with this email was created concurrently")
			return nil, emailConflict(params.Email)
		}

		s.logger.Error().
			Err(err).
			Str("user_id", user.ID()).
			Msg("failed to save user")
		return nil, err
	}

	s.logger.Info().
		Str("user_id", user.ID()).
		Msg("created user")
	return user, nil
}

func (s *userServiceImpl) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			s.logger.Warn().
				Str("user_id", id).
				Msg("user not found")
			return nil, &EntityNotFoundError{Entity: "User", ID: id}
		}

		s.logger.Error().
			Err(err).
			Str("user_id", id).
			Msg("failed to find user")
		return nil, err
	}

	s.logger.Debug().
		Str("user_id", id).
		Msg("user found")
	return user, nil
}

func emailConflict(email string) *ConflictError {
	return &ConflictError{
		Message: fmt.Sprintf("a user with email '%s' already exists", email),
	}
}
