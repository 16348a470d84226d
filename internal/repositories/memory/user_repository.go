package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/task-manager/internal/models"
	"github.com/adanyl0v/task-manager/internal/repositories"
)

// UserRepository keeps users in memory. Email uniqueness is left to the
// caller.
type UserRepository struct {
	logger zerolog.Logger

	mu    sync.RWMutex
	users map[string]models.UserSnapshot
}

var _ repositories.UserRepository = (*UserRepository)(nil)

func NewUserRepository(logger zerolog.Logger) *UserRepository {
	return &UserRepository{
		logger: logger,
		users:  make(map[string]models.UserSnapshot),
	}
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*models.User, error) {
	id, ok := repositories.CanonicalID(id)
	if !ok {
		return nil, repositories.ErrNotFound
	}

	r.mu.RLock()
	snapshot, ok := r.users[id]
	r.mu.RUnlock()

	if !ok {
		return nil, repositories.ErrNotFound
	}
	return models.RestoreUser(snapshot), nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*models.User, error) {
	email = models.NormalizeEmail(email)

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.users {
		if s.Email == email {
			return models.RestoreUser(s), nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *UserRepository) Save(_ context.Context, user *models.User) error {
	snapshot := user.Snapshot()
	id, ok := repositories.CanonicalID(snapshot.ID)
	if !ok {
		return repositories.ErrInvalidID
	}
	snapshot.ID = id

	r.mu.Lock()
	r.users[id] = snapshot
	r.mu.Unlock()

	r.logger.Debug().
		Str("user_id", id).
		Msg("inserted user")
	return nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
