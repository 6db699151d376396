package database

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/trezcool/classroom/core"
	"github.com/trezcool/classroom/core/user"
	"github.com/trezcool/classroom/storage/kv"
)

type userRepository struct {
	db *DB
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *DB) user.Repository {
	return &userRepository{db: db}
}

func (repo *userRepository) QueryAllUsers(ctx context.Context) ([]user.User, error) {
	return repo.db.users.All(ctx)
}

func (repo *userRepository) GetUserByID(ctx context.Context, id string) (user.User, error) {
	return repo.db.users.GetByID(ctx, id)
}

func (repo *userRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	return repo.db.users.GetByField(ctx, "email", email)
}

func (repo *userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	id, err := repo.db.users.Create(ctx, usr)
	if err != nil {
		return user.User{}, err
	}
	return usr.WithID(id), nil
}

func (repo *userRepository) UpdateUser(ctx context.Context, usr user.User) (user.User, error) {
	if err := repo.db.users.Update(ctx, usr.ID, usr); err != nil {
		return user.User{}, err
	}
	return usr, nil
}

func (repo *userRepository) DeleteUser(ctx context.Context, id string) error {
	return repo.db.users.Delete(ctx, id)
}

// sessionStore keeps the logged-in User snapshot under SessionKey.
type sessionStore struct {
	db *DB
}

var _ user.SessionStore = (*sessionStore)(nil) // interface compliance check

func NewSessionStore(db *DB) user.SessionStore {
	return &sessionStore{db: db}
}

func (s *sessionStore) CurrentSession(ctx context.Context) (user.User, error) {
	data, err := s.db.store.Get(ctx, SessionKey)
	if err != nil {
		if errors.Is(err, kv.ErrKeyNotFound) {
			return user.User{}, user.ErrNoSession
		}
		return user.User{}, errors.Wrap(err, "reading session")
	}
	var usr user.User
	if err = json.Unmarshal(data, &usr); err != nil {
		return user.User{}, errors.Wrapf(core.ErrCorruptState, "decoding session: %v", err)
	}
	if usr.ID == "" { // stored as JSON null
		return user.User{}, user.ErrNoSession
	}
	return usr, nil
}

func (s *sessionStore) SetCurrentSession(ctx context.Context, usr user.User) error {
	data, err := json.Marshal(usr)
	if err != nil {
		return errors.Wrap(err, "encoding session")
	}
	return errors.Wrap(s.db.store.Set(ctx, SessionKey, data), "writing session")
}

func (s *sessionStore) ClearSession(ctx context.Context) error {
	return errors.Wrap(s.db.store.Delete(ctx, SessionKey), "clearing session")
}
