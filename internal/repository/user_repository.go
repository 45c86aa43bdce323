package repository

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/d60-Lab/vidhub/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByLogin(ctx context.Context, usernameOrEmail string) (*model.User, error)
	Exists(ctx context.Context, id string) (bool, error)
	Taken(ctx context.Context, username, email string) (bool, error)
}

type userRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepository{db: db} }

func (r *userRepository) Create(ctx context.Context, u *model.User) error {
	return errors.Wrap(r.db.WithContext(ctx).Create(u).Error, "create user")
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&u).Error; err != nil {
		return nil, errors.Wrap(err, "get user")
	}
	return &u, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).Where("username = ?", strings.ToLower(strings.TrimSpace(username))).Take(&u).Error
	if err != nil {
		return nil, errors.Wrap(err, "get user by username")
	}
	return &u, nil
}

func (r *userRepository) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	login = strings.TrimSpace(login)
	var u model.User
	err := r.db.WithContext(ctx).
		Where("username = ? OR email = ?", strings.ToLower(login), login).
		Take(&u).Error
	if err != nil {
		return nil, errors.Wrap(err, "get user by login")
	}
	return &u, nil
}

func (r *userRepository) Exists(ctx context.Context, id string) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Count(&cnt).Error; err != nil {
		return false, errors.Wrap(err, "count user")
	}
	return cnt > 0, nil
}

func (r *userRepository) Taken(ctx context.Context, username, email string) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("username = ? OR email = ?", strings.ToLower(strings.TrimSpace(username)), strings.TrimSpace(email)).
		Count(&cnt).Error
	if err != nil {
		return false, errors.Wrap(err, "check username/email")
	}
	return cnt > 0, nil
}
