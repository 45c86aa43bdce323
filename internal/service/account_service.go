package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/d60-Lab/vidhub/internal/model"
	"github.com/d60-Lab/vidhub/internal/repository"
	"github.com/d60-Lab/vidhub/pkg/apperr"
	"github.com/d60-Lab/vidhub/pkg/token"
)

// RegisterInput 注册参数
type RegisterInput struct {
	Username string
	Email    string
	FullName string
	Password string
}

// Session 登录结果
type Session struct {
	User      *model.User `json:"user"`
	Token     string      `json:"accessToken"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

// AccountService 注册与登录
type AccountService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	Login(ctx context.Context, login, password string) (*Session, error)
}

type accountService struct {
	users  repository.UserRepository
	tokens *token.Manager
	cost   int
}

func NewAccountService(users repository.UserRepository, tokens *token.Manager) AccountService {
	return &accountService{users: users, tokens: tokens, cost: bcrypt.DefaultCost}
}

func (s *accountService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	username := strings.ToLower(strings.TrimSpace(in.Username))
	email := strings.TrimSpace(in.Email)
	fullName := strings.TrimSpace(in.FullName)
	if username == "" || email == "" || fullName == "" || in.Password == "" {
		return nil, ErrMissingFields
	}
	taken, err := s.users.Taken(ctx, username, email)
	if err != nil {
		return nil, apperr.Internal("failed to register", err)
	}
	if taken {
		return nil, ErrUsernameTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, apperr.Internal("failed to register", err)
	}
	u := &model.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		FullName:     fullName,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, apperr.Internal("failed to register", err)
	}
	return u, nil
}

func (s *accountService) Login(ctx context.Context, login, password string) (*Session, error) {
	if strings.TrimSpace(login) == "" || password == "" {
		return nil, apperr.Validation("username or email and password are required")
	}
	u, err := s.users.GetByLogin(ctx, login)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, apperr.Internal("failed to login", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	raw, exp, err := s.tokens.Issue(u.ID, u.Username)
	if err != nil {
		return nil, apperr.Internal("failed to login", err)
	}
	return &Session{User: u, Token: raw, ExpiresAt: exp}, nil
}
