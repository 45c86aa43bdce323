package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/d60-Lab/vidhub/pkg/token"
)

func TestRegisterAndLogin(t *testing.T) {
	f := newFixture(t)
	tokens := token.NewManager("secret", time.Hour)
	svc := NewAccountService(f.users, tokens).(*accountService)
	svc.cost = bcrypt.MinCost

	_, err := svc.Register(ctx, RegisterInput{Username: "alice"})
	assert.ErrorIs(t, err, ErrMissingFields)

	u, err := svc.Register(ctx, RegisterInput{Username: " Alice ", Email: "alice@example.com", FullName: "Alice A", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.NotEqual(t, "pw", u.PasswordHash)

	_, err = svc.Register(ctx, RegisterInput{Username: "alice", Email: "x@example.com", FullName: "x", Password: "pw"})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, err = svc.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "nobody", "pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	s, err := svc.Login(ctx, "alice@example.com", "pw")
	require.NoError(t, err)
	id, err := tokens.Parse(s.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, id)
}
