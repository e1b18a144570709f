package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PauloHFS/blogicum/internal/policies"
	"github.com/PauloHFS/blogicum/internal/validator"
)

func TestRegisterAndLogin(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	user, result, err := f.auth.Register(ctx, validator.RegistrationInput{
		Username: " carol ", Email: "carol@example.com", Password: "password123",
	})
	require.NoError(t, err)
	require.True(t, result.Valid, result.Message())
	assert.Equal(t, "carol", user.Username)

	_, result, err = f.auth.Register(ctx, validator.RegistrationInput{Username: "carol", Password: "password123"})
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.NotEmpty(t, result.FieldError("username"))

	_, result, err = f.auth.Register(ctx, validator.RegistrationInput{Username: "dave", Password: "short"})
	require.NoError(t, err)
	assert.False(t, result.Valid)

	_, result, err = f.auth.Register(ctx, validator.RegistrationInput{Username: "erin", Password: strings.Repeat("p", 73)})
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.NotEmpty(t, result.FieldError("password"))

	logged, err := f.auth.Login(ctx, "carol", "password123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)

	_, err = f.auth.Login(ctx, "carol", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.auth.Login(ctx, "nobody", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.auth.Login(ctx, "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateProfile(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	user, result, err := f.auth.UpdateProfile(ctx, f.alice, validator.ProfileInput{
		Username: "alice", Email: "alice@example.com", FirstName: "Alice", LastName: "Liddell",
	})
	require.NoError(t, err)
	require.True(t, result.Valid)
	assert.Equal(t, "Alice Liddell", user.FullName())

	_, result, err = f.auth.UpdateProfile(ctx, f.alice, validator.ProfileInput{Username: "bob"})
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.NotEmpty(t, result.FieldError("username"))

	_, _, err = f.auth.UpdateProfile(ctx, policies.Anonymous, validator.ProfileInput{Username: "ghost"})
	assert.Error(t, err)
}
