package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/PauloHFS/blogicum/internal/db"
	"github.com/PauloHFS/blogicum/internal/policies"
	"github.com/PauloHFS/blogicum/internal/validator"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// AuthService cuida de cadastro, login e edição do próprio perfil.
type AuthService struct {
	reader *db.Queries
	writer *db.Queries
}

func NewAuthService(reader, writer *db.Queries) *AuthService {
	return &AuthService{reader: reader, writer: writer}
}

func usernameTaken() validator.ValidationResult {
	return validator.ValidationResult{
		Valid:  false,
		Errors: []validator.ValidationError{{Field: "username", Message: "Пользователь с таким именем уже существует."}},
	}
}

func (s *AuthService) Register(ctx context.Context, in validator.RegistrationInput) (db.User, validator.ValidationResult, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)

	result := validator.Validate(in)
	if !result.Valid {
		return db.User{}, result, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return db.User{}, result, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.writer.CreateUser(ctx, db.CreateUserParams{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
	})
	if errors.Is(err, db.ErrConflict) {
		return db.User{}, usernameTaken(), nil
	}
	if err != nil {
		return db.User{}, result, fmt.Errorf("failed to create user: %w", err)
	}
	return user, result, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (db.User, error) {
	if username == "" || password == "" {
		return db.User{}, ErrInvalidCredentials
	}

	user, err := s.reader.GetUserByUsername(ctx, username)
	if errors.Is(err, db.ErrNotFound) {
		return db.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return db.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return db.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// UpdateProfile só altera o perfil do próprio requisitante.
func (s *AuthService) UpdateProfile(ctx context.Context, requester policies.Requester, in validator.ProfileInput) (db.User, validator.ValidationResult, error) {
	if requester.IsAnonymous() {
		return db.User{}, validator.ValidationResult{}, ErrInvalidCredentials
	}
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)

	result := validator.Validate(in)
	if !result.Valid {
		return db.User{}, result, nil
	}

	err := s.writer.UpdateUserProfile(ctx, db.UpdateUserProfileParams{
		ID:        requester.UserID,
		Username:  in.Username,
		Email:     in.Email,
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
	})
	if errors.Is(err, db.ErrConflict) {
		return db.User{}, usernameTaken(), nil
	}
	if err != nil {
		return db.User{}, result, fmt.Errorf("failed to update profile: %w", err)
	}

	user, err := s.writer.GetUserByID(ctx, requester.UserID)
	if err != nil {
		return db.User{}, result, fmt.Errorf("failed to reload profile: %w", err)
	}
	return user, result, nil
}
