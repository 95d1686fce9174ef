package services

import (
	"context"
	"fmt"

	"battery-lab-api/models"
	"battery-lab-api/store"

	"golang.org/x/crypto/bcrypt"
)

// UserService owns the credential boundary: passwords are bcrypt-hashed
// before they reach the store.
type UserService struct {
	store store.Store
	cost  int
}

func NewUserService(s store.Store) *UserService {
	return &UserService{store: s, cost: bcrypt.DefaultCost}
}

func (s *UserService) HashPassword(plain string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), s.cost)
	return string(bytes), err
}

func (s *UserService) CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// Register hashes the password and stores the user. A taken username comes
// back as store.ErrUsernameTaken.
func (s *UserService) Register(ctx context.Context, username, password string) (*models.User, error) {
	hash, err := s.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user, err := s.store.CreateUser(ctx, models.User{Username: username, Password: hash})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	return s.store.GetUser(ctx, id)
}
