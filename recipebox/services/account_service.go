package services

import (
	"context"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"recipebox/recipebox/allergen"
	"recipebox/recipebox/database/models"
	"recipebox/recipebox/database/repositories"
)

const bcryptCost = 12

// AccountService owns user registration, credential checks and profile
// maintenance.
type AccountService struct {
	users repositories.UserRepository
}

func NewAccountService(users repositories.UserRepository) *AccountService {
	return &AccountService{users: users}
}

// Signup registers a new account. The email must be unused; a taken email
// returns ErrDuplicateEmail. The password is stored only as a bcrypt hash.
func (s *AccountService) Signup(ctx context.Context, email, password, name string, allergies allergen.List) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Allergies:    allergies,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if repositories.IsConflict(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	slog.Info("Account created",
		slog.Int64("user_id", user.ID),
		slog.String("email", user.Email))

	return user, nil
}

// Authenticate checks an email/password pair. Unknown emails and wrong
// passwords both come back as ErrInvalidCredentials; callers cannot tell
// which one failed.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// Get returns the account by id, or ErrUserNotFound.
func (s *AccountService) Get(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// EditProfile updates the display name and allergy set. Email and password
// are immutable here.
func (s *AccountService) EditProfile(ctx context.Context, userID int64, name string, allergies allergen.List) (*models.User, error) {
	user, err := s.users.UpdateProfile(ctx, userID, name, allergies)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// DeleteAccount removes the account and every saved-recipe entry it owns.
// Cached recipe rows are left in place for other users.
func (s *AccountService) DeleteAccount(ctx context.Context, userID int64) error {
	if err := s.users.Delete(ctx, userID); err != nil {
		if repositories.IsNotFound(err) {
			return ErrUserNotFound
		}
		return err
	}

	slog.Info("Account deleted", slog.Int64("user_id", userID))
	return nil
}
