package services

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"recipebox/recipebox/allergen"
	"recipebox/recipebox/database/models"
	"recipebox/recipebox/database/repositories"
	"recipebox/recipebox/services/mock"
)

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return string(hash)
}

func TestAccountService_Signup(t *testing.T) {
	tests := []struct {
		name    string
		repoErr error
		wantErr error
	}{
		{
			name: "Success",
		},
		{
			name:    "DuplicateEmail",
			repoErr: &repositories.ConflictError{Entity: "user", Field: "email", Value: "chef@example.com"},
			wantErr: ErrDuplicateEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			users := mock.NewMockUserRepository(ctrl)
			users.EXPECT().
				Create(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, user *models.User) error {
					if user.Email != "chef@example.com" {
						t.Errorf("Create() email = %q", user.Email)
					}
					if user.PasswordHash == "hunter22" {
						t.Error("Create() stored the plaintext password")
					}
					if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter22")); err != nil {
						t.Errorf("Create() hash does not verify: %v", err)
					}
					return tt.repoErr
				})

			s := NewAccountService(users)

			_, err := s.Signup(context.Background(), "chef@example.com", "hunter22", "Chef", allergen.List{allergen.Peanut})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Signup() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAccountService_Authenticate(t *testing.T) {
	hash := hashOf(t, "hunter22")

	tests := []struct {
		name     string
		password string
		repoUser *models.User
		repoErr  error
		wantErr  error
	}{
		{
			name:     "Success",
			password: "hunter22",
			repoUser: &models.User{ID: 1, Email: "chef@example.com", PasswordHash: hash},
		},
		{
			name:     "WrongPassword",
			password: "letmein",
			repoUser: &models.User{ID: 1, Email: "chef@example.com", PasswordHash: hash},
			wantErr:  ErrInvalidCredentials,
		},
		{
			name:     "UnknownEmail",
			password: "hunter22",
			repoErr:  &repositories.NotFoundError{Entity: "user", ID: "chef@example.com"},
			wantErr:  ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			users := mock.NewMockUserRepository(ctrl)
			users.EXPECT().
				GetByEmail(gomock.Any(), "chef@example.com").
				Return(tt.repoUser, tt.repoErr)

			s := NewAccountService(users)

			user, err := s.Authenticate(context.Background(), "chef@example.com", tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Authenticate() error = %v, want %v", err, tt.wantErr)
				return
			}
			if tt.wantErr == nil && user.ID != tt.repoUser.ID {
				t.Errorf("Authenticate() user ID = %d, want %d", user.ID, tt.repoUser.ID)
			}
		})
	}
}

// Unknown emails and wrong passwords must be indistinguishable to the caller.
func TestAccountService_Authenticate_UniformFailure(t *testing.T) {
	ctrl := gomock.NewController(t)

	users := mock.NewMockUserRepository(ctrl)
	users.EXPECT().
		GetByEmail(gomock.Any(), "ghost@example.com").
		Return(nil, &repositories.NotFoundError{Entity: "user", ID: "ghost@example.com"})
	users.EXPECT().
		GetByEmail(gomock.Any(), "chef@example.com").
		Return(&models.User{ID: 1, Email: "chef@example.com", PasswordHash: hashOf(t, "hunter22")}, nil)

	s := NewAccountService(users)

	_, errUnknown := s.Authenticate(context.Background(), "ghost@example.com", "hunter22")
	_, errWrongPw := s.Authenticate(context.Background(), "chef@example.com", "letmein")

	if !errors.Is(errUnknown, ErrInvalidCredentials) || !errors.Is(errWrongPw, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for both, got %v and %v", errUnknown, errWrongPw)
	}
	if errUnknown.Error() != errWrongPw.Error() {
		t.Errorf("failure messages differ: %q vs %q", errUnknown.Error(), errWrongPw.Error())
	}
}

func TestAccountService_EditProfile(t *testing.T) {
	ctrl := gomock.NewController(t)

	want := &models.User{
		ID:        1,
		Email:     "chef@example.com",
		Name:      "Head Chef",
		Allergies: allergen.List{allergen.Dairy, allergen.Shellfish},
	}

	users := mock.NewMockUserRepository(ctrl)
	users.EXPECT().
		UpdateProfile(gomock.Any(), int64(1), "Head Chef", allergen.List{allergen.Dairy, allergen.Shellfish}).
		Return(want, nil)

	s := NewAccountService(users)

	got, err := s.EditProfile(context.Background(), 1, "Head Chef", allergen.List{allergen.Dairy, allergen.Shellfish})
	if err != nil {
		t.Fatalf("EditProfile() error = %v", err)
	}
	if got.Name != want.Name {
		t.Errorf("EditProfile() name = %q, want %q", got.Name, want.Name)
	}
}

func TestAccountService_DeleteAccount_LeavesCachedRecipes(t *testing.T) {
	ctrl := gomock.NewController(t)

	users := mock.NewMockUserRepository(ctrl)
	recipes := mock.NewMockRecipeRepository(ctrl)
	links := mock.NewMockUserRecipeRepository(ctrl)

	// Deleting an account cascades the user's own links inside the user
	// repository's transaction. The recipe store and the link store must not
	// see any calls from the service: no expectations are registered on them,
	// so the controller fails the test if either is touched.
	_ = recipes
	_ = links

	users.EXPECT().
		Delete(gomock.Any(), int64(7)).
		Return(nil)

	s := NewAccountService(users)

	if err := s.DeleteAccount(context.Background(), 7); err != nil {
		t.Fatalf("DeleteAccount() error = %v", err)
	}
}

func TestAccountService_DeleteAccount(t *testing.T) {
	tests := []struct {
		name    string
		repoErr error
		wantErr error
	}{
		{
			name: "Success",
		},
		{
			name:    "MissingUser",
			repoErr: &repositories.NotFoundError{Entity: "user", ID: int64(1)},
			wantErr: ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			users := mock.NewMockUserRepository(ctrl)
			users.EXPECT().
				Delete(gomock.Any(), int64(1)).
				Return(tt.repoErr)

			s := NewAccountService(users)

			if err := s.DeleteAccount(context.Background(), 1); !errors.Is(err, tt.wantErr) {
				t.Errorf("DeleteAccount() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
