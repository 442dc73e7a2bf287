package repositories

import (
	"context"
	"log/slog"
	"time"

	"github.com/uptrace/bun"

	"recipebox/recipebox/allergen"
	"recipebox/recipebox/database/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, id int64, name string, allergies allergen.List) (*models.User, error)
	Delete(ctx context.Context, id int64) error
}

type userRepository struct {
	*BaseRepository
}

func NewUserRepository(db *bun.DB) UserRepository {
	return &userRepository{BaseRepository: NewBaseRepository(db)}
}

// Create persists a new user. Email uniqueness is not checked proactively; a
// violation of the users.email unique constraint surfaces as a ConflictError.
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	timeoutCtx, cancel := r.WithTimeout(ctx)
	defer cancel()

	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	_, err := r.DB().NewInsert().Model(user).Exec(timeoutCtx)
	return r.HandleErrorWithID("create", "user", user.Email, err)
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	timeoutCtx, cancel := r.WithTimeout(ctx)
	defer cancel()

	user := new(models.User)
	err := r.DB().NewSelect().
		Model(user).
		Where("id = ?", id).
		Scan(timeoutCtx)
	if err != nil {
		return nil, r.HandleErrorWithID("get", "user", id, err)
	}
	return user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	timeoutCtx, cancel := r.WithTimeout(ctx)
	defer cancel()

	user := new(models.User)
	err := r.DB().NewSelect().
		Model(user).
		Where("email = ?", email).
		Scan(timeoutCtx)
	if err != nil {
		return nil, r.HandleErrorWithID("get", "user", email, err)
	}
	return user, nil
}

// UpdateProfile mutates name and allergies only. Email and password hash are
// immutable after signup.
func (r *userRepository) UpdateProfile(ctx context.Context, id int64, name string, allergies allergen.List) (*models.User, error) {
	timeoutCtx, cancel := r.WithTimeout(ctx)
	defer cancel()

	res, err := r.DB().NewUpdate().
		Model((*models.User)(nil)).
		Set("name = ?", name).
		Set("allergies = ?", allergies).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Exec(timeoutCtx)
	if err != nil {
		return nil, r.HandleErrorWithID("update", "user", id, err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return nil, &NotFoundError{Entity: "user", ID: id}
	}

	return r.GetByID(ctx, id)
}

// Delete removes the user row and all of the user's recipe links in one
// transaction. Cached recipe rows are shared across users and stay untouched.
func (r *userRepository) Delete(ctx context.Context, id int64) error {
	err := r.Transaction(ctx, func(txCtx context.Context, tx bun.Tx) error {
		deleted, err := tx.NewDelete().
			Model((*models.UserRecipe)(nil)).
			Where("user_id = ?", id).
			Exec(txCtx)
		if err != nil {
			return err
		}
		if affected, _ := deleted.RowsAffected(); affected > 0 {
			slog.Info("Cascading user recipe links",
				slog.String("type", "db"),
				slog.Int64("user_id", id),
				slog.Int64("links_deleted", affected))
		}

		res, err := tx.NewDelete().
			Model((*models.User)(nil)).
			Where("id = ?", id).
			Exec(txCtx)
		if err != nil {
			return err
		}
		if affected, _ := res.RowsAffected(); affected == 0 {
			return &NotFoundError{Entity: "user", ID: id}
		}
		return nil
	})

	if err != nil {
		if IsNotFound(err) {
			return err
		}
		return r.HandleErrorWithID("delete", "user", id, err)
	}
	return nil
}
