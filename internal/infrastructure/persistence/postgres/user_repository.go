package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/rafabene/blog-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/blog-backend/internal/domain/errors"
	"github.com/rafabene/blog-backend/internal/domain/repositories"
	"github.com/rafabene/blog-backend/internal/domain/valueobjects"
)

const (
	defaultUserPageSize = 100
	maxUserPageSize     = 500
)

// UserRepository implementa repositories.UserRepository
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository cria um novo UserRepository
func NewUserRepository(db *gorm.DB) repositories.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	model := r.toModel(user)

	if err := dbFrom(ctx, r.db).Create(model).Error; err != nil {
		return translateUserError(err)
	}

	user.ID = model.ID
	user.CreatedAt = time.Unix(0, model.CreatedAt).UTC()
	user.UpdatedAt = time.Unix(0, model.UpdatedAt).UTC()
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	if !isUUID(id) {
		return nil, nil
	}

	var model UserModel

	if err := dbFrom(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return toUserEntity(&model), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	var model UserModel

	if err := dbFrom(ctx, r.db).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return toUserEntity(&model), nil
}

// Update grava os campos editáveis do perfil. post_count fica de fora:
// só AdjustPostCount mexe nele.
func (r *UserRepository) Update(ctx context.Context, user *entities.User) error {
	if !isUUID(user.ID) {
		return domainerrors.ErrUserNotFound
	}
	result := dbFrom(ctx, r.db).Model(&UserModel{ID: user.ID}).Updates(map[string]any{
		"name":          user.Name,
		"email":         user.Email.String(),
		"password_hash": user.PasswordHash,
		"avatar":        user.Avatar.Ptr(),
	})
	if result.Error != nil {
		return translateUserError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) AdjustPostCount(ctx context.Context, id string, delta int) error {
	if !isUUID(id) {
		return domainerrors.ErrUserNotFound
	}
	result := dbFrom(ctx, r.db).Model(&UserModel{}).
		Where("id = ?", id).
		UpdateColumn("post_count", gorm.Expr(
			"CASE WHEN post_count + ? < 0 THEN 0 ELSE post_count + ? END", delta, delta,
		))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context, filters repositories.UserFilters) ([]*entities.User, error) {
	var models []*UserModel

	// Paginação
	page := filters.Page
	if page < 1 {
		page = 1
	}
	pageSize := filters.PageSize
	if pageSize < 1 {
		pageSize = defaultUserPageSize
	}
	if pageSize > maxUserPageSize {
		pageSize = maxUserPageSize
	}

	query := dbFrom(ctx, r.db).Model(&UserModel{}).
		Order("created_at ASC").
		Limit(pageSize).
		Offset((page - 1) * pageSize)

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	users := make([]*entities.User, 0, len(models))
	for _, model := range models {
		users = append(users, toUserEntity(model))
	}
	return users, nil
}

func translateUserError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domainerrors.ErrEmailAlreadyExists
	}
	return err
}

// Conversores
func (r *UserRepository) toModel(user *entities.User) *UserModel {
	model := &UserModel{
		ID:           user.ID,
		Email:        user.Email.String(),
		Name:         user.Name,
		PasswordHash: user.PasswordHash,
		Avatar:       user.Avatar.Ptr(),
		PostCount:    user.PostCount,
	}
	if !user.CreatedAt.IsZero() {
		model.CreatedAt = user.CreatedAt.UnixNano()
	}
	return model
}

func toUserEntity(model *UserModel) *entities.User {
	var avatar valueobjects.BlobID
	if model.Avatar != nil {
		avatar = valueobjects.ParseBlobID(*model.Avatar)
	}

	return &entities.User{
		ID:           model.ID,
		Email:        valueobjects.ParseEmail(model.Email),
		Name:         model.Name,
		PasswordHash: model.PasswordHash,
		Avatar:       avatar,
		PostCount:    model.PostCount,
		CreatedAt:    time.Unix(0, model.CreatedAt).UTC(),
		UpdatedAt:    time.Unix(0, model.UpdatedAt).UTC(),
	}
}
