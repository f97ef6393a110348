package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rafabene/blog-backend/internal/domain/entities"
	"github.com/rafabene/blog-backend/internal/domain/repositories"
	"github.com/rafabene/blog-backend/internal/domain/valueobjects"
)

// PostRepository implementa repositories.PostRepository
type PostRepository struct {
	db *gorm.DB
}

// NewPostRepository cria um novo PostRepository
func NewPostRepository(db *gorm.DB) repositories.PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(ctx context.Context, post *entities.Post) error {
	model := &PostModel{
		Title:       post.Title,
		Category:    string(post.Category),
		Description: post.Description,
		Thumbnail:   post.Thumbnail.String(),
		CreatorID:   post.Creator,
	}

	if err := dbFrom(ctx, r.db).Omit("Likes").Create(model).Error; err != nil {
		return err
	}

	post.ID = model.ID
	post.CreatedAt = time.Unix(0, model.CreatedAt).UTC()
	post.UpdatedAt = time.Unix(0, model.UpdatedAt).UTC()
	if post.Likes == nil {
		post.Likes = []string{}
	}
	return nil
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (*entities.Post, error) {
	if !isUUID(id) {
		return nil, nil
	}

	var model PostModel

	err := withLikes(dbFrom(ctx, r.db)).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return toPostEntity(&model), nil
}

func (r *PostRepository) Update(ctx context.Context, post *entities.Post) (bool, error) {
	if !isUUID(post.ID) {
		return false, nil
	}

	result := dbFrom(ctx, r.db).Model(&PostModel{}).
		Where("id = ?", post.ID).
		Updates(map[string]any{
			"title":       post.Title,
			"category":    string(post.Category),
			"description": post.Description,
			"thumbnail":   post.Thumbnail.String(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) (bool, error) {
	if !isUUID(id) {
		return false, nil
	}

	var found bool

	// curtidas saem junto, mesmo sem ON DELETE CASCADE (sqlite sem foreign_keys)
	err := dbFrom(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&PostLikeModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&PostModel{})
		if result.Error != nil {
			return result.Error
		}
		found = result.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, err
	}

	return found, nil
}

func (r *PostRepository) List(ctx context.Context, filters repositories.PostFilters) ([]*entities.Post, error) {
	var models []*PostModel

	query := withLikes(dbFrom(ctx, r.db)).Model(&PostModel{})

	// Aplicar filtros
	if filters.Category != nil {
		query = query.Where("category = ?", *filters.Category)
	}
	if filters.CreatorID != nil {
		if !isUUID(*filters.CreatorID) {
			return []*entities.Post{}, nil
		}
		query = query.Where("creator_id = ?", *filters.CreatorID)
	}

	if err := query.Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}

	posts := make([]*entities.Post, 0, len(models))
	for _, model := range models {
		posts = append(posts, toPostEntity(model))
	}
	return posts, nil
}

// ToggleLike remove a curtida se existir, senão cria. A contagem é lida
// na mesma transação.
func (r *PostRepository) ToggleLike(ctx context.Context, postID, userID string) (int, error) {
	var count int64

	err := dbFrom(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		removed := tx.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&PostLikeModel{})
		if removed.Error != nil {
			return removed.Error
		}

		if removed.RowsAffected == 0 {
			like := &PostLikeModel{PostID: postID, UserID: userID}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(like).Error; err != nil {
				return err
			}
		}

		return tx.Model(&PostLikeModel{}).Where("post_id = ?", postID).Count(&count).Error
	})
	if err != nil {
		return 0, err
	}

	return int(count), nil
}

func withLikes(db *gorm.DB) *gorm.DB {
	return db.Preload("Likes", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC")
	})
}

func toPostEntity(model *PostModel) *entities.Post {
	likes := make([]string, 0, len(model.Likes))
	for _, like := range model.Likes {
		likes = append(likes, like.UserID)
	}

	return &entities.Post{
		ID:          model.ID,
		Title:       model.Title,
		Category:    entities.Category(model.Category),
		Description: model.Description,
		Thumbnail:   valueobjects.ParseBlobID(model.Thumbnail),
		Creator:     model.CreatorID,
		Likes:       likes,
		CreatedAt:   time.Unix(0, model.CreatedAt).UTC(),
		UpdatedAt:   time.Unix(0, model.UpdatedAt).UTC(),
	}
}
