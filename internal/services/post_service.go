package services

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rafabene/blog-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/blog-backend/internal/domain/errors"
	"github.com/rafabene/blog-backend/internal/domain/ports"
	"github.com/rafabene/blog-backend/internal/domain/repositories"
	"github.com/rafabene/blog-backend/internal/domain/valueobjects"
)

// PostService contém a lógica de negócio para posts
type PostService struct {
	postRepo repositories.PostRepository
	userRepo repositories.UserRepository
	blobs    ports.BlobStore
	uow      ports.UnitOfWork
	events   ports.EventPublisher
	logger   ports.Logger
}

// NewPostService cria um novo PostService
func NewPostService(
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
	blobs ports.BlobStore,
	uow ports.UnitOfWork,
	events ports.EventPublisher,
	logger ports.Logger,
) *PostService {
	return &PostService{
		postRepo: postRepo,
		userRepo: userRepo,
		blobs:    blobs,
		uow:      uow,
		events:   events,
		logger:   logger,
	}
}

// CreatePostInput representa os dados para criar um post
type CreatePostInput struct {
	Title       string
	Category    string
	Description string
	Thumbnail   *ports.FileUpload
}

// EditPostInput representa os dados para editar um post.
// Thumbnail nil mantém a imagem atual.
type EditPostInput struct {
	Title       string
	Category    string
	Description string
	Thumbnail   *ports.FileUpload
}

// CreatePost cria um post, grava a thumbnail e incrementa o contador do autor
func (s *PostService) CreatePost(ctx context.Context, caller ports.Identity, input CreatePostInput) (*entities.Post, error) {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if title == "" || input.Category == "" || description == "" {
		return nil, domainerrors.ErrMissingFields
	}

	category, ok := entities.ParseCategory(input.Category)
	if !ok {
		return nil, domainerrors.ErrInvalidCategory
	}

	if err := checkImage(input.Thumbnail, entities.MaxThumbnailSize); err != nil {
		return nil, err
	}

	s.logger.Info("creating post", "creator", caller.ID, "category", category)

	thumbnail, err := uploadImage(ctx, s.blobs, *input.Thumbnail, ports.FolderThumbnails)
	if err != nil {
		s.logger.Error("thumbnail upload failed", "creator", caller.ID, "error", err)
		return nil, err
	}

	post := &entities.Post{
		Title:       title,
		Category:    category,
		Description: description,
		Thumbnail:   thumbnail,
		Creator:     caller.ID,
		Likes:       []string{},
	}

	if err := post.Validate(); err != nil {
		s.logger.Warn("invalid post, removing uploaded thumbnail", "creator", caller.ID, "error", err)
		s.discardBlob(ctx, thumbnail)
		return nil, err
	}

	// post e contador na mesma transação
	err = s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.postRepo.Create(txCtx, post); err != nil {
			return err
		}
		return s.userRepo.AdjustPostCount(txCtx, caller.ID, 1)
	})
	if err != nil {
		s.logger.Error("failed to persist post, removing uploaded thumbnail",
			"creator", caller.ID,
			"thumbnail", thumbnail.String(),
			"error", err,
		)
		s.discardBlob(ctx, thumbnail)
		return nil, domainerrors.Wrap(domainerrors.ErrPersistFailed, err)
	}

	s.publish(ctx, ports.PostEvent{
		Type:     ports.EventPostCreated,
		PostID:   post.ID,
		ActorID:  caller.ID,
		Category: string(post.Category),
	})

	return post, nil
}

// GetPost busca um post por ID
func (s *PostService) GetPost(ctx context.Context, id string) (*entities.Post, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, domainerrors.ErrPostNotFound
	}
	return post, nil
}

// ListPosts lista todos os posts, do mais novo para o mais antigo
func (s *PostService) ListPosts(ctx context.Context) ([]*entities.Post, error) {
	return s.postRepo.List(ctx, repositories.PostFilters{})
}

// ListPostsByCategory lista posts da categoria (comparação exata).
// Categoria desconhecida resulta em lista vazia.
func (s *PostService) ListPostsByCategory(ctx context.Context, category string) ([]*entities.Post, error) {
	if _, ok := entities.ParseCategory(category); !ok {
		return []*entities.Post{}, nil
	}
	return s.postRepo.List(ctx, repositories.PostFilters{Category: &category})
}

// ListPostsByCreator lista posts de um autor
func (s *PostService) ListPostsByCreator(ctx context.Context, userID string) ([]*entities.Post, error) {
	return s.postRepo.List(ctx, repositories.PostFilters{CreatorID: &userID})
}

// EditPost atualiza um post do próprio autor.
// Ao trocar a thumbnail, a imagem anterior não é removida do blob store.
func (s *PostService) EditPost(ctx context.Context, caller ports.Identity, id string, input EditPostInput) (*entities.Post, error) {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if title == "" || input.Category == "" || description == "" {
		return nil, domainerrors.ErrMissingFields
	}
	if utf8.RuneCountInString(description) < entities.MinDescriptionLength {
		return nil, domainerrors.ErrDescriptionTooShort
	}

	category, ok := entities.ParseCategory(input.Category)
	if !ok {
		return nil, domainerrors.ErrInvalidCategory
	}

	post, err := s.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if !post.IsOwnedBy(caller.ID) {
		s.logger.Warn("edit rejected: not the post owner", "post_id", id, "caller", caller.ID)
		return nil, domainerrors.ErrNotPostOwner
	}

	s.logger.Info("editing post", "post_id", id, "new_thumbnail", input.Thumbnail != nil)

	var uploaded bool
	if input.Thumbnail != nil {
		if err := checkImage(input.Thumbnail, entities.MaxThumbnailSize); err != nil {
			return nil, err
		}
		thumbnail, err := uploadImage(ctx, s.blobs, *input.Thumbnail, ports.FolderThumbnails)
		if err != nil {
			s.logger.Error("thumbnail upload failed", "post_id", id, "error", err)
			return nil, err
		}
		post.Thumbnail = thumbnail
		uploaded = true
	}

	post.Title = title
	post.Category = category
	post.Description = description

	found, err := s.postRepo.Update(ctx, post)
	if err == nil && !found {
		err = domainerrors.ErrPostNotFound
	}
	if err != nil {
		if uploaded {
			s.discardBlob(ctx, post.Thumbnail)
		}
		if errors.Is(err, domainerrors.ErrPostNotFound) {
			return nil, err
		}
		return nil, domainerrors.Wrap(domainerrors.ErrPersistFailed, err)
	}

	s.publish(ctx, ports.PostEvent{
		Type:     ports.EventPostUpdated,
		PostID:   post.ID,
		ActorID:  caller.ID,
		Category: string(post.Category),
	})

	return post, nil
}

// LikePost alterna a curtida do usuário e retorna o total de curtidas
func (s *PostService) LikePost(ctx context.Context, caller ports.Identity, id string) (int, error) {
	post, err := s.GetPost(ctx, id)
	if err != nil {
		return 0, err
	}

	count, err := s.postRepo.ToggleLike(ctx, id, caller.ID)
	if err != nil {
		return 0, domainerrors.Wrap(domainerrors.ErrPersistFailed, err)
	}

	s.logger.Debug("post like toggled", "post_id", id, "user_id", caller.ID, "liked", !post.IsLikedBy(caller.ID), "likes", count)

	s.publish(ctx, ports.PostEvent{
		Type:      ports.EventPostLiked,
		PostID:    id,
		ActorID:   caller.ID,
		LikeCount: count,
	})

	return count, nil
}

// DeletePost remove a thumbnail, o post e decrementa o contador do autor.
// A thumbnail é removida primeiro: se isso falhar, o post continua intacto.
func (s *PostService) DeletePost(ctx context.Context, caller ports.Identity, id string) error {
	post, err := s.GetPost(ctx, id)
	if err != nil {
		return err
	}
	if !post.IsOwnedBy(caller.ID) {
		s.logger.Warn("delete rejected: not the post owner", "post_id", id, "caller", caller.ID)
		return domainerrors.ErrNotPostOwner
	}

	s.logger.Info("deleting post", "post_id", id, "thumbnail", post.Thumbnail.String())

	if err := s.blobs.Delete(ctx, post.Thumbnail.Key()); err != nil {
		s.logger.Error("thumbnail delete failed, post kept", "post_id", id, "error", err)
		return domainerrors.Wrap(domainerrors.ErrBlobDeleteFailed, err)
	}

	err = s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		found, err := s.postRepo.Delete(txCtx, id)
		if err != nil {
			return err
		}
		if !found {
			return domainerrors.ErrPostNotFound
		}
		return s.userRepo.AdjustPostCount(txCtx, post.Creator, -1)
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrPostNotFound) {
			return err
		}
		s.logger.Error("thumbnail removed but post delete failed",
			"post_id", id,
			"thumbnail", post.Thumbnail.String(),
			"error", err,
		)
		return domainerrors.Wrap(domainerrors.ErrPersistFailed, err)
	}

	s.publish(ctx, ports.PostEvent{
		Type:    ports.EventPostDeleted,
		PostID:  id,
		ActorID: caller.ID,
	})

	return nil
}

// discardBlob desfaz um upload; falha só deixa o arquivo órfão
func (s *PostService) discardBlob(ctx context.Context, blob valueobjects.BlobID) {
	if err := s.blobs.Delete(ctx, blob.Key()); err != nil {
		s.logger.Warn("thumbnail left orphaned", "thumbnail", blob.String(), "error", err)
	}
}

func (s *PostService) publish(ctx context.Context, event ports.PostEvent) {
	event.OccurredAt = time.Now().UTC()
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish post event",
			"type", event.Type,
			"post_id", event.PostID,
			"error", err,
		)
	}
}
