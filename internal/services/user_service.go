package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rafabene/blog-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/blog-backend/internal/domain/errors"
	"github.com/rafabene/blog-backend/internal/domain/ports"
	"github.com/rafabene/blog-backend/internal/domain/repositories"
	"github.com/rafabene/blog-backend/internal/domain/valueobjects"
)

// UserService contém a lógica de negócio para usuários
type UserService struct {
	userRepo repositories.UserRepository
	blobs    ports.BlobStore
	hasher   ports.PasswordHasher
	tokens   ports.TokenManager
	logger   ports.Logger
}

// NewUserService cria um novo UserService
func NewUserService(
	userRepo repositories.UserRepository,
	blobs ports.BlobStore,
	hasher ports.PasswordHasher,
	tokens ports.TokenManager,
	logger ports.Logger,
) *UserService {
	return &UserService{
		userRepo: userRepo,
		blobs:    blobs,
		hasher:   hasher,
		tokens:   tokens,
		logger:   logger,
	}
}

// RegisterInput representa os dados para registrar um usuário
type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	PasswordConfirm string
}

// EditUserInput representa os dados para editar o perfil
type EditUserInput struct {
	Name               string
	Email              string
	CurrentPassword    string
	NewPassword        string
	NewPasswordConfirm string
}

// LoginResult contém o token emitido e o usuário autenticado
type LoginResult struct {
	Token string
	User  *entities.User
}

// Register cria um novo usuário
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*entities.User, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || input.Email == "" || input.Password == "" || input.PasswordConfirm == "" {
		return nil, domainerrors.ErrMissingFields
	}

	email, err := valueobjects.NewEmail(input.Email)
	if err != nil {
		return nil, domainerrors.ErrInvalidEmail
	}

	s.logger.Info("registering user", "email", email.String())

	existing, err := s.userRepo.FindByEmail(ctx, email.String())
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domainerrors.ErrEmailAlreadyExists
	}

	if len(strings.TrimSpace(input.Password)) < entities.MinPasswordLength {
		return nil, domainerrors.ErrPasswordTooShort
	}
	if input.Password != input.PasswordConfirm {
		return nil, domainerrors.ErrPasswordMismatch
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &entities.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domainerrors.ErrEmailAlreadyExists) {
			return nil, err
		}
		return nil, domainerrors.Wrap(domainerrors.ErrPersistFailed, err)
	}

	return user, nil
}

// Login autentica por email e senha e emite um token de acesso
func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, domainerrors.ErrMissingFields
	}

	normalized, err := valueobjects.NewEmail(email)
	if err != nil {
		return nil, domainerrors.ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByEmail(ctx, normalized.String())
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domainerrors.ErrInvalidCredentials
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		s.logger.Debug("login rejected: wrong password", "user_id", user.ID)
		return nil, domainerrors.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &LoginResult{Token: token, User: user}, nil
}

// GetUser busca um usuário por ID
func (s *UserService) GetUser(ctx context.Context, id string) (*entities.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domainerrors.ErrUserNotFound
	}
	return user, nil
}

// ListAuthors lista os usuários cadastrados
func (s *UserService) ListAuthors(ctx context.Context, filters repositories.UserFilters) ([]*entities.User, error) {
	return s.userRepo.List(ctx, filters)
}

// ChangeAvatar troca a imagem de perfil.
// A remoção do avatar anterior é best-effort: falhas são apenas registradas.
func (s *UserService) ChangeAvatar(ctx context.Context, caller ports.Identity, avatar *ports.FileUpload) (*entities.User, error) {
	if err := checkImage(avatar, entities.MaxAvatarSize); err != nil {
		return nil, err
	}

	user, err := s.GetUser(ctx, caller.ID)
	if err != nil {
		return nil, err
	}

	if user.HasAvatar() {
		if err := s.blobs.Delete(ctx, user.Avatar.Key()); err != nil {
			s.logger.Warn("failed to delete previous avatar", "user_id", user.ID, "avatar", user.Avatar.String(), "error", err)
		}
	}

	id, err := uploadImage(ctx, s.blobs, *avatar, ports.FolderAvatars)
	if err != nil {
		s.logger.Error("avatar upload failed", "user_id", user.ID, "error", err)
		return nil, err
	}

	user.Avatar = id
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, domainerrors.Wrap(domainerrors.ErrPersistFailed, err)
	}

	s.logger.Info("avatar changed", "user_id", user.ID, "avatar", id.String())
	return user, nil
}

// EditUser atualiza nome, email e senha do próprio usuário
func (s *UserService) EditUser(ctx context.Context, caller ports.Identity, input EditUserInput) (*entities.User, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || input.Email == "" || input.CurrentPassword == "" ||
		input.NewPassword == "" || input.NewPasswordConfirm == "" {
		return nil, domainerrors.ErrMissingFields
	}

	email, err := valueobjects.NewEmail(input.Email)
	if err != nil {
		return nil, domainerrors.ErrInvalidEmail
	}

	user, err := s.GetUser(ctx, caller.ID)
	if err != nil {
		return nil, err
	}

	other, err := s.userRepo.FindByEmail(ctx, email.String())
	if err != nil {
		return nil, err
	}
	if other != nil && !other.Email.Equal(user.Email) {
		return nil, domainerrors.ErrEmailAlreadyExists
	}

	if err := s.hasher.Compare(user.PasswordHash, input.CurrentPassword); err != nil {
		return nil, domainerrors.ErrInvalidCurrentPassword
	}

	if input.NewPassword != input.NewPasswordConfirm {
		return nil, domainerrors.ErrPasswordMismatch
	}
	if len(strings.TrimSpace(input.NewPassword)) < entities.MinPasswordLength {
		return nil, domainerrors.ErrPasswordTooShort
	}

	hash, err := s.hasher.Hash(input.NewPassword)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user.Name = name
	user.Email = email
	user.PasswordHash = hash

	if err := user.Validate(); err != nil {
		return nil, err
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, domainerrors.ErrEmailAlreadyExists) {
			return nil, err
		}
		return nil, domainerrors.Wrap(domainerrors.ErrPersistFailed, err)
	}

	s.logger.Info("user updated", "user_id", user.ID)
	return user, nil
}
