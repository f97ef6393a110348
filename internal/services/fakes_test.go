package services_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rafabene/blog-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/blog-backend/internal/domain/errors"
	"github.com/rafabene/blog-backend/internal/domain/ports"
	"github.com/rafabene/blog-backend/internal/domain/repositories"
)

// --- logger ---

type nopLogger struct{}

func (nopLogger) Info(string, ...any) {}
func (nopLogger) Error(string, ...any) {}
func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any) {}
func (l nopLogger) With(...any) ports.Logger { return l }

// --- users ---

type memUserRepo struct {
	mu        sync.Mutex
	users     map[string]*entities.User
	adjustErr error
	updateErr error
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*entities.User{}}
}

func (r *memUserRepo) Create(_ context.Context, user *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return domainerrors.ErrEmailAlreadyExists
		}
	}
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *memUserRepo) FindByID(_ context.Context, id string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email.String() == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Update(_ context.Context, user *entities.User) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *memUserRepo) AdjustPostCount(_ context.Context, id string, delta int) error {
	if r.adjustErr != nil {
		return r.adjustErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domainerrors.ErrUserNotFound
	}
	u.PostCount += delta
	if u.PostCount < 0 {
		u.PostCount = 0
	}
	return nil
}

func (r *memUserRepo) List(_ context.Context, _ repositories.UserFilters) ([]*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entities.User, 0, len(r.users))
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

// --- posts ---

type memPostRepo struct {
	mu        sync.Mutex
	posts     map[string]*entities.Post
	clock     time.Time
	createErr error
	updateErr error
	deleteErr error
}

func newMemPostRepo() *memPostRepo {
	return &memPostRepo{
		posts: map[string]*entities.Post{},
		clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func clonePost(p *entities.Post) *entities.Post {
	cp := *p
	cp.Likes = append([]string{}, p.Likes...)
	return &cp
}

func (r *memPostRepo) Create(_ context.Context, post *entities.Post) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clock = r.clock.Add(time.Second)
	post.ID = uuid.NewString()
	post.CreatedAt = r.clock
	post.UpdatedAt = r.clock
	r.posts[post.ID] = clonePost(post)
	return nil
}

func (r *memPostRepo) FindByID(_ context.Context, id string) (*entities.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, nil
	}
	return clonePost(p), nil
}

func (r *memPostRepo) Update(_ context.Context, post *entities.Post) (bool, error) {
	if r.updateErr != nil {
		return false, r.updateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.posts[post.ID]
	if !ok {
		return false, nil
	}
	stored.Title = post.Title
	stored.Category = post.Category
	stored.Description = post.Description
	stored.Thumbnail = post.Thumbnail
	return true, nil
}

func (r *memPostRepo) Delete(_ context.Context, id string) (bool, error) {
	if r.deleteErr != nil {
		return false, r.deleteErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return false, nil
	}
	delete(r.posts, id)
	return true, nil
}

func (r *memPostRepo) List(_ context.Context, filters repositories.PostFilters) ([]*entities.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entities.Post{}
	for _, p := range r.posts {
		if filters.Category != nil && string(p.Category) != *filters.Category {
			continue
		}
		if filters.CreatorID != nil && p.Creator != *filters.CreatorID {
			continue
		}
		out = append(out, clonePost(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memPostRepo) ToggleLike(_ context.Context, postID, userID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[postID]
	if !ok {
		return 0, errors.New("post vanished")
	}
	if p.IsLikedBy(userID) {
		p.Likes = slices.DeleteFunc(p.Likes, func(id string) bool { return id == userID })
	} else {
		p.Likes = append(p.Likes, userID)
	}
	return p.LikeCount(), nil
}

func (r *memPostRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.posts)
}

// --- blobs ---

type memBlobStore struct {
	mu        sync.Mutex
	blobs     map[string]string // identifier -> format
	seq       int
	uploadErr error
	deleteErr error
	deleted   []string
	noID      bool
}

func newMemBlobStore() *memBlobStore {
	return &memBlobStore{blobs: map[string]string{}}
}

func (s *memBlobStore) Upload(_ context.Context, file ports.FileUpload, folder string) (*ports.UploadedBlob, error) {
	if s.uploadErr != nil {
		return nil, s.uploadErr
	}
	if s.noID {
		return &ports.UploadedBlob{}, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	ext := strings.TrimPrefix(filepath.Ext(file.Filename), ".")
	stem := strings.TrimSuffix(file.Filename, filepath.Ext(file.Filename))
	id := fmt.Sprintf("%s/%s-%d", folder, stem, s.seq)
	s.blobs[id] = ext
	return &ports.UploadedBlob{Identifier: id, Format: ext}, nil
}

func (s *memBlobStore) Delete(_ context.Context, identifier string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, identifier)
	delete(s.blobs, identifier)
	return nil
}

func (s *memBlobStore) URL(blobID string) string {
	return "mem://" + blobID
}

func (s *memBlobStore) has(identifier string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.blobs[identifier]
	return ok
}

func (s *memBlobStore) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.blobs)
}

// --- unit of work ---

type inlineUnitOfWork struct{ calls int }

func (u *inlineUnitOfWork) WithTransaction(ctx context.Context, fn func(context.Context) error) error {
	u.calls++
	return fn(ctx)
}

// --- security ---

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (plainHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

// blankHasher devolve hash vazio, violando a invariante do User
type blankHasher struct{ plainHasher }

func (blankHasher) Hash(string) (string, error) { return "", nil }

type staticTokens struct{}

func (staticTokens) Issue(user *entities.User) (string, error) { return "token-" + user.ID, nil }

func (staticTokens) Verify(token string) (*ports.Identity, error) {
	if !strings.HasPrefix(token, "token-") {
		return nil, domainerrors.ErrUnauthorized
	}
	return &ports.Identity{ID: strings.TrimPrefix(token, "token-")}, nil
}

// --- events ---

type recordingPublisher struct {
	mu     sync.Mutex
	events []ports.PostEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event ports.PostEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

// --- helpers ---

func image(name string, size int) *ports.FileUpload {
	return &ports.FileUpload{
		Filename:    name,
		ContentType: "image/png",
		Size:        int64(size),
		Content:     bytes.NewReader(make([]byte, size)),
	}
}
