package ports

import (
	"context"
	"time"
)

// Tipos de evento de post
const (
	EventPostCreated = "post.created"
	EventPostUpdated = "post.updated"
	EventPostDeleted = "post.deleted"
	EventPostLiked   = "post.liked"
)

// PostEvent descreve uma mudança em um post
type PostEvent struct {
	Type       string    `json:"type"`
	PostID     string    `json:"post_id"`
	ActorID    string    `json:"actor_id"`
	Category   string    `json:"category,omitempty"`
	LikeCount  int       `json:"like_count,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher publica eventos de post.
// Falhas de publicação não devem desfazer a operação que as originou.
type EventPublisher interface {
	Publish(ctx context.Context, event PostEvent) error
}
