package events

import (
	"context"
	"errors"

	"github.com/rafabene/blog-backend/internal/domain/ports"
)

// FanOut entrega cada evento a todos os publishers.
// Sem publishers, não faz nada.
type FanOut struct {
	publishers []ports.EventPublisher
}

// NewFanOut ignora publishers nil
func NewFanOut(publishers ...ports.EventPublisher) *FanOut {
	f := &FanOut{}
	for _, p := range publishers {
		if p != nil {
			f.publishers = append(f.publishers, p)
		}
	}
	return f
}

// Publish tenta todos e devolve os erros combinados
func (f *FanOut) Publish(ctx context.Context, event ports.PostEvent) error {
	var errs []error
	for _, p := range f.publishers {
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Len retorna quantos publishers estão ligados
func (f *FanOut) Len() int {
	return len(f.publishers)
}
