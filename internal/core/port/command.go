package port

import (
	"context"
	"flatbot/internal/core/domain"
)

type Handler interface {
	// Handle processes one interaction and produces its outcome. A returned
	// error of type *domain.HandlerError carries the user-safe failure text;
	// any other error is surfaced to the user as a generic failure.
	Handle(ctx context.Context, interaction *domain.Interaction) (*domain.Outcome, error)
	// Descriptor returns the immutable command metadata for registration.
	Descriptor() domain.CommandDescriptor
}

type Registry interface {
	// Register adds a handler under the given interaction kind. Registering
	// the same name twice for one kind fails with domain.ErrDuplicateCommand.
	Register(kind domain.InteractionKind, handler Handler) error
	// Resolve retrieves the handler for a kind and name, or
	// domain.ErrCommandNotFound.
	Resolve(kind domain.InteractionKind, name string) (Handler, error)
	// Descriptors returns the full command set to publish to the platform.
	Descriptors() []domain.CommandDescriptor
}
