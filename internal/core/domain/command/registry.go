package command

import (
	"fmt"
	"sort"
	"strings"

	"flatbot/internal/core/domain"
	"flatbot/internal/core/port"

	"github.com/rs/zerolog/log"
)

type registryKey struct {
	kind domain.InteractionKind
	name string
}

// Registry maps (interaction kind, name) pairs to handlers. Plain command and
// autocomplete lookups are distinct namespaces, so one name can back both.
// Populated once at startup and treated as immutable afterwards; no locking.
type Registry struct {
	handlers map[registryKey]port.Handler
}

func (r *Registry) Register(kind domain.InteractionKind, handler port.Handler) error {
	if r.handlers == nil {
		r.handlers = make(map[registryKey]port.Handler)
	}

	name := handler.Descriptor().Name
	key := registryKey{kind: kind, name: name}

	if _, ok := r.handlers[key]; ok {
		return fmt.Errorf("%w: %s/%s", domain.ErrDuplicateCommand, kind, name)
	}

	log.Info().Str("kind", string(kind)).Str("name", name).Msg("adding command handler to registry")
	r.handlers[key] = handler

	return nil
}

func (r *Registry) Resolve(kind domain.InteractionKind, name string) (port.Handler, error) {
	log.Debug().Str("kind", string(kind)).Str("name", name).Msg("fetching command handler from registry")

	handler, ok := r.handlers[registryKey{kind: kind, name: name}]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", domain.ErrCommandNotFound, kind, name)
	}

	return handler, nil
}

// Descriptors returns the slash command set for bulk registration, sorted by
// name. Only command-kind registrations are published; component and
// autocomplete registrations piggyback on the command of the same name.
func (r *Registry) Descriptors() []domain.CommandDescriptor {
	descriptors := make([]domain.CommandDescriptor, 0, len(r.handlers))

	for key, handler := range r.handlers {
		if key.kind != domain.KindCommand {
			continue
		}
		descriptors = append(descriptors, handler.Descriptor())
	}

	sort.Slice(descriptors, func(i, j int) bool {
		return descriptors[i].Name < descriptors[j].Name
	})

	return descriptors
}

// SplitCustomID separates a component custom id into its handler name and
// correlation token, e.g. "pay:1234" -> ("pay", "1234").
func SplitCustomID(customID string) (string, string) {
	name, token, _ := strings.Cut(customID, ":")
	return name, token
}
