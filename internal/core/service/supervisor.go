package service

import (
	"fmt"
	"sync"
	"time"

	"flatbot/internal/core/domain"
	"flatbot/internal/core/port"

	"github.com/rs/zerolog/log"
)

// Supervisor owns the set of guild actors, one per guild, and routes platform
// events to the right mailbox. Actor state is never touched directly; all
// communication goes through the actor's own mailbox.
type Supervisor struct {
	registry     port.Registry
	publisher    port.CommandPublisher
	responder    port.Responder
	retryBackoff time.Duration
	closeTimeout time.Duration

	mu     sync.Mutex
	actors map[domain.EntityID]*GuildActor
}

func NewSupervisor(registry port.Registry, publisher port.CommandPublisher, responder port.Responder,
	retryBackoff, closeTimeout time.Duration) *Supervisor {
	return &Supervisor{
		registry:     registry,
		publisher:    publisher,
		responder:    responder,
		retryBackoff: retryBackoff,
		closeTimeout: closeTimeout,
		actors:       make(map[domain.EntityID]*GuildActor),
	}
}

// StartGuild creates and starts an actor for a guild. A guild never has more
// than one live actor; a second start for the same id is rejected.
func (s *Supervisor) StartGuild(guildID domain.EntityID, guildName string) error {
	s.mu.Lock()
	if _, ok := s.actors[guildID]; ok {
		s.mu.Unlock()
		log.Warn().Str("guildId", string(guildID)).Msg("guild already has a running actor")
		return fmt.Errorf("%w: %s", domain.ErrGuildManaged, guildID)
	}

	actor := NewGuildActor(guildID, guildName, s.registry, s.publisher, s.responder, s.retryBackoff)
	s.actors[guildID] = actor
	s.mu.Unlock()

	if err := actor.Start(); err != nil {
		s.mu.Lock()
		delete(s.actors, guildID)
		s.mu.Unlock()
		return err
	}

	return nil
}

// Dispatch routes an event to the actor owning the guild's mailbox. Events
// for unknown guilds are dropped with a log entry.
func (s *Supervisor) Dispatch(guildID domain.EntityID, event domain.Event) error {
	s.mu.Lock()
	actor, ok := s.actors[guildID]
	s.mu.Unlock()

	if !ok {
		log.Error().Str("guildId", string(guildID)).Msg("dropping event for unmanaged guild")
		return fmt.Errorf("%w: %s", domain.ErrUnknownGuild, guildID)
	}

	if err := actor.Enqueue(event); err != nil {
		log.Error().Err(err).Str("guildId", string(guildID)).Msg("dropping event")
		return err
	}

	return nil
}

// StopGuild shuts down one guild's actor and drops the reference.
func (s *Supervisor) StopGuild(guildID domain.EntityID) error {
	s.mu.Lock()
	actor, ok := s.actors[guildID]
	delete(s.actors, guildID)
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownGuild, guildID)
	}

	return actor.Close(s.closeTimeout)
}

// Shutdown closes every managed actor concurrently, each bounded by the
// configured close timeout.
func (s *Supervisor) Shutdown() {
	s.mu.Lock()
	actors := make([]*GuildActor, 0, len(s.actors))
	for _, actor := range s.actors {
		actors = append(actors, actor)
	}
	s.actors = make(map[domain.EntityID]*GuildActor)
	s.mu.Unlock()

	log.Info().Int("actors", len(actors)).Msg("shutting down guild actors")

	var wg sync.WaitGroup
	for _, actor := range actors {
		wg.Add(1)
		go func(a *GuildActor) {
			defer wg.Done()
			if err := a.Close(s.closeTimeout); err != nil {
				log.Warn().Err(err).Str("guildId", string(a.GuildID())).Msg("actor close failed")
			}
		}(actor)
	}
	wg.Wait()
}

// Managed returns the number of live actors.
func (s *Supervisor) Managed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.actors)
}

// Actor returns the live actor for a guild, if any.
func (s *Supervisor) Actor(guildID domain.EntityID) (*GuildActor, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	actor, ok := s.actors[guildID]
	return actor, ok
}
