package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"flatbot/internal/core/domain"
	"flatbot/internal/core/port"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const mailboxSize = 256

// GuildActor owns the inbound event mailbox for one guild. Its run loop is
// the only reader of the mailbox, by construction. Each non-ping interaction
// is handled on its own goroutine so the mailbox keeps draining while
// handlers run; handler completion order is not tied to arrival order.
type GuildActor struct {
	guildID   domain.EntityID
	guildName string
	registry  port.Registry
	publisher port.CommandPublisher
	responder port.Responder

	retryBackoff time.Duration

	mu      sync.Mutex
	mailbox chan domain.Event
	closed  bool

	state  atomic.Int32
	done   chan struct{}
	cancel context.CancelFunc

	inflight sync.WaitGroup
	pending  atomic.Int64

	regAttempts atomic.Int64

	logger zerolog.Logger
}

func NewGuildActor(guildID domain.EntityID, guildName string, registry port.Registry,
	publisher port.CommandPublisher, responder port.Responder, retryBackoff time.Duration) *GuildActor {
	return &GuildActor{
		guildID:      guildID,
		guildName:    guildName,
		registry:     registry,
		publisher:    publisher,
		responder:    responder,
		retryBackoff: retryBackoff,
		mailbox:      make(chan domain.Event, mailboxSize),
		done:         make(chan struct{}),
		logger: log.With().
			Str("guildId", string(guildID)).
			Str("guildName", guildName).
			Logger(),
	}
}

func (a *GuildActor) GuildID() domain.EntityID {
	return a.guildID
}

func (a *GuildActor) State() domain.ActorState {
	return domain.ActorState(a.state.Load())
}

// Pending returns the number of spawned handlers that have not completed.
func (a *GuildActor) Pending() int64 {
	return a.pending.Load()
}

// RegistrationAttempts returns how many failed command registration calls the
// actor has made so far.
func (a *GuildActor) RegistrationAttempts() int64 {
	return a.regAttempts.Load()
}

// Start launches the actor's run loop. An actor can only be started once.
func (a *GuildActor) Start() error {
	if !a.state.CompareAndSwap(int32(domain.StateUninitialized), int32(domain.StateRegistering)) {
		return domain.ErrActorStarted
	}

	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	a.logger.Info().Msg("monitoring guild")
	go a.run(ctx)

	return nil
}

// Enqueue places an event on the actor's mailbox. Fails once the actor is
// draining or the mailbox is full; the caller decides whether to log or drop.
func (a *GuildActor) Enqueue(event domain.Event) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return domain.ErrMailboxClosed
	}

	select {
	case a.mailbox <- event:
		return nil
	default:
		return domain.ErrMailboxFull
	}
}

// Close asks the actor to shut down by sending a shutdown event through its
// own mailbox, then waits for the run loop to finish. If the timeout elapses
// first the run loop is cancelled and any handlers still in flight are
// abandoned; their outcomes are unknown, not failed.
func (a *GuildActor) Close(timeout time.Duration) error {
	if err := a.Enqueue(domain.ShutdownEvent{}); err != nil && !errors.Is(err, domain.ErrMailboxClosed) {
		a.logger.Warn().Err(err).Msg("failed to enqueue shutdown event")
	}

	select {
	case <-a.done:
		return nil
	case <-time.After(timeout):
		abandoned := a.pending.Load()
		a.cancel()
		a.logger.Warn().
			Int64("abandoned", abandoned).
			Msg("failed to close actor within timeout period, aborting")
		<-a.done
		return domain.ErrShutdownTimeout
	}
}

func (a *GuildActor) run(ctx context.Context) {
	defer close(a.done)
	defer a.state.Store(int32(domain.StateStopped))
	defer a.logger.Info().Msg("no longer monitoring guild")
	defer a.closeMailbox()

	if err := a.register(ctx); err != nil {
		return
	}

	a.state.Store(int32(domain.StateRunning))

	for {
		select {
		case <-ctx.Done():
			return
		case event := <-a.mailbox:
			switch event := event.(type) {
			case domain.ShutdownEvent:
				a.closeMailbox()
				a.state.Store(int32(domain.StateDraining))
				a.drain(ctx)
				return
			case domain.InteractionEvent:
				if event.Interaction.Kind == domain.KindPing {
					a.logger.Trace().Msg("ignoring ping interaction")
					continue
				}
				a.spawn(ctx, event.Interaction)
			default:
				a.logger.Error().Type("event", event).Msg("ignoring unexpected event")
			}
		}
	}
}

// register publishes the guild's command set, retrying forever with a fixed
// backoff. A guild without its commands is unusable, so retries are
// unbounded; the attempt count and last error are logged each time.
func (a *GuildActor) register(ctx context.Context) error {
	for {
		err := a.publisher.SetGuildCommands(ctx, a.guildID, a.registry.Descriptors())
		if err == nil {
			a.logger.Debug().Msg("guild commands registered")
			return nil
		}

		attempts := a.regAttempts.Add(1)
		a.logger.Error().
			Err(err).
			Int64("attempts", attempts).
			Msg("failed to register guild commands, retrying")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(a.retryBackoff):
		}
	}
}

func (a *GuildActor) closeMailbox() {
	a.mu.Lock()
	a.closed = true
	a.mu.Unlock()
}

// drain waits for in-flight handlers, bounded by the same cancellation that
// bounds the rest of the shutdown.
func (a *GuildActor) drain(ctx context.Context) {
	finished := make(chan struct{})
	go func() {
		a.inflight.Wait()
		close(finished)
	}()

	select {
	case <-finished:
	case <-ctx.Done():
		a.logger.Debug().Msg("drain cancelled with handlers still in flight")
	}
}

func (a *GuildActor) spawn(ctx context.Context, interaction *domain.Interaction) {
	a.pending.Add(1)
	a.inflight.Add(1)

	go func() {
		defer a.inflight.Done()
		defer a.pending.Add(-1)
		defer func() {
			if r := recover(); r != nil {
				a.logger.Error().
					Interface("panic", r).
					Str("name", interaction.Name).
					Msg("handler panicked")
				a.respondFailure(ctx, interaction, domain.GenericFailureReply)
			}
		}()

		a.handle(ctx, interaction)
	}()
}

// handle resolves and executes one interaction's handler and delivers its
// outcome. Failures never escape: they become a log entry and, for command
// and component interactions, a user-safe failure reply.
func (a *GuildActor) handle(ctx context.Context, interaction *domain.Interaction) {
	l := a.logger.With().
		Str("kind", string(interaction.Kind)).
		Str("name", interaction.Name).
		Logger()

	handler, err := a.registry.Resolve(interaction.Kind, interaction.Name)
	if err != nil {
		l.Warn().Err(err).Msg("no handler for interaction")
		a.respondFailure(ctx, interaction, domain.GenericFailureReply)
		return
	}

	outcome, err := handler.Handle(ctx, interaction)
	if err != nil {
		public := domain.GenericFailureReply
		var herr *domain.HandlerError
		if errors.As(err, &herr) && herr.Public != "" {
			public = herr.Public
		}

		l.Error().Err(err).Msg("handler failed")
		a.respondFailure(ctx, interaction, public)
		return
	}

	if outcome == nil || outcome.Kind == domain.OutcomeNone {
		return
	}

	if err := a.responder.Respond(ctx, interaction, outcome); err != nil {
		l.Error().Err(err).Msg("failed to deliver outcome")
		return
	}

	if outcome.FollowUp != nil {
		if err := a.responder.FollowUp(ctx, interaction, outcome.FollowUp); err != nil {
			l.Error().Err(err).Msg("failed to deliver follow-up")
		}
	}
}

// respondFailure sends the generic or handler-provided failure reply.
// Autocomplete interactions get no failure reply, only the log entry.
func (a *GuildActor) respondFailure(ctx context.Context, interaction *domain.Interaction, public string) {
	if interaction.Kind == domain.KindAutocomplete {
		return
	}

	outcome := &domain.Outcome{
		Kind:      domain.OutcomeReply,
		Content:   public,
		Ephemeral: true,
	}

	if err := a.responder.Respond(ctx, interaction, outcome); err != nil {
		a.logger.Error().Err(err).Msg("failed to deliver failure reply")
	}
}
