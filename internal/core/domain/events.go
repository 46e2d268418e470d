package domain

// Event is one entry in a guild actor's mailbox. Events are produced by the
// supervisor and owned by the mailbox until dequeued by the actor's run loop.
type Event interface {
	isEvent()
}

// ShutdownEvent asks the actor to close its mailbox and drain.
type ShutdownEvent struct{}

// InteractionEvent wraps one inbound interaction for dispatch.
type InteractionEvent struct {
	Interaction *Interaction
}

// MemberJoinEvent is delivered on guild member joins. The actor currently has
// no use for it and drops it.
type MemberJoinEvent struct {
	UserID string
}

func (ShutdownEvent) isEvent()    {}
func (InteractionEvent) isEvent() {}
func (MemberJoinEvent) isEvent()  {}

// ActorState is the lifecycle state of one guild actor.
type ActorState int32

const (
	StateUninitialized ActorState = iota
	StateRegistering
	StateRunning
	StateDraining
	StateStopped
)

func (s ActorState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateRegistering:
		return "registering"
	case StateRunning:
		return "running"
	case StateDraining:
		return "draining"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}
