package ledger

// Event is one entry on the system feed. Kind is a stable string consumed by
// the archive worker; Actor is the emitting or affected address.
type Event struct {
	Kind  string
	Actor Address
	Data  map[string]any
}

const (
	EventActorDeployed  = "actor.deployed"
	EventMessageBounced = "message.bounced"
)
