package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrSystemStopped       = errors.New("ledger system stopped")
)

// Config tunes the runtime. Rent is the minimum value a deploy message must
// carry; a deploy below it is dropped without an error, which callers detect
// by polling IsDeployed.
type Config struct {
	Rent            Coins
	EventBufferSize int
}

func DefaultConfig() Config {
	return Config{Rent: 10_000_000, EventBufferSize: 256}
}

type account struct {
	actor   Actor // nil for plain wallets
	balance Coins
}

// System is the shared deterministic ledger: an actor registry, per-address
// balances and a single dispatch loop. Messages are processed one at a time
// in FIFO order, which gives every ordered sender/receiver pair FIFO
// delivery and makes each actor single-threaded by construction.
type System struct {
	cfg Config
	log *slog.Logger

	mu       sync.RWMutex
	cond     *sync.Cond
	accounts map[Address]*account
	queue    []Message
	busy     bool
	stopped  bool

	events  chan Event
	dropped uint64
}

func NewSystem(cfg Config, log *slog.Logger) *System {
	if cfg.EventBufferSize <= 0 {
		cfg.EventBufferSize = DefaultConfig().EventBufferSize
	}
	s := &System{
		cfg:      cfg,
		log:      log,
		accounts: make(map[Address]*account),
		events:   make(chan Event, cfg.EventBufferSize),
	}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// Start launches the dispatch loop. It returns once the loop is running;
// the loop exits when ctx is done or Stop is called.
func (s *System) Start(ctx context.Context) {
	go func() {
		<-ctx.Done()
		s.Stop()
	}()
	go s.run()
}

func (s *System) Stop() {
	s.mu.Lock()
	s.stopped = true
	s.cond.Broadcast()
	s.mu.Unlock()
}

// Running reports whether the dispatch loop is still accepting messages.
func (s *System) Running() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.stopped
}

// Events exposes the feed of runtime and domain events. The feed is lossy
// under backpressure: a slow consumer drops events rather than stalling
// dispatch.
func (s *System) Events() <-chan Event { return s.events }

// Install registers a behavior at addr without a deploy message. It is the
// genesis path for root actors such as the factories; occupied addresses
// are left untouched.
func (s *System) Install(addr Address, actor Actor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct := s.accountFor(addr)
	if acct.actor == nil {
		acct.actor = actor
	}
}

// Credit adds funds to an address out-of-band (genesis, faucet).
func (s *System) Credit(addr Address, amount Coins) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accountFor(addr).balance += amount
}

func (s *System) BalanceOf(addr Address) Coins {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if acct, ok := s.accounts[addr]; ok {
		return acct.balance
	}
	return 0
}

func (s *System) IsDeployed(addr Address) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acct, ok := s.accounts[addr]
	return ok && acct.actor != nil
}

// ActorAt returns the committed state at addr. Handlers commit by pointer
// swap, so the returned value is a consistent snapshot and must be treated
// as read-only.
func (s *System) ActorAt(addr Address) (Actor, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acct, ok := s.accounts[addr]
	if !ok || acct.actor == nil {
		return nil, false
	}
	return acct.actor, true
}

// Post submits an external message from a wallet. The value is debited from
// the wallet immediately; the returned Receipt resolves when the message and
// every message it transitively spawned have been processed.
func (s *System) Post(from, dest Address, body any, value Coins) (*Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return nil, ErrSystemStopped
	}
	wallet := s.accountFor(from)
	if wallet.balance < value {
		return nil, fmt.Errorf("%w: wallet %s has %d, needs %d",
			ErrInsufficientBalance, from.Short(), wallet.balance, value)
	}
	wallet.balance -= value
	rec := newReceipt()
	rec.pending = 1
	s.queue = append(s.queue, Message{
		Sender:  from,
		Dest:    dest,
		Value:   value,
		Body:    body,
		cascade: rec,
	})
	s.cond.Broadcast()
	return rec, nil
}

// Settle blocks until the queue is fully drained or ctx expires. It is the
// coarse counterpart of Receipt.Wait, useful in tests.
func (s *System) Settle(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.mu.Lock()
		for (len(s.queue) > 0 || s.busy) && !s.stopped {
			s.cond.Wait()
		}
		s.mu.Unlock()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *System) accountFor(addr Address) *account {
	acct, ok := s.accounts[addr]
	if !ok {
		acct = &account{}
		s.accounts[addr] = acct
	}
	return acct
}

func (s *System) run() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for {
		for len(s.queue) == 0 && !s.stopped {
			s.cond.Wait()
		}
		if s.stopped {
			return
		}
		msg := s.queue[0]
		s.queue = s.queue[1:]
		s.busy = true
		s.deliver(msg)
		s.busy = false
		if msg.cascade != nil {
			msg.cascade.finish()
		}
		s.cond.Broadcast()
	}
}

// deliver processes one message under the system lock.
func (s *System) deliver(msg Message) {
	acct, exists := s.accounts[msg.Dest]

	// Vacant address, no behavior attached: a plain wallet credit.
	if (!exists || acct.actor == nil) && msg.deploy == nil {
		s.accountFor(msg.Dest).balance += msg.Value
		return
	}

	if !exists || acct.actor == nil {
		// Deploy to a vacant address. Below rent the message is dropped
		// without a bounce; the deployer verifies via IsDeployed.
		if msg.Value < s.cfg.Rent {
			s.log.Warn("deploy below rent dropped",
				"dest", msg.Dest.Short(), "value", msg.Value, "rent", s.cfg.Rent)
			return
		}
		acct = s.accountFor(msg.Dest)
		acct.actor = msg.deploy
		s.publish(Event{
			Kind:  EventActorDeployed,
			Actor: msg.Dest,
			Data:  map[string]any{"template": msg.deploy.Template()},
		})
		if msg.Body == nil {
			acct.balance += msg.Value
			return
		}
		// Fall through: the init body is the actor's first message.
	}

	// A bodyless message is a plain transfer even to an occupied address;
	// this is what makes re-deploys idempotent top-ups.
	if msg.Body == nil {
		acct.balance += msg.Value
		return
	}

	s.handle(acct, msg)
}

func (s *System) handle(acct *account, msg Message) {
	work := acct.actor.Clone()
	tx := &TxContext{
		self:     msg.Dest,
		incoming: msg.Value,
		balance:  acct.balance,
		cascade:  msg.cascade,
	}
	if err := work.Handle(tx, msg); err != nil {
		// Reject: state copy is discarded and the attached value bounces
		// back to the sender's balance.
		s.accountFor(msg.Sender).balance += msg.Value
		if msg.cascade != nil {
			msg.cascade.reject(fmt.Errorf("%s %s: %w",
				acct.actor.Template(), msg.Dest.Short(), err))
		}
		s.publish(Event{
			Kind:  EventMessageBounced,
			Actor: msg.Dest,
			Data: map[string]any{
				"template": acct.actor.Template(),
				"sender":   msg.Sender.String(),
				"value":    uint64(msg.Value),
				"error":    err.Error(),
			},
		})
		return
	}

	acct.actor = work
	acct.balance = tx.balance + tx.incoming - tx.spent
	for _, out := range tx.outbox {
		if out.cascade != nil {
			out.cascade.pending++
		}
		s.queue = append(s.queue, out)
	}
	for _, ev := range tx.events {
		s.publish(ev)
	}
}

func (s *System) publish(ev Event) {
	select {
	case s.events <- ev:
	default:
		s.dropped++
		s.log.Warn("event feed full, dropping", "kind", ev.Kind, "dropped_total", s.dropped)
	}
}
