package ledger

// Coins is an amount in the ledger's smallest native unit. All value
// arithmetic is exact unsigned integer arithmetic.
type Coins uint64

// Message is one asynchronous hop between two addresses. Sends are
// fire-and-forget: there is no return value, only further messages.
type Message struct {
	Sender Address
	Dest   Address
	Value  Coins
	Body   any

	// cascade ties the message to the external submission that spawned it,
	// so callers can await the whole fan-out through a Receipt.
	cascade *Receipt
	// deploy carries the behavior to install when Dest is vacant.
	deploy Actor
}

// Actor is a unit of state behind an address. The runtime delivers at most
// one message at a time, to a working copy: on error the copy is discarded
// and the message value bounces, so a failed message never mutates state.
type Actor interface {
	// Template names the behavior for address derivation and events.
	Template() string
	// Clone returns an independent copy the runtime can mutate and commit.
	Clone() Actor
	// Handle processes one inbound message.
	Handle(ctx *TxContext, msg Message) error
}

// TxContext is the per-message view an actor gets while handling. Outbound
// sends are buffered and only enqueued if the handler returns nil.
type TxContext struct {
	self     Address
	incoming Coins
	balance  Coins // committed balance before this message
	spent    Coins
	outbox   []Message
	events   []Event
	cascade  *Receipt
}

func (tx *TxContext) Self() Address { return tx.self }

// Balance reports the funds available to this handler: the committed balance
// plus the incoming value, minus what has already been attached to sends.
func (tx *TxContext) Balance() Coins {
	return tx.balance + tx.incoming - tx.spent
}

// Send buffers an outbound message. The value is reserved immediately;
// sending more than the available balance fails the whole handler.
func (tx *TxContext) Send(dest Address, body any, value Coins) error {
	if value > tx.Balance() {
		return ErrInsufficientBalance
	}
	tx.spent += value
	tx.outbox = append(tx.outbox, Message{
		Sender:  tx.self,
		Dest:    dest,
		Value:   value,
		Body:    body,
		cascade: tx.cascade,
	})
	return nil
}

// Deploy buffers a deploy message: behavior plus an init body, carrying
// value. If an actor already lives at dest the behavior is ignored and the
// body is delivered as an ordinary message, making re-deploys idempotent.
func (tx *TxContext) Deploy(dest Address, behavior Actor, body any, value Coins) error {
	if value > tx.Balance() {
		return ErrInsufficientBalance
	}
	tx.spent += value
	tx.outbox = append(tx.outbox, Message{
		Sender:  tx.self,
		Dest:    dest,
		Value:   value,
		Body:    body,
		cascade: tx.cascade,
		deploy:  behavior,
	})
	return nil
}

// Emit records a domain event, published on the system feed once the
// handler commits.
func (tx *TxContext) Emit(ev Event) {
	tx.events = append(tx.events, ev)
}
