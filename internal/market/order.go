package market

import (
	"fmt"

	"github.com/ledgermart/ledgermart/internal/ledger"
)

// OrderState is the escrow's one-shot progression. Completed and Refunded
// are terminal and mutually exclusive.
type OrderState uint8

const (
	OrderStateCreated OrderState = iota
	OrderStatePriceConfirmed
	OrderStateCompleted
	OrderStateRefunded
)

func (s OrderState) String() string {
	switch s {
	case OrderStateCreated:
		return "created"
	case OrderStatePriceConfirmed:
		return "price_confirmed"
	case OrderStateCompleted:
		return "completed"
	case OrderStateRefunded:
		return "refunded"
	default:
		return "unknown"
	}
}

// Order mediates a single sale: it discovers the authoritative price from
// the item itself, validates the buyer's payment, hands the item over and
// pays the seller out. Identity fields are immutable after creation.
type Order struct {
	shop            ledger.Address
	seller          ledger.Address
	buyer           ledger.Address
	item            ledger.Address
	id              uint64
	price           ledger.Coins
	deliveryAddress string
	state           OrderState
}

func NewOrder(shop, seller, buyer, item ledger.Address, id uint64, price ledger.Coins, deliveryAddress string) *Order {
	return &Order{
		shop:            shop,
		seller:          seller,
		buyer:           buyer,
		item:            item,
		id:              id,
		price:           price,
		deliveryAddress: deliveryAddress,
		state:           OrderStateCreated,
	}
}

func (o *Order) Template() string { return TemplateOrder }

func (o *Order) Clone() ledger.Actor {
	c := *o
	return &c
}

func (o *Order) Handle(tx *ledger.TxContext, msg ledger.Message) error {
	switch msg.Body.(type) {
	case InitOrder:
		return o.init(tx)
	case GetPriceResponse:
		return o.confirmPrice(msg)
	case Pay:
		return o.pay(tx, msg)
	case RefundItem:
		return o.refund(tx, msg)
	default:
		return fmt.Errorf("%w: %T", ErrUnknownMessage, msg.Body)
	}
}

// init starts price discovery. Re-deploys land here again, which doubles as
// the retry path when the first GetPrice bounced.
func (o *Order) init(tx *ledger.TxContext) error {
	if o.state != OrderStateCreated {
		return nil
	}
	return tx.Send(o.item, GetPrice{}, 0)
}

func (o *Order) confirmPrice(msg ledger.Message) error {
	if msg.Sender != o.item {
		return ErrInvalidSender
	}
	if o.state != OrderStateCreated {
		// The confirmed price flips exactly once; late duplicates are absorbed.
		return nil
	}
	o.price = msg.Body.(GetPriceResponse).Price
	o.state = OrderStatePriceConfirmed
	return nil
}

func (o *Order) pay(tx *ledger.TxContext, msg ledger.Message) error {
	if msg.Sender != o.buyer {
		return ErrInvalidSender
	}
	switch o.state {
	case OrderStateCreated:
		return ErrPriceNotSet
	case OrderStateCompleted:
		return ErrOrderAlreadyCompleted
	case OrderStateRefunded:
		return ErrItemRefunded
	}
	if msg.Value < o.price {
		return ErrInsufficientPayment
	}

	if err := tx.Send(o.item, NftTransfer{NewOwner: o.buyer, Salable: false}, 0); err != nil {
		return err
	}
	if err := tx.Send(o.seller, SellerPayout{OrderID: o.id}, o.price); err != nil {
		return err
	}
	if excess := msg.Value - o.price; excess > 0 {
		if err := tx.Send(o.buyer, PaymentChange{OrderID: o.id}, excess); err != nil {
			return err
		}
	}
	if err := tx.Send(o.shop, OrderCompleted{ID: o.id, Item: o.item, Buyer: o.buyer}, 0); err != nil {
		return err
	}
	o.state = OrderStateCompleted
	tx.Emit(ledger.Event{
		Kind:  EventOrderCompleted,
		Actor: tx.Self(),
		Data: map[string]any{
			"shop":  o.shop.String(),
			"id":    o.id,
			"item":  o.item.String(),
			"buyer": o.buyer.String(),
			"price": uint64(o.price),
		},
	})
	return nil
}

func (o *Order) refund(tx *ledger.TxContext, msg ledger.Message) error {
	if msg.Sender != o.seller {
		return ErrOnlySellerCanRefund
	}
	switch o.state {
	case OrderStateCompleted:
		return ErrOrderAlreadyCompleted
	case OrderStateRefunded:
		return ErrItemRefunded
	}

	// Hand the item back to the shop's custody and return every escrowed
	// coin to the buyer.
	if err := tx.Send(o.item, NftTransfer{NewOwner: o.shop, Salable: true}, 0); err != nil {
		return err
	}
	if refund := tx.Balance(); refund > 0 {
		if err := tx.Send(o.buyer, RefundPayment{OrderID: o.id}, refund); err != nil {
			return err
		}
	}
	o.state = OrderStateRefunded
	tx.Emit(ledger.Event{
		Kind:  EventOrderRefunded,
		Actor: tx.Self(),
		Data: map[string]any{
			"shop":  o.shop.String(),
			"id":    o.id,
			"item":  o.item.String(),
			"buyer": o.buyer.String(),
		},
	})
	return nil
}

func (o *Order) Shop() ledger.Address    { return o.shop }
func (o *Order) Seller() ledger.Address  { return o.seller }
func (o *Order) Buyer() ledger.Address   { return o.buyer }
func (o *Order) Item() ledger.Address    { return o.item }
func (o *Order) ID() uint64              { return o.id }
func (o *Order) Price() ledger.Coins     { return o.price }
func (o *Order) DeliveryAddress() string { return o.deliveryAddress }
func (o *Order) State() OrderState       { return o.state }
func (o *Order) PriceSet() bool          { return o.state != OrderStateCreated }
func (o *Order) Completed() bool         { return o.state == OrderStateCompleted }
func (o *Order) Refunded() bool          { return o.state == OrderStateRefunded }
