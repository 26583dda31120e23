package market

import (
	"fmt"

	"github.com/ledgermart/ledgermart/internal/ledger"
)

// Shop owns one seller's catalog and order namespaces. It is the only actor
// that mints item and order addresses for itself; both counters are
// monotonic and assigned exactly once, under the runtime's one-message-at-a-
// time guarantee.
type Shop struct {
	owner           ledger.Address
	name            string
	shopID          uint64
	itemCounter     uint64
	orderCounter    uint64
	ordersCompleted uint64
}

func NewShop(owner ledger.Address, name string, shopID uint64) *Shop {
	return &Shop{owner: owner, name: name, shopID: shopID}
}

func (s *Shop) Template() string { return TemplateShop }

func (s *Shop) Clone() ledger.Actor {
	c := *s
	return &c
}

func (s *Shop) Handle(tx *ledger.TxContext, msg ledger.Message) error {
	switch body := msg.Body.(type) {
	case AddItem:
		return s.addItem(tx, msg, body)
	case UpdateItem:
		return s.updateItem(tx, msg, body)
	case CreateOrder:
		if msg.Sender != s.owner {
			return ErrAccessDenied
		}
		return s.openOrder(tx, msg.Value, body.Item, body.Buyer, body.DeliveryAddress, body.Price)
	case MakeOrder:
		buyer := body.Buyer
		if buyer.IsZero() {
			buyer = msg.Sender
		} else if msg.Sender != buyer && msg.Sender != UserAddress(buyer) {
			// A third party may not order on someone else's behalf; a User
			// actor may, because its address is derivable from the buyer.
			return ErrInvalidSender
		}
		return s.openOrder(tx, msg.Value, body.Item, buyer, body.DeliveryAddress, body.Price)
	case SetUniqueItemPrice:
		if msg.Sender != s.owner {
			return ErrAccessDenied
		}
		return tx.Send(body.Item, SetPrice{Price: body.Price, Salable: body.Salable}, msg.Value)
	case OrderCompleted:
		// Receipt-only bookkeeping: not validated against an order table,
		// so replays and unknown ids are accepted and absorbed.
		s.ordersCompleted++
		return nil
	case UpdateShopInfo:
		if msg.Sender != s.owner {
			return ErrAccessDenied
		}
		s.name = body.Name
		return nil
	default:
		return fmt.Errorf("%w: %T", ErrUnknownMessage, msg.Body)
	}
}

func (s *Shop) addItem(tx *ledger.TxContext, msg ledger.Message, body AddItem) error {
	if msg.Sender != s.owner {
		return ErrAccessDenied
	}

	index := s.itemCounter
	s.itemCounter++
	addr := ItemAddress(tx.Self(), index)

	var behavior ledger.Actor
	if body.Unique {
		// The shop holds unique items in custody; the seller prices and
		// transfers them through shop-relayed messages.
		behavior = NewUniqueItem(tx.Self(), index, tx.Self(), body.Content, body.Price)
	} else {
		behavior = NewItem(tx.Self(), index, body.Content, body.Price)
	}
	if err := tx.Deploy(addr, behavior, nil, msg.Value); err != nil {
		return err
	}
	tx.Emit(ledger.Event{
		Kind:  EventItemListed,
		Actor: addr,
		Data: map[string]any{
			"shop":   tx.Self().String(),
			"index":  index,
			"unique": body.Unique,
			"price":  uint64(body.Price),
			"title":  body.Content.Title,
		},
	})
	return nil
}

func (s *Shop) updateItem(tx *ledger.TxContext, msg ledger.Message, body UpdateItem) error {
	if msg.Sender != s.owner {
		return ErrAccessDenied
	}
	addr := ItemAddress(tx.Self(), body.Index)
	return tx.Send(addr, OverwriteItem{Content: body.Content, Price: body.Price}, msg.Value)
}

func (s *Shop) openOrder(tx *ledger.TxContext, value ledger.Coins, item, buyer ledger.Address, deliveryAddress string, price ledger.Coins) error {
	id := s.orderCounter
	s.orderCounter++
	addr := OrderAddress(tx.Self(), id, buyer, item)

	order := NewOrder(tx.Self(), s.owner, buyer, item, id, price, deliveryAddress)
	if err := tx.Deploy(addr, order, InitOrder{}, value); err != nil {
		return err
	}
	// Move the item into escrow: the order becomes its owner for the
	// duration of the sale and hands it to the buyer or back to the shop.
	if err := tx.Send(item, NftTransfer{NewOwner: addr, Salable: true}, 0); err != nil {
		return err
	}
	tx.Emit(ledger.Event{
		Kind:  EventOrderCreated,
		Actor: addr,
		Data: map[string]any{
			"shop":  tx.Self().String(),
			"id":    id,
			"buyer": buyer.String(),
			"item":  item.String(),
			"price": uint64(price),
		},
	})
	return nil
}

func (s *Shop) Owner() ledger.Address   { return s.owner }
func (s *Shop) Name() string            { return s.name }
func (s *Shop) ShopID() uint64          { return s.shopID }
func (s *Shop) ItemCounter() uint64     { return s.itemCounter }
func (s *Shop) OrderCounter() uint64    { return s.orderCounter }
func (s *Shop) OrdersCompleted() uint64 { return s.ordersCompleted }
