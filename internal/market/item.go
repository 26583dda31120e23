package market

import (
	"fmt"

	"github.com/ledgermart/ledgermart/internal/ledger"
)

// Item is a plain catalog entry: no ownership, no transfer. Its shop may
// overwrite it in place; everything else bounces.
type Item struct {
	shop    ledger.Address
	index   uint64
	content ItemContent
	price   ledger.Coins
}

func NewItem(shop ledger.Address, index uint64, content ItemContent, price ledger.Coins) *Item {
	return &Item{shop: shop, index: index, content: content, price: price}
}

func (i *Item) Template() string { return TemplateItem }

func (i *Item) Clone() ledger.Actor {
	c := *i
	return &c
}

func (i *Item) Handle(_ *ledger.TxContext, msg ledger.Message) error {
	switch body := msg.Body.(type) {
	case OverwriteItem:
		if msg.Sender != i.shop {
			return ErrAccessDenied
		}
		i.content = body.Content
		i.price = body.Price
		return nil
	default:
		return fmt.Errorf("%w: %T", ErrUnknownMessage, msg.Body)
	}
}

func (i *Item) Shop() ledger.Address { return i.shop }
func (i *Item) Index() uint64        { return i.index }
func (i *Item) Content() ItemContent { return i.content }
func (i *Item) Price() ledger.Coins  { return i.price }

// UniqueItem is an ownership-bearing catalog entry. The salable flag gates
// price discovery and transfer; ownership changes only through NftTransfer,
// and mid-sale the owner is the escrowing order.
type UniqueItem struct {
	shop    ledger.Address
	index   uint64
	owner   ledger.Address
	content ItemContent
	price   ledger.Coins
	salable bool
}

func NewUniqueItem(shop ledger.Address, index uint64, owner ledger.Address, content ItemContent, price ledger.Coins) *UniqueItem {
	return &UniqueItem{
		shop:    shop,
		index:   index,
		owner:   owner,
		content: content,
		price:   price,
		salable: true,
	}
}

func (i *UniqueItem) Template() string { return TemplateItem }

func (i *UniqueItem) Clone() ledger.Actor {
	c := *i
	return &c
}

func (i *UniqueItem) Handle(tx *ledger.TxContext, msg ledger.Message) error {
	switch body := msg.Body.(type) {
	case GetPrice:
		if !i.salable {
			return ErrItemNotSalable
		}
		return tx.Send(msg.Sender, GetPriceResponse{Price: i.price}, 0)
	case SetPrice:
		if msg.Sender != i.owner {
			return ErrAccessDenied
		}
		i.price = body.Price
		i.salable = body.Salable
		return nil
	case NftTransfer:
		if msg.Sender != i.owner {
			return ErrAccessDenied
		}
		if !i.salable {
			return ErrItemNotSalable
		}
		prev := i.owner
		i.owner = body.NewOwner
		i.salable = body.Salable
		tx.Emit(ledger.Event{
			Kind:  EventItemTransferred,
			Actor: tx.Self(),
			Data: map[string]any{
				"shop":      i.shop.String(),
				"index":     i.index,
				"old_owner": prev.String(),
				"new_owner": body.NewOwner.String(),
				"salable":   body.Salable,
			},
		})
		return nil
	default:
		return fmt.Errorf("%w: %T", ErrUnknownMessage, msg.Body)
	}
}

func (i *UniqueItem) Shop() ledger.Address  { return i.shop }
func (i *UniqueItem) Index() uint64         { return i.index }
func (i *UniqueItem) Owner() ledger.Address { return i.owner }
func (i *UniqueItem) Content() ItemContent  { return i.content }
func (i *UniqueItem) Price() ledger.Coins   { return i.price }
func (i *UniqueItem) Salable() bool         { return i.salable }
