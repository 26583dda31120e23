package market

import (
	"fmt"

	"github.com/ledgermart/ledgermart/internal/ledger"
)

// ShopFactory lazily provisions one Shop per owner wallet. Re-sending
// CreateShop for a provisioned owner is an idempotent top-up: the deploy
// message lands on an occupied address and only forwards its value.
type ShopFactory struct {
	admin   ledger.Address
	counter uint64
}

func NewShopFactory(admin ledger.Address) *ShopFactory {
	return &ShopFactory{admin: admin}
}

func (f *ShopFactory) Template() string { return TemplateShopFactory }

func (f *ShopFactory) Clone() ledger.Actor {
	c := *f
	return &c
}

func (f *ShopFactory) Handle(tx *ledger.TxContext, msg ledger.Message) error {
	body, ok := msg.Body.(CreateShop)
	if !ok {
		return fmt.Errorf("%w: %T", ErrUnknownMessage, msg.Body)
	}

	// counter is informational: it counts provisioning requests, not live
	// shops, and plays no part in addressing.
	f.counter++
	shop := NewShop(msg.Sender, body.Name, f.counter)
	addr := ShopAddress(msg.Sender)
	if err := tx.Deploy(addr, shop, nil, msg.Value); err != nil {
		return err
	}
	tx.Emit(ledger.Event{
		Kind:  EventShopCreated,
		Actor: addr,
		Data: map[string]any{
			"owner": msg.Sender.String(),
			"name":  body.Name,
		},
	})
	return nil
}

func (f *ShopFactory) Admin() ledger.Address { return f.admin }
func (f *ShopFactory) Counter() uint64       { return f.counter }

// UsersFactory is the ShopFactory's twin for buyer profiles.
type UsersFactory struct {
	admin   ledger.Address
	counter uint64
}

func NewUsersFactory(admin ledger.Address) *UsersFactory {
	return &UsersFactory{admin: admin}
}

func (f *UsersFactory) Template() string { return TemplateUsersFactory }

func (f *UsersFactory) Clone() ledger.Actor {
	c := *f
	return &c
}

func (f *UsersFactory) Handle(tx *ledger.TxContext, msg ledger.Message) error {
	body, ok := msg.Body.(MakeNewUser)
	if !ok {
		return fmt.Errorf("%w: %T", ErrUnknownMessage, msg.Body)
	}

	f.counter++
	user := NewUser(tx.Self(), msg.Sender, f.counter, body.Name, body.DeliveryAddress)
	addr := UserAddress(msg.Sender)
	if err := tx.Deploy(addr, user, nil, msg.Value); err != nil {
		return err
	}
	tx.Emit(ledger.Event{
		Kind:  EventUserCreated,
		Actor: addr,
		Data: map[string]any{
			"owner": msg.Sender.String(),
			"name":  body.Name,
		},
	})
	return nil
}

func (f *UsersFactory) Admin() ledger.Address { return f.admin }
func (f *UsersFactory) Counter() uint64       { return f.counter }
