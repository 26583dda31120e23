package market

import (
	"fmt"

	"github.com/ledgermart/ledgermart/internal/ledger"
)

// User is a buyer profile. It relays MakeOrder to shops with the profile's
// delivery address filled in, naming its owner wallet as the buyer.
type User struct {
	parent          ledger.Address
	owner           ledger.Address
	id              uint64
	name            string
	deliveryAddress string
}

func NewUser(parent, owner ledger.Address, id uint64, name, deliveryAddress string) *User {
	return &User{
		parent:          parent,
		owner:           owner,
		id:              id,
		name:            name,
		deliveryAddress: deliveryAddress,
	}
}

func (u *User) Template() string { return TemplateUser }

func (u *User) Clone() ledger.Actor {
	c := *u
	return &c
}

func (u *User) Handle(tx *ledger.TxContext, msg ledger.Message) error {
	switch body := msg.Body.(type) {
	case ChangeUserData:
		if msg.Sender != u.owner {
			return ErrAccessDenied
		}
		u.name = body.Name
		u.deliveryAddress = body.DeliveryAddress
		return nil
	case MakeOrder:
		if msg.Sender != u.owner {
			return ErrAccessDenied
		}
		delivery := body.DeliveryAddress
		if delivery == "" {
			delivery = u.deliveryAddress
		}
		return tx.Send(body.Shop, MakeOrder{
			Item:            body.Item,
			Price:           body.Price,
			DeliveryAddress: delivery,
			Buyer:           u.owner,
		}, msg.Value)
	default:
		return fmt.Errorf("%w: %T", ErrUnknownMessage, msg.Body)
	}
}

func (u *User) Parent() ledger.Address  { return u.parent }
func (u *User) Owner() ledger.Address   { return u.owner }
func (u *User) ID() uint64              { return u.id }
func (u *User) Name() string            { return u.name }
func (u *User) DeliveryAddress() string { return u.deliveryAddress }
