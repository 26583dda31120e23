package market

import "github.com/ledgermart/ledgermart/internal/ledger"

// Behavior templates. An actor's address is a pure function of its template
// and init arguments, so any party can compute it before deployment.
const (
	TemplateShopFactory  = "shop-factory.v1"
	TemplateUsersFactory = "users-factory.v1"
	TemplateShop         = "shop.v1"
	TemplateUser         = "user.v1"
	TemplateItem         = "item.v1"
	TemplateOrder        = "order.v1"
)

// ShopFactoryAddress and UsersFactoryAddress locate the singleton factories
// of one marketplace deployment, keyed by the admin wallet.
func ShopFactoryAddress(admin ledger.Address) ledger.Address {
	return ledger.DeriveAddress(TemplateShopFactory, admin[:])
}

func UsersFactoryAddress(admin ledger.Address) ledger.Address {
	return ledger.DeriveAddress(TemplateUsersFactory, admin[:])
}

// ShopAddress maps an owner wallet to its single shop.
func ShopAddress(owner ledger.Address) ledger.Address {
	return ledger.DeriveAddress(TemplateShop, owner[:])
}

// UserAddress maps an owner wallet to its single user profile.
func UserAddress(owner ledger.Address) ledger.Address {
	return ledger.DeriveAddress(TemplateUser, owner[:])
}

// ItemAddress locates catalog entry index within a shop. The same derivation
// serves plain and unique items; indices are never reused.
func ItemAddress(shop ledger.Address, index uint64) ledger.Address {
	return ledger.DeriveAddress(TemplateItem, shop[:], ledger.Uint64Bytes(index))
}

// OrderAddress locates the escrow actor for one (shop, id, buyer, item)
// tuple.
func OrderAddress(shop ledger.Address, id uint64, buyer, item ledger.Address) ledger.Address {
	return ledger.DeriveAddress(TemplateOrder, shop[:], ledger.Uint64Bytes(id), buyer[:], item[:])
}
