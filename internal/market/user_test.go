package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgermart/ledgermart/internal/ledger"
)

func (f *marketFixture) createUser(owner ledger.Address, name, delivery string) ledger.Address {
	f.t.Helper()
	require.NoError(f.t, f.post(owner, f.usersFactory, MakeNewUser{
		Name:            name,
		DeliveryAddress: delivery,
	}, 2*testRent))
	addr := UserAddress(owner)
	require.True(f.t, f.sys.IsDeployed(addr))
	return addr
}

func TestUser_ChangeUserData_OwnerOnly(t *testing.T) {
	f := newMarket(t)
	owner := f.wallet("buyer", 100*testRent)
	mallory := f.wallet("mallory", 100*testRent)
	addr := f.createUser(owner, "Dana", "12 Pine St")

	err := f.post(mallory, addr, ChangeUserData{Name: "Hacked"}, 0)
	assert.ErrorIs(t, err, ErrAccessDenied)

	require.NoError(t, f.post(owner, addr, ChangeUserData{
		Name:            "Dana R.",
		DeliveryAddress: "9 Oak Ave",
	}, 0))

	user := f.userAt(addr)
	assert.Equal(t, "Dana R.", user.Name())
	assert.Equal(t, "9 Oak Ave", user.DeliveryAddress())
}

func TestUser_MakeOrder_RelaysWithProfileDelivery(t *testing.T) {
	f := newMarket(t)
	owner := f.wallet("seller", 100*testRent)
	buyer := f.wallet("buyer", 100*testRent)
	shop := f.createShop(owner, "Gallery")
	item := f.addItem(owner, shop, true, ItemContent{Title: "Original"}, 5_000)
	userAddr := f.createUser(buyer, "Dana", "12 Pine St")

	require.NoError(t, f.post(buyer, userAddr, MakeOrder{
		Shop: shop,
		Item: item,
	}, 10*testRent))

	// The shop accepts the relay because the sender is the buyer's derived
	// User address; the buyer on record is still the wallet.
	addr := OrderAddress(shop, 0, buyer, item)
	require.True(t, f.sys.IsDeployed(addr))
	order := f.orderAt(addr)
	assert.Equal(t, buyer, order.Buyer())
	assert.Equal(t, "12 Pine St", order.DeliveryAddress())
	assert.Equal(t, OrderStatePriceConfirmed, order.State())
}

func TestUser_MakeOrder_ExplicitDeliveryWins(t *testing.T) {
	f := newMarket(t)
	owner := f.wallet("seller", 100*testRent)
	buyer := f.wallet("buyer", 100*testRent)
	shop := f.createShop(owner, "Gallery")
	item := f.addItem(owner, shop, true, ItemContent{Title: "Original"}, 5_000)
	userAddr := f.createUser(buyer, "Dana", "12 Pine St")

	require.NoError(t, f.post(buyer, userAddr, MakeOrder{
		Shop:            shop,
		Item:            item,
		DeliveryAddress: "c/o front desk",
	}, 10*testRent))

	order := f.orderAt(OrderAddress(shop, 0, buyer, item))
	assert.Equal(t, "c/o front desk", order.DeliveryAddress())
}

func TestUser_MakeOrder_NonOwnerDenied(t *testing.T) {
	f := newMarket(t)
	buyer := f.wallet("buyer", 100*testRent)
	mallory := f.wallet("mallory", 100*testRent)
	addr := f.createUser(buyer, "Dana", "12 Pine St")

	err := f.post(mallory, addr, MakeOrder{}, 10*testRent)
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Equal(t, 100*testRent, f.sys.BalanceOf(mallory))
}
