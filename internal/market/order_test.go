package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgermart/ledgermart/internal/ledger"
)

const (
	salePrice  = ledger.Coins(12_400_000_000)
	buyerFunds = ledger.Coins(20_000_000_000)
	orderFund  = 5 * testRent
)

// saleFixture is a shop with one unique item and one confirmed order on it.
type saleFixture struct {
	*marketFixture
	owner, buyer     ledger.Address
	shop, item       ledger.Address
	order            ledger.Address
	sellerAfterSetup ledger.Coins
}

func newSale(t *testing.T) *saleFixture {
	f := newMarket(t)
	s := &saleFixture{
		marketFixture: f,
		owner:         f.wallet("seller", 100*testRent),
		buyer:         f.wallet("buyer", buyerFunds),
	}
	s.shop = f.createShop(s.owner, "Gallery")
	s.item = f.addItem(s.owner, s.shop, true, ItemContent{Title: "Original"}, salePrice)

	require.NoError(t, f.post(s.buyer, s.shop, MakeOrder{Item: s.item}, orderFund))
	s.order = OrderAddress(s.shop, 0, s.buyer, s.item)
	require.True(t, f.sys.IsDeployed(s.order))
	s.sellerAfterSetup = f.sys.BalanceOf(s.owner)
	return s
}

func TestOrder_Creation_EscrowsItemAndConfirmsPrice(t *testing.T) {
	s := newSale(t)

	order := s.orderAt(s.order)
	assert.Equal(t, OrderStatePriceConfirmed, order.State())
	assert.Equal(t, salePrice, order.Price())
	assert.Equal(t, s.buyer, order.Buyer())
	assert.Equal(t, s.owner, order.Seller())

	// The item now belongs to the order for the duration of the sale.
	item := s.uniqueItemAt(s.item)
	assert.Equal(t, s.order, item.Owner())
	assert.True(t, item.Salable())

	assert.Equal(t, orderFund, s.sys.BalanceOf(s.order))
	assert.Equal(t, buyerFunds-orderFund, s.sys.BalanceOf(s.buyer))
}

func TestOrder_Creation_PriceHintOverriddenByItem(t *testing.T) {
	f := newMarket(t)
	owner := f.wallet("seller", 100*testRent)
	buyer := f.wallet("buyer", buyerFunds)
	shop := f.createShop(owner, "Gallery")
	item := f.addItem(owner, shop, true, ItemContent{Title: "Original"}, salePrice)

	// The client's price hint is not trusted; the item's answer wins.
	require.NoError(t, f.post(buyer, shop, MakeOrder{Item: item, Price: 1}, orderFund))

	order := f.orderAt(OrderAddress(shop, 0, buyer, item))
	assert.Equal(t, salePrice, order.Price())
}

func TestOrder_Pay_ExactAmountCompletesSale(t *testing.T) {
	s := newSale(t)

	require.NoError(t, s.post(s.buyer, s.order, Pay{}, salePrice))

	order := s.orderAt(s.order)
	assert.Equal(t, OrderStateCompleted, order.State())
	assert.True(t, order.Completed())

	item := s.uniqueItemAt(s.item)
	assert.Equal(t, s.buyer, item.Owner())
	assert.False(t, item.Salable())

	assert.Equal(t, s.sellerAfterSetup+salePrice, s.sys.BalanceOf(s.owner))
	assert.Equal(t, buyerFunds-orderFund-salePrice, s.sys.BalanceOf(s.buyer))
	assert.Equal(t, uint64(1), s.shopAt(s.shop).OrdersCompleted())
}

func TestOrder_Pay_ExcessReturnedToBuyer(t *testing.T) {
	s := newSale(t)

	require.NoError(t, s.post(s.buyer, s.order, Pay{}, salePrice+700_000))

	assert.Equal(t, s.sellerAfterSetup+salePrice, s.sys.BalanceOf(s.owner))
	// Net cost to the buyer is exactly the price.
	assert.Equal(t, buyerFunds-orderFund-salePrice, s.sys.BalanceOf(s.buyer))
}

func TestOrder_Pay_InsufficientPaymentBounces(t *testing.T) {
	s := newSale(t)

	err := s.post(s.buyer, s.order, Pay{}, 5_000_000_000)
	assert.ErrorIs(t, err, ErrInsufficientPayment)

	// Nothing moved: state, custody and the buyer's funds are intact.
	assert.Equal(t, OrderStatePriceConfirmed, s.orderAt(s.order).State())
	assert.Equal(t, s.order, s.uniqueItemAt(s.item).Owner())
	assert.Equal(t, buyerFunds-orderFund, s.sys.BalanceOf(s.buyer))
}

func TestOrder_Pay_SecondPaymentRejected(t *testing.T) {
	s := newSale(t)
	require.NoError(t, s.post(s.buyer, s.order, Pay{}, salePrice))
	balance := s.sys.BalanceOf(s.buyer)

	err := s.post(s.buyer, s.order, Pay{}, salePrice)
	assert.ErrorIs(t, err, ErrOrderAlreadyCompleted)
	assert.Equal(t, balance, s.sys.BalanceOf(s.buyer))
}

func TestOrder_Pay_NonBuyerRejected(t *testing.T) {
	s := newSale(t)
	mallory := s.wallet("mallory", buyerFunds)

	err := s.post(mallory, s.order, Pay{}, salePrice)
	assert.ErrorIs(t, err, ErrInvalidSender)
	assert.Equal(t, buyerFunds, s.sys.BalanceOf(mallory))
}

func TestOrder_Pay_BeforePriceConfirmed(t *testing.T) {
	f := newMarket(t)
	owner := f.wallet("seller", 100*testRent)
	buyer := f.wallet("buyer", buyerFunds)
	shop := f.createShop(owner, "Gallery")
	item := f.addItem(owner, shop, true, ItemContent{Title: "Original"}, salePrice)

	// Pulling the item off sale first leaves the order stuck in Created:
	// both the escrow transfer and price discovery bounce.
	require.NoError(t, f.post(owner, shop, SetUniqueItemPrice{Item: item, Price: salePrice, Salable: false}, 0))
	err := f.post(buyer, shop, MakeOrder{Item: item}, orderFund)
	assert.ErrorIs(t, err, ErrItemNotSalable)

	addr := OrderAddress(shop, 0, buyer, item)
	require.True(t, f.sys.IsDeployed(addr))
	assert.Equal(t, OrderStateCreated, f.orderAt(addr).State())

	err = f.post(buyer, addr, Pay{}, salePrice)
	assert.ErrorIs(t, err, ErrPriceNotSet)
}

func TestOrder_Refund_ReturnsItemAndFunds(t *testing.T) {
	s := newSale(t)

	require.NoError(t, s.post(s.owner, s.order, RefundItem{}, 0))

	order := s.orderAt(s.order)
	assert.Equal(t, OrderStateRefunded, order.State())
	assert.True(t, order.Refunded())

	item := s.uniqueItemAt(s.item)
	assert.Equal(t, s.shop, item.Owner())
	assert.True(t, item.Salable())

	// The creation escrow went back to the buyer in full.
	assert.Equal(t, buyerFunds, s.sys.BalanceOf(s.buyer))
	assert.Equal(t, ledger.Coins(0), s.sys.BalanceOf(s.order))
}

func TestOrder_Refund_NonSellerRejected(t *testing.T) {
	s := newSale(t)

	err := s.post(s.buyer, s.order, RefundItem{}, 0)
	assert.ErrorIs(t, err, ErrOnlySellerCanRefund)
	assert.Equal(t, OrderStatePriceConfirmed, s.orderAt(s.order).State())
}

func TestOrder_Refund_AfterCompletionRejected(t *testing.T) {
	s := newSale(t)
	require.NoError(t, s.post(s.buyer, s.order, Pay{}, salePrice))

	err := s.post(s.owner, s.order, RefundItem{}, 0)
	assert.ErrorIs(t, err, ErrOrderAlreadyCompleted)
	assert.Equal(t, s.buyer, s.uniqueItemAt(s.item).Owner())
}

func TestOrder_Pay_AfterRefundRejected(t *testing.T) {
	s := newSale(t)
	require.NoError(t, s.post(s.owner, s.order, RefundItem{}, 0))

	err := s.post(s.buyer, s.order, Pay{}, salePrice)
	assert.ErrorIs(t, err, ErrItemRefunded)

	err = s.post(s.owner, s.order, RefundItem{}, 0)
	assert.ErrorIs(t, err, ErrItemRefunded)
}

func TestOrder_ConfirmPrice_ForgedSenderRejected(t *testing.T) {
	s := newSale(t)
	mallory := s.wallet("mallory", buyerFunds)

	err := s.post(mallory, s.order, GetPriceResponse{Price: 1}, 0)
	assert.ErrorIs(t, err, ErrInvalidSender)
	assert.Equal(t, salePrice, s.orderAt(s.order).Price())
}

func TestOrder_InitRetry_AfterConfirmationIsNoop(t *testing.T) {
	s := newSale(t)

	require.NoError(t, s.post(s.buyer, s.order, InitOrder{}, 0))
	assert.Equal(t, OrderStatePriceConfirmed, s.orderAt(s.order).State())
	assert.Equal(t, salePrice, s.orderAt(s.order).Price())
}
