package market

import "github.com/ledgermart/ledgermart/internal/ledger"

// ItemContent is the listing payload shared by plain and unique items.
type ItemContent struct {
	Title       string
	Description string
	Image       string
}

// --- Factory inbound ---

type CreateShop struct {
	Name string
}

type MakeNewUser struct {
	Name            string
	DeliveryAddress string
}

// --- Shop inbound ---

type AddItem struct {
	Unique  bool
	Content ItemContent
	Price   ledger.Coins
}

// UpdateItem overwrites an existing plain listing, keyed by its index.
// Re-sends are idempotent.
type UpdateItem struct {
	Index   uint64
	Content ItemContent
	Price   ledger.Coins
}

// CreateOrder is the seller-initiated order form; the shop owner names the
// buyer explicitly.
type CreateOrder struct {
	Item            ledger.Address
	Buyer           ledger.Address
	DeliveryAddress string
	Price           ledger.Coins
}

// MakeOrder is the buyer-initiated order form, sent by the buyer's wallet or
// relayed by their User actor. Shop is only meaningful on the User hop;
// Buyer, when set, must match the relaying User actor's derived address.
type MakeOrder struct {
	Shop            ledger.Address
	Item            ledger.Address
	Price           ledger.Coins
	DeliveryAddress string
	Buyer           ledger.Address
}

type SetUniqueItemPrice struct {
	Item    ledger.Address
	Price   ledger.Coins
	Salable bool
}

// OrderCompleted is the receipt-only notification an order sends its shop.
type OrderCompleted struct {
	ID    uint64
	Item  ledger.Address
	Buyer ledger.Address
}

type UpdateShopInfo struct {
	Name string
}

// --- Catalog item inbound ---

type GetPrice struct{}

type GetPriceResponse struct {
	Price ledger.Coins
}

type SetPrice struct {
	Price   ledger.Coins
	Salable bool
}

type NftTransfer struct {
	NewOwner ledger.Address
	Salable  bool
}

// OverwriteItem is the shop-relayed form of UpdateItem a plain item accepts.
type OverwriteItem struct {
	Content ItemContent
	Price   ledger.Coins
}

// --- Order inbound ---

// InitOrder is the deploy body of an order; re-sending it retries price
// discovery while the order is still unconfirmed.
type InitOrder struct{}

type Pay struct{}

type RefundItem struct{}

// --- User inbound ---

type ChangeUserData struct {
	Name            string
	DeliveryAddress string
}

// --- Value-carrying notifications to wallets ---

type SellerPayout struct {
	OrderID uint64
}

type PaymentChange struct {
	OrderID uint64
}

type RefundPayment struct {
	OrderID uint64
}
