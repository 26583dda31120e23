package dto

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// NanoDecimals is the exponent between the ledger's smallest unit and the
// display coin.
const NanoDecimals = 9

// DisplayAmount renders a nanocoin amount as a decimal coin value.
func DisplayAmount(nano uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(nano), -NanoDecimals)
}

// --- Auth ---

type DevTokenRequest struct {
	WalletKey string `json:"wallet_key" binding:"required"`
}

type DevTokenResponse struct {
	Token  string `json:"token"`
	Wallet string `json:"wallet"`
}

// --- Wallets ---

type WalletResponse struct {
	Address     string          `json:"address"`
	BalanceNano uint64          `json:"balance_nano"`
	Balance     decimal.Decimal `json:"balance"`
}

type ResolveShopResponse struct {
	Wallet   string `json:"wallet"`
	Shop     string `json:"shop"`
	Deployed bool   `json:"deployed"`
}

// --- Shops ---

type CreateShopRequest struct {
	Name      string `json:"name" binding:"required"`
	ValueNano uint64 `json:"value_nano" binding:"required"`
}

type UpdateShopRequest struct {
	Name string `json:"name" binding:"required"`
}

type ShopResponse struct {
	Address         string          `json:"address"`
	Owner           string          `json:"owner"`
	Name            string          `json:"name"`
	ShopID          uint64          `json:"shop_id"`
	ItemCounter     uint64          `json:"item_counter"`
	OrderCounter    uint64          `json:"order_counter"`
	OrdersCompleted uint64          `json:"orders_completed"`
	BalanceNano     uint64          `json:"balance_nano"`
	Balance         decimal.Decimal `json:"balance"`
}

// --- Items ---

type ItemContent struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

type AddItemRequest struct {
	Unique    bool        `json:"unique"`
	Content   ItemContent `json:"content" binding:"required"`
	PriceNano uint64      `json:"price_nano" binding:"required"`
	ValueNano uint64      `json:"value_nano" binding:"required"`
}

type UpdateItemRequest struct {
	Content   ItemContent `json:"content" binding:"required"`
	PriceNano uint64      `json:"price_nano" binding:"required"`
	ValueNano uint64      `json:"value_nano"`
}

type SetItemPriceRequest struct {
	Item      string `json:"item" binding:"required"`
	PriceNano uint64 `json:"price_nano" binding:"required"`
	Salable   bool   `json:"salable"`
	ValueNano uint64 `json:"value_nano"`
}

type ItemResponse struct {
	Address   string          `json:"address"`
	Shop      string          `json:"shop"`
	Index     uint64          `json:"index"`
	Unique    bool            `json:"unique"`
	Owner     string          `json:"owner,omitempty"`
	Salable   *bool           `json:"salable,omitempty"`
	Content   ItemContent     `json:"content"`
	PriceNano uint64          `json:"price_nano"`
	Price     decimal.Decimal `json:"price"`
}

// --- Orders ---

type MakeOrderRequest struct {
	Item            string `json:"item" binding:"required"`
	PriceNano       uint64 `json:"price_nano"`
	DeliveryAddress string `json:"delivery_address"`
	ValueNano       uint64 `json:"value_nano" binding:"required"`
	// ViaUser relays the order through the caller's User actor, which fills
	// in the profile delivery address.
	ViaUser bool `json:"via_user"`
}

type PayRequest struct {
	ValueNano uint64 `json:"value_nano" binding:"required"`
}

type OrderResponse struct {
	Address         string          `json:"address"`
	Shop            string          `json:"shop"`
	Seller          string          `json:"seller"`
	Buyer           string          `json:"buyer"`
	Item            string          `json:"item"`
	ID              uint64          `json:"id"`
	PriceNano       uint64          `json:"price_nano"`
	Price           decimal.Decimal `json:"price"`
	PriceSet        bool            `json:"price_set"`
	State           string          `json:"state"`
	DeliveryAddress string          `json:"delivery_address,omitempty"`
}

type OrderListResponse struct {
	Orders []OrderArchiveEntry `json:"orders"`
	Total  int                 `json:"total"`
}

// OrderArchiveEntry is read back from the off-ledger archive, not from the
// actors themselves.
type OrderArchiveEntry struct {
	Address   string          `json:"address"`
	Shop      string          `json:"shop"`
	Buyer     string          `json:"buyer"`
	Item      string          `json:"item"`
	ID        uint64          `json:"id"`
	PriceNano uint64          `json:"price_nano"`
	Price     decimal.Decimal `json:"price"`
	Status    string          `json:"status"`
}

// --- Users ---

type CreateUserRequest struct {
	Name            string `json:"name" binding:"required"`
	DeliveryAddress string `json:"delivery_address" binding:"required"`
	ValueNano       uint64 `json:"value_nano" binding:"required"`
}

type ChangeUserDataRequest struct {
	Name            string `json:"name" binding:"required"`
	DeliveryAddress string `json:"delivery_address" binding:"required"`
}

type UserResponse struct {
	Address         string `json:"address"`
	Owner           string `json:"owner"`
	ID              uint64 `json:"id"`
	Name            string `json:"name"`
	DeliveryAddress string `json:"delivery_address"`
}
