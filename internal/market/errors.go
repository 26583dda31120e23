package market

import "errors"

// Protocol rejections. Every rejection is terminal for that single message:
// the actor's state is unchanged and the attached value bounces back to the
// sender. Retry policy belongs to the off-chain caller.
var (
	ErrAccessDenied          = errors.New("access denied")
	ErrPriceNotSet           = errors.New("price not set")
	ErrInsufficientPayment   = errors.New("insufficient payment")
	ErrOrderAlreadyCompleted = errors.New("order already completed")
	ErrItemRefunded          = errors.New("item already refunded")
	ErrItemNotSalable        = errors.New("item not salable")
	ErrInvalidSender         = errors.New("invalid sender")
	ErrOnlySellerCanRefund   = errors.New("only seller can refund")
	ErrUnknownMessage        = errors.New("unknown message")
)
