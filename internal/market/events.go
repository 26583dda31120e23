package market

// Domain event kinds published on the ledger feed, consumed by the archive
// worker and the cache invalidator.
const (
	EventShopCreated     = "shop.created"
	EventUserCreated     = "user.created"
	EventItemListed      = "item.listed"
	EventItemTransferred = "item.transferred"
	EventOrderCreated    = "order.created"
	EventOrderCompleted  = "order.completed"
	EventOrderRefunded   = "order.refunded"
)
