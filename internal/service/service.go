package service

import (
	"context"
	"errors"
	"time"

	"github.com/ledgermart/ledgermart/internal/ledger"
)

var (
	ErrShopNotFound       = errors.New("shop not found")
	ErrItemNotFound       = errors.New("item not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrDeployNotConfirmed = errors.New("deployment not confirmed")
	ErrArchiveDisabled    = errors.New("order archive disabled")
	ErrFaucetDisabled     = errors.New("faucet disabled")
	ErrDevTokensDisabled  = errors.New("dev tokens disabled")
)

// PollConfig is the deployment confirmation policy: provisioning is
// asynchronous and a dropped deploy produces no error, so the gateway polls
// IsDeployed with backoff the way the reference client does.
type PollConfig struct {
	Retries int
	Backoff time.Duration
}

func waitDeployed(ctx context.Context, sys *ledger.System, addr ledger.Address, poll PollConfig) error {
	for i := 0; i < poll.Retries; i++ {
		if sys.IsDeployed(addr) {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(poll.Backoff):
		}
	}
	if sys.IsDeployed(addr) {
		return nil
	}
	return ErrDeployNotConfirmed
}
