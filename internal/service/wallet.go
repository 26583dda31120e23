package service

import (
	"github.com/ledgermart/ledgermart/internal/dto"
	"github.com/ledgermart/ledgermart/internal/ledger"
)

// WalletService serves balances and the dev-mode faucet.
type WalletService struct {
	sys           *ledger.System
	faucetEnabled bool
	faucetAmount  ledger.Coins
}

func NewWalletService(sys *ledger.System, faucetEnabled bool, faucetAmount ledger.Coins) *WalletService {
	return &WalletService{sys: sys, faucetEnabled: faucetEnabled, faucetAmount: faucetAmount}
}

func (s *WalletService) Faucet(wallet ledger.Address) (*dto.WalletResponse, error) {
	if !s.faucetEnabled {
		return nil, ErrFaucetDisabled
	}
	s.sys.Credit(wallet, s.faucetAmount)
	return s.Balance(wallet), nil
}

func (s *WalletService) Balance(wallet ledger.Address) *dto.WalletResponse {
	balance := uint64(s.sys.BalanceOf(wallet))
	return &dto.WalletResponse{
		Address:     wallet.String(),
		BalanceNano: balance,
		Balance:     dto.DisplayAmount(balance),
	}
}
