package service

import (
	"context"
	"fmt"

	"github.com/ledgermart/ledgermart/internal/dto"
	"github.com/ledgermart/ledgermart/internal/ledger"
	"github.com/ledgermart/ledgermart/internal/market"
)

type UserService struct {
	sys     *ledger.System
	factory ledger.Address
	poll    PollConfig
}

func NewUserService(sys *ledger.System, factory ledger.Address, poll PollConfig) *UserService {
	return &UserService{sys: sys, factory: factory, poll: poll}
}

func (s *UserService) CreateUser(ctx context.Context, wallet ledger.Address, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	body := market.MakeNewUser{Name: req.Name, DeliveryAddress: req.DeliveryAddress}
	rec, err := s.sys.Post(wallet, s.factory, body, ledger.Coins(req.ValueNano))
	if err != nil {
		return nil, fmt.Errorf("submit create user: %w", err)
	}
	if err := rec.Wait(ctx); err != nil {
		return nil, err
	}

	addr := market.UserAddress(wallet)
	if err := waitDeployed(ctx, s.sys, addr, s.poll); err != nil {
		return nil, err
	}
	return s.GetUser(ctx, addr)
}

func (s *UserService) ChangeUserData(ctx context.Context, wallet ledger.Address, req dto.ChangeUserDataRequest) (*dto.UserResponse, error) {
	addr := market.UserAddress(wallet)
	body := market.ChangeUserData{Name: req.Name, DeliveryAddress: req.DeliveryAddress}
	rec, err := s.sys.Post(wallet, addr, body, 0)
	if err != nil {
		return nil, fmt.Errorf("submit user update: %w", err)
	}
	if err := rec.Wait(ctx); err != nil {
		return nil, err
	}
	return s.GetUser(ctx, addr)
}

func (s *UserService) GetUser(_ context.Context, addr ledger.Address) (*dto.UserResponse, error) {
	actor, ok := s.sys.ActorAt(addr)
	if !ok {
		return nil, ErrUserNotFound
	}
	user, ok := actor.(*market.User)
	if !ok {
		return nil, ErrUserNotFound
	}
	return &dto.UserResponse{
		Address:         addr.String(),
		Owner:           user.Owner().String(),
		ID:              user.ID(),
		Name:            user.Name(),
		DeliveryAddress: user.DeliveryAddress(),
	}, nil
}
