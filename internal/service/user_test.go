package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgermart/ledgermart/internal/dto"
	"github.com/ledgermart/ledgermart/internal/ledger"
	"github.com/ledgermart/ledgermart/internal/market"
)

func TestUserService_CreateUser(t *testing.T) {
	f := newServiceFixture(t)
	svc := NewUserService(f.sys, f.usersFactory, f.poll)
	wallet := f.wallet("buyer", 100*testRent)

	resp, err := svc.CreateUser(f.ctx, wallet, dto.CreateUserRequest{
		Name:            "Dana",
		DeliveryAddress: "12 Pine St",
		ValueNano:       uint64(2 * testRent),
	})
	require.NoError(t, err)

	assert.Equal(t, market.UserAddress(wallet).String(), resp.Address)
	assert.Equal(t, wallet.String(), resp.Owner)
	assert.Equal(t, "Dana", resp.Name)
	assert.Equal(t, "12 Pine St", resp.DeliveryAddress)
}

func TestUserService_CreateUser_Underfunded(t *testing.T) {
	f := newServiceFixture(t)
	svc := NewUserService(f.sys, f.usersFactory, f.poll)
	wallet := f.wallet("buyer", 100*testRent)

	_, err := svc.CreateUser(f.ctx, wallet, dto.CreateUserRequest{
		Name:            "Dana",
		DeliveryAddress: "12 Pine St",
		ValueNano:       uint64(testRent / 2),
	})
	assert.ErrorIs(t, err, ErrDeployNotConfirmed)
}

func TestUserService_ChangeUserData(t *testing.T) {
	f := newServiceFixture(t)
	svc := NewUserService(f.sys, f.usersFactory, f.poll)
	wallet := f.wallet("buyer", 100*testRent)
	_, err := svc.CreateUser(f.ctx, wallet, dto.CreateUserRequest{
		Name:            "Dana",
		DeliveryAddress: "12 Pine St",
		ValueNano:       uint64(2 * testRent),
	})
	require.NoError(t, err)

	resp, err := svc.ChangeUserData(f.ctx, wallet, dto.ChangeUserDataRequest{
		Name:            "Dana R.",
		DeliveryAddress: "9 Oak Ave",
	})
	require.NoError(t, err)
	assert.Equal(t, "Dana R.", resp.Name)
	assert.Equal(t, "9 Oak Ave", resp.DeliveryAddress)
}

func TestUserService_GetUser_NotFound(t *testing.T) {
	f := newServiceFixture(t)
	svc := NewUserService(f.sys, f.usersFactory, f.poll)

	_, err := svc.GetUser(f.ctx, ledger.WalletAddress("nobody"))
	assert.ErrorIs(t, err, ErrUserNotFound)
}
