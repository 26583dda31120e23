package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/ledgermart/ledgermart/internal/ledger"
	"github.com/ledgermart/ledgermart/internal/market"
	"github.com/ledgermart/ledgermart/internal/repository"
)

const testRent = ledger.Coins(1_000)

type serviceFixture struct {
	ctx context.Context
	sys *ledger.System

	shopFactory  ledger.Address
	usersFactory ledger.Address
	poll         PollConfig
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	sys := ledger.NewSystem(ledger.Config{Rent: testRent, EventBufferSize: 4096}, log)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)

	admin := ledger.WalletAddress("admin")
	f := &serviceFixture{
		ctx:          ctx,
		sys:          sys,
		shopFactory:  market.ShopFactoryAddress(admin),
		usersFactory: market.UsersFactoryAddress(admin),
		poll:         PollConfig{Retries: 3, Backoff: 10 * time.Millisecond},
	}
	sys.Install(f.shopFactory, market.NewShopFactory(admin))
	sys.Install(f.usersFactory, market.NewUsersFactory(admin))
	sys.Start(ctx)
	t.Cleanup(sys.Stop)
	return f
}

func (f *serviceFixture) wallet(key string, funds ledger.Coins) ledger.Address {
	addr := ledger.WalletAddress(key)
	f.sys.Credit(addr, funds)
	return addr
}

// archiveRepoMock records writes and serves a canned order list.
type archiveRepoMock struct {
	events []repository.EventRecord
	orders []repository.OrderRecord

	listResult []repository.OrderRecord
	listErr    error
	listedShop string
}

func (m *archiveRepoMock) InsertEvent(_ context.Context, rec *repository.EventRecord) error {
	m.events = append(m.events, *rec)
	return nil
}

func (m *archiveRepoMock) UpsertOrder(_ context.Context, rec *repository.OrderRecord) error {
	m.orders = append(m.orders, *rec)
	return nil
}

func (m *archiveRepoMock) ListOrdersByShop(_ context.Context, shop string) ([]repository.OrderRecord, error) {
	m.listedShop = shop
	return m.listResult, m.listErr
}
