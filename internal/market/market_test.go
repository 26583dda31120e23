package market

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ledgermart/ledgermart/internal/ledger"
)

const testRent = ledger.Coins(1_000)

// marketFixture is a running ledger with both factories installed, plus
// helpers to post messages and read committed actor snapshots.
type marketFixture struct {
	t   *testing.T
	ctx context.Context
	sys *ledger.System

	admin        ledger.Address
	shopFactory  ledger.Address
	usersFactory ledger.Address
}

func newMarket(t *testing.T) *marketFixture {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	sys := ledger.NewSystem(ledger.Config{Rent: testRent, EventBufferSize: 4096}, log)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)

	admin := ledger.WalletAddress("admin")
	f := &marketFixture{
		t:            t,
		ctx:          ctx,
		sys:          sys,
		admin:        admin,
		shopFactory:  ShopFactoryAddress(admin),
		usersFactory: UsersFactoryAddress(admin),
	}
	sys.Install(f.shopFactory, NewShopFactory(admin))
	sys.Install(f.usersFactory, NewUsersFactory(admin))
	sys.Start(ctx)
	t.Cleanup(sys.Stop)
	return f
}

func (f *marketFixture) wallet(key string, funds ledger.Coins) ledger.Address {
	addr := ledger.WalletAddress(key)
	f.sys.Credit(addr, funds)
	return addr
}

// post submits a message and waits for its whole cascade. The returned error
// is the joined bounce set, nil when every hop was accepted.
func (f *marketFixture) post(from, dest ledger.Address, body any, value ledger.Coins) error {
	f.t.Helper()
	rec, err := f.sys.Post(from, dest, body, value)
	require.NoError(f.t, err)
	return rec.Wait(f.ctx)
}

func (f *marketFixture) createShop(owner ledger.Address, name string) ledger.Address {
	f.t.Helper()
	require.NoError(f.t, f.post(owner, f.shopFactory, CreateShop{Name: name}, 5*testRent))
	addr := ShopAddress(owner)
	require.True(f.t, f.sys.IsDeployed(addr))
	return addr
}

func (f *marketFixture) addItem(owner, shop ledger.Address, unique bool, content ItemContent, price ledger.Coins) ledger.Address {
	f.t.Helper()
	index := f.shopAt(shop).ItemCounter()
	require.NoError(f.t, f.post(owner, shop, AddItem{
		Unique:  unique,
		Content: content,
		Price:   price,
	}, 2*testRent))
	addr := ItemAddress(shop, index)
	require.True(f.t, f.sys.IsDeployed(addr))
	return addr
}

func (f *marketFixture) shopAt(addr ledger.Address) *Shop {
	f.t.Helper()
	actor, ok := f.sys.ActorAt(addr)
	require.True(f.t, ok)
	shop, ok := actor.(*Shop)
	require.True(f.t, ok)
	return shop
}

func (f *marketFixture) uniqueItemAt(addr ledger.Address) *UniqueItem {
	f.t.Helper()
	actor, ok := f.sys.ActorAt(addr)
	require.True(f.t, ok)
	item, ok := actor.(*UniqueItem)
	require.True(f.t, ok)
	return item
}

func (f *marketFixture) plainItemAt(addr ledger.Address) *Item {
	f.t.Helper()
	actor, ok := f.sys.ActorAt(addr)
	require.True(f.t, ok)
	item, ok := actor.(*Item)
	require.True(f.t, ok)
	return item
}

func (f *marketFixture) orderAt(addr ledger.Address) *Order {
	f.t.Helper()
	actor, ok := f.sys.ActorAt(addr)
	require.True(f.t, ok)
	order, ok := actor.(*Order)
	require.True(f.t, ok)
	return order
}

func (f *marketFixture) userAt(addr ledger.Address) *User {
	f.t.Helper()
	actor, ok := f.sys.ActorAt(addr)
	require.True(f.t, ok)
	user, ok := actor.(*User)
	require.True(f.t, ok)
	return user
}
