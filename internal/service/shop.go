package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ledgermart/ledgermart/internal/dto"
	"github.com/ledgermart/ledgermart/internal/ledger"
	"github.com/ledgermart/ledgermart/internal/market"
)

const shopCacheTTL = 60 * time.Second

// ShopService submits shop and catalog messages to the ledger and serves
// the read-only queries, with a short-lived cache in front of snapshots.
type ShopService struct {
	sys         *ledger.System
	factory     ledger.Address
	redisClient *redis.Client
	poll        PollConfig
}

func NewShopService(sys *ledger.System, factory ledger.Address, redisClient *redis.Client, poll PollConfig) *ShopService {
	return &ShopService{sys: sys, factory: factory, redisClient: redisClient, poll: poll}
}

// ResolveShop maps a wallet to its shop address without touching any actor.
func (s *ShopService) ResolveShop(wallet ledger.Address) dto.ResolveShopResponse {
	addr := market.ShopAddress(wallet)
	return dto.ResolveShopResponse{
		Wallet:   wallet.String(),
		Shop:     addr.String(),
		Deployed: s.sys.IsDeployed(addr),
	}
}

func (s *ShopService) CreateShop(ctx context.Context, wallet ledger.Address, req dto.CreateShopRequest) (*dto.ShopResponse, error) {
	rec, err := s.sys.Post(wallet, s.factory, market.CreateShop{Name: req.Name}, ledger.Coins(req.ValueNano))
	if err != nil {
		return nil, fmt.Errorf("submit create shop: %w", err)
	}
	if err := rec.Wait(ctx); err != nil {
		return nil, err
	}

	addr := market.ShopAddress(wallet)
	if err := waitDeployed(ctx, s.sys, addr, s.poll); err != nil {
		return nil, err
	}
	s.invalidate(ctx, "shop:"+addr.String())
	return s.GetShop(ctx, addr)
}

func (s *ShopService) UpdateShopInfo(ctx context.Context, wallet, shop ledger.Address, req dto.UpdateShopRequest) (*dto.ShopResponse, error) {
	rec, err := s.sys.Post(wallet, shop, market.UpdateShopInfo{Name: req.Name}, 0)
	if err != nil {
		return nil, fmt.Errorf("submit shop update: %w", err)
	}
	if err := rec.Wait(ctx); err != nil {
		return nil, err
	}
	s.invalidate(ctx, "shop:"+shop.String())
	return s.GetShop(ctx, shop)
}

// AddItem lists a new catalog entry. The returned item reflects the index
// observed before submission; under concurrent listings the authoritative
// assignment is the shop's own counter, surfaced through the event feed.
func (s *ShopService) AddItem(ctx context.Context, wallet, shop ledger.Address, req dto.AddItemRequest) (*dto.ItemResponse, error) {
	snapshot, ok := s.shopAt(shop)
	if !ok {
		return nil, ErrShopNotFound
	}
	index := snapshot.ItemCounter()

	body := market.AddItem{
		Unique: req.Unique,
		Content: market.ItemContent{
			Title:       req.Content.Title,
			Description: req.Content.Description,
			Image:       req.Content.Image,
		},
		Price: ledger.Coins(req.PriceNano),
	}
	rec, err := s.sys.Post(wallet, shop, body, ledger.Coins(req.ValueNano))
	if err != nil {
		return nil, fmt.Errorf("submit add item: %w", err)
	}
	if err := rec.Wait(ctx); err != nil {
		return nil, err
	}

	addr := market.ItemAddress(shop, index)
	if err := waitDeployed(ctx, s.sys, addr, s.poll); err != nil {
		return nil, err
	}
	s.invalidate(ctx, "shop:"+shop.String())
	return s.GetItem(ctx, addr)
}

func (s *ShopService) UpdateItem(ctx context.Context, wallet, shop ledger.Address, index uint64, req dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	body := market.UpdateItem{
		Index: index,
		Content: market.ItemContent{
			Title:       req.Content.Title,
			Description: req.Content.Description,
			Image:       req.Content.Image,
		},
		Price: ledger.Coins(req.PriceNano),
	}
	rec, err := s.sys.Post(wallet, shop, body, ledger.Coins(req.ValueNano))
	if err != nil {
		return nil, fmt.Errorf("submit item update: %w", err)
	}
	if err := rec.Wait(ctx); err != nil {
		return nil, err
	}

	addr := market.ItemAddress(shop, index)
	s.invalidate(ctx, "item:"+addr.String())
	return s.GetItem(ctx, addr)
}

// SetItemPrice relays a unique item reprice through its shop, which holds
// the item in custody.
func (s *ShopService) SetItemPrice(ctx context.Context, wallet, shop ledger.Address, req dto.SetItemPriceRequest) (*dto.ItemResponse, error) {
	item, err := ledger.ParseAddress(req.Item)
	if err != nil {
		return nil, err
	}
	body := market.SetUniqueItemPrice{
		Item:    item,
		Price:   ledger.Coins(req.PriceNano),
		Salable: req.Salable,
	}
	rec, err := s.sys.Post(wallet, shop, body, ledger.Coins(req.ValueNano))
	if err != nil {
		return nil, fmt.Errorf("submit price update: %w", err)
	}
	if err := rec.Wait(ctx); err != nil {
		return nil, err
	}
	s.invalidate(ctx, "item:"+item.String())
	return s.GetItem(ctx, item)
}

func (s *ShopService) GetShop(ctx context.Context, addr ledger.Address) (*dto.ShopResponse, error) {
	cacheKey := "shop:" + addr.String()
	if s.redisClient != nil {
		if cached, err := s.redisClient.Get(ctx, cacheKey).Result(); err == nil {
			var resp dto.ShopResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return &resp, nil
			}
		}
	}

	shop, ok := s.shopAt(addr)
	if !ok {
		return nil, ErrShopNotFound
	}
	balance := uint64(s.sys.BalanceOf(addr))
	resp := &dto.ShopResponse{
		Address:         addr.String(),
		Owner:           shop.Owner().String(),
		Name:            shop.Name(),
		ShopID:          shop.ShopID(),
		ItemCounter:     shop.ItemCounter(),
		OrderCounter:    shop.OrderCounter(),
		OrdersCompleted: shop.OrdersCompleted(),
		BalanceNano:     balance,
		Balance:         dto.DisplayAmount(balance),
	}

	if s.redisClient != nil {
		if data, err := json.Marshal(resp); err == nil {
			s.redisClient.Set(ctx, cacheKey, data, shopCacheTTL)
		}
	}
	return resp, nil
}

func (s *ShopService) GetItem(ctx context.Context, addr ledger.Address) (*dto.ItemResponse, error) {
	cacheKey := "item:" + addr.String()
	if s.redisClient != nil {
		if cached, err := s.redisClient.Get(ctx, cacheKey).Result(); err == nil {
			var resp dto.ItemResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return &resp, nil
			}
		}
	}

	actor, ok := s.sys.ActorAt(addr)
	if !ok {
		return nil, ErrItemNotFound
	}

	var resp *dto.ItemResponse
	switch it := actor.(type) {
	case *market.Item:
		resp = &dto.ItemResponse{
			Address:   addr.String(),
			Shop:      it.Shop().String(),
			Index:     it.Index(),
			Content:   toContentDTO(it.Content()),
			PriceNano: uint64(it.Price()),
			Price:     dto.DisplayAmount(uint64(it.Price())),
		}
	case *market.UniqueItem:
		salable := it.Salable()
		resp = &dto.ItemResponse{
			Address:   addr.String(),
			Shop:      it.Shop().String(),
			Index:     it.Index(),
			Unique:    true,
			Owner:     it.Owner().String(),
			Salable:   &salable,
			Content:   toContentDTO(it.Content()),
			PriceNano: uint64(it.Price()),
			Price:     dto.DisplayAmount(uint64(it.Price())),
		}
	default:
		return nil, ErrItemNotFound
	}

	if s.redisClient != nil {
		if data, err := json.Marshal(resp); err == nil {
			s.redisClient.Set(ctx, cacheKey, data, shopCacheTTL)
		}
	}
	return resp, nil
}

func (s *ShopService) shopAt(addr ledger.Address) (*market.Shop, bool) {
	actor, ok := s.sys.ActorAt(addr)
	if !ok {
		return nil, false
	}
	shop, ok := actor.(*market.Shop)
	return shop, ok
}

func (s *ShopService) invalidate(ctx context.Context, key string) {
	if s.redisClient != nil {
		s.redisClient.Del(ctx, key)
	}
}

func toContentDTO(c market.ItemContent) dto.ItemContent {
	return dto.ItemContent{Title: c.Title, Description: c.Description, Image: c.Image}
}
