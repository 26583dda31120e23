package service

import (
	"context"
	"fmt"

	"github.com/ledgermart/ledgermart/internal/dto"
	"github.com/ledgermart/ledgermart/internal/ledger"
	"github.com/ledgermart/ledgermart/internal/market"
	"github.com/ledgermart/ledgermart/internal/repository"
)

// OrderService drives the escrow flow: order creation, payment and refund
// submissions, plus order reads from the ledger and from the archive.
type OrderService struct {
	sys  *ledger.System
	repo repository.ArchiveRepository
	poll PollConfig
}

func NewOrderService(sys *ledger.System, repo repository.ArchiveRepository, poll PollConfig) *OrderService {
	return &OrderService{sys: sys, repo: repo, poll: poll}
}

func (s *OrderService) MakeOrder(ctx context.Context, wallet, shop ledger.Address, req dto.MakeOrderRequest) (*dto.OrderResponse, error) {
	item, err := ledger.ParseAddress(req.Item)
	if err != nil {
		return nil, err
	}

	shopActor, ok := s.sys.ActorAt(shop)
	if !ok {
		return nil, ErrShopNotFound
	}
	shopState, ok := shopActor.(*market.Shop)
	if !ok {
		return nil, ErrShopNotFound
	}
	orderID := shopState.OrderCounter()

	body := market.MakeOrder{
		Item:            item,
		Price:           ledger.Coins(req.PriceNano),
		DeliveryAddress: req.DeliveryAddress,
	}
	dest := shop
	if req.ViaUser {
		body.Shop = shop
		dest = market.UserAddress(wallet)
	}

	rec, err := s.sys.Post(wallet, dest, body, ledger.Coins(req.ValueNano))
	if err != nil {
		return nil, fmt.Errorf("submit order: %w", err)
	}
	if err := rec.Wait(ctx); err != nil {
		return nil, err
	}

	addr := market.OrderAddress(shop, orderID, wallet, item)
	if err := waitDeployed(ctx, s.sys, addr, s.poll); err != nil {
		return nil, err
	}
	return s.GetOrder(ctx, addr)
}

func (s *OrderService) Pay(ctx context.Context, wallet, order ledger.Address, req dto.PayRequest) (*dto.OrderResponse, error) {
	rec, err := s.sys.Post(wallet, order, market.Pay{}, ledger.Coins(req.ValueNano))
	if err != nil {
		return nil, fmt.Errorf("submit payment: %w", err)
	}
	if err := rec.Wait(ctx); err != nil {
		return nil, err
	}
	return s.GetOrder(ctx, order)
}

func (s *OrderService) Refund(ctx context.Context, wallet, order ledger.Address) (*dto.OrderResponse, error) {
	rec, err := s.sys.Post(wallet, order, market.RefundItem{}, 0)
	if err != nil {
		return nil, fmt.Errorf("submit refund: %w", err)
	}
	if err := rec.Wait(ctx); err != nil {
		return nil, err
	}
	return s.GetOrder(ctx, order)
}

func (s *OrderService) GetOrder(_ context.Context, addr ledger.Address) (*dto.OrderResponse, error) {
	actor, ok := s.sys.ActorAt(addr)
	if !ok {
		return nil, ErrOrderNotFound
	}
	order, ok := actor.(*market.Order)
	if !ok {
		return nil, ErrOrderNotFound
	}
	return &dto.OrderResponse{
		Address:         addr.String(),
		Shop:            order.Shop().String(),
		Seller:          order.Seller().String(),
		Buyer:           order.Buyer().String(),
		Item:            order.Item().String(),
		ID:              order.ID(),
		PriceNano:       uint64(order.Price()),
		Price:           dto.DisplayAmount(uint64(order.Price())),
		PriceSet:        order.PriceSet(),
		State:           order.State().String(),
		DeliveryAddress: order.DeliveryAddress(),
	}, nil
}

// ListShopOrders reads the off-ledger archive maintained by the event
// worker.
func (s *OrderService) ListShopOrders(ctx context.Context, shop ledger.Address) (*dto.OrderListResponse, error) {
	if s.repo == nil {
		return nil, ErrArchiveDisabled
	}
	records, err := s.repo.ListOrdersByShop(ctx, shop.String())
	if err != nil {
		return nil, fmt.Errorf("list archived orders: %w", err)
	}

	resp := &dto.OrderListResponse{}
	for _, rec := range records {
		resp.Orders = append(resp.Orders, dto.OrderArchiveEntry{
			Address:   rec.Address,
			Shop:      rec.Shop,
			Buyer:     rec.Buyer,
			Item:      rec.Item,
			ID:        rec.OrderID,
			PriceNano: rec.PriceNano,
			Price:     dto.DisplayAmount(rec.PriceNano),
			Status:    rec.Status,
		})
	}
	resp.Total = len(resp.Orders)
	return resp, nil
}
