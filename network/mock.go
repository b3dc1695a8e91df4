package network

import (
	"context"

	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tlb"

	"github.com/bitfsorg/distributor-go/distributor"
)

// MockService is a test double for Service.
// All function fields must be set before the corresponding method is called.
type MockService struct {
	RunGetMethodFn func(ctx context.Context, addr *address.Address, method string, params ...any) ([]any, error)
	SendFn         func(ctx context.Context, msg *distributor.Message) error
	GetBalanceFn   func(ctx context.Context, addr *address.Address) (tlb.Coins, error)
}

func (m *MockService) RunGetMethod(ctx context.Context, addr *address.Address, method string, params ...any) ([]any, error) {
	return m.RunGetMethodFn(ctx, addr, method, params...)
}
func (m *MockService) Send(ctx context.Context, msg *distributor.Message) error {
	return m.SendFn(ctx, msg)
}
func (m *MockService) GetBalance(ctx context.Context, addr *address.Address) (tlb.Coins, error) {
	return m.GetBalanceFn(ctx, addr)
}
