package distributor

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tlb"
	"github.com/xssnick/tonutils-go/tvm/cell"
)

// DefaultWorkchain is the basechain.
const DefaultWorkchain int8 = 0

// PayGasSeparately is the send mode used for every outgoing message: fees
// are paid from the sender's balance on top of the attached value.
const PayGasSeparately uint8 = 1

// Get method names exposed by the contract.
const (
	MethodProcessingPrice = "processing_price"
	MethodOwner           = "owner"
	MethodConfig          = "config"
)

// DefaultUpdateValue is attached to update_data and update_code messages
// unless overridden with WithValue.
var DefaultUpdateValue = tlb.MustFromTON("0.05")

// Message is an internal message the Actor must sign and submit.
type Message struct {
	To        *address.Address
	Amount    tlb.Coins
	Mode      uint8
	Bounce    bool
	StateInit *tlb.StateInit
	Body      *cell.Cell
}

// Invoker runs read-only get methods. The returned stack holds the method's
// results in return order: *big.Int, *cell.Cell or *cell.Slice items.
type Invoker interface {
	RunGetMethod(ctx context.Context, addr *address.Address, method string, params ...any) ([]any, error)
}

// Actor is used by Contract to send state-changing messages.
type Actor interface {
	Invoker

	Send(ctx context.Context, msg *Message) error
}

// BalanceReader is an optional Invoker capability used by GetBalance.
type BalanceReader interface {
	GetBalance(ctx context.Context, addr *address.Address) (tlb.Coins, error)
}

// Contract is an immutable handle on one Distributor instance.
type Contract struct {
	address *address.Address
	init    *tlb.StateInit
}

// NewFromConfig encodes cfg as initial data and derives the contract
// address of (code, data) in workchain.
func NewFromConfig(cfg Config, code *cell.Cell, workchain int8) (*Contract, error) {
	if code == nil {
		return nil, fmt.Errorf("%w: contract code is required", ErrValidation)
	}
	data, err := EncodeConfig(cfg)
	if err != nil {
		return nil, err
	}

	init := &tlb.StateInit{Code: code, Data: data}
	initCell, err := StateInitCell(init)
	if err != nil {
		return nil, err
	}
	return &Contract{
		address: address.NewAddress(0, byte(workchain), initCell.Hash()),
		init:    init,
	}, nil
}

// NewFromAddress returns a handle on an already deployed contract.
func NewFromAddress(addr *address.Address) *Contract {
	return &Contract{address: addr}
}

// StateInitCell serializes init the same way the deploy message carries it.
// Its hash is the contract account id.
func StateInitCell(init *tlb.StateInit) (*cell.Cell, error) {
	c, err := tlb.ToCell(init)
	if err != nil {
		return nil, fmt.Errorf("%w: serialize state init: %w", ErrValidation, err)
	}
	return c, nil
}

// Address returns the contract address.
func (c *Contract) Address() *address.Address { return c.address }

// StateInit returns the deployment code and data, or nil for handles built
// with NewFromAddress.
func (c *Contract) StateInit() *tlb.StateInit { return c.init }

// SendOption adjusts an outgoing message.
type SendOption func(*Message)

// WithValue overrides the value attached to an update message.
func WithValue(v tlb.Coins) SendOption {
	return func(m *Message) { m.Amount = v }
}

// SendDeploy sends value with an empty body and the state init attached so
// the first delivery creates the contract.
func (c *Contract) SendDeploy(ctx context.Context, actor Actor, value tlb.Coins) error {
	if c.init == nil {
		return ErrNoStateInit
	}
	return c.send(ctx, actor, &Message{
		To:        c.address,
		Amount:    value,
		Mode:      PayGasSeparately,
		Bounce:    false,
		StateInit: c.init,
		Body:      cell.BeginCell().EndCell(),
	})
}

// SendUpdateData replaces the contract's persistent data with newData.
func (c *Contract) SendUpdateData(ctx context.Context, actor Actor, newData *cell.Cell, opts ...SendOption) error {
	if newData == nil {
		return fmt.Errorf("%w: new data cell is required", ErrValidation)
	}
	body := cell.BeginCell().
		MustStoreUInt(uint64(OpUpdateData), 32).
		MustStoreRef(newData).
		EndCell()
	return c.send(ctx, actor, c.update(body, opts))
}

// SendUpdateConfig encodes cfg and sends it as new contract data.
func (c *Contract) SendUpdateConfig(ctx context.Context, actor Actor, cfg Config, opts ...SendOption) error {
	data, err := EncodeConfig(cfg)
	if err != nil {
		return err
	}
	return c.SendUpdateData(ctx, actor, data, opts...)
}

// SendUpdateCode replaces the contract code with newCode.
func (c *Contract) SendUpdateCode(ctx context.Context, actor Actor, newCode *cell.Cell, opts ...SendOption) error {
	if newCode == nil {
		return fmt.Errorf("%w: new code cell is required", ErrValidation)
	}
	body := cell.BeginCell().
		MustStoreUInt(uint64(OpUpdateCode), 32).
		MustStoreRef(newCode).
		EndCell()
	return c.send(ctx, actor, c.update(body, opts))
}

// SendTopup adds value to the contract balance without triggering a distribution.
func (c *Contract) SendTopup(ctx context.Context, actor Actor, value tlb.Coins) error {
	return c.send(ctx, actor, &Message{
		To:     c.address,
		Amount: value,
		Mode:   PayGasSeparately,
		Bounce: true,
		Body:   cell.BeginCell().MustStoreUInt(uint64(OpTopup), 32).EndCell(),
	})
}

func (c *Contract) update(body *cell.Cell, opts []SendOption) *Message {
	msg := &Message{
		To:     c.address,
		Amount: DefaultUpdateValue,
		Mode:   PayGasSeparately,
		Bounce: true,
		Body:   body,
	}
	for _, opt := range opts {
		opt(msg)
	}
	return msg
}

func (c *Contract) send(ctx context.Context, actor Actor, msg *Message) error {
	if err := actor.Send(ctx, msg); err != nil {
		return fmt.Errorf("%w: send to %s: %w", ErrRemoteOperation, c.address, err)
	}
	return nil
}

// GetProcessingPrice returns the fee in nanotons the contract keeps per distribution.
func (c *Contract) GetProcessingPrice(ctx context.Context, inv Invoker) (*big.Int, error) {
	stack, err := c.call(ctx, inv, MethodProcessingPrice)
	if err != nil {
		return nil, err
	}
	v, ok := stack[0].(*big.Int)
	if !ok {
		return nil, unexpectedItem(MethodProcessingPrice, "integer", stack[0])
	}
	return v, nil
}

// GetOwner returns the owner address stored in the contract.
func (c *Contract) GetOwner(ctx context.Context, inv Invoker) (*address.Address, error) {
	stack, err := c.call(ctx, inv, MethodOwner)
	if err != nil {
		return nil, err
	}
	s, err := stackSlice(stack[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRemoteOperation, MethodOwner, err)
	}
	addr, err := s.LoadAddr()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: load address: %w", ErrRemoteOperation, MethodOwner, err)
	}
	return addr, nil
}

// GetConfig fetches the contract's persistent data and decodes it.
func (c *Contract) GetConfig(ctx context.Context, inv Invoker) (*Config, error) {
	stack, err := c.call(ctx, inv, MethodConfig)
	if err != nil {
		return nil, err
	}
	s, err := stackSlice(stack[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRemoteOperation, MethodConfig, err)
	}
	data, err := s.ToCell()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformedData, MethodConfig, err)
	}
	return DecodeConfig(data)
}

// GetBalance returns the contract account balance. The contract has no get
// method for it, so inv must also implement BalanceReader; otherwise
// ErrNotImplemented is returned.
func (c *Contract) GetBalance(ctx context.Context, inv Invoker) (tlb.Coins, error) {
	br, ok := inv.(BalanceReader)
	if !ok {
		return tlb.Coins{}, fmt.Errorf("%w: balance of %s", ErrNotImplemented, c.address)
	}
	balance, err := br.GetBalance(ctx, c.address)
	if err != nil {
		return tlb.Coins{}, fmt.Errorf("%w: balance of %s: %w", ErrRemoteOperation, c.address, err)
	}
	return balance, nil
}

func (c *Contract) call(ctx context.Context, inv Invoker, method string) ([]any, error) {
	stack, err := inv.RunGetMethod(ctx, c.address, method)
	if err != nil {
		return nil, fmt.Errorf("%w: %s on %s: %w", ErrRemoteOperation, method, c.address, err)
	}
	if len(stack) == 0 {
		return nil, fmt.Errorf("%w: %s on %s: empty stack", ErrRemoteOperation, method, c.address)
	}
	return stack, nil
}

var errUnexpectedItem = errors.New("unexpected stack item")

func stackSlice(item any) (*cell.Slice, error) {
	switch v := item.(type) {
	case *cell.Slice:
		return v.Copy(), nil
	case *cell.Cell:
		return v.BeginParse(), nil
	default:
		return nil, fmt.Errorf("%w: %T, want slice or cell", errUnexpectedItem, item)
	}
}

func unexpectedItem(method, want string, item any) error {
	return fmt.Errorf("%w: %s: %w: %T, want %s", ErrRemoteOperation, method, errUnexpectedItem, item, want)
}
