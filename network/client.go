package network

import (
	"context"
	"fmt"

	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/liteclient"
	"github.com/xssnick/tonutils-go/tlb"
	"github.com/xssnick/tonutils-go/ton"
	"github.com/xssnick/tonutils-go/ton/wallet"
	"github.com/xssnick/tonutils-go/tvm/cell"
	"go.uber.org/zap"

	"github.com/bitfsorg/distributor-go/distributor"
)

// LiteAPI is the subset of the lite server API used by Client.
type LiteAPI interface {
	CurrentMasterchainInfo(ctx context.Context) (*ton.BlockIDExt, error)
	RunGetMethod(ctx context.Context, blockInfo *ton.BlockIDExt, addr *address.Address, method string, params ...any) (*ton.ExecutionResult, error)
	GetAccount(ctx context.Context, block *ton.BlockIDExt, addr *address.Address) (*tlb.Account, error)
}

// Sender signs and submits wallet messages. *wallet.Wallet implements it.
type Sender interface {
	Send(ctx context.Context, message *wallet.Message, waitConfirmation ...bool) error
	WalletAddress() *address.Address
}

// Client talks to TON through lite servers. Get methods and balances are
// read from the latest masterchain block; sends go through the wallet and
// wait for the wallet's seqno to advance.
type Client struct {
	api    LiteAPI
	sender Sender
	pool   *liteclient.ConnectionPool
	log    *zap.Logger
}

// Compile-time interface check.
var _ Service = (*Client)(nil)

// NewClient wraps an existing lite API. sender may be nil for a read-only client.
func NewClient(api LiteAPI, sender Sender, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{api: api, sender: sender, log: log}
}

// Dial connects to the lite servers listed in cfg.ConfigURL and returns a
// read-only client together with the retrying API, which callers need to
// open a wallet.
func Dial(ctx context.Context, cfg Config, log *zap.Logger) (*Client, ton.APIClientWrapped, error) {
	if log == nil {
		log = zap.NewNop()
	}
	pool := liteclient.NewConnectionPool()
	if err := pool.AddConnectionsFromConfigUrl(ctx, cfg.ConfigURL); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}
	log.Info("connected to lite servers",
		zap.String("network", cfg.Network), zap.String("config", cfg.ConfigURL))

	var api ton.APIClientWrapped = ton.NewAPIClient(pool, ton.ProofCheckPolicyFast)
	if cfg.Retries > 0 {
		api = api.WithRetry(cfg.Retries)
	} else {
		api = api.WithRetry()
	}

	c := NewClient(api, nil, log)
	c.pool = pool
	return c, api, nil
}

// WithSender returns a copy of c that signs sends with sender.
func (c *Client) WithSender(sender Sender) *Client {
	cp := *c
	cp.sender = sender
	return &cp
}

// Close stops the lite server connection pool, if the client owns one.
func (c *Client) Close() {
	if c.pool != nil {
		c.pool.Stop()
	}
}

// RunGetMethod runs method on addr at the current masterchain block.
func (c *Client) RunGetMethod(ctx context.Context, addr *address.Address, method string, params ...any) ([]any, error) {
	block, err := c.api.CurrentMasterchainInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("network: get masterchain info: %w", err)
	}
	res, err := c.api.RunGetMethod(ctx, block, addr, method, params...)
	if err != nil {
		return nil, fmt.Errorf("network: run %s: %w", method, err)
	}
	c.log.Debug("get method executed",
		zap.Stringer("address", addr), zap.String("method", method), zap.Uint32("seqno", block.SeqNo))
	return res.AsTuple(), nil
}

// Send signs msg with the client's wallet and waits for the wallet to
// accept it. Execution on the destination contract is not awaited.
func (c *Client) Send(ctx context.Context, msg *distributor.Message) error {
	if c.sender == nil {
		return ErrNoWallet
	}
	if msg == nil || msg.To == nil {
		return fmt.Errorf("%w: message without destination", ErrInvalidMessage)
	}

	if err := c.sender.Send(ctx, WalletMessage(msg), true); err != nil {
		return fmt.Errorf("network: send to %s: %w", msg.To, err)
	}
	c.log.Info("message sent",
		zap.Stringer("from", c.sender.WalletAddress()),
		zap.Stringer("to", msg.To),
		zap.String("amount", msg.Amount.String()),
		zap.Bool("deploy", msg.StateInit != nil))
	return nil
}

// GetBalance returns the balance of addr; accounts that do not exist yet hold zero.
func (c *Client) GetBalance(ctx context.Context, addr *address.Address) (tlb.Coins, error) {
	block, err := c.api.CurrentMasterchainInfo(ctx)
	if err != nil {
		return tlb.Coins{}, fmt.Errorf("network: get masterchain info: %w", err)
	}
	acc, err := c.api.GetAccount(ctx, block, addr)
	if err != nil {
		return tlb.Coins{}, fmt.Errorf("network: get account %s: %w", addr, err)
	}
	if acc == nil {
		return tlb.Coins{}, fmt.Errorf("%w: no account state for %s", ErrInvalidResponse, addr)
	}
	if !acc.IsActive || acc.State == nil {
		return tlb.ZeroCoins, nil
	}
	return acc.State.Balance, nil
}

// WalletMessage converts a contract message into the wallet's internal message form.
func WalletMessage(msg *distributor.Message) *wallet.Message {
	body := msg.Body
	if body == nil {
		body = cell.BeginCell().EndCell()
	}
	return &wallet.Message{
		Mode: msg.Mode,
		InternalMessage: &tlb.InternalMessage{
			IHRDisabled: true,
			Bounce:      msg.Bounce,
			DstAddr:     msg.To,
			Amount:      msg.Amount,
			StateInit:   msg.StateInit,
			Body:        body,
		},
	}
}
