package chain

import (
	"crypto/ecdsa"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"golang.org/x/xerrors"

	"github.com/x-xyz/p2pmarket/base/backoff"
	bCtx "github.com/x-xyz/p2pmarket/base/ctx"
	"github.com/x-xyz/p2pmarket/base/log"
	"github.com/x-xyz/p2pmarket/domain"
	"github.com/x-xyz/p2pmarket/domain/wallet"
)

const defaultReceiptTimeout = 2 * time.Minute

type ProviderCfg struct {
	Backend  Backend
	ChainId  *big.Int
	Contract domain.Address
	ABI      abi.ABI
	// PrivateKey signs transactions, a provider without one can only Call and Subscribe
	PrivateKey     *ecdsa.PrivateKey
	ReceiptTimeout time.Duration
}

type provider struct {
	backend        Backend
	chainId        *big.Int
	address        common.Address
	abi            abi.ABI
	contract       *bind.BoundContract
	key            *ecdsa.PrivateKey
	receiptTimeout time.Duration

	mu         sync.RWMutex
	transactor *bind.TransactOpts
}

// NewProvider binds a wallet.Provider to one contract
func NewProvider(cfg ProviderCfg) (wallet.Provider, error) {
	if !common.IsHexAddress(string(cfg.Contract)) {
		return nil, domain.ErrInvalidAddress
	}
	timeout := cfg.ReceiptTimeout
	if timeout <= 0 {
		timeout = defaultReceiptTimeout
	}
	address := common.HexToAddress(string(cfg.Contract))
	return &provider{
		backend:        cfg.Backend,
		chainId:        cfg.ChainId,
		address:        address,
		abi:            cfg.ABI,
		contract:       bind.NewBoundContract(address, cfg.ABI, cfg.Backend, cfg.Backend, cfg.Backend),
		key:            cfg.PrivateKey,
		receiptTimeout: timeout,
	}, nil
}

func upstream(op string, err error) error {
	return xerrors.Errorf("%s: %v: %w", op, err, domain.ErrUpstream)
}

func (p *provider) Connect(c bCtx.Ctx) (domain.Address, error) {
	if p.key == nil {
		return "", wallet.ErrNotConnected
	}

	chainId, err := p.backend.ChainID(c)
	if err != nil {
		c.WithField("err", err).Error("backend.ChainID failed")
		return "", upstream("chain id", err)
	}
	if p.chainId != nil && p.chainId.Cmp(chainId) != 0 {
		c.WithFields(log.Fields{
			"expected": p.chainId,
			"actual":   chainId,
		}).Error("chain id mismatch")
		return "", ErrChainIdMismatch
	}

	opts, err := bind.NewKeyedTransactorWithChainID(p.key, chainId)
	if err != nil {
		c.WithField("err", err).Error("bind.NewKeyedTransactorWithChainID failed")
		return "", err
	}

	p.mu.Lock()
	p.transactor = opts
	p.mu.Unlock()

	return domain.Address(opts.From.Hex()), nil
}

func (p *provider) Address() domain.Address {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.transactor == nil {
		return ""
	}
	return domain.Address(p.transactor.From.Hex())
}

func (p *provider) Call(c bCtx.Ctx, method string, args ...interface{}) ([]interface{}, error) {
	data, err := p.abi.Pack(method, args...)
	if err != nil {
		c.WithFields(log.Fields{
			"method": method,
			"params": args,
			"err":    err,
		}).Error("abi.Pack failed")
		return nil, err
	}

	msg := ethereum.CallMsg{
		To:   &p.address,
		Data: data,
	}
	if from := p.Address(); from != "" {
		msg.From = common.HexToAddress(string(from))
	}
	res, err := p.backend.CallContract(c, msg, nil)
	if err != nil {
		c.WithFields(log.Fields{
			"method": method,
			"err":    err,
		}).Error("backend.CallContract failed")
		return nil, upstream("call "+method, err)
	}
	unpacked, err := p.abi.Unpack(method, res)
	if err != nil {
		c.WithField("err", err).Error("abi.Unpack failed")
		return nil, err
	}
	return unpacked, nil
}

func (p *provider) Send(c bCtx.Ctx, method string, value *big.Int, args ...interface{}) (*wallet.Receipt, error) {
	p.mu.RLock()
	transactor := p.transactor
	p.mu.RUnlock()
	if transactor == nil {
		return nil, wallet.ErrNotConnected
	}

	opts := *transactor
	opts.Context = c
	opts.Value = value

	tx, err := p.contract.Transact(&opts, method, args...)
	if err != nil {
		c.WithFields(log.Fields{
			"method": method,
			"err":    err,
		}).Error("contract.Transact failed")
		return nil, upstream("send "+method, err)
	}

	c = bCtx.WithFields(c, log.Fields{"method": method, "txHash": tx.Hash().Hex()})
	c.Info("transaction sent")

	r, err := p.waitReceipt(c, tx.Hash())
	if err != nil {
		return nil, err
	}

	receipt := toReceipt(p.abi, p.address, r)
	if !receipt.Succeeded() {
		c.Warn("transaction reverted")
		return receipt, wallet.ErrTransactionFailed
	}
	return receipt, nil
}

// waitReceipt polls until the transaction is mined or receiptTimeout passes
func (p *provider) waitReceipt(c bCtx.Ctx, hash common.Hash) (*types.Receipt, error) {
	ctx, cancel := bCtx.WithTimeout(c, p.receiptTimeout)
	defer cancel()

	var receipt *types.Receipt
	b := backoff.NewExponential(500*time.Millisecond, 5*time.Second)
	err := b.Retry(ctx, func() error {
		r, err := p.backend.TransactionReceipt(ctx, hash)
		if err == ethereum.NotFound {
			return backoff.ErrRetryLater
		} else if err != nil {
			c.WithField("err", err).Error("backend.TransactionReceipt failed")
			return err
		}
		receipt = r
		return nil
	})
	if err != nil {
		c.WithFields(log.Fields{
			"err":      err,
			"attempts": b.Attempts(),
		}).Error("waitReceipt failed")
		return nil, upstream("receipt", err)
	}
	return receipt, nil
}
