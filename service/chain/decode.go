package chain

import (
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/x-xyz/p2pmarket/domain"
	"github.com/x-xyz/p2pmarket/domain/wallet"
)

// decodeLog turns a contract log into an event, indexed arguments are read from the topics
func decodeLog(contractAbi abi.ABI, l *types.Log) (wallet.Event, error) {
	if len(l.Topics) == 0 {
		return wallet.Event{}, ErrUnknownEvent
	}
	ev, err := contractAbi.EventByID(l.Topics[0])
	if err != nil {
		return wallet.Event{}, ErrUnknownEvent
	}

	fields := map[string]interface{}{}
	if len(l.Data) > 0 {
		if err := contractAbi.UnpackIntoMap(fields, ev.Name, l.Data); err != nil {
			return wallet.Event{}, err
		}
	}

	var indexed abi.Arguments
	for _, arg := range ev.Inputs {
		if arg.Indexed {
			indexed = append(indexed, arg)
		}
	}
	if err := abi.ParseTopicsIntoMap(fields, indexed, l.Topics[1:]); err != nil {
		return wallet.Event{}, err
	}

	return wallet.Event{
		Name:        ev.Name,
		TxHash:      domain.TxHash(l.TxHash.Hex()),
		BlockNumber: l.BlockNumber,
		Fields:      fields,
	}, nil
}

// toReceipt decodes the logs emitted by contract, other logs of the transaction are skipped
func toReceipt(contractAbi abi.ABI, contract common.Address, r *types.Receipt) *wallet.Receipt {
	res := &wallet.Receipt{
		TxHash: domain.TxHash(r.TxHash.Hex()),
		Status: wallet.ReceiptFailed,
		Events: []wallet.Event{},
	}
	if r.BlockNumber != nil {
		res.BlockNumber = r.BlockNumber.Uint64()
	}
	if r.Status == types.ReceiptStatusSuccessful {
		res.Status = wallet.ReceiptSucceeded
	}
	for _, l := range r.Logs {
		if l.Address != contract {
			continue
		}
		ev, err := decodeLog(contractAbi, l)
		if err != nil {
			continue
		}
		res.Events = append(res.Events, ev)
	}
	return res
}
