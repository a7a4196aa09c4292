package abi

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

const (
	MarketplaceCreateListing   = "createListing"
	MarketplacePurchaseListing = "purchaseListing"
	MarketplaceGetListing      = "getListing"

	EventListingCreated   = "ListingCreated"
	EventListingPurchased = "ListingPurchased"
)

var MarketplaceABI abi.ABI

func init() {
	_abi, err := abi.JSON(strings.NewReader(marketplaceABIJson))
	if err != nil {
		panic("Failed to parse marketplace abi")
	}
	MarketplaceABI = _abi
}

type ListingCreatedLog struct {
	ListingId *big.Int       // indexed
	Seller    common.Address // indexed
	Price     *big.Int
}

type ListingPurchasedLog struct {
	ListingId *big.Int       // indexed
	Buyer     common.Address // indexed
	Price     *big.Int
}

func ToListingCreatedLog(log *types.Log) (*ListingCreatedLog, error) {
	if len(log.Topics) < 3 {
		return nil, fmt.Errorf("ListingCreated expects 3 topics, got %d", len(log.Topics))
	}
	price, err := unpackPrice(EventListingCreated, log.Data)
	if err != nil {
		return nil, err
	}
	return &ListingCreatedLog{
		ListingId: log.Topics[1].Big(),
		Seller:    common.BytesToAddress(log.Topics[2].Bytes()),
		Price:     price,
	}, nil
}

func ToListingPurchasedLog(log *types.Log) (*ListingPurchasedLog, error) {
	if len(log.Topics) < 3 {
		return nil, fmt.Errorf("ListingPurchased expects 3 topics, got %d", len(log.Topics))
	}
	price, err := unpackPrice(EventListingPurchased, log.Data)
	if err != nil {
		return nil, err
	}
	return &ListingPurchasedLog{
		ListingId: log.Topics[1].Big(),
		Buyer:     common.BytesToAddress(log.Topics[2].Bytes()),
		Price:     price,
	}, nil
}

func unpackPrice(event string, data []byte) (*big.Int, error) {
	vals, err := MarketplaceABI.Unpack(event, data)
	if err != nil {
		return nil, err
	}
	if len(vals) != 1 {
		return nil, fmt.Errorf("%s expects 1 data field, got %d", event, len(vals))
	}
	price, ok := vals[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("%s price is %T", event, vals[0])
	}
	return price, nil
}

var marketplaceABIJson = `
[
  {
    "type": "function",
    "name": "createListing",
    "stateMutability": "nonpayable",
    "inputs": [
      { "internalType": "string", "name": "title", "type": "string" },
      { "internalType": "string", "name": "description", "type": "string" },
      { "internalType": "uint256", "name": "price", "type": "uint256" },
      { "internalType": "string", "name": "category", "type": "string" },
      { "internalType": "string", "name": "image", "type": "string" }
    ],
    "outputs": [
      { "internalType": "uint256", "name": "", "type": "uint256" }
    ]
  },
  {
    "type": "function",
    "name": "purchaseListing",
    "stateMutability": "payable",
    "inputs": [
      { "internalType": "uint256", "name": "listingId", "type": "uint256" }
    ],
    "outputs": []
  },
  {
    "type": "function",
    "name": "getListing",
    "stateMutability": "view",
    "inputs": [
      { "internalType": "uint256", "name": "listingId", "type": "uint256" }
    ],
    "outputs": [
      { "internalType": "uint256", "name": "id", "type": "uint256" },
      { "internalType": "address", "name": "seller", "type": "address" },
      { "internalType": "uint256", "name": "price", "type": "uint256" },
      { "internalType": "bool", "name": "active", "type": "bool" }
    ]
  },
  {
    "type": "event",
    "name": "ListingCreated",
    "anonymous": false,
    "inputs": [
      { "indexed": true, "internalType": "uint256", "name": "listingId", "type": "uint256" },
      { "indexed": true, "internalType": "address", "name": "seller", "type": "address" },
      { "indexed": false, "internalType": "uint256", "name": "price", "type": "uint256" }
    ]
  },
  {
    "type": "event",
    "name": "ListingPurchased",
    "anonymous": false,
    "inputs": [
      { "indexed": true, "internalType": "uint256", "name": "listingId", "type": "uint256" },
      { "indexed": true, "internalType": "address", "name": "buyer", "type": "address" },
      { "indexed": false, "internalType": "uint256", "name": "price", "type": "uint256" }
    ]
  }
]
`
