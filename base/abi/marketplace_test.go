package abi

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/require"
)

func TestListingCreatedLogParsing(t *testing.T) {
	req := require.New(t)
	event := MarketplaceABI.Events[EventListingCreated]

	data, err := event.Inputs.NonIndexed().Pack(big.NewInt(1500))
	req.NoError(err)

	seller := common.HexToAddress("0x5324a98b506F3265c500f978F3943A1fC6A55fa4")
	log := &types.Log{
		Topics: []common.Hash{
			event.ID,
			common.BigToHash(big.NewInt(42)),
			common.BytesToHash(seller.Bytes()),
		},
		Data: data,
	}

	l, err := ToListingCreatedLog(log)
	req.NoError(err)
	req.Equal(&ListingCreatedLog{
		ListingId: big.NewInt(42),
		Seller:    seller,
		Price:     big.NewInt(1500),
	}, l)
}

func TestListingPurchasedLogParsing(t *testing.T) {
	req := require.New(t)
	event := MarketplaceABI.Events[EventListingPurchased]

	data, err := event.Inputs.NonIndexed().Pack(big.NewInt(7))
	req.NoError(err)

	buyer := common.HexToAddress("0x9438c455b9fC72A71Ad3225e8625Ec66Eb74CfAD")
	l, err := ToListingPurchasedLog(&types.Log{
		Topics: []common.Hash{event.ID, common.BigToHash(big.NewInt(3)), common.BytesToHash(buyer.Bytes())},
		Data:   data,
	})
	req.NoError(err)
	req.Equal(big.NewInt(3), l.ListingId)
	req.Equal(buyer, l.Buyer)
	req.Equal(big.NewInt(7), l.Price)

	_, err = ToListingPurchasedLog(&types.Log{Topics: []common.Hash{event.ID}})
	req.Error(err)
}

func TestMarketplaceMethods(t *testing.T) {
	req := require.New(t)
	for _, name := range []string{MarketplaceCreateListing, MarketplacePurchaseListing, MarketplaceGetListing} {
		_, ok := MarketplaceABI.Methods[name]
		req.True(ok, name)
	}
	req.True(MarketplaceABI.Methods[MarketplacePurchaseListing].IsPayable())

	packed, err := ERC20ABI.Pack(ERC20Approve, common.HexToAddress("0x01"), big.NewInt(10))
	req.NoError(err)
	req.Len(packed, 4+32+32)
}
