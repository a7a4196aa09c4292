package main

import (
	"bytes"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/x-xyz/p2pmarket/base/txprogress"
	"github.com/x-xyz/p2pmarket/domain/listing"
	"github.com/x-xyz/p2pmarket/domain/wallet"
)

func TestProgressPrinter(t *testing.T) {
	buf := &bytes.Buffer{}
	tracker := txprogress.New(
		txprogress.WithKind(txprogress.KindPurchase),
		txprogress.WithCloseDelay(time.Hour),
		txprogress.WithObserver(progressPrinter(buf)),
	)
	tracker.Start()
	tracker.Advance("paying")
	tracker.Fail("reverted")
	tracker.Reset()

	assert.Equal(t, "[1/4] Approval\n[2/4] Purchase: paying\n[2/4] Purchase: paying (failed: reverted)\n", buf.String())
}

func TestPrintEvent(t *testing.T) {
	buf := &bytes.Buffer{}
	price, _ := new(big.Int).SetString("2500000000000000000", 10)
	printEvent(buf, wallet.Event{
		Name:        "ListingCreated",
		TxHash:      "0xabc",
		BlockNumber: 12,
		Fields:      map[string]interface{}{"price": price, "listingId": big.NewInt(3)},
	})
	assert.Equal(t, "#12 ListingCreated 0xabc listingId=3 price=2.5\n", buf.String())
}

func TestPrintGroups(t *testing.T) {
	buf := &bytes.Buffer{}
	printGroups(buf, map[string][]*listing.Listing{
		"Books": {{Title: "Dune", Category: listing.CategoryBooks}},
		"Home":  {{Title: "Lamp", Category: listing.CategoryHome}},
	})
	out := buf.String()
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("== Home")), bytes.Index(buf.Bytes(), []byte("== Books")))
	assert.Contains(t, out, "Dune")
	assert.Contains(t, out, "Lamp")
}
