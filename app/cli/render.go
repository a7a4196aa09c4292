package main

import (
	"fmt"
	"io"
	"math/big"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/x-xyz/p2pmarket/base/ethereum"
	"github.com/x-xyz/p2pmarket/base/txprogress"
	"github.com/x-xyz/p2pmarket/domain/listing"
	"github.com/x-xyz/p2pmarket/domain/wallet"
	"github.com/x-xyz/p2pmarket/service/listingview"
)

func printListings(w io.Writer, ls []*listing.Listing) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tPRICE\tCATEGORY\tCONDITION\tSTATUS\tVIEWS\tLIKES")
	for _, l := range ls {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%d\t%d\n",
			l.Id.Hex(), l.Title, l.Price, l.Category, l.Condition, l.Status, l.Views, len(l.Likes))
	}
	tw.Flush()
}

func printGroups(w io.Writer, groups map[string][]*listing.Listing) {
	for _, name := range listingview.GroupNames(groups) {
		fmt.Fprintf(w, "\n== %s (%d)\n", name, len(groups[name]))
		printListings(w, groups[name])
	}
}

func printListing(w io.Writer, l *listing.Listing) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	row := func(k string, v interface{}) {
		fmt.Fprintf(tw, "%s\t%v\n", k, v)
	}
	row("id", l.Id.Hex())
	row("title", l.Title)
	row("price", l.Price)
	row("category", l.Category)
	row("condition", l.Condition)
	row("status", l.Status)
	row("location", l.Location)
	row("tags", strings.Join(l.Tags, ", "))
	row("images", strings.Join(l.Images, " "))
	row("views", l.Views)
	row("likes", len(l.Likes))
	if l.OnChainId != "" {
		row("onChainId", l.OnChainId)
		row("contract", l.ContractAddress.Short())
	}
	row("created", l.CreatedAt.Local().Format("2006-01-02 15:04"))
	tw.Flush()
	fmt.Fprintf(w, "\n%s\n", l.Description)
}

// progressPrinter renders every tracker transition as one line
func progressPrinter(w io.Writer) func(txprogress.State) {
	return func(s txprogress.State) {
		if !s.IsOpen {
			return
		}
		label := "done"
		if step, ok := s.Label(); ok {
			label = step.Title
		}
		line := fmt.Sprintf("[%d/%d] %s", s.CurrentStep+1, len(s.Steps), label)
		if s.Message != "" {
			line += ": " + s.Message
		}
		if s.Error != "" {
			line += " (failed: " + s.Error + ")"
		}
		fmt.Fprintln(w, line)
	}
}

func printEvent(w io.Writer, ev wallet.Event) {
	keys := make([]string, 0, len(ev.Fields))
	for k := range ev.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := []string{}
	for _, k := range keys {
		v := ev.Fields[k]
		if n, ok := v.(*big.Int); ok && k == "price" {
			v = ethereum.FromWei(n)
		}
		parts = append(parts, fmt.Sprintf("%s=%v", k, v))
	}
	fmt.Fprintf(w, "#%d %s %s %s\n", ev.BlockNumber, ev.Name, ev.TxHash, strings.Join(parts, " "))
}
