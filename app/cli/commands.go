package main

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	baseabi "github.com/x-xyz/p2pmarket/base/abi"
	"github.com/x-xyz/p2pmarket/base/ctx"
	"github.com/x-xyz/p2pmarket/base/ethereum"
	"github.com/x-xyz/p2pmarket/base/txprogress"
	"github.com/x-xyz/p2pmarket/domain"
	"github.com/x-xyz/p2pmarket/domain/file"
	"github.com/x-xyz/p2pmarket/domain/listing"
	"github.com/x-xyz/p2pmarket/domain/order"
	"github.com/x-xyz/p2pmarket/domain/user"
	"github.com/x-xyz/p2pmarket/domain/wallet"
	"github.com/x-xyz/p2pmarket/service/chain"
	"github.com/x-xyz/p2pmarket/service/listingview"
	"github.com/x-xyz/p2pmarket/service/marketclient"
)

var errNoToken = errors.New("api token missing, run login and put the token in API_TOKEN")

func newAPI(requireToken bool) (marketclient.API, error) {
	token := viper.GetString("api.token")
	if requireToken && token == "" {
		return nil, errNoToken
	}
	return marketclient.New(viper.GetString("api.url"), token, viper.GetDuration("api.timeout")), nil
}

type viewFlags struct {
	sort   *string
	min    *string
	max    *string
	filter *string
	group  *bool
}

func addViewFlags(fs *pflag.FlagSet) *viewFlags {
	return &viewFlags{
		sort:   fs.String("sort", "", "price-asc, price-desc, views-desc, likes-desc, date-asc or date-desc"),
		min:    fs.String("min", "", "minimum price"),
		max:    fs.String("max", "", "maximum price"),
		filter: fs.String("filter", "", "only keep listings whose title, description or tags contain text"),
		group:  fs.Bool("group", false, "group by category"),
	}
}

func (v *viewFlags) render(ls []*listing.Listing) error {
	r, err := listing.NewPriceRange(*v.min, *v.max)
	if err != nil {
		return err
	}
	res := listingview.Apply(ls, listingview.Query{Sort: *v.sort, Price: r, Search: *v.filter})
	if *v.group {
		printGroups(os.Stdout, listingview.GroupByCategory(res))
		return nil
	}
	printListings(os.Stdout, res)
	return nil
}

func runList(c ctx.Ctx, args []string) error {
	fs := pflag.NewFlagSet("list", pflag.ExitOnError)
	keyword := fs.String("keyword", "", "substring of title or description")
	page := fs.Int("page", 1, "page, starts at 1")
	pageSize := fs.Int("page-size", 0, "page size, server default when 0")
	view := addViewFlags(fs)
	_ = fs.Parse(args)

	api, err := newAPI(false)
	if err != nil {
		return err
	}
	res, err := api.ListListings(c, listing.ListParams{Keyword: *keyword, Page: *page, PageSize: *pageSize})
	if err != nil {
		return err
	}
	fmt.Printf("page %d of %d, %d listings\n", res.Page, res.TotalPages, res.Total)
	return view.render(res.Items)
}

func runSearch(c ctx.Ctx, args []string) error {
	fs := pflag.NewFlagSet("search", pflag.ExitOnError)
	category := fs.String("category", "", "category")
	condition := fs.String("condition", "", "condition")
	view := addViewFlags(fs)
	_ = fs.Parse(args)

	api, err := newAPI(false)
	if err != nil {
		return err
	}
	res, err := api.SearchListings(c, listing.SearchParams{
		Q:         fs.Arg(0),
		Category:  *category,
		Condition: *condition,
		MinPrice:  *view.min,
		MaxPrice:  *view.max,
		Sort:      *view.sort,
	})
	if err != nil {
		return err
	}
	return view.render(res)
}

func runShow(c ctx.Ctx, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: " + commands["show"].usage)
	}
	api, err := newAPI(false)
	if err != nil {
		return err
	}
	l, err := api.GetListing(c, args[0])
	if err != nil {
		return err
	}
	printListing(os.Stdout, l)
	return nil
}

func runLogin(c ctx.Ctx, args []string) error {
	fs := pflag.NewFlagSet("login", pflag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	_ = fs.Parse(args)

	api, err := newAPI(false)
	if err != nil {
		return err
	}
	res, err := api.Login(c, user.LoginPayload{Email: *email, Password: *password})
	if err != nil {
		return err
	}
	fmt.Printf("logged in as %s\nAPI_TOKEN=%s\n", res.User.Username, res.Token)
	return nil
}

func runCreate(c ctx.Ctx, args []string) error {
	fs := pflag.NewFlagSet("create", pflag.ExitOnError)
	title := fs.String("title", "", "title")
	description := fs.String("description", "", "description")
	price := fs.String("price", "", "price in payment token units, e.g. 1.5")
	category := fs.String("category", string(listing.CategoryOther), "category")
	condition := fs.String("condition", string(listing.ConditionGood), "condition")
	location := fs.String("location", "", "location")
	tags := fs.StringSlice("tag", nil, "tag, may be repeated")
	images := fs.StringSlice("image", nil, "image file, may be repeated")
	_ = fs.Parse(args)

	uploads := make([]file.Upload, 0, len(*images))
	for _, path := range *images {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		uploads = append(uploads, file.Upload{Name: filepath.Base(path), Data: data})
	}

	api, err := newAPI(true)
	if err != nil {
		return err
	}
	flows, closeFn, err := newFlows(c, api)
	if err != nil {
		return err
	}
	defer closeFn()

	tracker := txprogress.New(txprogress.WithKind(txprogress.KindListing), txprogress.WithObserver(progressPrinter(os.Stdout)))
	l, err := flows.CreateListing(c, tracker, marketclient.ListingDraft{
		Payload: listing.CreatePayload{
			Title:       *title,
			Description: *description,
			Price:       *price,
			Category:    listing.Category(*category),
			Condition:   listing.Condition(*condition),
			Location:    *location,
			Tags:        *tags,
		},
		Images: uploads,
	})
	if err != nil {
		return err
	}
	printListing(os.Stdout, l)
	return nil
}

func runBuy(c ctx.Ctx, args []string) error {
	fs := pflag.NewFlagSet("buy", pflag.ExitOnError)
	address := fs.String("address", "", "shipping street address")
	city := fs.String("city", "", "shipping city")
	postalCode := fs.String("postal-code", "", "shipping postal code")
	country := fs.String("country", "", "shipping country")
	_ = fs.Parse(args)
	if fs.NArg() != 1 {
		return errors.New("usage: " + commands["buy"].usage)
	}

	api, err := newAPI(true)
	if err != nil {
		return err
	}
	flows, closeFn, err := newFlows(c, api)
	if err != nil {
		return err
	}
	defer closeFn()

	tracker := txprogress.New(txprogress.WithKind(txprogress.KindPurchase), txprogress.WithObserver(progressPrinter(os.Stdout)))
	o, err := flows.Purchase(c, tracker, fs.Arg(0), order.ShippingAddress{
		Address:    *address,
		City:       *city,
		PostalCode: *postalCode,
		Country:    *country,
	})
	if err != nil {
		return err
	}
	fmt.Printf("order %s placed, payment %s\n", o.Id.Hex(), o.PaymentStatus)
	return nil
}

func runWatch(c ctx.Ctx, args []string) error {
	client, err := chain.Dial(c, viper.GetString("chain.rpcUrl"))
	if err != nil {
		return err
	}
	defer client.Close()

	market, err := newProvider(client, viper.GetString("chain.marketplace"), baseabi.MarketplaceABI, nil)
	if err != nil {
		return err
	}

	var mu sync.Mutex
	handler := func(ev wallet.Event) {
		mu.Lock()
		defer mu.Unlock()
		printEvent(os.Stdout, ev)
	}

	errc := make(chan error, 2)
	for _, name := range []string{baseabi.EventListingCreated, baseabi.EventListingPurchased} {
		sub, err := market.Subscribe(c, name, handler)
		if err != nil {
			return err
		}
		defer sub.Unsubscribe()
		go func(sub wallet.Subscription) {
			if err, ok := <-sub.Err(); ok && err != nil {
				errc <- err
			}
		}(sub)
	}
	fmt.Println("watching marketplace events, ctrl-c to stop")

	select {
	case <-c.Done():
		return nil
	case err := <-errc:
		return err
	}
}

func newFlows(c ctx.Ctx, api marketclient.API) (*marketclient.Flows, func(), error) {
	key, addr, err := ethereum.LoadKey(viper.GetString("wallet.privateKey"))
	if err != nil {
		return nil, nil, fmt.Errorf("PRIVATE_KEY: %w", err)
	}
	client, err := chain.Dial(c, viper.GetString("chain.rpcUrl"))
	if err != nil {
		return nil, nil, err
	}

	marketAddr := viper.GetString("chain.marketplace")
	market, err := newProvider(client, marketAddr, baseabi.MarketplaceABI, key)
	if err != nil {
		client.Close()
		return nil, nil, err
	}
	token, err := newProvider(client, viper.GetString("chain.token"), baseabi.ERC20ABI, key)
	if err != nil {
		client.Close()
		return nil, nil, err
	}
	if _, err := market.Connect(c); err != nil {
		client.Close()
		return nil, nil, err
	}
	c.WithField("wallet", addr).Info("wallet connected")

	return marketclient.NewFlows(marketclient.FlowsCfg{
		API:                api,
		Marketplace:        market,
		Token:              token,
		MarketplaceAddress: domain.Address(marketAddr),
	}), client.Close, nil
}

func newProvider(client *ethclient.Client, address string, contractAbi abi.ABI, key *ecdsa.PrivateKey) (wallet.Provider, error) {
	return chain.NewProvider(chain.ProviderCfg{
		Backend:        client,
		ChainId:        big.NewInt(viper.GetInt64("chain.chainId")),
		Contract:       domain.Address(address),
		ABI:            contractAbi,
		PrivateKey:     key,
		ReceiptTimeout: viper.GetDuration("chain.receiptTimeout"),
	})
}
