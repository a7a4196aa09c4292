package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"cloud.google.com/go/storage"
	"github.com/ethereum/go-ethereum/common"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"

	"github.com/x-xyz/p2pmarket/base/ctx"
	"github.com/x-xyz/p2pmarket/base/database/mongoclient"
	"github.com/x-xyz/p2pmarket/base/database/redisclient"
	"github.com/x-xyz/p2pmarket/base/log"
	"github.com/x-xyz/p2pmarket/base/metrics"
	bValidator "github.com/x-xyz/p2pmarket/base/validator"
	"github.com/x-xyz/p2pmarket/domain"
	"github.com/x-xyz/p2pmarket/domain/file"
	"github.com/x-xyz/p2pmarket/domain/keys"
	"github.com/x-xyz/p2pmarket/domain/order"
	mmiddleware "github.com/x-xyz/p2pmarket/middleware"
	"github.com/x-xyz/p2pmarket/service/cache"
	primitiveCache "github.com/x-xyz/p2pmarket/service/cache/provider/primitive"
	redisProvider "github.com/x-xyz/p2pmarket/service/cache/provider/redis"
	"github.com/x-xyz/p2pmarket/service/chain"
	"github.com/x-xyz/p2pmarket/service/cloudstorage"
	"github.com/x-xyz/p2pmarket/service/discord"
	"github.com/x-xyz/p2pmarket/service/ens"
	"github.com/x-xyz/p2pmarket/service/ipfsnode"
	"github.com/x-xyz/p2pmarket/service/pinata"
	"github.com/x-xyz/p2pmarket/service/query"
	"github.com/x-xyz/p2pmarket/service/redis"
	auth_delivery "github.com/x-xyz/p2pmarket/stores/auth/delivery/http"
	auth_middleware "github.com/x-xyz/p2pmarket/stores/auth/delivery/http/middleware"
	auth_usecase "github.com/x-xyz/p2pmarket/stores/auth/usecase"
	file_delivery "github.com/x-xyz/p2pmarket/stores/file/delivery/http"
	file_usecase "github.com/x-xyz/p2pmarket/stores/file/usecase"
	hc_delivery "github.com/x-xyz/p2pmarket/stores/healthcheck/delivery/http"
	hc_repo "github.com/x-xyz/p2pmarket/stores/healthcheck/repository"
	hc_usecase "github.com/x-xyz/p2pmarket/stores/healthcheck/usecase"
	listing_delivery "github.com/x-xyz/p2pmarket/stores/listing/delivery/http"
	listing_repository "github.com/x-xyz/p2pmarket/stores/listing/repository"
	listing_usecase "github.com/x-xyz/p2pmarket/stores/listing/usecase"
	order_delivery "github.com/x-xyz/p2pmarket/stores/order/delivery/http"
	order_repository "github.com/x-xyz/p2pmarket/stores/order/repository"
	order_usecase "github.com/x-xyz/p2pmarket/stores/order/usecase"
	user_delivery "github.com/x-xyz/p2pmarket/stores/user/delivery/http"
	user_repository "github.com/x-xyz/p2pmarket/stores/user/repository"
	user_usecase "github.com/x-xyz/p2pmarket/stores/user/usecase"

	_ "github.com/x-xyz/p2pmarket/app/api/docs"
)

const shutdownTimeout = 10 * time.Second

func init() {
	configFile := pflag.String("config", "infra/configs/config.yaml", "config file path")
	pflag.Parse()

	viper.SetConfigType("yaml")
	viper.SetConfigFile(*configFile)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil {
		panic(err)
	}

	if lvl := viper.GetString("log.level"); lvl != "" {
		if err := log.SetLevel(lvl); err != nil {
			log.Log().WithField("err", err).Warn("invalid log.level")
		}
	}
	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

//	@title			P2P Marketplace API
//	@version		1.0
//	@description	Listings, users and orders of the peer to peer marketplace.

// main
//
//	@securityDefinitions.apikey	ApiKeyAuth
//	@in							header
//	@name						Authorization
//	@description				retrieve a token from /auth/login and apply it as `Bearer {token}`
func main() {
	defer log.Sync()

	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Use(middleware.Secure())
	e.Use(middleware.BodyLimit(bodyLimit()))
	if perSecond := viper.GetFloat64("rateLimit.perSecond"); perSecond > 0 {
		e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(perSecond))))
	}
	e.Validator = bValidator.NewCustomValidator(bValidator.New())

	context := ctx.Background()

	// init mongo client
	context.Info("init mongo")
	poolMultiplier := viper.GetFloat64("mongo.poolMultiplier")
	if poolMultiplier <= 0 {
		poolMultiplier = 2
	}
	mongoClient := mongoclient.MustConnect(mongoclient.Config{
		URI:            viper.GetString("mongo.uri"),
		AuthDBName:     viper.GetString("mongo.authDBName"),
		DbName:         viper.GetString("mongo.dbName"),
		EnableSSL:      viper.GetBool("mongo.enableSSL"),
		Majority:       true,
		PoolMultiplier: poolMultiplier,
	})
	checkIndex := viper.GetBool("mongo.checkIndex")
	q := query.New(mongoClient, checkIndex)

	ensureIndexes(context, q)

	// init Redis service
	context.Info("init redis cache")
	redisCacheName := viper.GetString("redis_cache.name")
	redisCacheURI := viper.GetString("redis_cache.uri")
	redisCachePwd := viper.GetString("redis_cache.password")
	redisCachePoolMultiplier := viper.GetFloat64("redis_cache.poolMultiplier")
	redisCachePool := redisclient.MustConnectRedis(redisCacheURI, redisCachePwd, redisclient.RedisParam{
		PoolMultiplier: redisCachePoolMultiplier,
		Retry:          true,
	})
	redisCache := redis.New(redisCacheName, metrics.New(redisCacheName), redisCachePool)

	httpCache := mmiddleware.NewHttpCache(redisCache)

	// construct repository, usecase and delivery
	hcRepo := hc_repo.New(mongoClient, redisCache)
	userRepo := user_repository.New(q)
	listingRepo := listing_repository.New(q)
	orderRepo := order_repository.NewOrderRepo(q)

	auth := auth_usecase.New(viper.GetString("auth.jwtSecret"), viper.GetDuration("auth.jwtExpiresIn"))

	user := user_usecase.New(&user_usecase.UserUseCaseCfg{
		UserRepo: userRepo,
		Auth:     auth,
		Ens:      newEns(context, redisCache),
		ProfileCache: cache.NewLayered(
			cache.New(cache.ServiceConfig{
				TTL:    10 * time.Second,
				Prefix: keys.PfxUserProfile,
				Cache:  primitiveCache.NewPrimitive("userProfile", 32),
			}),
			cache.New(cache.ServiceConfig{
				TTL:    5 * time.Minute,
				Prefix: keys.PfxUserProfile,
				Cache:  redisProvider.NewRedis(redisCache),
			}),
		),
		AdminIds: adminIds(context),
	})

	listing := listing_usecase.New(&listing_usecase.ListingUseCaseCfg{
		ListingRepo: listingRepo,
		UserRepo:    userRepo,
		UserUC:      user,
		Transactor:  q,
		PageSize:    viper.GetInt("listing.pageSize"),
	})

	orderUC := order_usecase.New(&order_usecase.OrderUseCaseCfg{
		OrderRepo:   orderRepo,
		ListingRepo: listingRepo,
		UserRepo:    userRepo,
		UserUC:      user,
		Transactor:  q,
		Verifier:    newVerifier(context),
		Notifier:    newNotifier(context),
	})

	fileUC := file_usecase.New(newStorage(context), viper.GetInt("file.maxSize"))

	hc := hc_usecase.New(hcRepo)

	authMiddleware := auth_middleware.New(auth, user)

	hc_delivery.New(e, hc)
	auth_delivery.New(e, user, authMiddleware)
	user_delivery.New(e, user)
	listing_delivery.New(e, listing, authMiddleware, httpCache, viper.GetDuration("listing.cacheTTL"))
	order_delivery.New(e, orderUC, authMiddleware)
	file_delivery.New(e, fileUC, authMiddleware)

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	ctx, cancel := ctx.WithTimeout(context, shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}

func bodyLimit() string {
	// multipart uploads carry up to file.MaxUploads images
	maxSize := viper.GetInt("file.maxSize")
	if maxSize <= 0 {
		maxSize = file.DefaultMaxSize
	}
	return fmt.Sprintf("%dM", maxSize*file.MaxUploads/(1<<20)+1)
}

func ensureIndexes(c ctx.Ctx, q query.Mongo) {
	for table, indexes := range map[domain.Table][]mongo.IndexModel{
		domain.TableUsers:    user_repository.Indexes,
		domain.TableListings: listing_repository.Indexes,
		domain.TableOrders:   order_repository.Indexes,
	} {
		if err := q.EnsureIndexes(c, table, indexes); err != nil {
			c.WithFields(log.Fields{
				"table": table,
				"err":   err,
			}).Panic("EnsureIndexes failed")
		}
	}
}

func adminIds(c ctx.Ctx) []primitive.ObjectID {
	res := []primitive.ObjectID{}
	for _, hex := range viper.GetStringSlice("admin.userIds") {
		id, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			c.WithField("id", hex).Panic("invalid admin.userIds entry")
		}
		res = append(res, id)
	}
	return res
}

func newEns(c ctx.Ctx, redisCache redis.Service) ens.ENS {
	rpcUrl := viper.GetString("ens.rpcUrl")
	if rpcUrl == "" {
		c.Info("ens.rpcUrl not set, profiles carry no ens name")
		return nil
	}
	ensService, err := ens.New(rpcUrl, redisCache)
	if err != nil {
		c.WithField("err", err).Warn("ens.New failed, profiles carry no ens name")
		return nil
	}
	return ensService
}

func newVerifier(c ctx.Ctx) order.PaymentVerifier {
	rpcUrl := viper.GetString("chain.rpcUrl")
	if rpcUrl == "" {
		c.Info("chain.rpcUrl not set, payments stay processing")
		return chain.NewUnconfiguredVerifier()
	}
	marketplace := viper.GetString("chain.marketplace")
	if !common.IsHexAddress(marketplace) {
		c.WithField("marketplace", marketplace).Warn("chain.marketplace not set, payments stay processing")
		return chain.NewUnconfiguredVerifier()
	}
	client, err := chain.Dial(c, rpcUrl)
	if err != nil {
		c.WithField("err", err).Warn("chain.Dial failed, payments stay processing")
		return chain.NewUnconfiguredVerifier()
	}
	return chain.NewPaymentVerifier(client, common.HexToAddress(marketplace))
}

func newNotifier(c ctx.Ctx) order.DisputeNotifier {
	botKey := viper.GetString("discord.botKey")
	if botKey == "" {
		return discord.NewNoop()
	}
	notifier, err := discord.New(botKey, viper.GetString("discord.channelId"))
	if err != nil {
		c.WithField("err", err).Warn("discord.New failed, disputes are only logged")
		return discord.NewNoop()
	}
	return notifier
}

func newStorage(c ctx.Ctx) file.Storage {
	switch backend := viper.GetString("file.backend"); backend {
	case "ipfs":
		return ipfsnode.New(viper.GetString("ipfs.nodeUrl"), viper.GetDuration("ipfs.timeout"))
	case "gcs":
		opts := []option.ClientOption{}
		if credentials := viper.GetString("gcs.credentialsFile"); credentials != "" {
			opts = append(opts, option.WithCredentialsFile(credentials))
		}
		client, err := storage.NewClient(c, opts...)
		if err != nil {
			c.WithField("err", err).Panic("storage.NewClient failed")
		}
		s, err := cloudstorage.New(&cloudstorage.Cfg{
			Timeout:    viper.GetDuration("gcs.timeout"),
			Client:     client,
			BucketName: viper.GetString("gcs.bucket"),
			Url:        viper.GetString("gcs.url"),
		})
		if err != nil {
			c.WithField("err", err).Panic("cloudstorage.New failed")
		}
		return s
	case "", "pinata":
		return pinata.New(viper.GetString("pinata.apiKey"), viper.GetString("pinata.apiSecret"), viper.GetString("pinata.endpoint"))
	default:
		c.WithField("backend", backend).Panic("unknown file.backend")
		return nil
	}
}
