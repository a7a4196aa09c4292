package mongoclient

import (
	"context"
	"crypto/tls"
	"runtime"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"

	"github.com/x-xyz/p2pmarket/base/log"
)

const (
	socketTimeout  = 60 * time.Second
	connectTimeout = 10 * time.Second
	minPoolSize    = 4
)

// Config mirrors the mongo section of the service config
type Config struct {
	URI        string
	AuthDBName string
	DbName     string
	EnableSSL  bool
	// Majority makes writes wait for a majority of the replica set
	Majority       bool
	PoolMultiplier float64
}

// Client wraps mongo.Client bound to one database
type Client struct {
	DbName string
	*mongo.Client
}

// MustConnect panics when Connect fails.
// Listing and order writes run in transactions, so the uri must point at a replica set.
func MustConnect(cfg Config) *Client {
	cli, err := Connect(cfg)
	if err != nil {
		log.Log().WithFields(log.Fields{"mongoURI": cfg.URI, "err": err}).Panic("fail to dial Mongo")
	}
	return cli
}

func Connect(cfg Config) (*Client, error) {
	logger := log.Log().WithField("dbName", cfg.DbName)

	connSetting, err := connstring.Parse(cfg.URI)
	if err != nil {
		logger.WithField("err", err).Error("fail to parse connstring")
		return nil, err
	}
	logger = logger.WithField("mongoHosts", connSetting.Hosts)

	clientOpts := options.Client().
		ApplyURI(cfg.URI).
		SetSocketTimeout(socketTimeout).
		SetRetryWrites(true)

	// the uri wins when it names its own auth source
	if connSetting.Username != "" && connSetting.AuthSource == "" {
		clientOpts.SetAuth(options.Credential{
			AuthMechanism:           connSetting.AuthMechanism,
			AuthMechanismProperties: connSetting.AuthMechanismProperties,
			Username:                connSetting.Username,
			Password:                connSetting.Password,
			PasswordSet:             connSetting.PasswordSet,
			AuthSource:              cfg.AuthDBName,
		})
	}

	poolSize := PoolSize(cfg.PoolMultiplier, len(connSetting.Hosts))
	clientOpts.SetMinPoolSize(uint64(poolSize / 4))
	clientOpts.SetMaxPoolSize(uint64(poolSize))

	if cfg.EnableSSL {
		clientOpts.SetTLSConfig(&tls.Config{})
	}
	if cfg.Majority {
		clientOpts.SetWriteConcern(writeconcern.New(writeconcern.WMajority()))
	}

	c, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(c, clientOpts)
	if err != nil {
		logger.WithField("err", err).Error("fail to connect mongo")
		return nil, err
	}
	if err := client.Ping(c, readpref.Primary()); err != nil {
		logger.WithField("err", err).Error("fail to ping mongo primary")
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	logger.WithFields(log.Fields{
		"replicaSet": connSetting.ReplicaSet,
		"poolSize":   poolSize,
	}).Info("mongo connected")
	return &Client{
		Client: client,
		DbName: cfg.DbName,
	}, nil
}

// PoolSize splits cpu * multiplier connections across the hosts, since every
// host keeps its own pool
func PoolSize(multiplier float64, hosts int) int {
	size := int(float64(runtime.NumCPU()) * multiplier)
	if hosts > 1 {
		size = (size + hosts - 1) / hosts
	}
	if size < minPoolSize {
		size = minPoolSize
	}
	return size
}

// Collection returns the named collection of the configured database
func (c *Client) Collection(name string) *mongo.Collection {
	return c.Database(c.DbName).Collection(name)
}
