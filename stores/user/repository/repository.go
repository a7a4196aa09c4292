package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/x-xyz/p2pmarket/base/ctx"
	"github.com/x-xyz/p2pmarket/base/database/mongoclient"
	"github.com/x-xyz/p2pmarket/base/log"
	"github.com/x-xyz/p2pmarket/domain"
	"github.com/x-xyz/p2pmarket/domain/user"
	"github.com/x-xyz/p2pmarket/service/query"
)

// Indexes back the uniqueness of username, email and walletAddress
var Indexes = []mongo.IndexModel{
	{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
	{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	{Keys: bson.D{{Key: "walletAddress", Value: 1}}, Options: options.Index().SetUnique(true)},
}

type impl struct {
	q query.Mongo
}

func New(q query.Mongo) user.Repo {
	return &impl{q}
}

func (im *impl) FindOne(c ctx.Ctx, optFns ...user.FindOneOptionsFunc) (*user.User, error) {
	opts, err := user.GetFindOneOptions(optFns...)
	if err != nil {
		c.WithField("err", err).Error("user.GetFindOneOptions failed")
		return nil, err
	}

	qry := makeQuery(opts)
	if len(qry) == 0 {
		return nil, domain.ErrBadParamInput
	}

	res := &user.User{}
	if err := im.q.FindOne(c, domain.TableUsers, qry, res); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"query": qry,
			"err":   err,
		}).Error("q.FindOne failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) Create(c ctx.Ctx, u *user.User) error {
	if u.Id.IsZero() {
		u.Id = primitive.NewObjectID()
	}
	u.Email = user.NormalizeEmail(u.Email)
	u.WalletAddress = u.WalletAddress.ToLower()
	if u.Listings == nil {
		u.Listings = []primitive.ObjectID{}
	}
	if u.Orders == nil {
		u.Orders = []primitive.ObjectID{}
	}

	if err := im.q.Insert(c, domain.TableUsers, u); err == query.ErrDuplicateKey {
		return domain.ErrConflict
	} else if err != nil {
		c.WithFields(log.Fields{
			"username": u.Username,
			"err":      err,
		}).Error("q.Insert failed")
		return err
	}
	return nil
}

func (im *impl) Patch(c ctx.Ctx, id primitive.ObjectID, patchable user.Patchable) error {
	if patchable.WalletAddress != nil {
		addr := patchable.WalletAddress.ToLower()
		patchable.WalletAddress = &addr
	}
	if patchable.UpdatedAt == nil {
		now := time.Now()
		patchable.UpdatedAt = &now
	}

	updater, err := mongoclient.MakeBsonM(patchable)
	if err != nil {
		c.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return err
	}

	if err := im.q.Patch(c, domain.TableUsers, bson.M{"_id": id}, updater); err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err == query.ErrDuplicateKey {
		return domain.ErrConflict
	} else if err != nil {
		c.WithFields(log.Fields{
			"id":  id,
			"err": err,
		}).Error("q.Patch failed")
		return err
	}
	return nil
}

func (im *impl) AddListing(c ctx.Ctx, id, listingId primitive.ObjectID) error {
	return im.addToSet(c, id, "listings", listingId)
}

func (im *impl) RemoveListing(c ctx.Ctx, id, listingId primitive.ObjectID) error {
	if err := im.q.Pull(c, domain.TableUsers, bson.M{"_id": id}, "listings", listingId); err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"id":        id,
			"listingId": listingId,
			"err":       err,
		}).Error("q.Pull failed")
		return err
	}
	return nil
}

func (im *impl) AddOrder(c ctx.Ctx, id, orderId primitive.ObjectID) error {
	return im.addToSet(c, id, "orders", orderId)
}

func (im *impl) addToSet(c ctx.Ctx, id primitive.ObjectID, field string, item primitive.ObjectID) error {
	if err := im.q.AddToSet(c, domain.TableUsers, bson.M{"_id": id}, field, item); err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"id":    id,
			"field": field,
			"err":   err,
		}).Error("q.AddToSet failed")
		return err
	}
	return nil
}

func makeQuery(opts user.FindOneOptions) bson.M {
	res := bson.M{}
	if opts.Id != nil {
		res["_id"] = *opts.Id
	}
	if opts.Username != nil {
		res["username"] = *opts.Username
	}
	if opts.Email != nil {
		res["email"] = *opts.Email
	}
	if opts.WalletAddress != nil {
		res["walletAddress"] = *opts.WalletAddress
	}
	return res
}
