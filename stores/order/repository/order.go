package repository

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/x-xyz/p2pmarket/base/ctx"
	"github.com/x-xyz/p2pmarket/base/database/mongoclient"
	"github.com/x-xyz/p2pmarket/base/log"
	"github.com/x-xyz/p2pmarket/domain"
	"github.com/x-xyz/p2pmarket/domain/order"
	"github.com/x-xyz/p2pmarket/service/query"
)

var Indexes = []mongo.IndexModel{
	{Keys: bson.D{{Key: "buyer", Value: 1}, {Key: "createdAt", Value: -1}}},
	{Keys: bson.D{{Key: "seller", Value: 1}, {Key: "createdAt", Value: -1}}},
	{Keys: bson.D{{Key: "listing", Value: 1}}},
	// one settlement transaction pays for one order
	{Keys: bson.D{{Key: "transactionHash", Value: 1}}, Options: options.Index().SetUnique(true)},
}

type orderRepoImpl struct {
	q query.Mongo
}

func NewOrderRepo(q query.Mongo) order.Repo {
	return &orderRepoImpl{q}
}

func (im *orderRepoImpl) makeQuery(opts ...order.FindAllOptionsFunc) (bson.M, error) {
	options, err := order.GetFindAllOptions(opts...)
	if err != nil {
		return nil, err
	}
	query := bson.M{}

	if options.Participant != nil {
		query["$or"] = bson.A{
			bson.M{"buyer": *options.Participant},
			bson.M{"seller": *options.Participant},
		}
	}

	if options.Listing != nil {
		query["listing"] = *options.Listing
	}

	if options.Status != nil {
		query["status"] = *options.Status
	}

	return query, nil
}

func (im *orderRepoImpl) FindAll(c ctx.Ctx, opts ...order.FindAllOptionsFunc) ([]*order.Order, error) {
	qry, err := im.makeQuery(opts...)
	if err != nil {
		c.WithField("err", err).Error("makeQuery failed")
		return nil, err
	}

	res := []*order.Order{}
	if err := im.q.Search(c, domain.TableOrders, 0, 0, "-createdAt", qry, &res); err != nil {
		c.WithFields(log.Fields{
			"query": qry,
			"err":   err,
		}).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}

func (im *orderRepoImpl) FindOne(c ctx.Ctx, id primitive.ObjectID) (*order.Order, error) {
	res := &order.Order{}
	if err := im.q.FindOne(c, domain.TableOrders, bson.M{"_id": id}, res); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"id":  id,
			"err": err,
		}).Error("q.FindOne failed")
		return nil, err
	}
	return res, nil
}

func (im *orderRepoImpl) Create(c ctx.Ctx, o *order.Order) error {
	if o.Id.IsZero() {
		o.Id = primitive.NewObjectID()
	}
	if o.DisputeStatus == "" {
		o.DisputeStatus = order.DisputeNone
	}

	if err := im.q.Insert(c, domain.TableOrders, o); err == query.ErrDuplicateKey {
		return domain.ErrConflict
	} else if err != nil {
		c.WithFields(log.Fields{
			"listing": o.Listing,
			"err":     err,
		}).Error("q.Insert failed")
		return err
	}
	return nil
}

func (im *orderRepoImpl) Patch(c ctx.Ctx, id primitive.ObjectID, from order.Status, patchable order.Patchable) (*order.Order, error) {
	updater, err := mongoclient.MakeBsonM(patchable)
	if err != nil {
		c.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return nil, err
	}

	selector := bson.M{"_id": id, "status": from}
	// an order is rated at most once
	if patchable.Rating != nil {
		selector["rating"] = bson.M{"$exists": false}
	}

	res := &order.Order{}
	err = im.q.FindOneAndUpdate(c, domain.TableOrders, selector, bson.M{"$set": updater}, res)
	if err == query.ErrNotFound {
		if _, err := im.FindOne(c, id); err != nil {
			return nil, err
		}
		return nil, order.ErrInvalidTransition
	} else if err != nil {
		c.WithFields(log.Fields{
			"id":  id,
			"err": err,
		}).Error("q.FindOneAndUpdate failed")
		return nil, err
	}
	return res, nil
}
