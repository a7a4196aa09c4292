package repository

import (
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/x-xyz/p2pmarket/base/ctx"
	"github.com/x-xyz/p2pmarket/base/database/mongoclient"
	"github.com/x-xyz/p2pmarket/base/log"
	"github.com/x-xyz/p2pmarket/domain"
	"github.com/x-xyz/p2pmarket/domain/listing"
	"github.com/x-xyz/p2pmarket/service/query"
)

var Indexes = []mongo.IndexModel{
	{
		Keys: bson.D{
			{Key: "title", Value: "text"},
			{Key: "description", Value: "text"},
			{Key: "tags", Value: "text"},
		},
		Options: options.Index().SetName("listing_text"),
	},
	{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	{Keys: bson.D{{Key: "category", Value: 1}, {Key: "createdAt", Value: -1}}},
	{Keys: bson.D{{Key: "seller", Value: 1}}},
	{Keys: bson.D{{Key: "priceValue", Value: 1}}},
	{Keys: bson.D{{Key: "views", Value: -1}}},
	{Keys: bson.D{{Key: "likeCount", Value: -1}}},
}

type impl struct {
	q query.Mongo
}

func New(q query.Mongo) listing.Repo {
	return &impl{q}
}

func makeFindQuery(opts listing.FindAllOptions) (bson.M, error) {
	res := bson.M{}

	if opts.Keyword != nil && *opts.Keyword != "" {
		pattern := bson.M{"$regex": regexp.QuoteMeta(*opts.Keyword), "$options": "i"}
		res["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"description": pattern},
		}
	}

	if opts.Text != nil && *opts.Text != "" {
		res["$text"] = bson.M{"$search": *opts.Text}
	}

	if opts.Category != nil {
		res["category"] = *opts.Category
	}

	if opts.Condition != nil {
		res["condition"] = *opts.Condition
	}

	if opts.Seller != nil {
		res["seller"] = *opts.Seller
	}

	if opts.Status != nil {
		res["status"] = *opts.Status
	}

	if opts.PriceRange != nil && !opts.PriceRange.IsEmpty() {
		cond := bson.M{}
		if opts.PriceRange.Min != nil {
			v, err := listing.PriceDecimal128(*opts.PriceRange.Min)
			if err != nil {
				return nil, err
			}
			cond["$gte"] = v
		}
		if opts.PriceRange.Max != nil {
			v, err := listing.PriceDecimal128(*opts.PriceRange.Max)
			if err != nil {
				return nil, err
			}
			cond["$lte"] = v
		}
		res["priceValue"] = cond
	}

	return res, nil
}

func makeSorts(sort *listing.SortKey) []string {
	if sort == nil {
		return []string{"-createdAt"}
	}
	switch *sort {
	case listing.SortPriceAsc:
		return []string{"priceValue", "-createdAt"}
	case listing.SortPriceDesc:
		return []string{"-priceValue", "-createdAt"}
	case listing.SortViewsDesc:
		return []string{"-views", "-createdAt"}
	case listing.SortLikesDesc:
		return []string{"-likeCount", "-createdAt"}
	case listing.SortDateAsc:
		return []string{"createdAt"}
	}
	return []string{"-createdAt"}
}

func (im *impl) FindAll(c ctx.Ctx, optFns ...listing.FindAllOptionsFunc) ([]*listing.Listing, error) {
	opts, err := listing.GetFindAllOptions(optFns...)
	if err != nil {
		c.WithField("err", err).Error("listing.GetFindAllOptions failed")
		return nil, err
	}

	qry, err := makeFindQuery(opts)
	if err != nil {
		c.WithField("err", err).Error("makeFindQuery failed")
		return nil, domain.ErrBadParamInput
	}

	offset, limit := 0, 0
	if opts.Offset != nil {
		offset = *opts.Offset
	}
	if opts.Limit != nil {
		limit = *opts.Limit
	}
	sorts := makeSorts(opts.Sort)

	res := []*listing.Listing{}
	if err := im.q.SearchNSorts(c, domain.TableListings, offset, limit, sorts, qry, &res); err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"query": qry,
			"sort":  sorts,
		}).Error("q.SearchNSorts failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) Count(c ctx.Ctx, optFns ...listing.FindAllOptionsFunc) (int, error) {
	opts, err := listing.GetFindAllOptions(optFns...)
	if err != nil {
		c.WithField("err", err).Error("listing.GetFindAllOptions failed")
		return 0, err
	}

	qry, err := makeFindQuery(opts)
	if err != nil {
		c.WithField("err", err).Error("makeFindQuery failed")
		return 0, domain.ErrBadParamInput
	}

	cnt, err := im.q.Count(c, domain.TableListings, qry)
	if err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("q.Count failed")
		return 0, err
	}
	return cnt, nil
}

func (im *impl) FindOne(c ctx.Ctx, id primitive.ObjectID) (*listing.Listing, error) {
	return im.findOne(c, bson.M{"_id": id})
}

func (im *impl) IncrementViews(c ctx.Ctx, id primitive.ObjectID) (*listing.Listing, error) {
	return im.findOneAndUpdate(c, bson.M{"_id": id}, bson.M{"$inc": bson.M{"views": 1}})
}

func (im *impl) Create(c ctx.Ctx, l *listing.Listing) error {
	if l.Id.IsZero() {
		l.Id = primitive.NewObjectID()
	}
	if l.Likes == nil {
		l.Likes = []primitive.ObjectID{}
	}
	if l.Tags == nil {
		l.Tags = []string{}
	}
	l.LikeCount = len(l.Likes)
	l.ContractAddress = l.ContractAddress.ToLower()

	if err := im.q.Insert(c, domain.TableListings, l); err == query.ErrDuplicateKey {
		return domain.ErrConflict
	} else if err != nil {
		c.WithFields(log.Fields{
			"seller": l.Seller,
			"err":    err,
		}).Error("q.Insert failed")
		return err
	}
	return nil
}

func (im *impl) Patch(c ctx.Ctx, id, seller primitive.ObjectID, patchable listing.Patchable) (*listing.Listing, error) {
	if patchable.ContractAddress != nil {
		addr := patchable.ContractAddress.ToLower()
		patchable.ContractAddress = &addr
	}

	updater, err := mongoclient.MakeBsonM(patchable)
	if err != nil {
		c.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return nil, err
	}
	if len(updater) == 0 {
		return im.findOne(c, bson.M{"_id": id, "seller": seller})
	}

	return im.findOneAndUpdate(c, bson.M{"_id": id, "seller": seller}, bson.M{"$set": updater})
}

func (im *impl) Delete(c ctx.Ctx, id, seller primitive.ObjectID) error {
	if err := im.q.Remove(c, domain.TableListings, bson.M{"_id": id, "seller": seller}); err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"id":  id,
			"err": err,
		}).Error("q.Remove failed")
		return err
	}
	return nil
}

func (im *impl) SetStatus(c ctx.Ctx, id primitive.ObjectID, from, to listing.Status, updatedAt time.Time) (*listing.Listing, error) {
	res, err := im.findOneAndUpdate(c,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": bson.M{"status": to, "updatedAt": updatedAt}},
	)
	if err != domain.ErrNotFound {
		return res, err
	}
	if _, err := im.findOne(c, bson.M{"_id": id}); err != nil {
		return nil, err
	}
	return nil, domain.ErrConflict
}

func (im *impl) AddLike(c ctx.Ctx, id, userId primitive.ObjectID) (*listing.Listing, error) {
	return im.findOneAndUpdate(c,
		bson.M{"_id": id, "likes": bson.M{"$ne": userId}},
		bson.M{
			"$push": bson.M{"likes": userId},
			"$inc":  bson.M{"likeCount": 1},
		},
	)
}

func (im *impl) RemoveLike(c ctx.Ctx, id, userId primitive.ObjectID) (*listing.Listing, error) {
	return im.findOneAndUpdate(c,
		bson.M{"_id": id, "likes": userId},
		bson.M{
			"$pull": bson.M{"likes": userId},
			"$inc":  bson.M{"likeCount": -1},
		},
	)
}

func (im *impl) findOne(c ctx.Ctx, selector bson.M) (*listing.Listing, error) {
	res := &listing.Listing{}
	if err := im.q.FindOne(c, domain.TableListings, selector, res); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"selector": selector,
			"err":      err,
		}).Error("q.FindOne failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) findOneAndUpdate(c ctx.Ctx, selector, update bson.M) (*listing.Listing, error) {
	res := &listing.Listing{}
	if err := im.q.FindOneAndUpdate(c, domain.TableListings, selector, update, res); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"selector": selector,
			"err":      err,
		}).Error("q.FindOneAndUpdate failed")
		return nil, err
	}
	return res, nil
}
