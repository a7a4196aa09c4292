package usecase

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/x-xyz/p2pmarket/base/ctx"
	"github.com/x-xyz/p2pmarket/base/log"
	"github.com/x-xyz/p2pmarket/domain"
	"github.com/x-xyz/p2pmarket/domain/listing"
	"github.com/x-xyz/p2pmarket/domain/user"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

var timeNow = time.Now

type ListingUseCaseCfg struct {
	ListingRepo listing.Repo
	UserRepo    user.Repo
	UserUC      user.Usecase
	Transactor  domain.Transactor
	PageSize    int
}

type impl struct {
	repo       listing.Repo
	userRepo   user.Repo
	userUC     user.Usecase
	transactor domain.Transactor
	pageSize   int
}

func New(cfg *ListingUseCaseCfg) listing.Usecase {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &impl{
		repo:       cfg.ListingRepo,
		userRepo:   cfg.UserRepo,
		userUC:     cfg.UserUC,
		transactor: cfg.Transactor,
		pageSize:   clampPageSize(pageSize),
	}
}

func clampPageSize(n int) int {
	if n < 1 {
		return 1
	}
	if n > MaxPageSize {
		return MaxPageSize
	}
	return n
}

func (im *impl) List(c ctx.Ctx, params listing.ListParams) (*listing.Page, error) {
	pageSize := im.pageSize
	if params.PageSize != 0 {
		pageSize = clampPageSize(params.PageSize)
	}
	page := params.Page
	if page < 1 {
		page = 1
	}

	opts := []listing.FindAllOptionsFunc{}
	if keyword := strings.TrimSpace(params.Keyword); keyword != "" {
		opts = append(opts, listing.WithKeyword(keyword))
	}

	total, err := im.repo.Count(c, opts...)
	if err != nil {
		c.WithField("err", err).Error("repo.Count failed")
		return nil, err
	}
	totalPages := (total + pageSize - 1) / pageSize

	res := &listing.Page{
		Items:      []*listing.Listing{},
		Page:       page,
		TotalPages: totalPages,
		Total:      total,
	}
	if page > totalPages {
		return res, nil
	}

	opts = append(opts,
		listing.WithSort(listing.ParseStoreSort(params.Sort)),
		listing.WithPagination((page-1)*pageSize, pageSize),
	)
	items, err := im.repo.FindAll(c, opts...)
	if err != nil {
		c.WithField("err", err).Error("repo.FindAll failed")
		return nil, err
	}
	res.Items = items
	return res, nil
}

func (im *impl) Search(c ctx.Ctx, params listing.SearchParams) ([]*listing.Listing, error) {
	priceRange, err := params.PriceRange()
	if err != nil {
		return nil, err
	}

	opts := []listing.FindAllOptionsFunc{
		listing.WithPriceRange(priceRange),
		listing.WithSort(listing.ParseStoreSort(params.Sort)),
	}
	if q := strings.TrimSpace(params.Q); q != "" {
		opts = append(opts, listing.WithText(q))
	}
	if category := strings.TrimSpace(params.Category); category != "" {
		opts = append(opts, listing.WithCategory(listing.Category(category)))
	}
	if condition := strings.TrimSpace(params.Condition); condition != "" {
		opts = append(opts, listing.WithCondition(listing.Condition(condition)))
	}

	res, err := im.repo.FindAll(c, opts...)
	if err != nil {
		c.WithFields(log.Fields{
			"params": params,
			"err":    err,
		}).Error("repo.FindAll failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) GetByCategory(c ctx.Ctx, category listing.Category) ([]*listing.Listing, error) {
	res, err := im.repo.FindAll(c, listing.WithCategory(category), listing.WithSort(listing.SortDateDesc))
	if err != nil {
		c.WithFields(log.Fields{
			"category": category,
			"err":      err,
		}).Error("repo.FindAll failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) GetOne(c ctx.Ctx, id primitive.ObjectID) (*listing.Listing, error) {
	res, err := im.repo.IncrementViews(c, id)
	if err != nil && err != domain.ErrNotFound {
		c.WithFields(log.Fields{
			"id":  id,
			"err": err,
		}).Error("repo.IncrementViews failed")
	}
	return res, err
}

func (im *impl) Create(c ctx.Ctx, sellerId primitive.ObjectID, p listing.CreatePayload) (*listing.Listing, error) {
	if sellerId.IsZero() {
		return nil, domain.ErrForbidden
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	l, err := p.ToListing(sellerId, timeNow())
	if err != nil {
		return nil, err
	}
	l.Id = primitive.NewObjectID()

	if err := im.transactor.RunWithTransaction(c, func(c ctx.Ctx) error {
		if err := im.repo.Create(c, l); err != nil {
			c.WithField("err", err).Error("repo.Create failed")
			return err
		}
		if err := im.userRepo.AddListing(c, sellerId, l.Id); err != nil {
			c.WithFields(log.Fields{
				"seller": sellerId,
				"err":    err,
			}).Error("userRepo.AddListing failed")
			return err
		}
		return nil
	}); err != nil {
		return nil, err
	}
	im.userUC.InvalidateProfile(c, sellerId)

	return l, nil
}

func (im *impl) Update(c ctx.Ctx, requesterId, id primitive.ObjectID, p listing.UpdatePayload) (*listing.Listing, error) {
	if requesterId.IsZero() {
		return nil, domain.ErrForbidden
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if err := im.checkOwner(c, requesterId, id); err != nil {
		return nil, err
	}

	patchable, err := p.ToPatchable(timeNow())
	if err != nil {
		return nil, err
	}

	res, err := im.repo.Patch(c, id, requesterId, patchable)
	if err != nil {
		c.WithFields(log.Fields{
			"id":  id,
			"err": err,
		}).Error("repo.Patch failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) Delete(c ctx.Ctx, requesterId, id primitive.ObjectID) error {
	if requesterId.IsZero() {
		return domain.ErrForbidden
	}
	if err := im.checkOwner(c, requesterId, id); err != nil {
		return err
	}

	if err := im.transactor.RunWithTransaction(c, func(c ctx.Ctx) error {
		if err := im.repo.Delete(c, id, requesterId); err != nil {
			c.WithField("err", err).Error("repo.Delete failed")
			return err
		}
		if err := im.userRepo.RemoveListing(c, requesterId, id); err == domain.ErrNotFound {
			c.WithField("seller", requesterId).Warn("seller of deleted listing not found")
		} else if err != nil {
			c.WithField("err", err).Error("userRepo.RemoveListing failed")
			return err
		}
		return nil
	}); err != nil {
		return err
	}
	im.userUC.InvalidateProfile(c, requesterId)
	return nil
}

func (im *impl) ToggleLike(c ctx.Ctx, userId, id primitive.ObjectID) (*listing.LikeResult, error) {
	if userId.IsZero() {
		return nil, domain.ErrForbidden
	}

	l, err := im.repo.FindOne(c, id)
	if err != nil {
		return nil, err
	}

	var updated *listing.Listing
	if l.IsLikedBy(userId) {
		updated, err = im.repo.RemoveLike(c, id, userId)
	} else {
		updated, err = im.repo.AddLike(c, id, userId)
	}

	// a concurrent toggle by the same user got there first, report what is stored
	if err == domain.ErrNotFound {
		updated, err = im.repo.FindOne(c, id)
	}
	if err != nil {
		c.WithFields(log.Fields{
			"id":     id,
			"userId": userId,
			"err":    err,
		}).Error("toggle like failed")
		return nil, err
	}

	return &listing.LikeResult{
		Likes:   updated.LikeCount,
		IsLiked: updated.IsLikedBy(userId),
	}, nil
}

func (im *impl) checkOwner(c ctx.Ctx, requesterId, id primitive.ObjectID) error {
	l, err := im.repo.FindOne(c, id)
	if err != nil {
		return err
	}
	if l.Seller != requesterId {
		c.WithFields(log.Fields{
			"id":        id,
			"requester": requesterId,
		}).Info("requester does not own listing")
		return domain.ErrForbidden
	}
	return nil
}
