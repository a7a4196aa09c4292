package usecase

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/xerrors"

	"github.com/x-xyz/p2pmarket/base/ctx"
	"github.com/x-xyz/p2pmarket/base/log"
	"github.com/x-xyz/p2pmarket/domain"
	"github.com/x-xyz/p2pmarket/domain/user"
	"github.com/x-xyz/p2pmarket/service/cache"
	"github.com/x-xyz/p2pmarket/service/ens"
)

type UserUseCaseCfg struct {
	UserRepo user.Repo
	Auth     domain.AuthUsecase
	// Ens is optional, profiles carry no ens name without it
	Ens          ens.ENS
	ProfileCache cache.Service
	// AdminIds are granted admin rights on top of the users flagged isAdmin
	AdminIds []primitive.ObjectID
}

type impl struct {
	repo         user.Repo
	auth         domain.AuthUsecase
	ens          ens.ENS
	profileCache cache.Service
	adminIds     map[primitive.ObjectID]bool
}

func New(cfg *UserUseCaseCfg) user.Usecase {
	admins := map[primitive.ObjectID]bool{}
	for _, id := range cfg.AdminIds {
		admins[id] = true
	}
	return &impl{
		repo:         cfg.UserRepo,
		auth:         cfg.Auth,
		ens:          cfg.Ens,
		profileCache: cfg.ProfileCache,
		adminIds:     admins,
	}
}

func (im *impl) Register(c ctx.Ctx, p user.RegisterPayload) (*user.AuthResult, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if err := im.checkTaken(c, primitive.NilObjectID, &p.Username, &p.Email, &p.WalletAddress); err != nil {
		return nil, err
	}

	hash, err := im.auth.HashPassword(c, p.Password)
	if err != nil {
		c.WithField("err", err).Error("auth.HashPassword failed")
		return nil, err
	}

	now := time.Now()
	u := &user.User{
		Username:      p.Username,
		Email:         p.Email,
		Password:      hash,
		WalletAddress: p.WalletAddress,
		Bio:           p.Bio,
		ProfileImage:  p.ProfileImage,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := im.repo.Create(c, u); err != nil {
		c.WithField("err", err).Error("repo.Create failed")
		return nil, err
	}

	return im.authResult(c, u)
}

func (im *impl) Login(c ctx.Ctx, p user.LoginPayload) (*user.AuthResult, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	u, err := im.repo.FindOne(c, user.WithEmail(p.Email))
	if err == domain.ErrNotFound {
		return nil, domain.ErrUnauthorized
	} else if err != nil {
		c.WithField("err", err).Error("repo.FindOne failed")
		return nil, err
	}

	if !im.auth.ComparePassword(c, u.Password, p.Password) {
		return nil, domain.ErrUnauthorized
	}

	return im.authResult(c, u)
}

func (im *impl) GetProfile(c ctx.Ctx, id primitive.ObjectID) (*user.Profile, error) {
	res := &user.Profile{}
	if err := im.profileCache.GetByFunc(c, id.Hex(), res, func() (interface{}, error) {
		return im.getProfile(c, id)
	}); err != nil {
		if err != domain.ErrNotFound {
			c.WithFields(log.Fields{
				"id":  id,
				"err": err,
			}).Error("profileCache.GetByFunc failed")
		}
		return nil, err
	}
	return res, nil
}

func (im *impl) getProfile(c ctx.Ctx, id primitive.ObjectID) (*user.Profile, error) {
	u, err := im.repo.FindOne(c, user.WithId(id))
	if err != nil {
		return nil, err
	}

	res := &user.Profile{User: *u}
	res.Password = ""
	if im.ens != nil && !u.WalletAddress.IsEmpty() {
		if name, err := im.ens.ReverseResolve(c, u.WalletAddress); err != nil {
			c.WithFields(log.Fields{
				"address": u.WalletAddress,
				"err":     err,
			}).Warn("ens.ReverseResolve failed")
		} else {
			res.EnsName = name
		}
	}
	return res, nil
}

func (im *impl) GetPublicProfile(c ctx.Ctx, id primitive.ObjectID) (*user.User, error) {
	u, err := im.repo.FindOne(c, user.WithId(id))
	if err != nil {
		return nil, err
	}
	res := u.Public()
	return &res, nil
}

func (im *impl) UpdateProfile(c ctx.Ctx, id primitive.ObjectID, p user.UpdatePayload) (*user.Profile, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if err := im.checkTaken(c, id, p.Username, p.Email, p.WalletAddress); err != nil {
		return nil, err
	}

	patchable := user.Patchable{
		Username:      p.Username,
		Email:         p.Email,
		WalletAddress: p.WalletAddress,
		Bio:           p.Bio,
		ProfileImage:  p.ProfileImage,
	}
	if p.Password != nil {
		hash, err := im.auth.HashPassword(c, *p.Password)
		if err != nil {
			c.WithField("err", err).Error("auth.HashPassword failed")
			return nil, err
		}
		patchable.Password = &hash
	}

	if err := im.repo.Patch(c, id, patchable); err != nil {
		c.WithFields(log.Fields{
			"id":  id,
			"err": err,
		}).Error("repo.Patch failed")
		return nil, err
	}

	im.InvalidateProfile(c, id)
	return im.GetProfile(c, id)
}

func (im *impl) InvalidateProfile(c ctx.Ctx, ids ...primitive.ObjectID) {
	for _, id := range ids {
		if err := im.profileCache.Del(c, id.Hex()); err != nil {
			c.WithFields(log.Fields{
				"id":  id,
				"err": err,
			}).Warn("profileCache.Del failed")
		}
	}
}

func (im *impl) IsAdmin(c ctx.Ctx, id primitive.ObjectID) (bool, error) {
	if im.adminIds[id] {
		return true, nil
	}
	u, err := im.repo.FindOne(c, user.WithId(id))
	if err == domain.ErrNotFound {
		return false, nil
	} else if err != nil {
		c.WithField("err", err).Error("repo.FindOne failed")
		return false, err
	}
	return u.IsAdmin, nil
}

type lookup struct {
	field string
	opt   user.FindOneOptionsFunc
}

// checkTaken reports ErrConflict when a non nil value already belongs to a user other than self
func (im *impl) checkTaken(c ctx.Ctx, self primitive.ObjectID, username, email *string, address *domain.Address) error {
	lookups := []lookup{}
	if username != nil {
		lookups = append(lookups, lookup{"username", user.WithUsername(*username)})
	}
	if email != nil {
		lookups = append(lookups, lookup{"email", user.WithEmail(*email)})
	}
	if address != nil {
		lookups = append(lookups, lookup{"walletAddress", user.WithWalletAddress(*address)})
	}

	for _, l := range lookups {
		u, err := im.repo.FindOne(c, l.opt)
		if err == domain.ErrNotFound {
			continue
		} else if err != nil {
			c.WithFields(log.Fields{
				"field": l.field,
				"err":   err,
			}).Error("repo.FindOne failed")
			return err
		}
		if u.Id != self {
			return xerrors.Errorf("%s already taken: %w", l.field, domain.ErrConflict)
		}
	}
	return nil
}

func (im *impl) authResult(c ctx.Ctx, u *user.User) (*user.AuthResult, error) {
	tkn, err := im.auth.SignToken(c, u.Id)
	if err != nil {
		c.WithField("err", err).Error("auth.SignToken failed")
		return nil, err
	}
	res := *u
	res.Password = ""
	return &user.AuthResult{Token: tkn, User: res}, nil
}
