package listing

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/x-xyz/p2pmarket/base/ctx"
	"github.com/x-xyz/p2pmarket/domain"
)

type Category string

const (
	CategoryElectronics Category = "Electronics"
	CategoryFashion     Category = "Fashion"
	CategoryHome        Category = "Home"
	CategorySports      Category = "Sports"
	CategoryArt         Category = "Art"
	CategoryBooks       Category = "Books"
	CategoryOther       Category = "Other"
)

var Categories = []Category{
	CategoryElectronics,
	CategoryFashion,
	CategoryHome,
	CategorySports,
	CategoryArt,
	CategoryBooks,
	CategoryOther,
}

func (c Category) IsValid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

type Condition string

const (
	ConditionNew     Condition = "New"
	ConditionLikeNew Condition = "Like New"
	ConditionGood    Condition = "Good"
	ConditionFair    Condition = "Fair"
	ConditionPoor    Condition = "Poor"
)

func (c Condition) IsValid() bool {
	switch c {
	case ConditionNew, ConditionLikeNew, ConditionGood, ConditionFair, ConditionPoor:
		return true
	}
	return false
}

type Status string

const (
	StatusActive    Status = "active"
	StatusSold      Status = "sold"
	StatusCancelled Status = "cancelled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusSold, StatusCancelled:
		return true
	}
	return false
}

type Listing struct {
	Id          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Seller      primitive.ObjectID `json:"seller" bson:"seller"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	// Price is kept as the seller typed it, PriceValue mirrors it for range queries and sorting
	Price      string               `json:"price" bson:"price"`
	PriceValue primitive.Decimal128 `json:"-" bson:"priceValue"`
	Category   Category             `json:"category" bson:"category"`
	Images     []string             `json:"images" bson:"images"`
	Condition  Condition            `json:"condition" bson:"condition"`
	Status     Status               `json:"status" bson:"status"`
	Tags       []string             `json:"tags" bson:"tags"`
	Location   string               `json:"location" bson:"location"`
	Views      int64                `json:"views" bson:"views"`
	Likes      []primitive.ObjectID `json:"likes" bson:"likes"`
	// LikeCount always equals len(Likes)
	LikeCount       int            `json:"likeCount" bson:"likeCount"`
	TransactionHash string         `json:"transactionHash,omitempty" bson:"transactionHash,omitempty"`
	OnChainId       string         `json:"onChainId,omitempty" bson:"onChainId,omitempty"`
	ContractAddress domain.Address `json:"contractAddress" bson:"contractAddress"`
	CreatedAt       time.Time      `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt" bson:"updatedAt"`
}

func (l *Listing) IsLikedBy(userId primitive.ObjectID) bool {
	for _, id := range l.Likes {
		if id == userId {
			return true
		}
	}
	return false
}

type Patchable struct {
	Title           *string               `bson:"title,omitempty"`
	Description     *string               `bson:"description,omitempty"`
	Price           *string               `bson:"price,omitempty"`
	PriceValue      *primitive.Decimal128 `bson:"priceValue,omitempty"`
	Category        *Category             `bson:"category,omitempty"`
	Images          []string              `bson:"images,omitempty"`
	Condition       *Condition            `bson:"condition,omitempty"`
	Status          *Status               `bson:"status,omitempty"`
	Tags            []string              `bson:"tags,omitempty"`
	Location        *string               `bson:"location,omitempty"`
	TransactionHash *string               `bson:"transactionHash,omitempty"`
	OnChainId       *string               `bson:"onChainId,omitempty"`
	ContractAddress *domain.Address       `bson:"contractAddress,omitempty"`
	UpdatedAt       *time.Time            `bson:"updatedAt,omitempty"`
}

type LikeResult struct {
	Likes   int  `json:"likes"`
	IsLiked bool `json:"isLiked"`
}

type Page struct {
	Items      []*Listing `json:"listings"`
	Page       int        `json:"page"`
	TotalPages int        `json:"pages"`
	Total      int        `json:"total"`
}

type FindAllOptions struct {
	// Keyword is a case-insensitive substring of title or description
	Keyword *string
	// Text goes through the full-text index over title, description and tags
	Text       *string
	Category   *Category
	Condition  *Condition
	Seller     *primitive.ObjectID
	Status     *Status
	PriceRange *PriceRange
	Sort       *SortKey
	Offset     *int
	Limit      *int
}

type FindAllOptionsFunc func(*FindAllOptions) error

func GetFindAllOptions(opts ...FindAllOptionsFunc) (FindAllOptions, error) {
	res := FindAllOptions{}

	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}

	return res, nil
}

func WithKeyword(keyword string) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Keyword = &keyword
		return nil
	}
}

func WithText(text string) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Text = &text
		return nil
	}
}

func WithCategory(category Category) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Category = &category
		return nil
	}
}

func WithCondition(condition Condition) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Condition = &condition
		return nil
	}
}

func WithSeller(seller primitive.ObjectID) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Seller = &seller
		return nil
	}
}

func WithStatus(status Status) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Status = &status
		return nil
	}
}

func WithPriceRange(r PriceRange) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		if r.IsEmpty() {
			return nil
		}
		options.PriceRange = &r
		return nil
	}
}

func WithSort(sort SortKey) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Sort = &sort
		return nil
	}
}

func WithPagination(offset, limit int) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

type Repo interface {
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Listing, error)
	Count(c ctx.Ctx, opts ...FindAllOptionsFunc) (int, error)
	FindOne(c ctx.Ctx, id primitive.ObjectID) (*Listing, error)
	// IncrementViews adds one view and returns the listing after the increment
	IncrementViews(c ctx.Ctx, id primitive.ObjectID) (*Listing, error)
	Create(c ctx.Ctx, listing *Listing) error
	// Patch and Delete only match listings owned by seller
	Patch(c ctx.Ctx, id, seller primitive.ObjectID, patchable Patchable) (*Listing, error)
	Delete(c ctx.Ctx, id, seller primitive.ObjectID) error
	// SetStatus moves the listing from status from to to. It returns ErrConflict
	// when the listing exists but is no longer in from.
	SetStatus(c ctx.Ctx, id primitive.ObjectID, from, to Status, updatedAt time.Time) (*Listing, error)
	// AddLike returns ErrNotFound when the listing is missing or already liked by userId
	AddLike(c ctx.Ctx, id, userId primitive.ObjectID) (*Listing, error)
	// RemoveLike returns ErrNotFound when the listing is missing or not liked by userId
	RemoveLike(c ctx.Ctx, id, userId primitive.ObjectID) (*Listing, error)
}

type Usecase interface {
	List(c ctx.Ctx, params ListParams) (*Page, error)
	Search(c ctx.Ctx, params SearchParams) ([]*Listing, error)
	GetByCategory(c ctx.Ctx, category Category) ([]*Listing, error)
	// GetOne counts a view before returning the listing
	GetOne(c ctx.Ctx, id primitive.ObjectID) (*Listing, error)
	Create(c ctx.Ctx, sellerId primitive.ObjectID, payload CreatePayload) (*Listing, error)
	Update(c ctx.Ctx, requesterId, id primitive.ObjectID, payload UpdatePayload) (*Listing, error)
	Delete(c ctx.Ctx, requesterId, id primitive.ObjectID) error
	ToggleLike(c ctx.Ctx, userId, id primitive.ObjectID) (*LikeResult, error)
}
