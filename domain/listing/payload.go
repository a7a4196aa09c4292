package listing

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	bvalidator "github.com/x-xyz/p2pmarket/base/validator"
	"github.com/x-xyz/p2pmarket/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := bvalidator.New()
	register := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
	register("category", func(fl validator.FieldLevel) bool {
		return Category(fl.Field().String()).IsValid()
	})
	register("condition", func(fl validator.FieldLevel) bool {
		return Condition(fl.Field().String()).IsValid()
	})
	register("status", func(fl validator.FieldLevel) bool {
		return Status(fl.Field().String()).IsValid()
	})
	return v
}

type CreatePayload struct {
	Title           string         `json:"title" validate:"required,min=1,max=100"`
	Description     string         `json:"description" validate:"required,min=1,max=2000"`
	Price           string         `json:"price" validate:"required,amount"`
	Category        Category       `json:"category" validate:"required,category"`
	Images          []string       `json:"images" validate:"required,min=1,max=10,dive,required"`
	Condition       Condition      `json:"condition" validate:"required,condition"`
	Tags            []string       `json:"tags" validate:"max=20,dive,min=1,max=30"`
	Location        string         `json:"location" validate:"required"`
	ContractAddress domain.Address `json:"contractAddress" validate:"required,hexaddr"`
	TransactionHash string         `json:"transactionHash" validate:"omitempty,txhash"`
	OnChainId       string         `json:"onChainId" validate:"omitempty,numeric"`
}

// Normalize trims the free text fields in place
func (p *CreatePayload) Normalize() {
	p.Title = strings.TrimSpace(p.Title)
	p.Description = strings.TrimSpace(p.Description)
	p.Price = strings.TrimSpace(p.Price)
	p.Location = strings.TrimSpace(p.Location)
	p.Tags = trimAll(p.Tags)
}

func (p *CreatePayload) Validate() error {
	p.Normalize()
	return bvalidator.ToValidationError(validate.Struct(p))
}

// ToListing builds a new active listing. The payload must be validated first.
func (p *CreatePayload) ToListing(seller primitive.ObjectID, now time.Time) (*Listing, error) {
	price, err := ParsePrice(p.Price)
	if err != nil {
		return nil, domain.NewValidationError().Add("price", "must be a non-negative decimal number")
	}
	priceValue, err := PriceDecimal128(price)
	if err != nil {
		return nil, domain.NewValidationError().Add("price", "is out of range")
	}

	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return &Listing{
		Seller:          seller,
		Title:           p.Title,
		Description:     p.Description,
		Price:           p.Price,
		PriceValue:      priceValue,
		Category:        p.Category,
		Images:          p.Images,
		Condition:       p.Condition,
		Status:          StatusActive,
		Tags:            tags,
		Location:        p.Location,
		Likes:           []primitive.ObjectID{},
		TransactionHash: p.TransactionHash,
		OnChainId:       p.OnChainId,
		ContractAddress: p.ContractAddress,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// UpdatePayload holds the fields a seller wants to change, nil fields stay untouched
type UpdatePayload struct {
	Title           *string         `json:"title" validate:"omitempty,min=1,max=100"`
	Description     *string         `json:"description" validate:"omitempty,min=1,max=2000"`
	Price           *string         `json:"price" validate:"omitempty,amount"`
	Category        *Category       `json:"category" validate:"omitempty,category"`
	Images          *[]string       `json:"images" validate:"omitempty,max=10,dive,required"`
	Condition       *Condition      `json:"condition" validate:"omitempty,condition"`
	Status          *Status         `json:"status" validate:"omitempty,status"`
	Tags            *[]string       `json:"tags" validate:"omitempty,max=20,dive,min=1,max=30"`
	Location        *string         `json:"location" validate:"omitempty,min=1"`
	ContractAddress *domain.Address `json:"contractAddress" validate:"omitempty,hexaddr"`
	TransactionHash *string         `json:"transactionHash" validate:"omitempty,txhash"`
	OnChainId       *string         `json:"onChainId" validate:"omitempty,numeric"`
}

func (p *UpdatePayload) Normalize() {
	trim := func(s *string) {
		if s != nil {
			*s = strings.TrimSpace(*s)
		}
	}
	trim(p.Title)
	trim(p.Description)
	trim(p.Price)
	trim(p.Location)
	if p.Tags != nil {
		tags := trimAll(*p.Tags)
		p.Tags = &tags
	}
}

func (p *UpdatePayload) Validate() error {
	p.Normalize()
	if err := bvalidator.ToValidationError(validate.Struct(p)); err != nil {
		return err
	}
	if p.Images != nil && len(*p.Images) == 0 {
		return domain.NewValidationError().Add("images", "must contain at least 1 items")
	}
	return nil
}

// ToPatchable turns a validated payload into the stored update
func (p *UpdatePayload) ToPatchable(now time.Time) (Patchable, error) {
	res := Patchable{
		Title:           p.Title,
		Description:     p.Description,
		Category:        p.Category,
		Condition:       p.Condition,
		Status:          p.Status,
		Location:        p.Location,
		ContractAddress: p.ContractAddress,
		TransactionHash: p.TransactionHash,
		OnChainId:       p.OnChainId,
		UpdatedAt:       &now,
	}
	if p.Price != nil {
		price, err := ParsePrice(*p.Price)
		if err != nil {
			return res, domain.NewValidationError().Add("price", "must be a non-negative decimal number")
		}
		priceValue, err := PriceDecimal128(price)
		if err != nil {
			return res, domain.NewValidationError().Add("price", "is out of range")
		}
		res.Price = p.Price
		res.PriceValue = &priceValue
	}
	if p.Images != nil {
		res.Images = *p.Images
	}
	if p.Tags != nil {
		res.Tags = append([]string{}, *p.Tags...)
	}
	return res, nil
}

// ListParams are the query parameters of a paged listing
type ListParams struct {
	Keyword  string `query:"keyword"`
	Page     int    `query:"page"`
	PageSize int    `query:"pageSize"`
	Sort     string `query:"sort"`
}

// SearchParams are the query parameters of an unpaged search
type SearchParams struct {
	Q         string `query:"q"`
	Category  string `query:"category"`
	MinPrice  string `query:"minPrice"`
	MaxPrice  string `query:"maxPrice"`
	Condition string `query:"condition"`
	Sort      string `query:"sort"`
}

// PriceRange parses the price bounds, reporting malformed ones as field errors
func (p SearchParams) PriceRange() (PriceRange, error) {
	verr := domain.NewValidationError()
	if strings.TrimSpace(p.MinPrice) != "" && !bvalidator.IsValidAmount(p.MinPrice) {
		verr.Add("minPrice", "must be a non-negative decimal number")
	}
	if strings.TrimSpace(p.MaxPrice) != "" && !bvalidator.IsValidAmount(p.MaxPrice) {
		verr.Add("maxPrice", "must be a non-negative decimal number")
	}
	if err := verr.OrNil(); err != nil {
		return PriceRange{}, err
	}
	return NewPriceRange(p.MinPrice, p.MaxPrice)
}

func trimAll(ss []string) []string {
	if ss == nil {
		return nil
	}
	res := make([]string, 0, len(ss))
	for _, s := range ss {
		res = append(res, strings.TrimSpace(s))
	}
	return res
}
