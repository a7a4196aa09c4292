package repository

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/x-xyz/p2pmarket/base/ctx"
	"github.com/x-xyz/p2pmarket/base/database/mongoclient"
	"github.com/x-xyz/p2pmarket/domain"
	"github.com/x-xyz/p2pmarket/domain/order"
	"github.com/x-xyz/p2pmarket/service/query"
)

func TestMakeQuery(t *testing.T) {
	im := &orderRepoImpl{}
	uid, lid := primitive.NewObjectID(), primitive.NewObjectID()

	q, err := im.makeQuery(order.WithParticipant(uid), order.WithListing(lid), order.WithStatus(order.StatusPending))
	require.NoError(t, err)
	assert.Equal(t, bson.M{
		"$or":     bson.A{bson.M{"buyer": uid}, bson.M{"seller": uid}},
		"listing": lid,
		"status":  order.StatusPending,
	}, q)

	_, err = im.makeQuery(order.WithStatus("lost"))
	assert.ErrorIs(t, err, domain.ErrBadParamInput)
}

type orderRepoSuite struct {
	suite.Suite

	client *mongoclient.Client
	im     order.Repo
}

func TestOrderRepoSuite(t *testing.T) {
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set")
	}
	s := &orderRepoSuite{}
	s.client = mongoclient.MustConnect(mongoclient.Config{URI: uri, AuthDBName: "admin", DbName: "testdb", PoolMultiplier: 1})
	suite.Run(t, s)
}

func (s *orderRepoSuite) SetupTest() {
	c := ctx.Background()
	s.Require().NoError(s.client.Collection(string(domain.TableOrders)).Drop(c))
	q := query.New(s.client, false)
	s.Require().NoError(q.EnsureIndexes(c, domain.TableOrders, Indexes))
	s.im = NewOrderRepo(q)
}

func newOrder(buyer, seller primitive.ObjectID, hashDigit string, createdAt int64) *order.Order {
	return &order.Order{
		Buyer:           buyer,
		Seller:          seller,
		Listing:         primitive.NewObjectID(),
		Price:           "1.5",
		Status:          order.StatusPending,
		PaymentStatus:   order.PaymentProcessing,
		TransactionHash: domain.TxHash("0x" + strings.Repeat(hashDigit, 64)),
		CreatedAt:       time.Unix(createdAt, 0).UTC(),
		UpdatedAt:       time.Unix(createdAt, 0).UTC(),
	}
}

func (s *orderRepoSuite) TestCreateAndFind() {
	c := ctx.Background()
	alice, bob, carol := primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()

	first := newOrder(alice, bob, "1", 100)
	second := newOrder(carol, alice, "2", 200)
	other := newOrder(carol, bob, "3", 300)
	for _, o := range []*order.Order{first, second, other} {
		s.Require().NoError(s.im.Create(c, o))
	}
	s.Equal(order.DisputeNone, first.DisputeStatus)

	dup := newOrder(bob, carol, "1", 400)
	s.Equal(domain.ErrConflict, s.im.Create(c, dup))

	res, err := s.im.FindAll(c, order.WithParticipant(alice))
	s.Require().NoError(err)
	s.Require().Len(res, 2)
	s.Equal(second.Id, res[0].Id)
	s.Equal(first.Id, res[1].Id)

	got, err := s.im.FindOne(c, first.Id)
	s.Require().NoError(err)
	s.Equal(first.Price, got.Price)

	_, err = s.im.FindOne(c, primitive.NewObjectID())
	s.Equal(domain.ErrNotFound, err)
}

func (s *orderRepoSuite) TestPatchTransitions() {
	c := ctx.Background()
	o := newOrder(primitive.NewObjectID(), primitive.NewObjectID(), "4", 100)
	s.Require().NoError(s.im.Create(c, o))

	completed := order.StatusCompleted
	res, err := s.im.Patch(c, o.Id, order.StatusPending, order.Patchable{Status: &completed})
	s.Require().NoError(err)
	s.Equal(order.StatusCompleted, res.Status)

	_, err = s.im.Patch(c, o.Id, order.StatusPending, order.Patchable{Status: &completed})
	s.Equal(order.ErrInvalidTransition, err)

	_, err = s.im.Patch(c, primitive.NewObjectID(), order.StatusPending, order.Patchable{Status: &completed})
	s.Equal(domain.ErrNotFound, err)

	rating, review := 4, "fine"
	res, err = s.im.Patch(c, o.Id, order.StatusCompleted, order.Patchable{Rating: &rating, Review: &review})
	s.Require().NoError(err)
	s.Equal(4, res.Rating)

	_, err = s.im.Patch(c, o.Id, order.StatusCompleted, order.Patchable{Rating: &rating})
	s.Equal(order.ErrInvalidTransition, err)
}
