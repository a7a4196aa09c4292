package repository

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/x-xyz/p2pmarket/base/ctx"
	"github.com/x-xyz/p2pmarket/base/database/mongoclient"
	"github.com/x-xyz/p2pmarket/base/ptr"
	"github.com/x-xyz/p2pmarket/domain"
	"github.com/x-xyz/p2pmarket/domain/user"
	"github.com/x-xyz/p2pmarket/service/query"
)

type userRepoSuite struct {
	suite.Suite

	client *mongoclient.Client
	q      query.Mongo
	im     user.Repo
}

func TestUserRepoSuite(t *testing.T) {
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set")
	}
	s := &userRepoSuite{}
	s.client = mongoclient.MustConnect(mongoclient.Config{URI: uri, AuthDBName: "admin", DbName: "testdb", PoolMultiplier: 1})
	suite.Run(t, s)
}

func (s *userRepoSuite) SetupTest() {
	c := ctx.Background()
	s.Require().NoError(s.client.Collection(string(domain.TableUsers)).Drop(c))
	s.q = query.New(s.client, false)
	s.Require().NoError(s.q.EnsureIndexes(c, domain.TableUsers, Indexes))
	s.im = New(s.q)
}

func newUser(name string) *user.User {
	return &user.User{
		Username:      name,
		Email:         strings.ToUpper(name) + "@example.com",
		Password:      "hash",
		WalletAddress: domain.Address("0x" + strings.Repeat("A", 39) + name[:1]),
		CreatedAt:     time.Unix(100, 0).UTC(),
		UpdatedAt:     time.Unix(100, 0).UTC(),
	}
}

func (s *userRepoSuite) TestCreateAndFindOne() {
	c := ctx.Background()
	u := newUser("alice")
	s.Require().NoError(s.im.Create(c, u))
	s.False(u.Id.IsZero())

	got, err := s.im.FindOne(c, user.WithEmail("ALICE@example.com"))
	s.Require().NoError(err)
	s.Equal(u.Id, got.Id)
	s.Equal("alice@example.com", got.Email)
	s.Equal(u.WalletAddress, got.WalletAddress)

	got, err = s.im.FindOne(c, user.WithWalletAddress(domain.Address("0x"+strings.Repeat("A", 39)+"a")))
	s.Require().NoError(err)
	s.Equal("alice", got.Username)

	_, err = s.im.FindOne(c, user.WithUsername("bob"))
	s.Equal(domain.ErrNotFound, err)

	_, err = s.im.FindOne(c)
	s.Equal(domain.ErrBadParamInput, err)
}

func (s *userRepoSuite) TestCreateConflict() {
	c := ctx.Background()
	s.Require().NoError(s.im.Create(c, newUser("alice")))

	dup := newUser("bob")
	dup.Email = "alice@example.com"
	s.Equal(domain.ErrConflict, s.im.Create(c, dup))
}

func (s *userRepoSuite) TestPatch() {
	c := ctx.Background()
	alice := newUser("alice")
	bob := newUser("bob")
	s.Require().NoError(s.im.Create(c, alice))
	s.Require().NoError(s.im.Create(c, bob))

	s.NoError(s.im.Patch(c, alice.Id, user.Patchable{Bio: ptr.String("hello")}))
	got, err := s.im.FindOne(c, user.WithId(alice.Id))
	s.Require().NoError(err)
	s.Equal("hello", got.Bio)
	s.True(got.UpdatedAt.After(alice.UpdatedAt))

	s.Equal(domain.ErrConflict, s.im.Patch(c, alice.Id, user.Patchable{Username: ptr.String("bob")}))
	s.Equal(domain.ErrNotFound, s.im.Patch(c, primitive.NewObjectID(), user.Patchable{Bio: ptr.String("x")}))
}

func (s *userRepoSuite) TestBackReferences() {
	c := ctx.Background()
	u := newUser("alice")
	s.Require().NoError(s.im.Create(c, u))

	listingId := primitive.NewObjectID()
	orderId := primitive.NewObjectID()
	s.NoError(s.im.AddListing(c, u.Id, listingId))
	s.NoError(s.im.AddListing(c, u.Id, listingId))
	s.NoError(s.im.AddOrder(c, u.Id, orderId))

	got, err := s.im.FindOne(c, user.WithId(u.Id))
	s.Require().NoError(err)
	s.Equal([]primitive.ObjectID{listingId}, got.Listings)
	s.Equal([]primitive.ObjectID{orderId}, got.Orders)

	s.NoError(s.im.RemoveListing(c, u.Id, listingId))
	got, err = s.im.FindOne(c, user.WithId(u.Id))
	s.Require().NoError(err)
	s.Empty(got.Listings)

	s.Equal(domain.ErrNotFound, s.im.AddOrder(c, primitive.NewObjectID(), orderId))
}

func TestMakeQuery(t *testing.T) {
	id := primitive.NewObjectID()
	opts, err := user.GetFindOneOptions(user.WithId(id), user.WithUsername("alice"))
	assert.NoError(t, err)
	assert.Equal(t, bson.M{"_id": id, "username": "alice"}, makeQuery(opts))
	assert.Equal(t, bson.M{}, makeQuery(user.FindOneOptions{}))
}
