package query

/*
	Description:
		Package `query` wraps https://github.com/mongodb/mongo-go-driver with the
		handful of operations the stores need: plain CRUD, paged searches with
		multi-field sorts, atomic single-document updates and transactions.

	Use Case:
		Please Read the testcases for usage of each method
*/

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/x-xyz/p2pmarket/base/ctx"
	"github.com/x-xyz/p2pmarket/domain"
)

var (
	// ErrNotFound is mongo document not found error
	ErrNotFound = fmt.Errorf("document not found")

	// ErrDuplicateKey is an error when violating unique index
	ErrDuplicateKey = fmt.Errorf("duplicate key")

	// ErrCollScan is error for unindexed query
	ErrCollScan = fmt.Errorf("COLLSCAN is not allowed")
)

type patchOp struct {
	patchMany bool
}

// PatchOp is an alias for functional argument
type PatchOp func(*patchOp)

// WithPatchMany specifies patchMany setting. To patch all entries selected, set patchMany = true.
func WithPatchMany(patchMany bool) PatchOp {
	return func(o *patchOp) {
		o.patchMany = patchMany
	}
}

// Mongo abstract the mongo layer.
type Mongo interface {
	// Insert inserts a new document to the table.
	// Return ErrDuplicateKey if a unique index is violated
	Insert(context ctx.Ctx, table domain.Table, insert interface{}) error

	// FindOne get data from the table
	FindOne(context ctx.Ctx, table domain.Table, query, result interface{}) error

	// Count return counting for matched entry in the table
	// https://docs.mongodb.com/manual/reference/method/db.collection.countDocuments
	Count(context ctx.Ctx, table domain.Table, selector interface{}) (n int, err error)

	// Search sort order by `sort` argument (ex "timestamp" ascending, or "-timestamp" descending).
	// A limit of 0 means no limit.
	Search(context ctx.Ctx, table domain.Table, offset, limit int, sort string, query, results interface{}) error

	// SearchNSorts sort with multiple fields, if you use compound key, make sure key order is correct. https://docs.mongodb.com/manual/tutorial/sort-results-with-indexes/
	SearchNSorts(context ctx.Ctx, table domain.Table, offset, limit int, sortFields []string, query, results interface{}) error

	// Remove remove an entry from the table
	// Return ErrNotFound if selector does not match any documents
	Remove(context ctx.Ctx, table domain.Table, selector interface{}) error

	// Patch $set fields of an entry, if the selector not exist, return err.
	// To patch all entries selected, set WithPatchMany(true).
	// Return ErrNotFound if selector does not match any documents
	Patch(context ctx.Ctx, table domain.Table, selector, update interface{}, ops ...PatchOp) error

	// FindOneAndUpdate applies a raw update document to one entry and decodes the
	// entry as it is after the update. Nothing is upserted.
	// Return ErrNotFound if selector does not match any documents
	FindOneAndUpdate(context ctx.Ctx, table domain.Table, selector interface{}, update bson.M, result interface{}) error

	// AddToSet adds `item` to the array `field` unless already present
	// Return ErrNotFound if selector does not match any documents
	AddToSet(context ctx.Ctx, table domain.Table, selector interface{}, field string, item interface{}) error

	// Pull pull all `item` out from `field` according `selector`
	// Return ErrNotFound if selector does not match any documents
	Pull(context ctx.Ctx, table domain.Table, selector interface{}, field string, item interface{}) error

	// EnsureIndexes creates the given indexes, existing identical indexes are left untouched
	EnsureIndexes(context ctx.Ctx, table domain.Table, indexes []mongo.IndexModel) error

	// RunWithTransaction runs `run` inside a multi-document transaction. Every
	// query made through the ctx handed to `run` joins the transaction.
	RunWithTransaction(context ctx.Ctx, run func(ctx.Ctx) error) error
}
