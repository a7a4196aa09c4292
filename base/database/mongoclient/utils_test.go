package mongoclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/p2pmarket/base/ptr"
)

func TestMakeBsonM(t *testing.T) {
	type patchableListing struct {
		Title    *string  `bson:"title,omitempty"`
		Views    *int     `bson:"views,omitempty"`
		Location string   `bson:"location"`
		Tags     []string `bson:"tags,omitempty"`
		Images   []string `bson:"images,omitempty"`
		Internal string   `bson:"-"`
	}

	updater, err := MakeBsonM(&patchableListing{
		Title:    ptr.String(""),
		Views:    ptr.Int(10),
		Tags:     []string{},
		Internal: "skip",
	})
	assert.NoError(t, err)
	assert.Equal(t, bson.M{"title": "", "views": 10, "tags": []string{}}, updater)

	updater, err = MakeBsonM(patchableListing{Location: "Taipei"})
	assert.NoError(t, err)
	assert.Equal(t, bson.M{"location": "Taipei"}, updater)

	_, err = MakeBsonM("nope")
	assert.Equal(t, ErrNotStruct, err)
}

func TestPoolSize(t *testing.T) {
	assert.Equal(t, minPoolSize, PoolSize(0, 1))
	assert.Equal(t, (PoolSize(1000, 1)+1)/2, PoolSize(1000, 2))
}
