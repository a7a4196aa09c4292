package mongoclient

import (
	"errors"
	"reflect"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
)

var ErrNotStruct = errors.New("patchable must be a struct or a pointer to one")

// MakeBsonM turns a patchable struct into the fields of a $set.
// Nil pointers and nil slices are left out, set pointers are dereferenced, and
// an empty but non nil slice is kept so it clears the stored field.
func MakeBsonM(patchable interface{}) (bson.M, error) {
	val := reflect.Indirect(reflect.ValueOf(patchable))
	if val.Kind() != reflect.Struct {
		return nil, ErrNotStruct
	}

	res := bson.M{}
	typ := val.Type()
	for i := 0; i < val.NumField(); i++ {
		sf := typ.Field(i)
		if sf.PkgPath != "" {
			continue
		}
		tag, err := bsoncodec.DefaultStructTagParser(sf)
		if err != nil {
			return nil, err
		}
		if tag.Skip {
			continue
		}

		field := val.Field(i)
		switch field.Kind() {
		case reflect.Ptr, reflect.Interface:
			if !field.IsNil() {
				res[tag.Name] = field.Elem().Interface()
			}
		case reflect.Slice, reflect.Map:
			if !field.IsNil() {
				res[tag.Name] = field.Interface()
			}
		default:
			if !field.IsZero() {
				res[tag.Name] = field.Interface()
			}
		}
	}
	return res, nil
}
