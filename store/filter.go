package store

import (
	"bytes"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
)

var notArray = bson.D{{Key: "$not", Value: bson.D{{Key: "$type", Value: "array"}}}}

// StringEquals matches records whose value at the dotted path is exactly
// value. Unlike a plain equality filter it does not match array elements,
// and it does not descend through arrays on the way to the field.
func StringEquals(path, value string) bson.D {
	parts := strings.Split(path, ".")
	filter := make(bson.D, 0, len(parts))
	for i := 1; i < len(parts); i++ {
		filter = append(filter, bson.E{Key: strings.Join(parts[:i], "."), Value: notArray})
	}
	return append(filter, bson.E{Key: path, Value: bson.D{
		{Key: "$eq", Value: value},
		{Key: "$not", Value: bson.D{{Key: "$type", Value: "array"}}},
	}})
}

// Changes reports whether applying partial to d with $set would alter it.
// Values are compared by their BSON encoding, the way the server does.
func (d Document) Changes(partial Document) bool {
	for _, e := range partial {
		current, ok := d.Lookup(strings.Split(e.Key, ".")...)
		if !ok || !sameBSON(current, e.Value) {
			return true
		}
	}
	return false
}

func sameBSON(a, b any) bool {
	ab, err := bson.Marshal(bson.D{{Key: "v", Value: a}})
	if err != nil {
		return false
	}
	bb, err := bson.Marshal(bson.D{{Key: "v", Value: b}})
	if err != nil {
		return false
	}
	return bytes.Equal(ab, bb)
}
