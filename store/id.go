package store

import (
	"errors"
	"regexp"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ErrNotFound is returned by lookups that match no record, including
// lookups by a malformed identifier.
var ErrNotFound = errors.New("no data found")

var idPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// IsValidID reports whether s has the shape of a store-assigned identifier.
func IsValidID(s string) bool {
	return idPattern.MatchString(s)
}

// ParseID converts s to an ObjectID. ok is false for malformed input.
func ParseID(s string) (id bson.ObjectID, ok bool) {
	if !IsValidID(s) {
		return bson.NilObjectID, false
	}
	id, err := bson.ObjectIDFromHex(s)
	if err != nil {
		return bson.NilObjectID, false
	}
	return id, true
}

// IDFilter matches the single record with the given identifier.
func IDFilter(id bson.ObjectID) bson.D {
	return bson.D{{Key: "_id", Value: id}}
}
