// Package repositorytest provides in-memory repositories that mimic the error
// behavior of the MongoDB implementations.
package repositorytest

import (
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// DuplicateKeyError returns an error that mongo.IsDuplicateKeyError reports as
// a duplicate key violation.
func DuplicateKeyError() error {
	return mongo.WriteException{
		WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key error"}},
	}
}
