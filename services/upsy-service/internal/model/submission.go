package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Purpose string

const (
	PurposeCourse   Purpose = "course"
	PurposeTrip     Purpose = "trip"
	PurposeExchange Purpose = "exchange"
	PurposeOther    Purpose = "other"
)

func (p Purpose) Valid() bool {
	switch p {
	case PurposeCourse, PurposeTrip, PurposeExchange, PurposeOther:
		return true
	}
	return false
}

// Submission is a lead captured from the public form. It is never modified
// after insert.
type Submission struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string        `bson:"name"          json:"name"`
	Email     string        `bson:"email"         json:"email"`
	Phone     string        `bson:"phone"         json:"phone"`
	College   string        `bson:"college"       json:"college"`
	Purpose   Purpose       `bson:"purpose"       json:"purpose"`
	CreatedAt time.Time     `bson:"created_at"    json:"createdAt"`
	UpdatedAt time.Time     `bson:"updated_at"    json:"updatedAt"`
}
