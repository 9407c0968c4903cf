package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Session is the server-side record behind an issued session token.
type Session struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	UserID    bson.ObjectID `bson:"user_id"`
	UserAgent string        `bson:"user_agent,omitempty"`
	IPAddress string        `bson:"ip_address,omitempty"`
	ExpiresAt time.Time     `bson:"expires_at"`
	CreatedAt time.Time     `bson:"created_at"`
	UpdatedAt time.Time     `bson:"updated_at"`
}
