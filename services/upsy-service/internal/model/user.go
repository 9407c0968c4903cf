package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type UserType string

const (
	UserTypeParent  UserType = "parent"
	UserTypeStudent UserType = "student"
)

// User represents a signed-up parent or student.
type User struct {
	ID                       bson.ObjectID `bson:"_id,omitempty"`
	Name                     string        `bson:"name"`
	Email                    string        `bson:"email"`
	PasswordHash             string        `bson:"password_hash"`
	Mobile                   string        `bson:"mobile"`
	AadharNumber             string        `bson:"aadhar_number"`
	PANNumber                string        `bson:"pan_number"`
	CollegeEmail             string        `bson:"college_email,omitempty"`
	UserType                 UserType      `bson:"user_type"`
	IsEmailVerified          bool          `bson:"is_email_verified"`
	EmailVerificationToken   string        `bson:"email_verification_token,omitempty"`
	EmailVerificationExpires *time.Time    `bson:"email_verification_expires,omitempty"`
	LastLoginAt              *time.Time    `bson:"last_login_at,omitempty"`
	CreatedAt                time.Time     `bson:"created_at"`
	UpdatedAt                time.Time     `bson:"updated_at"`
}
