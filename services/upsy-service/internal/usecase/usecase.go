package usecase

import (
	"crypto/rand"
	"encoding/hex"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const verificationTokenBytes = 32

// generateVerificationToken returns 32 random bytes as 64 hex characters.
func generateVerificationToken() (string, error) {
	bytes := make([]byte, verificationTokenBytes)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

func isObjectID(id string) bool {
	_, err := bson.ObjectIDFromHex(id)
	return err == nil
}
