package security

import (
	"github.com/matthewhartstonge/argon2"
)

// passwordConfig fixes the argon2id work factor for every stored hash.
var passwordConfig = argon2.Config{
	HashLength:  32,
	SaltLength:  16,
	TimeCost:    3,
	MemoryCost:  64 * 1024,
	Parallelism: 2,
	Mode:        argon2.ModeArgon2id,
	Version:     argon2.Version13,
}

// HashPassword returns the encoded argon2id hash of password.
func HashPassword(password string) (string, error) {
	encoded, err := passwordConfig.HashEncoded([]byte(password))
	if err != nil {
		return "", err
	}

	return string(encoded), nil
}

// VerifyPassword reports whether password matches the encoded hash.
func VerifyPassword(password, encodedHash string) (bool, error) {
	return argon2.VerifyEncoded([]byte(password), []byte(encodedHash))
}
