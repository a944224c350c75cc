// Package password hashes and verifies user passwords with argon2id.
//
// The encoded form carries the algorithm parameters and salt
// ($argon2id$v=19$m=...,t=...,p=...$salt$key) so verification needs nothing
// beyond the stored string. Unlike bcrypt there is no input length cap.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Parameters follow the argon2id recommendations in RFC 9106 for
// interactive logins.
const (
	memoryKiB   = 64 * 1024
	iterations  = 1
	parallelism = 4
	saltLength  = 16
	keyLength   = 32
)

var errMalformedHash = errors.New("password: malformed hash")

// Hash derives an argon2id hash of password with a fresh random salt.
func Hash(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("password: generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, iterations, memoryKiB, parallelism, keyLength)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, memoryKiB, iterations, parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
	return encoded, nil
}

// Verify reports whether password matches the encoded hash. A malformed or
// foreign hash never panics or errors out of Verify — it simply does not match.
func Verify(password, encoded string) bool {
	salt, key, memory, time, threads, err := decodeHash(encoded)
	if err != nil {
		return false
	}

	computed := argon2.IDKey([]byte(password), salt, time, memory, threads, uint32(len(key)))
	return subtle.ConstantTimeCompare(computed, key) == 1
}

func decodeHash(encoded string) (salt, key []byte, memory, time uint32, threads uint8, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return nil, nil, 0, 0, 0, errMalformedHash
	}

	var version int
	if _, err = fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return nil, nil, 0, 0, 0, errMalformedHash
	}

	if _, err = fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return nil, nil, 0, 0, 0, errMalformedHash
	}
	if memory == 0 || time == 0 || threads == 0 {
		return nil, nil, 0, 0, 0, errMalformedHash
	}

	if salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil || len(salt) == 0 {
		return nil, nil, 0, 0, 0, errMalformedHash
	}
	if key, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil || len(key) == 0 {
		return nil, nil, 0, 0, 0, errMalformedHash
	}
	return salt, key, memory, time, threads, nil
}
