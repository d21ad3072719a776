// Package password hashes and verifies credentials with Argon2id.
//
// Hashes are self-describing PHC strings of the form
//
//	$argon2id$v=19$m=<KiB>,t=<time>,p=<threads>$<saltB64>$<keyB64>
//
// so verification never depends on current process configuration:
// the parameters and salt embedded in the record are authoritative.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Params are the Argon2id cost parameters applied to new hashes.
type Params struct {
	Memory      uint32 // KiB
	Time        uint32
	Parallelism uint8
	SaltLen     uint32
	KeyLen      uint32
}

// Default matches the argon2id recommendations for interactive logins.
var Default = Params{Memory: 64 * 1024, Time: 3, Parallelism: 1, SaltLen: 16, KeyLen: 32}

// Hash derives a PHC-encoded hash of plain with a fresh random salt.
// Two calls with the same input produce different records; both verify.
// An error here means the RNG failed and is an internal fault, not a
// property of the password.
func Hash(p Params, plain string) (string, error) {
	salt := make([]byte, p.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	key := argon2.IDKey([]byte(plain), salt, p.Time, p.Memory, p.Parallelism, p.KeyLen)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, p.Memory, p.Time, p.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify recomputes the hash of plain using the parameters and salt
// embedded in phc and compares in constant time. Malformed records
// verify as false; they never produce an error or a panic.
func Verify(plain, phc string) bool {
	params, salt, key, ok := decode(phc)
	if !ok {
		return false
	}
	derived := argon2.IDKey([]byte(plain), salt, params.Time, params.Memory, params.Parallelism, uint32(len(key)))
	return subtle.ConstantTimeCompare(derived, key) == 1
}

func decode(phc string) (Params, []byte, []byte, bool) {
	// Leading '$' yields an empty first field:
	// ["", "argon2id", "v=19", "m=..,t=..,p=..", salt, key]
	fields := strings.Split(phc, "$")
	if len(fields) != 6 || fields[0] != "" || fields[1] != "argon2id" {
		return Params{}, nil, nil, false
	}

	var version int
	if _, err := fmt.Sscanf(fields[2], "v=%d", &version); err != nil || version != argon2.Version {
		return Params{}, nil, nil, false
	}

	var p Params
	for _, kv := range strings.Split(fields[3], ",") {
		k, v, found := strings.Cut(kv, "=")
		if !found {
			return Params{}, nil, nil, false
		}
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return Params{}, nil, nil, false
		}
		switch k {
		case "m":
			p.Memory = uint32(n)
		case "t":
			p.Time = uint32(n)
		case "p":
			if n > 255 {
				return Params{}, nil, nil, false
			}
			p.Parallelism = uint8(n)
		default:
			return Params{}, nil, nil, false
		}
	}
	if p.Memory == 0 || p.Time == 0 || p.Parallelism == 0 {
		return Params{}, nil, nil, false
	}

	salt, err := base64.RawStdEncoding.DecodeString(fields[4])
	if err != nil || len(salt) == 0 {
		return Params{}, nil, nil, false
	}
	key, err := base64.RawStdEncoding.DecodeString(fields[5])
	if err != nil || len(key) == 0 {
		return Params{}, nil, nil, false
	}
	return p, salt, key, true
}
