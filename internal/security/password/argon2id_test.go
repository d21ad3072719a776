package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fast keeps the argon2 cost low so the test suite stays quick; the
// algorithm under test is identical.
var fast = Params{Memory: 8 * 1024, Time: 1, Parallelism: 1, SaltLen: 16, KeyLen: 32}

func TestHashAndVerify(t *testing.T) {
	t.Parallel()

	phc, err := Hash(fast, "secretpw")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(phc, "$argon2id$v=19$"))

	assert.True(t, Verify("secretpw", phc))
	assert.False(t, Verify("wrongpw", phc))
	assert.False(t, Verify("", phc))
}

func TestHashIsSalted(t *testing.T) {
	t.Parallel()

	first, err := Hash(fast, "secretpw")
	require.NoError(t, err)
	second, err := Hash(fast, "secretpw")
	require.NoError(t, err)

	// Fresh salt per call: records differ, both verify.
	assert.NotEqual(t, first, second)
	assert.True(t, Verify("secretpw", first))
	assert.True(t, Verify("secretpw", second))
}

func TestVerifyUsesEmbeddedParams(t *testing.T) {
	t.Parallel()

	phc, err := Hash(Params{Memory: 16 * 1024, Time: 2, Parallelism: 2, SaltLen: 16, KeyLen: 32}, "pw")
	require.NoError(t, err)

	// No Params argument on Verify: the record carries its own.
	assert.True(t, Verify("pw", phc))
}

func TestVerifyMalformedRecords(t *testing.T) {
	t.Parallel()

	valid, err := Hash(fast, "pw")
	require.NoError(t, err)

	cases := map[string]string{
		"empty":           "",
		"garbage":         "not-a-hash",
		"wrong algorithm": strings.Replace(valid, "argon2id", "argon2i", 1),
		"wrong version":   strings.Replace(valid, "v=19", "v=18", 1),
		"missing fields":  "$argon2id$v=19$m=8192,t=1,p=1",
		"bad params":      "$argon2id$v=19$m=zero,t=1,p=1$c2FsdA$aGFzaA",
		"zero params":     "$argon2id$v=19$m=0,t=0,p=0$c2FsdA$aGFzaA",
		"bad salt b64":    "$argon2id$v=19$m=8192,t=1,p=1$!!!$aGFzaA",
		"bad key b64":     "$argon2id$v=19$m=8192,t=1,p=1$c2FsdA$!!!",
		"truncated":       valid[:len(valid)-10],
	}

	for name, record := range cases {
		t.Run(name, func(t *testing.T) {
			assert.False(t, Verify("pw", record))
		})
	}
}
