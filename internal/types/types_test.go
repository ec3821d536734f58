package types

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tokenProgramStr = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"

func TestPubkeyRoundTrip(t *testing.T) {
	p, err := TryPubkeyFromBase58(tokenProgramStr)
	require.NoError(t, err)
	assert.Equal(t, tokenProgramStr, p.String())
}

func TestTryPubkeyFromBase58_Invalid(t *testing.T) {
	_, err := TryPubkeyFromBase58("0OIl")
	assert.Error(t, err)

	_, err = TryPubkeyFromBase58("3yZe7d")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid pubkey length")
}

func TestSignature(t *testing.T) {
	var want Signature
	for i := range want {
		want[i] = byte(i + 1)
	}
	got, err := TrySignatureFromBase58(want.String())
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = TrySignatureFromBase58(tokenProgramStr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want 64")

	_, err = TrySignatureFromBase58(strings.Repeat("0", 10))
	assert.Error(t, err)
}
