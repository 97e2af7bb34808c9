package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcrypt(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost, "")

	hashed, err := h.Hash("Yatriwest")
	require.NoError(t, err)

	assert.NotEqual(t, "Yatriwest", string(hashed))
	assert.True(t, h.Verify(string(hashed), "Yatriwest"))
	assert.False(t, h.Verify(string(hashed), "yatriwest"))
	assert.False(t, h.Verify("not-a-hash", "Yatriwest"))
}

func TestBcrypt_Pepper(t *testing.T) {
	peppered := NewBcrypt(bcrypt.MinCost, "pepper")
	plain := NewBcrypt(bcrypt.MinCost, "")

	hashed, err := peppered.Hash("Yatri@euston")
	require.NoError(t, err)

	assert.True(t, peppered.Verify(string(hashed), "Yatri@euston"))
	assert.False(t, plain.Verify(string(hashed), "Yatri@euston"))
}

func TestBcrypt_IsHashed(t *testing.T) {
	h := NewBcrypt(0, "")
	assert.Equal(t, bcrypt.DefaultCost, h.cost)

	hashed, err := NewBcrypt(bcrypt.MinCost, "").Hash("admin123")
	require.NoError(t, err)

	assert.True(t, h.IsHashed(string(hashed)))
	assert.False(t, h.IsHashed("admin123"))
	assert.False(t, h.IsHashed(""))
}
