package utils

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCryptAndVerify(t *testing.T) {
	hash, err := Crypt("secret-pass")
	assert.NoError(t, err)
	assert.NotEqual(t, "secret-pass", hash)

	err, ok := VerifyPassword("secret-pass", hash)
	assert.NoError(t, err)
	assert.True(t, ok)

	err, ok = VerifyPassword("wrong", hash)
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestTransfer(t *testing.T) {
	cases := []struct {
		name string
		in   interface{}
		want int64
	}{
		{"int64", int64(42), 42},
		{"float64", float64(1234567), 1234567},
		{"number", json.Number("77"), 77},
		{"string", "9001", 9001},
		{"bad string", "abc", -1},
		{"nil", nil, -1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Transfer(tc.in))
		})
	}
}

func TestGenerateIDUnique(t *testing.T) {
	seen := make(map[int64]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		id := GenerateID()
		_, dup := seen[id]
		assert.False(t, dup)
		seen[id] = struct{}{}
	}
}

func TestHexMillis(t *testing.T) {
	ts := time.UnixMilli(255)
	assert.Equal(t, "ff", HexMillis(ts))
}

func TestCleanTags(t *testing.T) {
	assert.Equal(t, []string{"go", "blog"}, CleanTags([]string{" go ", "", "  ", "blog"}))
	assert.True(t, IsValidEmail("a.b@example.com"))
	assert.False(t, IsValidEmail("not-an-email"))
}
