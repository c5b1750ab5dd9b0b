package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanonicalCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"GT1024W", "GT1024W"},
		{" gt1024w ", "GT1024W"},
		{"\tGt1024W\n", "GT1024W"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, CanonicalCode(tt.in))
	}
}

func TestHashAndVerifyCode(t *testing.T) {
	hash, err := HashCode("GT1024W")
	require.NoError(t, err)

	require.NoError(t, VerifyCode("gt1024w", hash))
	require.NoError(t, VerifyCode("  GT1024W  ", hash))
	require.Error(t, VerifyCode("0000", hash))
	require.Error(t, VerifyCode("", hash))
}
