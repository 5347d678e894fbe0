package entity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveProfile(t *testing.T) {
	tests := []struct {
		code string
		want Profile
	}{
		{"C01", Profile{Code: "C01", RoleID: 1, RoleName: RoleAdmin}},
		{"C02", Profile{Code: "C02", RoleID: 2, RoleName: RoleUser}},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got, err := ResolveProfile(tt.code)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			// resolution is deterministic
			again, err := ResolveProfile(tt.code)
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}

func TestResolveProfile_UnknownCode(t *testing.T) {
	for _, code := range []string{"", "ZZ99", "c01", "C1", " C01"} {
		t.Run("code="+code, func(t *testing.T) {
			_, err := ResolveProfile(code)
			require.Error(t, err)

			var unknown *ErrUnknownProfileCode
			require.True(t, errors.As(err, &unknown))
			assert.Equal(t, code, unknown.Code)
		})
	}
}
