package valueobject

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewEmail(t *testing.T) {
	t.Run("valid addresses round-trip exactly", func(t *testing.T) {
		for _, raw := range []string{
			"a@b.com",
			"user.name+tag@example.co.uk",
			"UPPER_case-1@sub.domain.org",
		} {
			email, err := NewEmail(raw)
			require.NoError(t, err, raw)
			require.Equal(t, raw, email.String())
			require.False(t, email.IsZero())
		}
	})

	t.Run("invalid addresses", func(t *testing.T) {
		for _, raw := range []string{
			"",
			"plain",
			"@no-local.com",
			"no-at-sign.com",
			"user@",
			"user@domain",
			"user@domain.c",
			"sp ace@domain.com",
		} {
			_, err := NewEmail(raw)
			require.ErrorIs(t, err, ErrInvalidEmail, "raw=%q", raw)
		}
	})
}

func TestEmailFormatting(t *testing.T) {
	email, err := NewEmail("a@b.com")
	require.NoError(t, err)
	require.Equal(t, "a@b.com", fmt.Sprintf("%s", email))
}
