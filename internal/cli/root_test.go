package cli

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inkwell-cms/inkwell-go/internal/errs"
)

func Test_parseID(t *testing.T) {
	id, err := parseID("42")
	require.NoError(t, err)
	require.Equal(t, int64(42), id)

	for _, bad := range []string{"", "abc", "0", "-3", "1.5"} {
		_, err := parseID(bad)
		require.Error(t, err, bad)
	}
}

func Test_friendly(t *testing.T) {
	require.NoError(t, friendly(nil))

	err := friendly(fmt.Errorf("wrapped: %w", errs.ErrSessionExpired))
	require.ErrorContains(t, err, "login")

	err = friendly(errs.ErrNoRefreshToken)
	require.ErrorContains(t, err, "login")

	plain := fmt.Errorf("boom")
	require.Equal(t, plain, friendly(plain))
}
