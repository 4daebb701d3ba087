package status

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test(t *testing.T) {
	for _, code := range KnownCodes {
		require.Equal(t, strconv.Itoa(int(code)), StringCode(code))
		require.NotEmpty(t, Text(code))
	}

	require.Empty(t, Text(418))
}

func TestHTTPError(t *testing.T) {
	err := ErrNotFound.WithCause("./missing.html")
	require.Equal(t, "404 Not found: ./missing.html", err.Error())
	require.Empty(t, ErrNotFound.Cause, "the canned error must stay intact")
	require.Equal(t, "501 Not Implemented", ErrMethodNotImplemented.Error())

	var herr HTTPError
	require.True(t, errors.As(error(err), &herr))
	require.Equal(t, NotFound, herr.Code)
}
