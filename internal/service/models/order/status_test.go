package order

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, valid := range []string{"Open", "Closed", "Cancelled", "Refunded"} {
		st, err := ParseStatus(valid)
		require.NoError(t, err)
		require.Equal(t, valid, st.String())
	}

	for _, invalid := range []string{"", "open", "Unknown", "OPEN"} {
		_, err := ParseStatus(invalid)
		require.ErrorIs(t, err, ErrInvalidStatus)
	}
}

func TestStatusCancel(t *testing.T) {
	for _, from := range []Status{StatusOpen, StatusClosed, StatusRefunded} {
		got, err := from.Cancel()
		require.NoError(t, err)
		require.Equal(t, StatusCancelled, got)
	}

	_, err := StatusCancelled.Cancel()
	require.ErrorIs(t, err, ErrAlreadyCancelled)
}
