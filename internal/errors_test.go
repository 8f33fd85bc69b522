package internal

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsWarning(t *testing.T) {
	require.True(t, IsWarning(Warnf("%d artifact(s) missing", 2)))
	require.True(t, IsWarning(fmt.Errorf("status: %w", Warning("missing"))))
	require.False(t, IsWarning(errors.New("missing")))
	require.False(t, IsWarning(nil))
	require.EqualError(t, Warnf("%d artifact(s) missing", 2), "2 artifact(s) missing")
}
