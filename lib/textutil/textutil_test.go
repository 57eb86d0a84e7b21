package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	require.Equal(t, "lincolndouglas", NormalizeName("  Lincoln  Douglas\n"))
	require.Equal(t, "joseperez", NormalizeName("José Pérez"))
}

func TestClosestMatch(t *testing.T) {
	events := []string{"Varsity Lincoln Douglas", "Varsity Public Forum", "Novice Public Forum"}

	require.Equal(t, 1, ClosestMatch("varsity public forum", events, 0))
	require.Equal(t, 2, ClosestMatch("novice pf", events, 0))
	require.Equal(t, 0, ClosestMatch("Varsity LD", events, 0))
	require.Equal(t, -1, ClosestMatch("anything", nil, 0))
	require.Equal(t, -1, ClosestMatch("zzzz", events, 0.99))
}
