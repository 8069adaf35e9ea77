package scenario

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGoldenCrudRoundtrip(t *testing.T) {
	sc, err := Load("testdata/scenarios/crud_roundtrip.yaml")
	require.NoError(t, err)

	require.NoError(t, RunGolden(t, sc))
}
