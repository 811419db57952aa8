package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBindCommand(t *testing.T) {
	testStore(t, backendReg)
	seedFilters(t)
	seedDMO(t)

	t.Run("filter", func(t *testing.T) {
		out, err := captureOutput(t, func() error { return runBind([]string{"legacy-filters", "Foo"}) })
		require.NoError(t, err)
		assertContains(t, out, []string{
			`Bound @device:sw:` + legacyFilters + `\Foo`,
			"Class: " + fooClass,
			"CLSID: " + fooClass,
			"FriendlyName: Foo Filter",
			"Merit: 2097152",
		})
		assertNotContains(t, out, []string{"FilterData", "Wrapped"})
	})

	t.Run("transform object", func(t *testing.T) {
		jsonOut = true
		defer func() { jsonOut = false }()

		out, err := captureOutput(t, func() error { return runBind([]string{"audio-decoder", decoderClass}) })
		require.NoError(t, err)

		var res bindResult
		require.NoError(t, json.Unmarshal([]byte(out), &res))
		require.True(t, res.Wrapper)
		require.Equal(t, decoderClass, res.ClassID)
		require.Equal(t, audioDecoder, res.Category)
		require.Empty(t, res.Properties)
	})

	t.Run("missing class", func(t *testing.T) {
		setType = "sz"
		_, err := captureOutput(t, func() error { return runSet([]string{"legacy-filters", "Loose", "FriendlyName", "x"}) })
		require.NoError(t, err)

		_, err = captureOutput(t, func() error { return runBind([]string{"legacy-filters", "Loose"}) })
		require.Error(t, err)
	})
}
