package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

type testAccount struct {
	Key string `json:"key"`
}

type testConfig struct {
	Name     string                 `json:"name"`
	Rate     int                    `json:"rate"`
	Accounts map[string]testAccount `json:"accounts"`
}

func TestLocalPath(t *testing.T) {
	require.Equal(t, filepath.Join("dir", "config.local.json5"), LocalPath(filepath.Join("dir", "config.json5")))
	require.Equal(t, filepath.Join("dir", "config.local"), LocalPath(filepath.Join("dir", "config")))
}

func TestReadConfig(t *testing.T) {
	t.Run("MergesLocal", func(t *testing.T) {
		config, err := ReadConfig[testConfig]("testdata/config.json5")
		require.NoError(t, err)

		expected := testConfig{
			Name: "stockbot",
			Rate: 5,
			Accounts: map[string]testAccount{
				"AMC": {Key: "amc-key"},
				"GME": {Key: "gme-key"},
			},
		}
		if diff := cmp.Diff(expected, config); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("WithoutLocal", func(t *testing.T) {
		config, err := ReadConfig[testConfig]("testdata/plain.json")
		require.NoError(t, err)
		require.Equal(t, testConfig{Name: "plain", Rate: 1}, config)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := ReadConfig[testConfig]("testdata/missing.json5")
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("Malformed", func(t *testing.T) {
		_, err := ReadConfig[testConfig]("testdata/broken.json5")
		require.ErrorContains(t, err, "broken.json5")
	})
}
