package basemap

import (
	"testing"

	"github.com/mapsketch/annotator/internal/config"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults(t *testing.T) config.BasemapConfig {
	t.Helper()
	t.Cleanup(viper.Reset)
	config.SetDefaults()
	c, err := config.Get()
	require.NoError(t, err)
	return c.Basemap
}

func TestCatalog_Defaults(t *testing.T) {
	c, err := New(defaults(t))
	require.NoError(t, err)

	assert.Equal(t, []string{"cartodb", "dark", "osm", "satellite"}, c.Names())
	assert.Equal(t, "osm", c.Default().Name)
	assert.Equal(t, "&copy; OpenStreetMap contributors", c.Default().Attribution)

	s, err := c.Lookup("Satellite")
	require.NoError(t, err)
	assert.Contains(t, s.URL, "World_Imagery")
	assert.Len(t, c.All(), 4)
}

func TestCatalog_Unknown(t *testing.T) {
	c, err := New(defaults(t))
	require.NoError(t, err)

	_, err = c.Lookup("watercolor")
	assert.ErrorIs(t, err, ErrUnknownBasemap)
}

func TestNew_UnknownDefault(t *testing.T) {
	_, err := New(config.BasemapConfig{
		Default: "missing",
		Sources: map[string]config.BasemapSource{"osm": {URL: "u"}},
	})
	assert.ErrorIs(t, err, ErrUnknownBasemap)
}
