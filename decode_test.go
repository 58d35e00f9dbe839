// File: yamlhandler/decode_test.go
package yamlhandler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type serverSettings struct {
	Host    string        `yaml:"host"`
	Port    int           `yaml:"port"`
	Timeout time.Duration `yaml:"timeout"`
	Tags    []string      `yaml:"tags"`
	Debug   bool          `yaml:"debug"`
}

// TestScan tests struct decoding of subtrees
func TestScan(t *testing.T) {
	doc := `
server:
  host: localhost
  port: 8080
  timeout: 30s
  tags: alpha,beta
  debug: "true"
app:
  name: demo
`
	cfg, err := NewLoader().LoadString(doc)
	require.NoError(t, err)

	t.Run("SubtreeIntoStruct", func(t *testing.T) {
		var settings serverSettings
		require.NoError(t, cfg.Scan("server", &settings))

		assert.Equal(t, "localhost", settings.Host)
		assert.Equal(t, 8080, settings.Port)
		assert.Equal(t, 30*time.Second, settings.Timeout)
		assert.Equal(t, []string{"alpha", "beta"}, settings.Tags)
		assert.True(t, settings.Debug, "weakly typed input converts the quoted bool")
	})

	t.Run("WholeTree", func(t *testing.T) {
		var root struct {
			Server serverSettings `yaml:"server"`
			App    struct {
				Name string `yaml:"name"`
			} `yaml:"app"`
		}
		require.NoError(t, cfg.Scan("", &root))
		assert.Equal(t, "localhost", root.Server.Host)
		assert.Equal(t, "demo", root.App.Name)
	})

	t.Run("MissingPathYieldsZeroStruct", func(t *testing.T) {
		settings := serverSettings{Host: "preset"}
		require.NoError(t, cfg.Scan("absent", &settings))
		assert.Equal(t, "preset", settings.Host, "nothing to decode leaves the target untouched")
	})

	t.Run("NonPointerTarget", func(t *testing.T) {
		var settings serverSettings
		err := cfg.Scan("server", settings)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "non-nil pointer")
	})

	t.Run("ScalarPathRejected", func(t *testing.T) {
		var settings serverSettings
		err := cfg.Scan("server.port", &settings)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "non-map value")
	})

	t.Run("IntoMap", func(t *testing.T) {
		target := map[string]any{}
		require.NoError(t, cfg.Scan("app", &target))
		assert.Equal(t, map[string]any{"name": "demo"}, target)
	})
}
