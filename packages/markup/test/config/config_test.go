package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"markup-go/packages/markup/src/config"
	"markup-go/packages/markup/src/expression_parser"
	"markup-go/packages/markup/src/util"
)

func TestNewParserConfig(t *testing.T) {
	t.Run("should use defaults", func(t *testing.T) {
		cfg := config.NewParserConfig()
		assert.Equal(t, config.DefaultVoidElements, cfg.VoidElements)
		assert.Equal(t, []string{"script", "style"}, cfg.RawTextElements)
		assert.IsType(t, &expression_parser.Parser{}, cfg.ExpressionParser)
		assert.NotNil(t, cfg.ErrorListener)
		assert.Nil(t, cfg.Logger)
	})

	t.Run("should apply options", func(t *testing.T) {
		listener := util.NewGatheringErrorListener()
		logger := slog.Default()
		cfg := config.NewParserConfig(
			config.WithVoidElements("x"),
			config.WithRawTextElements("pre", "code"),
			config.WithErrorListener(listener),
			config.WithLogger(logger),
		)
		assert.Equal(t, []string{"x"}, cfg.VoidElements)
		assert.Equal(t, []string{"pre", "code"}, cfg.RawTextElements)
		assert.Same(t, listener, cfg.ErrorListener)
		assert.Same(t, logger, cfg.Logger)
	})

	t.Run("should ignore nil collaborators", func(t *testing.T) {
		cfg := config.NewParserConfig(config.WithExpressionParser(nil), config.WithErrorListener(nil))
		assert.NotNil(t, cfg.ExpressionParser)
		assert.NotNil(t, cfg.ErrorListener)
	})

	t.Run("should not share the default slices", func(t *testing.T) {
		cfg := config.NewParserConfig()
		cfg.VoidElements[0] = "changed"
		assert.Equal(t, "area", config.DefaultVoidElements[0])
	})
}

func TestFromViper(t *testing.T) {
	t.Run("should read element lists", func(t *testing.T) {
		v := viper.New()
		v.Set(config.KeyVoidElements, []string{"a", "B "})
		v.Set(config.KeyRawTextElements, []string{"pre"})
		cfg := config.FromViper(v)
		assert.Equal(t, []string{"a", "B"}, cfg.VoidElements)
		assert.Equal(t, []string{"pre"}, cfg.RawTextElements)
	})

	t.Run("should fall back to defaults", func(t *testing.T) {
		v, err := config.NewViper("")
		require.NoError(t, err)
		cfg := config.FromViper(v)
		assert.Equal(t, config.DefaultVoidElements, cfg.VoidElements)
		assert.Equal(t, config.DefaultRawTextElements, cfg.RawTextElements)
	})

	t.Run("should read comma separated environment values", func(t *testing.T) {
		t.Setenv("MARKUP_RAW_TEXT_ELEMENTS", "pre,code")
		v, err := config.NewViper("")
		require.NoError(t, err)
		cfg := config.FromViper(v)
		assert.Equal(t, []string{"pre", "code"}, cfg.RawTextElements)
	})

	t.Run("should read a config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "markup.yaml")
		content := "void_elements:\n  - hr\nraw_text_elements:\n  - textarea\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		v, err := config.NewViper(path)
		require.NoError(t, err)
		cfg := config.FromViper(v)
		assert.Equal(t, []string{"hr"}, cfg.VoidElements)
		assert.Equal(t, []string{"textarea"}, cfg.RawTextElements)
	})

	t.Run("should report a missing config file", func(t *testing.T) {
		_, err := config.NewViper(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})

	t.Run("should apply extra options last", func(t *testing.T) {
		v, err := config.NewViper("")
		require.NoError(t, err)
		cfg := config.FromViper(v, config.WithVoidElements("only"))
		assert.Equal(t, []string{"only"}, cfg.VoidElements)
	})
}
