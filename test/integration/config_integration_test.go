//go:build integration

package integration

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/library-console/internal/adapters/console"
	"github.com/jsamuelsen/library-console/internal/app"
	"github.com/jsamuelsen/library-console/internal/platform/config"
)

// writeConfig writes a YAML file under configs/ in the current directory.
func writeConfig(t *testing.T, name, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll("configs", 0o755))
	require.NoError(t, os.WriteFile(filepath.Join("configs", name), []byte(content), 0o600))
}

// runConfigured builds a console from cfg and plays input through it.
func runConfigured(t *testing.T, cfg *config.Config, input string) (string, *app.LendingRegistry) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	msgs, err := console.MessagesFor(cfg.Console.Language)
	require.NoError(t, err)

	lending := app.NewLendingRegistry(app.LendingRegistryConfig{Logger: logger})
	var out bytes.Buffer

	c, err := console.New(console.Config{
		In:              strings.NewReader(input),
		Out:             &out,
		Catalog:         app.NewCatalog(app.CatalogConfig{Logger: logger}),
		Lending:         lending,
		Messages:        &msgs,
		DefaultQuantity: cfg.Lending.DefaultQuantity,
		Logger:          logger,
	})
	require.NoError(t, err)
	require.NoError(t, c.Run(context.Background()))

	return out.String(), lending
}

// TestConfig_DefaultsMatchPlainConsole verifies that with no config files the
// console seeds three copies and speaks English.
func TestConfig_DefaultsMatchPlainConsole(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load("")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	out, lending := runConfigured(t, cfg, "1\nDune\nHerbert\n8\n")

	count, ok := lending.Count("Dune")
	require.True(t, ok)
	assert.Equal(t, 3, count)
	assert.Contains(t, out, "Book added: Dune by Herbert")
	assert.False(t, cfg.Admin.Enabled)
}

// TestConfig_ProfileOverridesBase verifies file layering reaches the console.
func TestConfig_ProfileOverridesBase(t *testing.T) {
	t.Chdir(t.TempDir())

	writeConfig(t, "base.yaml", "lending:\n  default_quantity: 5\nconsole:\n  language: en\n")
	writeConfig(t, "test.yaml", "console:\n  language: ko\n")

	cfg, err := config.Load("test")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	out, lending := runConfigured(t, cfg, "1\nDune\nHerbert\n8\n")

	count, _ := lending.Count("Dune")
	assert.Equal(t, 5, count)
	assert.Contains(t, out, "책이 추가되었습니다: Dune by Herbert")
}

// TestConfig_EnvironmentOverridesFiles verifies APP_ variables win over files.
func TestConfig_EnvironmentOverridesFiles(t *testing.T) {
	t.Chdir(t.TempDir())
	writeConfig(t, "base.yaml", "lending:\n  default_quantity: 5\n")
	t.Setenv("APP_LENDING_DEFAULT_QUANTITY", "1")

	cfg, err := config.Load("")
	require.NoError(t, err)

	out, lending := runConfigured(t, cfg, "1\nDune\nHerbert\n5\nDune\n5\nDune\n8\n")

	count, _ := lending.Count("Dune")
	assert.Equal(t, 0, count)
	assert.Contains(t, out, "Dune is out of stock.")
}

// TestConfig_InvalidConfiguration verifies bad values are rejected before
// a console is ever built.
func TestConfig_InvalidConfiguration(t *testing.T) {
	tests := []struct {
		name    string
		base    string
		wantErr string
	}{
		{
			name:    "negative quantity",
			base:    "lending:\n  default_quantity: -1\n",
			wantErr: "lending.default_quantity",
		},
		{
			name:    "unknown language",
			base:    "console:\n  language: fr\n",
			wantErr: "console.language",
		},
		{
			name:    "admin port out of range",
			base:    "admin:\n  enabled: true\n  port: 70000\n",
			wantErr: "admin.port",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			writeConfig(t, "base.yaml", tt.base)

			cfg, err := config.Load("")
			require.NoError(t, err)

			err = cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
