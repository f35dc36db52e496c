package monthgrid

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monthgrid/monthgrid/pkg/calendar"
)

func TestNewConfigFromYAMLDefaults(t *testing.T) {
	config, err := newConfigFromYAML(strings.NewReader(""))
	require.NoError(t, err)

	assert.Equal(t, 8080, config.Server.Port)
	assert.Equal(t, calendar.DefaultNumberOfMonths, config.Months)
	assert.Empty(t, config.Calendar.Language)
	assert.Nil(t, config.Calendar.FirstDayOfWeek)
}

func TestNewConfigFromYAML(t *testing.T) {
	config, err := newConfigFromYAML(strings.NewReader(`
server:
  host: 127.0.0.1
  port: 9000
  base-url: /calendar/
months: 3
calendar:
  language: ru
  firstDayOfWeek: 7
`))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", config.Server.Host)
	assert.Equal(t, 9000, config.Server.Port)
	assert.Equal(t, "/calendar/", config.Server.BaseURL)
	assert.Equal(t, 3, config.Months)
	assert.Equal(t, "ru", config.Calendar.Language)
	require.NotNil(t, config.Calendar.FirstDayOfWeek)
	assert.Equal(t, 7, *config.Calendar.FirstDayOfWeek)
}

func TestNewConfigFromYAMLErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains string
		target   error
	}{
		{
			name:     "unknown top level field",
			input:    "foo: 1\n",
			contains: "field foo not found",
		},
		{
			name:     "port out of range",
			input:    "server:\n  port: 70000\n",
			contains: "server port must be between 1 and 65535",
		},
		{
			name:     "zero months",
			input:    "months: 0\n",
			contains: "months must be between 1 and 24",
		},
		{
			name:   "unknown calendar property",
			input:  "calendar:\n  foo: 1\n",
			target: calendar.ErrUnknownProperty,
		},
		{
			name:   "eleven month names",
			input:  "calendar:\n  monthNames: [a, b, c, d, e, f, g, h, i, j, k]\n",
			target: calendar.ErrInvalidLength,
		},
		{
			name:   "first day of week out of range",
			input:  "calendar:\n  firstDayOfWeek: 9\n",
			target: calendar.ErrInvalidRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newConfigFromYAML(strings.NewReader(tt.input))
			require.Error(t, err)

			if tt.contains != "" {
				assert.Contains(t, err.Error(), tt.contains)
			}

			if tt.target != nil {
				assert.True(t, errors.Is(err, tt.target), "got %v", err)
			}
		})
	}
}

func TestNewConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "monthgrid.yml")
	require.NoError(t, os.WriteFile(path, []byte("months: 2\n"), 0o644))

	config, err := newConfigFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, config.Months)

	_, err = newConfigFromFile(filepath.Join(t.TempDir(), "missing.yml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
