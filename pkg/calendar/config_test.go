package calendar

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseConfigJSON(t *testing.T) {
	config, err := ParseConfigJSON([]byte(`{
		"language": "ru",
		"monthNames": ["1","2","3","4","5","6","7","8","9","10","11","12"],
		"weekDayAbbrs": ["a","b","c","d","e","f","g"],
		"firstDayOfWeek": 7
	}`))
	require.NoError(t, err)

	assert.Equal(t, "ru", config.Language)
	assert.Len(t, config.MonthNames, 12)
	assert.Equal(t, "g", config.WeekDayAbbrs[6])
	require.NotNil(t, config.FirstDayOfWeek)
	assert.Equal(t, 7, *config.FirstDayOfWeek)
}

func TestParseConfigJSONFirstDayOfWeek(t *testing.T) {
	tests := []struct {
		input   string
		want    *int
		wantErr error
	}{
		{`{"firstDayOfWeek": 3}`, intPtr(3), nil},
		{`{"firstDayOfWeek": "3"}`, intPtr(3), nil},
		{`{"firstDayOfWeek": 3.0}`, intPtr(3), nil},
		{`{"firstDayOfWeek": null}`, nil, nil},
		{`{"firstDayOfWeek": 0}`, intPtr(0), nil},
		{`{"firstDayOfWeek": 7.5}`, nil, ErrInvalidRange},
		{`{"firstDayOfWeek": "sunday"}`, nil, ErrInvalidRange},
		{`{"firstDayOfWeek": true}`, nil, ErrInvalidRange},
		{`{"firstDayOfWeek": [1]}`, nil, ErrInvalidRange},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			config, err := ParseConfigJSON([]byte(tt.input))

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, config.FirstDayOfWeek)
		})
	}
}

func TestParseConfigJSONErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		target error
	}{
		{"unknown property", `{"foo": 1}`, ErrUnknownProperty},
		{"unknown null property", `{"foo": null}`, ErrUnknownProperty},
		{"unknown after known", `{"language": "en", "firstDay": 1}`, ErrUnknownProperty},
		{"malformed", `{"language": `, ErrInvalidJSON},
		{"not an object", `[1, 2]`, ErrInvalidJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := ParseConfigJSON([]byte(tt.input))
			require.Error(t, err)
			assert.Nil(t, config)
			assert.True(t, errors.Is(err, tt.target), "got %v", err)
		})
	}

	_, err := ParseConfigJSON([]byte(`{"foo": 1}`))
	var unknownErr *UnknownPropertyError
	require.True(t, errors.As(err, &unknownErr))
	assert.Equal(t, "foo", unknownErr.Property)
	assert.Equal(t, "setting unknown property: foo", err.Error())

	_, err = ParseConfigJSON([]byte(`{"monthNames": "January"}`))
	assert.EqualError(t, err, "monthNames must be an array of strings")
}

func TestParseConfigJSONThenNew(t *testing.T) {
	config, err := ParseConfigJSON([]byte(`{"monthNames": ["a", "b"]}`))
	require.NoError(t, err)

	_, err = New(config)
	assert.True(t, errors.Is(err, ErrInvalidLength))

	config, err = ParseConfigJSON([]byte(`{"firstDayOfWeek": 9}`))
	require.NoError(t, err)

	_, err = New(config)
	assert.True(t, errors.Is(err, ErrInvalidRange))
}

func TestConfigUnmarshalYAML(t *testing.T) {
	var document struct {
		Calendar Config `yaml:"calendar"`
	}

	err := yaml.Unmarshal([]byte(`
calendar:
  language: be
  firstDayOfWeek: 7
  weekDayAbbrs: [a, b, c, d, e, f, g]
`), &document)
	require.NoError(t, err)

	assert.Equal(t, "be", document.Calendar.Language)
	assert.Nil(t, document.Calendar.MonthNames)
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f", "g"}, document.Calendar.WeekDayAbbrs)
	require.NotNil(t, document.Calendar.FirstDayOfWeek)
	assert.Equal(t, 7, *document.Calendar.FirstDayOfWeek)
}

func TestConfigUnmarshalYAMLErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		target error
	}{
		{"unknown property", "calendar:\n  foo: 1\n", ErrUnknownProperty},
		{"non integer first day", "calendar:\n  firstDayOfWeek: monday\n", ErrInvalidRange},
		{"fractional first day", "calendar:\n  firstDayOfWeek: 1.5\n", ErrInvalidRange},
		{"sequence first day", "calendar:\n  firstDayOfWeek: [1]\n", ErrInvalidRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var document struct {
				Calendar Config `yaml:"calendar"`
			}

			err := yaml.Unmarshal([]byte(tt.input), &document)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.target), "got %v", err)
		})
	}
}

func TestConfigUnmarshalYAMLEmptyListIsPresent(t *testing.T) {
	var document struct {
		Calendar Config `yaml:"calendar"`
	}

	require.NoError(t, yaml.Unmarshal([]byte("calendar:\n  monthNames: []\n  firstDayOfWeek: ~\n"), &document))

	assert.NotNil(t, document.Calendar.MonthNames)
	assert.Nil(t, document.Calendar.FirstDayOfWeek)

	_, err := New(&document.Calendar)
	assert.True(t, errors.Is(err, ErrInvalidLength))
}

func TestFirstDayOfWeekDecodersAgree(t *testing.T) {
	tests := []struct {
		value   string
		want    int
		wantErr bool
	}{
		{"7", 7, false},
		{"7.0", 7, false},
		{"1e0", 1, false},
		{"7.5", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			fromJSON, jsonErr := ParseConfigJSON([]byte(`{"firstDayOfWeek": ` + tt.value + `}`))

			var document struct {
				Calendar Config `yaml:"calendar"`
			}
			yamlErr := yaml.Unmarshal([]byte("calendar:\n  firstDayOfWeek: "+tt.value+"\n"), &document)

			if tt.wantErr {
				assert.ErrorIs(t, jsonErr, ErrInvalidRange)
				assert.ErrorIs(t, yamlErr, ErrInvalidRange)
				return
			}

			require.NoError(t, jsonErr)
			require.NoError(t, yamlErr)
			assert.Equal(t, tt.want, *fromJSON.FirstDayOfWeek)
			assert.Equal(t, tt.want, *document.Calendar.FirstDayOfWeek)
		})
	}
}
