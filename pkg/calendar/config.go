package calendar

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

const (
	keyLanguage       = "language"
	keyMonthNames     = "monthNames"
	keyWeekDayAbbrs   = "weekDayAbbrs"
	keyFirstDayOfWeek = "firstDayOfWeek"
)

// Config holds the overrides a Calendar is built from. Zero values mean
// "not given": an empty Language, nil slices and a nil FirstDayOfWeek fall
// back to the defaults of the active language. An empty but non-nil slice is
// present and fails length validation.
type Config struct {
	Language       string
	MonthNames     []string
	WeekDayAbbrs   []string
	FirstDayOfWeek *int
}

// ParseConfigJSON decodes a JSON object with the keys language, monthNames,
// weekDayAbbrs and firstDayOfWeek. Any other key fails with an
// UnknownPropertyError. Null values are treated as absent.
func ParseConfigJSON(data []byte) (*Config, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: config must be an object", ErrInvalidJSON)
	}

	config := &Config{}
	var err error

	root.ForEach(func(key, value gjson.Result) bool {
		err = config.setFromJSON(key.String(), value)
		return err == nil
	})

	if err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) setFromJSON(key string, value gjson.Result) error {
	if !isConfigKey(key) {
		return &UnknownPropertyError{Property: key}
	}

	if value.Type == gjson.Null {
		return nil
	}

	switch key {
	case keyLanguage:
		c.Language = value.String()
	case keyMonthNames:
		names, err := stringsFromJSON(key, value)
		if err != nil {
			return err
		}
		c.MonthNames = names
	case keyWeekDayAbbrs:
		abbrs, err := stringsFromJSON(key, value)
		if err != nil {
			return err
		}
		c.WeekDayAbbrs = abbrs
	case keyFirstDayOfWeek:
		day, err := weekdayNumberFromJSON(value)
		if err != nil {
			return err
		}
		c.FirstDayOfWeek = &day
	}

	return nil
}

func stringsFromJSON(key string, value gjson.Result) ([]string, error) {
	if !value.IsArray() {
		return nil, fmt.Errorf("%s must be an array of strings", key)
	}

	items := value.Array()
	values := make([]string, len(items))
	for i := range items {
		values[i] = items[i].String()
	}

	return values, nil
}

func weekdayNumberFromJSON(value gjson.Result) (int, error) {
	switch value.Type {
	case gjson.Number:
		return parseWeekdayNumber(value.Raw)
	case gjson.String:
		return parseWeekdayNumber(value.Str)
	default:
		return 0, &InvalidRangeError{Property: keyFirstDayOfWeek, Value: value.Raw}
	}
}

// UnmarshalYAML accepts the same keys as ParseConfigJSON.
func (c *Config) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: calendar config must be a mapping", node.Line)
	}

	decoded := Config{}

	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		value := node.Content[i+1]

		if !isConfigKey(key) {
			return &UnknownPropertyError{Property: key}
		}

		if value.ShortTag() == "!!null" {
			continue
		}

		var err error

		switch key {
		case keyLanguage:
			err = value.Decode(&decoded.Language)
		case keyMonthNames:
			decoded.MonthNames, err = stringsFromYAML(value)
		case keyWeekDayAbbrs:
			decoded.WeekDayAbbrs, err = stringsFromYAML(value)
		case keyFirstDayOfWeek:
			if value.Kind != yaml.ScalarNode {
				return &InvalidRangeError{Property: keyFirstDayOfWeek, Value: value.Value}
			}

			var day int
			day, err = parseWeekdayNumber(value.Value)
			decoded.FirstDayOfWeek = &day
		}

		if err != nil {
			return fmt.Errorf("line %d: %w", value.Line, err)
		}
	}

	*c = decoded

	return nil
}

func stringsFromYAML(node *yaml.Node) ([]string, error) {
	values := []string{}

	if err := node.Decode(&values); err != nil {
		return nil, err
	}

	return values, nil
}

// parseWeekdayNumber accepts integers and integral floats such as 7.0, for
// JSON and YAML alike.
func parseWeekdayNumber(value string) (int, error) {
	trimmed := strings.TrimSpace(value)

	if day, err := strconv.Atoi(trimmed); err == nil {
		return day, nil
	}

	number, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || number != math.Trunc(number) || math.Abs(number) > math.MaxInt32 {
		return 0, &InvalidRangeError{Property: keyFirstDayOfWeek, Value: value}
	}

	return int(number), nil
}

func isConfigKey(key string) bool {
	switch key {
	case keyLanguage, keyMonthNames, keyWeekDayAbbrs, keyFirstDayOfWeek:
		return true
	}

	return false
}
