package monthgrid

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/monthgrid/monthgrid/pkg/calendar"
)

const maxMonths = 24

type config struct {
	Server struct {
		Host    string `yaml:"host"`
		Port    int    `yaml:"port"`
		BaseURL string `yaml:"base-url"`
	} `yaml:"server"`

	Months   int             `yaml:"months"`
	Calendar calendar.Config `yaml:"calendar"`
}

func newConfig() *config {
	config := &config{}

	config.Server.Port = 8080
	config.Months = calendar.DefaultNumberOfMonths

	return config
}

func newConfigFromYAML(contents io.Reader) (*config, error) {
	contentBytes, err := io.ReadAll(contents)
	if err != nil {
		return nil, err
	}

	config := newConfig()

	decoder := yaml.NewDecoder(bytes.NewReader(contentBytes))
	decoder.KnownFields(true)

	// An empty file leaves the defaults in place.
	if err = decoder.Decode(config); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	if err = configIsValid(config); err != nil {
		return nil, err
	}

	return config, nil
}

func newConfigFromFile(path string) (*config, error) {
	configFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening config file: %w", err)
	}
	defer configFile.Close()

	return newConfigFromYAML(configFile)
}

func configIsValid(config *config) error {
	if config.Server.Port < 1 || config.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535, got %d", config.Server.Port)
	}

	if config.Months < 1 || config.Months > maxMonths {
		return fmt.Errorf("months must be between 1 and %d, got %d", maxMonths, config.Months)
	}

	if _, err := calendar.New(&config.Calendar); err != nil {
		return fmt.Errorf("calendar: %w", err)
	}

	return nil
}
