package monthgrid

import (
	"errors"
	"flag"
	"fmt"
	"time"
)

type cliIntent uint8

const (
	cliIntentServe cliIntent = iota
	cliIntentCheckConfig
	cliIntentRender
)

type cliOptions struct {
	intent     cliIntent
	configPath string
	months     int
	at         time.Time
}

func parseCliOptions(args []string) (*cliOptions, error) {
	flags := flag.NewFlagSet("monthgrid", flag.ContinueOnError)

	checkConfig := flags.Bool("check-config", false, "Check whether the config is valid")
	render := flags.Bool("render", false, "Print the calendar markup and exit")
	configPath := flags.String("config", "monthgrid.yml", "Set config path")
	months := flags.Int("months", 0, "Number of months to render, defaults to the config value")
	at := flags.String("at", "", "Render starting with the month of this date (YYYY-MM-DD)")

	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	if *checkConfig && *render {
		return nil, errors.New("-check-config and -render can't be used together")
	}

	options := &cliOptions{
		intent:     cliIntentServe,
		configPath: *configPath,
		months:     *months,
	}

	if *checkConfig {
		options.intent = cliIntentCheckConfig
	} else if *render {
		options.intent = cliIntentRender
	}

	if options.months < 0 || options.months > maxMonths {
		return nil, fmt.Errorf("-months must be between 1 and %d", maxMonths)
	}

	if *at != "" {
		parsed, err := time.ParseInLocation(time.DateOnly, *at, time.Local)
		if err != nil {
			return nil, fmt.Errorf("invalid -at date %q: %w", *at, err)
		}
		options.at = parsed
	}

	return options, nil
}
