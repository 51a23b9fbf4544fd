// Package cmd implements the CLI application to screen stocks for cigar butts.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/cigarbutt"
	"github.com/etnz/cigarbutt/eodhd"
	"github.com/google/subcommands"
	"github.com/ilyakaznacheev/cleanenv"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&scanCmd{}, "")
	c.Register(&evalCmd{}, "")
	c.Register(&topicCmd{}, "")
}

const eodhd_api_key = "EODHD_API_KEY"

// settings are the parameters of the commands, read from the environment
// first and then from the command line flags.
type settings struct {
	cigarbutt.Config

	APIKey  string        `env:"EODHD_API_KEY" env-description:"EODHD API key, get one at https://eodhd.com/"`
	Cache   bool          `env:"NCAV_CACHE" env-default:"false" env-description:"keep EODHD responses on disk for the day"`
	Timeout time.Duration `env:"NCAV_TIMEOUT" env-default:"0s" env-description:"timeout of each EODHD request, 0 for none"`

	envErr error // reported by Execute
}

// readEnv reads the settings from the environment variables, or their defaults.
func (s *settings) readEnv() {
	s.Config = cigarbutt.DefaultConfig()
	if err := cleanenv.ReadEnv(s); err != nil {
		s.envErr = fmt.Errorf("invalid environment: %w", err)
	}
}

// setProviderFlags registers the flags to configure the EODHD provider.
func (s *settings) setProviderFlags(f *flag.FlagSet) {
	f.StringVar(&s.APIKey, "eodhd-api-key", s.APIKey, "EODHD API key to use for consuming EODHD.com API. This flag takes precedence over the "+eodhd_api_key+" environment variable. You can get one at https://eodhd.com/")
	f.BoolVar(&s.Cache, "cache", s.Cache, "keep EODHD responses in the temp dir for the day, to resume an interrupted scan cheaply")
	f.DurationVar(&s.Timeout, "timeout", s.Timeout, "timeout of each request to EODHD, 0 for none")
}

// provider returns the EODHD client configured by the settings.
func (s *settings) provider() (*eodhd.Client, error) {
	if s.APIKey == "" {
		return nil, fmt.Errorf("EODHD API key is not set. Use -eodhd-api-key flag or %s environment variable", eodhd_api_key)
	}
	return eodhd.New(s.APIKey, eodhd.NewHTTPClient(s.Cache, s.Timeout)), nil
}

// usageEnv returns the description of the environment variables for the usage of a command.
func usageEnv() string {
	var s settings
	header := "\nEnvironment variables:"
	desc, err := cleanenv.GetDescription(&s, &header)
	if err != nil {
		return ""
	}
	return desc + "\n"
}

// printMarkdown renders md for the terminal, or prints it as is if it can't.
func printMarkdown(w io.Writer, md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err == nil {
		if out, err := r.Render(md); err == nil {
			md = out
		}
	}
	fmt.Fprint(w, md)
}
