// Package config loads settings for the cipherkit command.
//
// Values are layered, later sources overriding earlier ones:
//
//  1. built-in defaults
//  2. a YAML file (cipherkit.yaml unless another path is given)
//  3. a dotenv file (.env unless another path is given)
//  4. the process environment
//
// The default files are optional; a path given explicitly must exist.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	cipherkit "github.com/cipherkit/cipherkit-go"
)

const (
	// DefaultFile is the YAML file read when no path is given.
	DefaultFile = "cipherkit.yaml"
	// DefaultEnvFile is the dotenv file read when no path is given.
	DefaultEnvFile = ".env"

	// DefaultAutoPrimeMax bounds the primes picked by automatic key
	// generation. Products of primes near 1000 give two-byte blocks.
	DefaultAutoPrimeMax = 5000
	// DefaultLogLevel is the logrus level used when none is configured.
	DefaultLogLevel = "warn"
	// DefaultLogFormat is the log output format used when none is configured.
	DefaultLogFormat = FormatText
)

// Log formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Environment variables recognised in the dotenv file and the process
// environment.
const (
	EnvMinPrime     = "CIPHERKIT_MIN_PRIME"
	EnvAutoPrimeMax = "CIPHERKIT_AUTO_PRIME_MAX"
	EnvLogLevel     = "CIPHERKIT_LOG_LEVEL"
	EnvLogFormat    = "CIPHERKIT_LOG_FORMAT"
)

// ErrInvalidConfig is returned when a setting fails validation or cannot be
// parsed.
var ErrInvalidConfig = errors.New("invalid configuration")

// Settings holds every tunable of the command.
type Settings struct {
	// MinPrime is the value p and q must exceed.
	MinPrime int64 `yaml:"min_prime"`
	// AutoPrimeMax is the upper bound for randomly chosen primes.
	AutoPrimeMax int64 `yaml:"auto_prime_max"`
	// LogLevel is a logrus level name such as "debug" or "warn".
	LogLevel string `yaml:"log_level"`
	// LogFormat is FormatText or FormatJSON.
	LogFormat string `yaml:"log_format"`
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		MinPrime:     cipherkit.DefaultMinPrime,
		AutoPrimeMax: DefaultAutoPrimeMax,
		LogLevel:     DefaultLogLevel,
		LogFormat:    DefaultLogFormat,
	}
}

// LoadOptions selects the sources read by Load.
type LoadOptions struct {
	// File is the YAML path. Empty means DefaultFile, if it exists.
	File string
	// EnvFile is the dotenv path. Empty means DefaultEnvFile, if it exists.
	EnvFile string
	// LookupEnv reads the process environment. Nil means os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

// Load builds Settings from defaults, the YAML file, the dotenv file and the
// environment, then validates the result.
func Load(opts LoadOptions) (Settings, error) {
	s := Defaults()

	if err := s.applyYAML(opts.File); err != nil {
		return Settings{}, err
	}

	dotenv, err := readEnvFile(opts.EnvFile)
	if err != nil {
		return Settings{}, err
	}
	if err := s.applyEnv(func(key string) (string, bool) {
		v, ok := dotenv[key]
		return v, ok
	}); err != nil {
		return Settings{}, err
	}

	lookup := opts.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if err := s.applyEnv(lookup); err != nil {
		return Settings{}, err
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// readOptional reads path, or fallback if path is empty. A missing fallback
// yields nil data and no error.
func readOptional(path, fallback string) ([]byte, string, error) {
	explicit := path != ""
	if !explicit {
		path = fallback
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil, "", nil
		}
		return nil, path, fmt.Errorf("read %s: %w", path, err)
	}
	return data, path, nil
}

func (s *Settings) applyYAML(path string) error {
	data, path, err := readOptional(path, DefaultFile)
	if err != nil || data == nil {
		return err
	}

	if err := yaml.UnmarshalStrict(data, s); err != nil {
		return fmt.Errorf("%w: parse %s: %v", ErrInvalidConfig, path, err)
	}
	return nil
}

func readEnvFile(path string) (map[string]string, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultEnvFile
	}

	if _, err := os.Stat(path); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrInvalidConfig, path, err)
	}
	return values, nil
}

func (s *Settings) applyEnv(lookup func(string) (string, bool)) error {
	if err := envInt(lookup, EnvMinPrime, &s.MinPrime); err != nil {
		return err
	}
	if err := envInt(lookup, EnvAutoPrimeMax, &s.AutoPrimeMax); err != nil {
		return err
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		s.LogLevel = v
	}
	if v, ok := lookup(EnvLogFormat); ok && v != "" {
		s.LogFormat = v
	}
	return nil
}

func envInt(lookup func(string) (string, bool), key string, dst *int64) error {
	v, ok := lookup(key)
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}

	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfig, key, v)
	}
	*dst = n
	return nil
}

// Validate checks that the settings are usable together.
func (s Settings) Validate() error {
	var problems []string

	if s.MinPrime < 0 {
		problems = append(problems, fmt.Sprintf("min_prime must not be negative (got %d)", s.MinPrime))
	}
	if s.AutoPrimeMax <= s.MinPrime {
		problems = append(problems, fmt.Sprintf("auto_prime_max (%d) must exceed min_prime (%d)", s.AutoPrimeMax, s.MinPrime))
	}
	if _, err := logrus.ParseLevel(s.LogLevel); err != nil {
		problems = append(problems, fmt.Sprintf("log_level: %v", err))
	}
	if s.LogFormat != FormatText && s.LogFormat != FormatJSON {
		problems = append(problems, fmt.Sprintf("log_format must be %q or %q (got %q)", FormatText, FormatJSON, s.LogFormat))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
