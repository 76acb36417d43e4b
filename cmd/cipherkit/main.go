// Command cipherkit is an interactive menu for the Caesar, Vigenère and
// textbook RSA ciphers.
//
// Usage:
//
//	cipherkit [-config cipherkit.yaml] [-env .env] [-log-level debug]
//
// Logs go to stderr; the menu runs on stdin and stdout.
package main

import (
	"crypto/rand"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/cipherkit/cipherkit-go/internal/config"
)

// exitFunc allows tests to intercept os.Exit.
var exitFunc = os.Exit

// Config holds the streams and sources the command uses.
type Config struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// LookupEnv reads environment variables.
	LookupEnv func(string) (string, bool)
	// Rand feeds key generation and random prime selection.
	Rand io.Reader
}

// DefaultConfig returns a Config bound to the process.
func DefaultConfig() *Config {
	return &Config{
		Stdin:     os.Stdin,
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		LookupEnv: os.LookupEnv,
		Rand:      rand.Reader,
	}
}

func run(args []string, cfg *Config) error {
	name := "cipherkit"
	if len(args) > 0 {
		name = filepath.Base(args[0])
		args = args[1:]
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cfg.Stderr)
	configFile := fs.String("config", "", "YAML settings file (default "+config.DefaultFile+" if present)")
	envFile := fs.String("env", "", "dotenv settings file (default "+config.DefaultEnvFile+" if present)")
	logLevel := fs.String("log-level", "", "log level, overrides the configured one")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	settings, err := config.Load(config.LoadOptions{
		File:      *configFile,
		EnvFile:   *envFile,
		LookupEnv: cfg.LookupEnv,
	})
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if *logLevel != "" {
		settings.LogLevel = *logLevel
		if err := settings.Validate(); err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}

	log := newLogger(settings, cfg.Stderr)
	log.WithFields(logrus.Fields{
		"min_prime":      settings.MinPrime,
		"auto_prime_max": settings.AutoPrimeMax,
	}).Debug("configuration loaded")

	s := newSession(cfg, settings, log)
	return s.loop()
}

// newLogger builds the session logger. Settings must already be validated.
func newLogger(settings config.Settings, w io.Writer) *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(w)

	if level, err := logrus.ParseLevel(settings.LogLevel); err == nil {
		logger.SetLevel(level)
	}
	if settings.LogFormat == config.FormatJSON {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{DisableColors: true})
	}

	return logger.WithFields(logrus.Fields{
		"session": uuid.New().String(),
	})
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	exitFunc(1)
}
