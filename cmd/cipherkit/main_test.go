package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"math/big"
	"math/rand"
	"os"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cipherkit "github.com/cipherkit/cipherkit-go"
	"github.com/cipherkit/cipherkit-go/internal/config"
)

const seed = 1

type errorReader struct{}

func (errorReader) Read(p []byte) (int, error) {
	return 0, errors.New("read failed")
}

// newTestConfig scripts stdin and isolates the command from the process
// environment. It moves into an empty directory so the default settings
// files are never found.
func newTestConfig(t *testing.T, input string, env map[string]string) (*Config, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	chdir(t, t.TempDir())

	var stdout, stderr bytes.Buffer
	cfg := &Config{
		Stdin:  strings.NewReader(input),
		Stdout: &stdout,
		Stderr: &stderr,
		LookupEnv: func(key string) (string, bool) {
			v, ok := env[key]
			return v, ok
		},
		Rand: rand.New(rand.NewSource(seed)),
	}
	return cfg, &stdout, &stderr
}

func runScript(t *testing.T, input string, args ...string) (string, string) {
	t.Helper()
	cfg, stdout, stderr := newTestConfig(t, input, nil)
	require.NoError(t, run(append([]string{"cipherkit"}, args...), cfg))
	return stdout.String(), stderr.String()
}

// sessionKeys rebuilds the key pair the first keygen of a session produces.
func sessionKeys(t *testing.T, p, q int64) (*cipherkit.PublicKey, *cipherkit.PrivateKey) {
	t.Helper()
	pub, priv, err := cipherkit.RSAGenerateKeys(
		big.NewInt(p), big.NewInt(q),
		cipherkit.WithRand(rand.New(rand.NewSource(seed))),
	)
	require.NoError(t, err)
	return pub, priv
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, os.Stdin, cfg.Stdin)
	assert.Equal(t, os.Stdout, cfg.Stdout)
	assert.Equal(t, os.Stderr, cfg.Stderr)
	assert.NotNil(t, cfg.LookupEnv)
	assert.NotNil(t, cfg.Rand)
}

func TestRun_QuitAndEndOfInput(t *testing.T) {
	out, _ := runScript(t, "4\n")
	assert.Contains(t, out, "1. Encrypt / decrypt with Caesar")
	assert.Contains(t, out, "Goodbye!")

	out, _ = runScript(t, "")
	assert.Contains(t, out, "Goodbye!")
}

func TestRun_InvalidChoice(t *testing.T) {
	out, _ := runScript(t, "9\n4\n")
	assert.Contains(t, out, "Invalid choice, please try again.")
}

func TestRun_Caesar(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"encrypt", "1\nHello, World!\n3\nc\n4\n", "Encrypted message: Khoor, Zruog!"},
		{"decrypt", "1\nKhoor, Zruog!\n3\nD\n4\n", "Decrypted message: Hello, World!"},
		{"negative key", "1\nabc\n-1\nc\n4\n", "Encrypted message: zab"},
		{"invalid key", "1\nabc\nthree\n4\n", "Invalid key!"},
		{"invalid action", "1\nabc\n3\nx\n4\n", "Invalid action."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _ := runScript(t, tt.input)
			assert.Contains(t, out, tt.want)
			assert.Contains(t, out, "Goodbye!")
		})
	}
}

func TestRun_Vigenere(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"encrypt", "2\nAttack at dawn\nLEMON\nc\n4\n", "Encrypted message: Lxfopv ef rnhr"},
		{"decrypt", "2\nLxfopv ef rnhr\n  LEMON  \nd\n4\n", "Decrypted message: Attack at dawn"},
		{"empty key", "2\nhello\n   \n4\n", "The key must not be empty!"},
		{"digit in key", "2\nhello\nab1\nc\n4\n", "Encrypted message: hfplp"},
		{"invalid action", "2\nhello\nkey\n?\n4\n", "Invalid action."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _ := runScript(t, tt.input)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestRun_RSARequiresKeys(t *testing.T) {
	out, _ := runScript(t, "3\n2\n3\n3\n4\n")
	assert.Equal(t, 2, strings.Count(out, "Generate RSA keys first (option 1)."))
}

func TestRun_RSAInvalidOption(t *testing.T) {
	out, _ := runScript(t, "3\n7\n4\n")
	assert.Contains(t, out, "Invalid RSA option.")
}

func TestRun_RSARoundTrip(t *testing.T) {
	pub, priv := sessionKeys(t, 61, 53)
	blocks, err := cipherkit.RSAEncrypt("Hi!", pub)
	require.NoError(t, err)

	input := strings.Join([]string{
		"3", "1", "61", "53",
		"3", "2", "Hi!",
		"3", "3", cipherkit.FormatBlocks(blocks),
		"4",
	}, "\n") + "\n"
	out, _ := runScript(t, input)

	assert.Contains(t, out, "RSA keys generated.")
	assert.Contains(t, out, "Public key:  "+pub.String())
	assert.Contains(t, out, "Private key: "+priv.String())
	assert.Contains(t, out, "Fingerprint: "+pub.Fingerprint())
	assert.Contains(t, out, "Message encrypted into 3 block(s):\n"+cipherkit.FormatBlocks(blocks))
	assert.Contains(t, out, "Decrypted message:\nHi!")
}

func TestRun_RSAGenerateRePrompts(t *testing.T) {
	input := strings.Join([]string{
		"3", "1",
		"abc",      // not an integer
		"61", "61", // equal
		"4", "53", // not prime
		"7", "53", // too small
		"61", "53",
		"4",
	}, "\n") + "\n"
	out, stderr := runScript(t, input)

	assert.Contains(t, out, "Please enter an integer.")
	assert.Contains(t, out, "Error: invalid argument q: p and q must be distinct")
	assert.Contains(t, out, "Error: invalid argument p: ")
	assert.Equal(t, 1, strings.Count(out, "RSA keys generated."))
	assert.Contains(t, stderr, "operation failed")
}

func TestRun_RSAGenerateEndOfInput(t *testing.T) {
	out, _ := runScript(t, "3\n1\n61\n")
	assert.NotContains(t, out, "RSA keys generated.")
	assert.Contains(t, out, "Goodbye!")
}

func TestRun_RSADecryptMalformed(t *testing.T) {
	out, _ := runScript(t, "3\n1\n61\n53\n3\n3\n[1, two]\n4\n")
	assert.Contains(t, out, "Format error! Make sure you paste the whole list.")
	assert.Contains(t, out, "Error: invalid argument blocks[1]")
}

func TestRun_RSADecryptOutOfRange(t *testing.T) {
	out, _ := runScript(t, "3\n1\n61\n53\n3\n3\n[5000]\n4\n")
	assert.Contains(t, out, "Error: invalid argument blocks[0]")
	assert.NotContains(t, out, "Decrypted message:")
}

func TestRun_RSARandomPrimes(t *testing.T) {
	cfg, stdout, _ := newTestConfig(t, "3\n4\n3\n2\nhello\n4\n", map[string]string{
		config.EnvMinPrime:     "100",
		config.EnvAutoPrimeMax: "200",
	})
	require.NoError(t, run([]string{"cipherkit"}, cfg))

	out := stdout.String()
	assert.Contains(t, out, "Chosen primes: p = ")
	assert.Contains(t, out, "RSA keys generated.")
	assert.Contains(t, out, "Message encrypted into 5 block(s):")
}

func TestRun_ReadError(t *testing.T) {
	cfg, _, _ := newTestConfig(t, "", nil)
	cfg.Stdin = errorReader{}

	err := run([]string{"cipherkit"}, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read input")
}

func TestRun_Flags(t *testing.T) {
	t.Run("help", func(t *testing.T) {
		cfg, _, stderr := newTestConfig(t, "", nil)
		require.NoError(t, run([]string{"cipherkit", "-h"}, cfg))
		assert.Contains(t, stderr.String(), "-config")
	})

	t.Run("unknown flag", func(t *testing.T) {
		cfg, _, _ := newTestConfig(t, "", nil)
		assert.Error(t, run([]string{"cipherkit", "-nope"}, cfg))
	})

	t.Run("bad log level", func(t *testing.T) {
		cfg, _, _ := newTestConfig(t, "", nil)
		err := run([]string{"cipherkit", "-log-level", "loud"}, cfg)
		assert.ErrorIs(t, err, config.ErrInvalidConfig)
	})

	t.Run("missing config file", func(t *testing.T) {
		cfg, _, _ := newTestConfig(t, "", nil)
		err := run([]string{"cipherkit", "-config", t.TempDir() + "/missing.yaml"}, cfg)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("config file", func(t *testing.T) {
		path := t.TempDir() + "/cipherkit.yaml"
		require.NoError(t, os.WriteFile(path, []byte("min_prime: 60\n"), 0o600))

		cfg, stdout, _ := newTestConfig(t, "3\n1\n53\n59\n61\n67\n4\n", nil)
		require.NoError(t, run([]string{"cipherkit", "-config", path}, cfg))
		assert.Contains(t, stdout.String(), "greater than 60")
		assert.Contains(t, stdout.String(), "Error: invalid argument p: ")
		assert.Contains(t, stdout.String(), "RSA keys generated.")
	})
}

func TestRun_DefaultFilesFromWorkingDir(t *testing.T) {
	cfg, stdout, _ := newTestConfig(t, "3\n1\n61\n53\n4\n", nil)
	require.NoError(t, os.WriteFile(config.DefaultFile, []byte("min_prime: 60\n"), 0o600))
	require.NoError(t, os.WriteFile(config.DefaultEnvFile, []byte("CIPHERKIT_LOG_LEVEL=error\n"), 0o600))

	require.NoError(t, run([]string{"cipherkit"}, cfg))
	assert.Contains(t, stdout.String(), "greater than 60")

	// A fresh session starts from an empty directory again.
	out, _ := runScript(t, "3\n1\n61\n53\n4\n")
	assert.Contains(t, out, "greater than 10")
}

func TestRun_DebugLogging(t *testing.T) {
	_, stderr := runScript(t, "3\n1\n61\n53\n4\n", "-log-level", "debug")

	assert.Contains(t, stderr, "configuration loaded")
	assert.Contains(t, stderr, "rsa keys generated")
	assert.Contains(t, stderr, "session=")
	assert.Contains(t, stderr, "fingerprint=")
}

func TestRun_JSONLogging(t *testing.T) {
	cfg, _, stderr := newTestConfig(t, "3\n1\n61\n53\n4\n", map[string]string{
		config.EnvLogFormat: "json",
		config.EnvLogLevel:  "info",
	})
	require.NoError(t, run([]string{"cipherkit"}, cfg))

	lines := strings.Split(strings.TrimSpace(stderr.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "rsa keys generated", entry["msg"])
	assert.Equal(t, "3233", entry["n"])
	assert.NotEmpty(t, entry["session"])
	assert.NotContains(t, entry, "d")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	settings := config.Defaults()
	settings.LogFormat = config.FormatJSON
	settings.LogLevel = "error"

	entry := newLogger(settings, &buf)
	assert.Equal(t, logrus.ErrorLevel, entry.Logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, entry.Logger.Formatter)
	assert.Contains(t, entry.Data, "session")

	a := newLogger(settings, &buf).Data["session"]
	assert.NotEqual(t, entry.Data["session"], a, "each session gets its own id")
}

func TestFatal(t *testing.T) {
	originalExitFunc := exitFunc
	defer func() { exitFunc = originalExitFunc }()

	var exitCode int
	exitFunc = func(code int) {
		exitCode = code
	}

	oldStderr := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w

	fatal("test error: %s", "details")

	w.Close()
	os.Stderr = oldStderr
	var buf bytes.Buffer
	buf.ReadFrom(r)

	assert.Equal(t, 1, exitCode)
	assert.Equal(t, "test error: details\n", buf.String())
}

// chdir moves into dir for the rest of the test and restores the previous
// working directory on cleanup (equivalent of testing.T.Chdir, Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
