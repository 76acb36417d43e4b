package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	cipherkit "github.com/cipherkit/cipherkit-go"
	"github.com/cipherkit/cipherkit-go/internal/config"
)

// maxLineSize bounds a single input line. Pasted block lists can be long.
const maxLineSize = 1 << 20

// session is one run of the menu loop. It owns the current RSA key pair.
type session struct {
	in       *bufio.Scanner
	out      io.Writer
	log      *logrus.Entry
	settings config.Settings
	rand     io.Reader

	pub  *cipherkit.PublicKey
	priv *cipherkit.PrivateKey
}

func newSession(cfg *Config, settings config.Settings, log *logrus.Entry) *session {
	in := bufio.NewScanner(cfg.Stdin)
	in.Buffer(make([]byte, 0, 4096), maxLineSize)

	return &session{
		in:       in,
		out:      cfg.Stdout,
		log:      log,
		settings: settings,
		rand:     cfg.Rand,
	}
}

// loop runs the main menu until the user quits or input ends. Only read
// failures are returned; cipher errors are shown and the loop continues.
func (s *session) loop() error {
	for {
		s.printf("\n--- cipherkit ---\n")
		s.printf("1. Encrypt / decrypt with Caesar\n")
		s.printf("2. Encrypt / decrypt with Vigenère\n")
		s.printf("3. Encrypt / decrypt with RSA\n")
		s.printf("4. Quit\n")

		choice, err := s.prompt("Choose an option: ")
		if err != nil {
			return s.finish(err)
		}

		switch strings.TrimSpace(choice) {
		case "1":
			err = s.caesar()
		case "2":
			err = s.vigenere()
		case "3":
			err = s.rsa()
		case "4":
			s.printf("Goodbye!\n")
			s.log.Debug("session ended")
			return nil
		default:
			s.printf("Invalid choice, please try again.\n")
		}
		if err != nil {
			return s.finish(err)
		}
	}
}

// finish treats end of input as a quit.
func (s *session) finish(err error) error {
	if errors.Is(err, io.EOF) {
		s.printf("\nGoodbye!\n")
		s.log.Debug("input closed, session ended")
		return nil
	}
	return fmt.Errorf("read input: %w", err)
}

func (s *session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

// prompt writes label and reads one line. It returns io.EOF once input ends.
func (s *session) prompt(label string) (string, error) {
	s.printf("%s", label)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return s.in.Text(), nil
}

// action asks whether to encrypt or decrypt and returns "c", "d" or the
// unrecognised answer.
func (s *session) action() (string, error) {
	answer, err := s.prompt("(c)ipher or (d)ecipher? ")
	if err != nil {
		return "", err
	}
	return strings.ToLower(strings.TrimSpace(answer)), nil
}

func (s *session) caesar() error {
	s.printf("\n--- Caesar cipher ---\n")
	message, err := s.prompt("Message: ")
	if err != nil {
		return err
	}
	keyText, err := s.prompt("Key (integer): ")
	if err != nil {
		return err
	}
	shift, err := strconv.Atoi(strings.TrimSpace(keyText))
	if err != nil {
		s.printf("Invalid key!\n")
		s.log.WithField("key", keyText).Debug("caesar key is not an integer")
		return nil
	}

	action, err := s.action()
	if err != nil {
		return err
	}
	switch action {
	case "c":
		s.printf("Encrypted message: %s\n", cipherkit.CaesarEncrypt(message, shift))
	case "d":
		s.printf("Decrypted message: %s\n", cipherkit.CaesarDecrypt(message, shift))
	default:
		s.printf("Invalid action.\n")
	}
	return nil
}

func (s *session) vigenere() error {
	s.printf("\n--- Vigenère cipher ---\n")
	message, err := s.prompt("Message: ")
	if err != nil {
		return err
	}
	key, err := s.prompt("Key (word): ")
	if err != nil {
		return err
	}
	key = strings.TrimSpace(key)
	if key == "" {
		s.printf("The key must not be empty!\n")
		return nil
	}

	action, err := s.action()
	if err != nil {
		return err
	}

	var (
		result string
		label  string
	)
	switch action {
	case "c":
		result, err = cipherkit.VigenereEncrypt(message, key)
		label = "Encrypted message"
	case "d":
		result, err = cipherkit.VigenereDecrypt(message, key)
		label = "Decrypted message"
	default:
		s.printf("Invalid action.\n")
		return nil
	}
	if err != nil {
		s.report("vigenere", err)
		return nil
	}
	s.printf("%s: %s\n", label, result)
	return nil
}

func (s *session) rsa() error {
	s.printf("\n--- RSA ---\n")
	s.printf("1. Generate keys (enter p and q)\n")
	s.printf("2. Encrypt a message\n")
	s.printf("3. Decrypt a message\n")
	s.printf("4. Generate keys from random primes\n")

	choice, err := s.prompt("Choose an RSA option: ")
	if err != nil {
		return err
	}

	switch strings.TrimSpace(choice) {
	case "1":
		return s.rsaGenerate()
	case "2":
		return s.rsaEncrypt()
	case "3":
		return s.rsaDecrypt()
	case "4":
		s.rsaGenerateRandom()
		return nil
	default:
		s.printf("Invalid RSA option.\n")
		return nil
	}
}

func (s *session) keyOptions() []cipherkit.KeyOption {
	return []cipherkit.KeyOption{
		cipherkit.WithRand(s.rand),
		cipherkit.WithMinPrime(s.settings.MinPrime),
	}
}

// rsaGenerate asks for p and q until a key pair can be built from them.
func (s *session) rsaGenerate() error {
	s.printf("Both numbers must be distinct primes greater than %d.\n", s.settings.MinPrime)
	for {
		p, err := s.promptInt("p = ")
		if err != nil {
			return err
		}
		if p == nil {
			continue
		}
		q, err := s.promptInt("q = ")
		if err != nil {
			return err
		}
		if q == nil {
			continue
		}

		pub, priv, err := cipherkit.RSAGenerateKeys(p, q, s.keyOptions()...)
		if err != nil {
			s.report("rsa keygen", err)
			continue
		}
		s.setKeys(pub, priv)
		return nil
	}
}

// promptInt reads a decimal integer. It returns a nil value, after telling
// the user, when the line does not parse.
func (s *session) promptInt(label string) (*big.Int, error) {
	line, err := s.prompt(label)
	if err != nil {
		return nil, err
	}
	v, ok := new(big.Int).SetString(strings.TrimSpace(line), 10)
	if !ok {
		s.printf("Please enter an integer.\n")
		return nil, nil
	}
	return v, nil
}

func (s *session) rsaGenerateRandom() {
	p, q, err := cipherkit.RSARandomPrimes(s.rand, s.settings.MinPrime, s.settings.AutoPrimeMax)
	if err != nil {
		s.report("rsa random primes", err)
		return
	}
	s.printf("Chosen primes: p = %s, q = %s\n", p, q)

	pub, priv, err := cipherkit.RSAGenerateKeys(p, q, s.keyOptions()...)
	if err != nil {
		s.report("rsa keygen", err)
		return
	}
	s.setKeys(pub, priv)
}

func (s *session) setKeys(pub *cipherkit.PublicKey, priv *cipherkit.PrivateKey) {
	s.pub, s.priv = pub, priv

	s.printf("RSA keys generated.\n")
	s.printf("Public key:  %s\n", pub)
	s.printf("Private key: %s\n", priv)
	s.printf("Fingerprint: %s\n", pub.Fingerprint())

	entry := s.log.WithFields(logrus.Fields{
		"fingerprint": pub.Fingerprint(),
		"n":           pub.N.String(),
		"block_size":  pub.BlockSize(),
	})
	if pub.BlockSize() == 0 {
		entry.Warn("modulus too small to encrypt with")
		return
	}
	entry.Info("rsa keys generated")
}

func (s *session) rsaEncrypt() error {
	if s.pub == nil {
		s.printf("Generate RSA keys first (option 1).\n")
		return nil
	}

	message, err := s.prompt("Short message to encrypt: ")
	if err != nil {
		return err
	}
	blocks, err := cipherkit.RSAEncrypt(message, s.pub)
	if err != nil {
		s.report("rsa encrypt", err)
		return nil
	}

	s.log.WithFields(logrus.Fields{
		"bytes":  len(message),
		"blocks": len(blocks),
	}).Debug("message encrypted")

	s.printf("\nMessage encrypted into %d block(s):\n", len(blocks))
	s.printf("%s\n", cipherkit.FormatBlocks(blocks))
	s.printf("\nCopy this whole list to decrypt it.\n")
	return nil
}

func (s *session) rsaDecrypt() error {
	if s.priv == nil {
		s.printf("Generate RSA keys first (option 1).\n")
		return nil
	}

	s.printf("\nPaste the list printed after encryption\n")
	line, err := s.prompt("> ")
	if err != nil {
		return err
	}

	blocks, err := cipherkit.ParseBlocks(line)
	if err != nil {
		s.printf("Format error! Make sure you paste the whole list.\n")
		s.report("rsa decrypt", err)
		return nil
	}
	text, err := cipherkit.RSADecrypt(blocks, s.priv)
	if err != nil {
		s.report("rsa decrypt", err)
		return nil
	}

	s.log.WithField("blocks", len(blocks)).Debug("message decrypted")
	s.printf("\nDecrypted message:\n%s\n", text)
	return nil
}

// report shows a cipher error to the user and logs it.
func (s *session) report(op string, err error) {
	s.printf("Error: %v\n", err)

	entry := s.log.WithField("op", op).WithError(err)
	var invalid *cipherkit.InvalidArgumentError
	if errors.As(err, &invalid) {
		entry = entry.WithField("argument", invalid.Argument)
	}
	entry.Warn("operation failed")
}
