// Command ketjeseal seals or opens a file under a Ketje-style AEAD key read
// from an environment variable, exercising the ketje package's phase
// machine end to end. It is a demonstration tool, not a hardened file
// encryption utility: it has no file-format versioning and the nonce is
// supplied by the caller, who is responsible for never reusing one under
// the same key.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/coldforge/sponge/ketje"
)

const keyEnvVar = "KETJESEAL_KEY"

var (
	open      bool
	nonceHex  string
	assocData string
)

func init() {
	flag.BoolVar(&open, "open", false, "open (decrypt+verify) instead of seal")
	flag.StringVar(&nonceHex, "nonce", "", "hex-encoded nonce (16 bytes)")
	flag.StringVar(&assocData, "ad", "", "associated data, authenticated but not encrypted")
}

func loadKey() ([]byte, error) {
	hexKey := os.Getenv(keyEnvVar)
	if hexKey == "" {
		return nil, fmt.Errorf("ketjeseal: %s is not set", keyEnvVar)
	}
	return hex.DecodeString(hexKey)
}

func run() error {
	flag.Parse()
	if nonceHex == "" {
		return fmt.Errorf("ketjeseal: -nonce is required")
	}
	nonce, err := hex.DecodeString(nonceHex)
	if err != nil {
		return fmt.Errorf("ketjeseal: invalid -nonce: %w", err)
	}
	key, err := loadKey()
	if err != nil {
		return err
	}

	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("ketjeseal: reading stdin: %w", err)
	}

	ad := []byte(assocData)
	var output []byte
	if open {
		output, err = ketje.Open[uint64](nil, key, nonce, ad, input)
		if err != nil {
			return fmt.Errorf("ketjeseal: %w", err)
		}
	} else {
		output, err = ketje.Seal[uint64](nil, key, nonce, ad, input)
		if err != nil {
			return fmt.Errorf("ketjeseal: %w", err)
		}
	}

	_, err = os.Stdout.Write(output)
	return err
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
