// Command spongesum computes SHA3-224/256/384/512 or SHAKE128/256 digests
// of files or stdin, grounded on coruus-go-sha3/cmd/shakesum's flag-based
// single-purpose CLI shape.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/coldforge/sponge/sha3"
)

var (
	algorithm  string
	shakeBytes int
)

func init() {
	flag.StringVar(&algorithm, "a", "sha3-256", "digest algorithm: sha3-224, sha3-256, sha3-384, sha3-512, shake128, shake256")
	flag.IntVar(&shakeBytes, "n", 32, "output length in bytes, for shake128/shake256 only")
}

func newHasher() (io.Writer, func() []byte, error) {
	switch algorithm {
	case "sha3-224":
		h := sha3.New224()
		return h, func() []byte { return h.Sum(nil) }, nil
	case "sha3-256":
		h := sha3.New256()
		return h, func() []byte { return h.Sum(nil) }, nil
	case "sha3-384":
		h := sha3.New384()
		return h, func() []byte { return h.Sum(nil) }, nil
	case "sha3-512":
		h := sha3.New512()
		return h, func() []byte { return h.Sum(nil) }, nil
	case "shake128":
		sh := sha3.NewShake128()
		return sh, func() []byte { out := make([]byte, shakeBytes); _, _ = sh.Read(out); return out }, nil
	case "shake256":
		sh := sha3.NewShake256()
		return sh, func() []byte { out := make([]byte, shakeBytes); _, _ = sh.Read(out); return out }, nil
	default:
		return nil, nil, fmt.Errorf("spongesum: unknown algorithm %q", algorithm)
	}
}

func sumReader(r io.Reader) (string, error) {
	w, sum, err := newHasher()
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(w, r); err != nil {
		return "", err
	}
	return hex.EncodeToString(sum()), nil
}

func sumFile(filename string) (string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return sumReader(f)
}

func main() {
	flag.Parse()

	if flag.NArg() == 0 {
		checksum, err := sumReader(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "spongesum: %s\n", err)
			os.Exit(1)
		}
		fmt.Println(checksum)
		return
	}

	status := 0
	for _, filename := range flag.Args() {
		checksum, err := sumFile(filename)
		if err != nil {
			fmt.Fprintf(os.Stderr, "spongesum: %s: %s\n", filename, err)
			status = 1
			continue
		}
		fmt.Printf("%s  %s\n", checksum, filename)
	}
	os.Exit(status)
}
