// Command deckcode decodes, encodes and renders deck codes from the shell.
//
//	deckcode decode [--format json|text|cbor] CODE
//	deckcode encode [--file PATH]
//	deckcode qr [--size N] [--level L] [--out DIR] CODE
//	deckcode raw CODE
//
// Exit status is 0 on success, 1 when the codec rejects the input and 2 for
// usage errors.
package main

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/spf13/pflag"
	"github.com/youruser/deckcode/internal/codec"
	"github.com/youruser/deckcode/internal/deck"
	"github.com/youruser/deckcode/internal/deckcode"
	imagepkg "github.com/youruser/deckcode/internal/image"
	"github.com/youruser/deckcode/internal/util"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// errUsage marks failures caused by how the command was invoked.
var errUsage = errors.New("usage")

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stderr)
		return 2
	}

	var err error
	switch args[0] {
	case "decode":
		err = decodeCommand(args[1:], stdout)
	case "encode":
		err = encodeCommand(args[1:], stdin, stdout)
	case "qr":
		err = qrCommand(args[1:], stdout)
	case "raw":
		err = rawCommand(args[1:], stdout)
	case "help", "-h", "--help":
		printUsage(stdout)
		return 0
	default:
		err = fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUsage):
		fmt.Fprintf(stderr, "error: %v\n", err)
		printUsage(stderr)
		return 2
	default:
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `usage:
  deckcode decode [--format json|text|cbor] CODE
  deckcode encode [--file PATH]
  deckcode qr [--size N] [--level low|medium|high|highest] [--out DIR] CODE
  deckcode raw CODE`)
}

func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// parseCode parses flags and returns the single positional deck code.
func parseCode(fs *pflag.FlagSet, args []string) (string, error) {
	if err := fs.Parse(args); err != nil {
		return "", fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() != 1 {
		return "", fmt.Errorf("%w: %s takes exactly one deck code", errUsage, fs.Name())
	}
	return strings.TrimSpace(fs.Arg(0)), nil
}

func decodeCommand(args []string, stdout io.Writer) error {
	fs := newFlagSet("decode")
	format := fs.String("format", "json", "output format: json, text or cbor")
	code, err := parseCode(fs, args)
	if err != nil {
		return err
	}

	d, err := deckcode.Decode(code)
	if err != nil {
		return err
	}
	switch *format {
	case "json":
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	case "text":
		_, err := fmt.Fprintln(stdout, deck.ExportDeckText(d))
		return err
	case "cbor":
		b, err := codec.Marshal(d)
		if err != nil {
			return err
		}
		_, err = stdout.Write(b)
		return err
	}
	return fmt.Errorf("%w: unknown format %q", errUsage, *format)
}

func encodeCommand(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := newFlagSet("encode")
	file := fs.String("file", "", "read the deck JSON from this file instead of stdin")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	in := stdin
	if *file != "" {
		f, err := os.Open(*file)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	var d deck.Deck
	if err := json.NewDecoder(in).Decode(&d); err != nil {
		return fmt.Errorf("reading deck: %w", err)
	}
	code, err := deckcode.Encode(d)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, code)
	return err
}

func qrCommand(args []string, stdout io.Writer) error {
	fs := newFlagSet("qr")
	size := fs.Int("size", 400, "image width and height in pixels")
	level := fs.String("level", "medium", "error recovery level")
	out := fs.String("out", ".", "directory to write the PNG to")
	code, err := parseCode(fs, args)
	if err != nil {
		return err
	}
	recovery, err := imagepkg.ParseRecoveryLevel(*level)
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if *size <= 0 {
		return fmt.Errorf("%w: size must be positive", errUsage)
	}

	if _, err := deckcode.Decode(code); err != nil {
		return err
	}
	b, err := imagepkg.GenerateQRPNG(code, *size, recovery)
	if err != nil {
		return err
	}
	path := filepath.Join(*out, fmt.Sprintf("%016x.png", xxhash.Sum64String(code)))
	if err := util.WriteFile(path, b); err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, path)
	return err
}

func rawCommand(args []string, stdout io.Writer) error {
	code, err := parseCode(newFlagSet("raw"), args)
	if err != nil {
		return err
	}
	b, err := deckcode.RawBytes(code)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, hex.EncodeToString(b))
	return err
}
