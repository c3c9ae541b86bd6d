// lsbstego hides a short text message in the least significant bits of a
// file and finds it again.
//
// The first argument selects the operation:
//
//	lsbstego hide --input in.png --output out.png --message "Hi"
//	lsbstego find --input out.png --length 2
//	lsbstego inspect --input out.png
//
// With --interactive the same values are asked for on stdin.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"
	stego "github.com/yyyoichi/lsb_zero"
	"github.com/yyyoichi/lsb_zero/internal/config"
	"github.com/yyyoichi/lsb_zero/internal/fileio"
	"github.com/yyyoichi/lsb_zero/mark"
	"gopkg.in/yaml.v3"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := parseArgs(args, stdin, stdout, stderr)
	if errors.Is(err, pflag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	s, err := newStego(cfg)
	if err != nil {
		return err
	}

	switch cfg.Mode {
	case config.Hide:
		return hide(logger, s, cfg)
	case config.Find:
		return find(logger, s, cfg, stdout)
	default:
		return inspect(logger, s, cfg, stdout)
	}
}

func parseArgs(args []string, stdin io.Reader, stdout, stderr io.Writer) (config.Config, error) {
	var (
		configPath   string
		input        string
		output       string
		message      string
		length       int
		ecc          string
		seed         int64
		lengthHeader bool
		lenient      bool
		offset       int
		logLevel     string
		interactive  bool
	)
	flagSet := pflag.NewFlagSet("lsbstego", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&configPath, "config", "", "YAML config file; flags override its values")
	flagSet.StringVarP(&input, "input", "i", "", "carrier file to read")
	flagSet.StringVarP(&output, "output", "o", "", "file to write the carrier with the hidden message to (hide)")
	flagSet.StringVarP(&message, "message", "m", "", "message to hide (hide)")
	flagSet.IntVarP(&length, "length", "n", 0, "length of the hidden message in bytes (find)")
	flagSet.StringVar(&ecc, "ecc", "none", "payload error correction: none or golay")
	flagSet.Int64Var(&seed, "seed", mark.DefaultShuffleSeed, "bit shuffle seed for golay")
	flagSet.BoolVar(&lengthHeader, "length-header", false, "store the message length and a checksum in the carrier")
	flagSet.BoolVar(&lenient, "lenient", false, "read bits past the end of the carrier as zero (find)")
	flagSet.IntVar(&offset, "offset", 0, "bytes to skip instead of the detected header size")
	flagSet.StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")
	flagSet.BoolVar(&interactive, "interactive", false, "ask for the input values on stdin")
	flagSet.Usage = func() { printHelp(flagSet, stderr) }

	if err := flagSet.Parse(args); err != nil {
		return config.Config{}, err
	}

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.LoadFile(configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	positional := flagSet.Args()
	if len(positional) > 1 {
		return cfg, fmt.Errorf("unexpected argument: %s", positional[1])
	}
	if len(positional) == 1 {
		cfg.Mode = config.Mode(strings.ToLower(positional[0]))
	}

	if flagSet.Changed("input") {
		cfg.Input = input
	}
	if flagSet.Changed("output") {
		cfg.Output = output
	}
	if flagSet.Changed("message") {
		cfg.Message = message
	}
	if flagSet.Changed("length") {
		cfg.Length = length
	}
	if flagSet.Changed("ecc") {
		cfg.ECC = ecc
	}
	if flagSet.Changed("seed") {
		cfg.Seed = seed
	}
	if flagSet.Changed("length-header") {
		cfg.LengthHeader = lengthHeader
	}
	if flagSet.Changed("lenient") {
		cfg.Lenient = lenient
	}
	if flagSet.Changed("offset") {
		cfg.Offset = &offset
	}
	if flagSet.Changed("log-level") {
		cfg.LogLevel = logLevel
	}

	if interactive {
		if err := prompt(&cfg, stdin, stdout); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

func newStego(cfg config.Config) (*stego.Stego, error) {
	var opts []stego.Option
	if strings.EqualFold(cfg.ECC, "golay") {
		opts = append(opts, stego.WithCodec(mark.New(mark.WithGolay(cfg.Seed))))
	}
	if cfg.LengthHeader {
		opts = append(opts, stego.WithLengthHeader())
	}
	if cfg.Lenient {
		opts = append(opts, stego.WithLenientFind())
	}
	if cfg.Offset != nil {
		opts = append(opts, stego.WithOffset(*cfg.Offset))
	}
	return stego.New(opts...)
}

func load(logger *slog.Logger, s *stego.Stego, path string) ([]byte, error) {
	logger.Info("opening input file", "path", path)
	carrier, err := fileio.ReadAll(path)
	if err != nil {
		return nil, err
	}
	logger.Info("input file size", "size", humanize.Bytes(uint64(len(carrier))), "bytes", len(carrier))
	logger.Info("identified file type",
		"kind", stego.Detect(carrier),
		"header_size", s.Offset(carrier),
		"codec", s.Codec().Name(),
	)
	return carrier, nil
}

func hide(logger *slog.Logger, s *stego.Stego, cfg config.Config) error {
	carrier, err := load(logger, s, cfg.Input)
	if err != nil {
		return err
	}
	logger.Info("maximum message length", "bytes", s.Capacity(carrier))

	out, err := s.Hide(carrier, []byte(cfg.Message))
	if err != nil {
		return fmt.Errorf("hiding message in %s: %w", cfg.Input, err)
	}
	logger.Debug("writing output file", "path", cfg.Output, "bytes", len(out))
	if err := fileio.WriteAll(cfg.Output, out, 0o644); err != nil {
		return err
	}
	logger.Info("message hidden successfully", "output", cfg.Output)
	return nil
}

func find(logger *slog.Logger, s *stego.Stego, cfg config.Config, stdout io.Writer) error {
	carrier, err := load(logger, s, cfg.Input)
	if err != nil {
		return err
	}
	message, err := s.Find(carrier, cfg.Length)
	if err != nil {
		return fmt.Errorf("finding message in %s: %w", cfg.Input, err)
	}
	// text ends at the first NUL, as when the length overshoots the message
	if i := bytes.IndexByte(message, 0); i >= 0 {
		message = message[:i]
	}
	fmt.Fprintf(stdout, "Hidden message: %s\n", message)
	return nil
}

func inspect(logger *slog.Logger, s *stego.Stego, cfg config.Config, stdout io.Writer) error {
	carrier, err := load(logger, s, cfg.Input)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(stdout)
	defer enc.Close()
	return enc.Encode(s.Inspect(carrier))
}

func printHelp(flagSet *pflag.FlagSet, w io.Writer) {
	fmt.Fprintf(w, `lsbstego hides a message in the least significant bits of a file.

Usage:
  lsbstego hide    --input FILE --output FILE --message TEXT [flags]
  lsbstego find    --input FILE --length N [flags]
  lsbstego inspect --input FILE [flags]
  lsbstego --interactive

The first bytes of the file are left untouched: 54 for BMP, 8 for PNG
and 1024 for JPG and any other file. Each message byte takes 8 file
bytes. Without --length-header the message length is not stored, so
find needs the length that was hidden.

Flags:
%s`, flagSet.FlagUsages())
}
