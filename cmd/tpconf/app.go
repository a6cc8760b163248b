package main

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/dargueta/tpconf/container"
	"github.com/dargueta/tpconf/errors"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"
)

const variantAuto = "auto"

func newApp(logOutput io.Writer) *cli.App {
	return &cli.App{
		Name:      "tpconf",
		Usage:     "Convert TP-Link router config backups to XML and back",
		ArgsUsage: "INFILE OUTFILE",
		Description: "If INFILE starts with an XML declaration it's encoded into a " +
			"config backup, otherwise it's decoded into XML.",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "littleendian",
				Aliases: []string{"l"},
				Usage:   "Use a little-endian size field (some routers)",
				EnvVars: []string{"TPCONF_LITTLE_ENDIAN"},
			},
			&cli.BoolFlag{
				Name:    "newline",
				Aliases: []string{"n"},
				Usage:   "Replace the NUL at the end of decoded XML with a newline",
				EnvVars: []string{"TPCONF_NEWLINE"},
			},
			&cli.BoolFlag{
				Name:    "overwrite",
				Aliases: []string{"o"},
				Usage:   "Overwrite OUTFILE if it exists",
				EnvVars: []string{"TPCONF_OVERWRITE"},
			},
			&cli.StringFlag{
				Name:    "variant",
				Value:   variantAuto,
				Usage:   "Container variant: auto, plain, w9970, or w9980",
				EnvVars: []string{"TPCONF_VARIANT"},
			},
			&cli.StringFlag{
				Name:    "key",
				Usage:   "DES key as 16 hex digits, if not the firmware default",
				EnvVars: []string{"TPCONF_KEY"},
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Log every step",
				EnvVars: []string{"TPCONF_VERBOSE"},
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Only log errors",
				EnvVars: []string{"TPCONF_QUIET"},
			},
		},
		Action: func(ctx *cli.Context) error {
			logger := newLogger(logOutput, ctx.Bool("verbose"), ctx.Bool("quiet"))
			return convertFiles(ctx, logger)
		},
	}
}

// settings holds the parsed command line.
type settings struct {
	ByteOrder binary.ByteOrder
	Newline   bool
	// Variant is zero if it should be detected.
	Variant container.Variant
	Key     []byte
}

func settingsFromContext(ctx *cli.Context) (*settings, error) {
	s := &settings{
		ByteOrder: binary.BigEndian,
		Newline:   ctx.Bool("newline"),
		Key:       container.DefaultKey[:],
	}
	if ctx.Bool("littleendian") {
		s.ByteOrder = binary.LittleEndian
	}

	if slug := ctx.String("variant"); slug != variantAuto {
		variant, err := container.ParseVariant(slug)
		if err != nil {
			return nil, err
		}
		s.Variant = variant
	}

	if keyHex := ctx.String("key"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil {
			return nil, errors.ErrInvalidArgument.WithMessage("--key must be hex").Wrap(err)
		}
		s.Key = key
	}
	return s, nil
}

func (s *settings) options(logger *slog.Logger) *container.Options {
	opts := container.DefaultOptions()
	opts.Key = s.Key
	opts.ByteOrder = s.ByteOrder
	opts.Logger = logger
	return opts
}

func newLogger(w io.Writer, verbose, quiet bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	} else if quiet {
		level = slog.LevelError
	}

	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd())
	}

	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		NoColor:    noColor,
	}))
}

func convertFiles(ctx *cli.Context, logger *slog.Logger) error {
	if ctx.NArg() != 2 {
		return errors.ErrInvalidArgument.WithMessage(
			fmt.Sprintf("expected INFILE and OUTFILE, got %d arguments", ctx.NArg()))
	}
	inputPath := ctx.Args().Get(0)
	outputPath := ctx.Args().Get(1)

	s, err := settingsFromContext(ctx)
	if err != nil {
		return err
	}

	input, err := readInput(inputPath)
	if err != nil {
		return err
	}

	output, err := convert(input, s, logger)
	if err != nil {
		return err
	}

	err = writeOutput(outputPath, output, ctx.Bool("overwrite"))
	if err != nil {
		return err
	}
	logger.Info("done", "output", outputPath, "bytes", len(output))
	return nil
}

// convert encodes `input` if it's markup and decodes it otherwise.
func convert(input []byte, s *settings, logger *slog.Logger) ([]byte, error) {
	opts := s.options(logger)

	if container.IsMarkup(input) {
		variant := s.Variant
		if variant == 0 {
			variant = container.VariantForMarkup(input)
		}
		logger.Info("XML input, building a config backup", "variant", variant.String())
		return container.Encode(input, variant, opts)
	}

	result, err := container.Decode(input, opts)
	if err != nil {
		return nil, err
	}
	if s.Variant != 0 && result.Variant != s.Variant {
		msg := fmt.Sprintf("container is %s, not %s", result.Variant, s.Variant)
		return nil, errors.ErrFormat.WithMessage(msg)
	}
	logger.Info("config backup decoded", "variant", result.Variant.String())

	markup := result.Markup
	if s.Newline {
		markup = container.ReplaceTrailingNUL(markup)
	}
	return markup, nil
}

func readInput(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return container.ReadLimited(file)
}

func writeOutput(path string, data []byte, overwrite bool) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags |= os.O_EXCL
	}

	file, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return errors.ErrInvalidArgument.WithMessage(
				fmt.Sprintf("%s exists, use -o to overwrite", path))
		}
		return err
	}

	_, err = file.Write(data)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	return err
}

// exitCode maps a fault to the process exit status. Faults not raised by the
// codec, such as I/O errors, exit with 1.
func exitCode(err error) int {
	switch errors.KindOf(err) {
	case errors.KindOK:
		return 0
	case errors.KindInvalidArgument:
		return 2
	case errors.KindFormat:
		return 3
	case errors.KindIntegrity:
		return 4
	case errors.KindDecodeInconsistency, errors.KindOverrun:
		return 5
	default:
		return 1
	}
}
