package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/raymyers/cconv/pkg/config"
	"github.com/raymyers/cconv/pkg/convert"
	"github.com/raymyers/cconv/pkg/logging"
	"github.com/raymyers/cconv/pkg/server"
)

var version = "0.1.0"

// Conversion options
var (
	outputPath string
	target     string
	report     bool
	verbose    bool
)

// Serve options
var (
	serveAddr  string
	configPath string
)

// conversionReport is what --report prints to stderr.
type conversionReport struct {
	Input     string         `yaml:"input"`
	Output    string         `yaml:"output"`
	Direction string         `yaml:"direction"`
	BytesIn   int            `yaml:"bytesIn"`
	BytesOut  int            `yaml:"bytesOut"`
	Rewrites  map[string]int `yaml:"rewrites"`
}

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := newRootCmd(os.Stdout, os.Stderr)
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cconv [file|-]",
		Short: "cconv converts C source to C++ and back",
		Long: `cconv is a heuristic C <-> C++ source converter. It rewrites
printf/scanf and std::cout/std::cin, malloc/calloc/free and new/delete,
headers, NULL/nullptr and struct tags. It does not parse the program:
anything it does not recognize is copied through unchanged.

The target is taken from --to, else from the extension of --output,
else a .c input converts to C++ and anything else converts to C.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			input := "-"
			if len(args) == 1 {
				input = args[0]
			}
			if err := doConvert(input, cmd.InOrStdin(), out, errOut); err != nil {
				fmt.Fprintf(errOut, "cconv: %v\n", err)
				return err
			}
			return nil
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the result to this file instead of stdout")
	rootCmd.Flags().StringVar(&target, "to", "", "Target language: c or cpp")
	rootCmd.Flags().BoolVar(&report, "report", false, "Print a YAML summary of the applied rewrites to stderr")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")

	rootCmd.AddCommand(newServeCmd(errOut))
	return rootCmd
}

func newServeCmd(errOut io.Writer) *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web front end",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := doServe(cmd, errOut); err != nil {
				fmt.Fprintf(errOut, "cconv: %v\n", err)
				return err
			}
			return nil
		},
	}
	serveCmd.Flags().AddFlagSet(serveFlags())
	return serveCmd
}

func serveFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	flags.StringVar(&serveAddr, "addr", "", "Listen address, overrides the config file")
	flags.StringVar(&configPath, "config", "", "YAML config file (default $"+config.ConfigEnv+")")
	return flags
}

func logLevel(fallback string) string {
	if verbose {
		return "debug"
	}
	return fallback
}

// readInput reads the named file, or in when name is "-".
func readInput(name string, in io.Reader) (string, error) {
	if name == "-" {
		data, err := io.ReadAll(in)
		if err != nil {
			return "", fmt.Errorf("error reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("error reading %s: %w", name, err)
	}
	return string(data), nil
}

func doConvert(input string, in io.Reader, out, errOut io.Writer) error {
	if _, err := logging.Setup(logLevel("warn"), errOut); err != nil {
		return err
	}
	d, err := convert.DirectionFor(target, input, outputPath)
	if err != nil {
		return err
	}
	source, err := readInput(input, in)
	if err != nil {
		return err
	}

	res := convert.Translate(source, d)
	log.Debug().
		Str("input", input).
		Str("direction", d.String()).
		Interface("rewrites", res.Rewrites).
		Msg("converted")
	for _, name := range res.Guessed {
		log.Warn().Str("pointer", name).Msg("unknown pointee type for sizeof(*p), allocated as int")
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, []byte(res.Output), 0o644); err != nil {
			return fmt.Errorf("error writing %s: %w", outputPath, err)
		}
	} else if _, err := io.WriteString(out, res.Output); err != nil {
		return err
	}

	if report {
		return writeReport(errOut, conversionReport{
			Input:     input,
			Output:    outputPath,
			Direction: d.String(),
			BytesIn:   len(source),
			BytesOut:  len(res.Output),
			Rewrites:  res.Rewrites,
		})
	}
	return nil
}

func writeReport(w io.Writer, r conversionReport) error {
	if r.Output == "" {
		r.Output = "-"
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("error writing report: %w", err)
	}
	return enc.Close()
}

func doServe(cmd *cobra.Command, errOut io.Writer) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Addr = serveAddr
	}
	logger, err := logging.Setup(logLevel(cfg.LogLevel), errOut)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return server.New(cfg, logger).Run(ctx)
}
