package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/danmuck/agentwire/internal/config"
	"github.com/danmuck/agentwire/internal/logging"
	"github.com/danmuck/agentwire/internal/observability"
)

const usage = `usage: agentwire [-config path] <command> [flags] [args]

commands:
  decode    decode a wire blob (message, pubkey, privkey, signature, identity)
  pubkey    convert OpenSSH public key lines into wire blobs
  template  write a default config file
`

var errUsage = errors.New("invalid usage")

func main() {
	logging.ConfigureRuntime()
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		logger := observability.Component("agentwire", "cli")
		logger.Error().Err(err).Msg("agentwire failed")
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	global := flag.NewFlagSet("agentwire", flag.ContinueOnError)
	global.SetOutput(stderr)
	configPath := global.String("config", "", "path to agentwire.toml (defaults built in)")
	if err := global.Parse(args); err != nil {
		return errUsage
	}

	cfg := config.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if err := configureLogging(cfg, stderr); err != nil {
		return err
	}

	rest := global.Args()
	if len(rest) == 0 {
		return errUsage
	}
	switch rest[0] {
	case "decode":
		return runDecode(rest[1:], cfg, stdin, stdout, stderr)
	case "pubkey":
		return runPubkey(rest[1:], cfg, stdin, stdout, stderr)
	case "template":
		return runTemplate(rest[1:], stdout, stderr)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, rest[0])
	}
}

func configureLogging(cfg config.Config, stderr io.Writer) error {
	lc, err := cfg.Log.Logging()
	if err != nil {
		return err
	}
	logging.ApplyEnvOverrides(&lc)
	lc.Out = stderr
	logging.Apply(lc)
	return nil
}

func runTemplate(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("template", flag.ContinueOnError)
	fs.SetOutput(stderr)
	output := fs.String("output", "agentwire.toml", "output path for config template")
	force := fs.Bool("force", false, "overwrite existing config file")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if err := config.WriteTemplate(*output, *force); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "wrote config template to %s\n", *output)
	return nil
}

// readInput reads a file, or stdin for "-", refusing anything over limit.
func readInput(path string, stdin io.Reader, limit int64) ([]byte, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("input exceeds limits.max_input_bytes (%d)", limit)
	}
	return data, nil
}
