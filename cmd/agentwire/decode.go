package main

import (
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/danmuck/agentwire/internal/config"
	"github.com/danmuck/agentwire/internal/observability"
	"github.com/prometheus/client_golang/prometheus"
	"gopkg.in/yaml.v3"
)

const (
	kindMessage   = "message"
	kindPubkey    = "pubkey"
	kindPrivkey   = "privkey"
	kindSignature = "signature"
	kindIdentity  = "identity"
)

func runDecode(args []string, cfg config.Config, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("decode", flag.ContinueOnError)
	fs.SetOutput(stderr)
	kind := fs.String("kind", kindMessage, "value kind: message|pubkey|privkey|signature|identity")
	hexInput := fs.Bool("hex", false, "input is hex text rather than raw bytes")
	metrics := fs.Bool("metrics", false, "print codec counters to stderr when done")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: decode takes exactly one input (file or -)", errUsage)
	}
	if !knownKind(*kind) {
		return fmt.Errorf("%w: unknown kind %q", errUsage, *kind)
	}

	data, err := readInput(fs.Arg(0), stdin, cfg.Limits.MaxInputBytes)
	if err != nil {
		return err
	}
	if *hexInput {
		data, err = hex.DecodeString(strings.Join(strings.Fields(string(data)), ""))
		if err != nil {
			return fmt.Errorf("hex input: %w", err)
		}
	}

	fields, err := decodeKind(*kind, data)
	observability.RecordDecode(*kind, len(data), err)
	if *metrics {
		defer func() {
			_ = observability.WriteText(stderr, prometheus.DefaultGatherer)
		}()
	}
	if err != nil {
		return fmt.Errorf("decode %s: %w", *kind, err)
	}
	return writeFields(stdout, cfg.Output.Format, fields)
}

func knownKind(kind string) bool {
	switch kind {
	case kindMessage, kindPubkey, kindPrivkey, kindSignature, kindIdentity:
		return true
	default:
		return false
	}
}

func writeFields(w io.Writer, format string, fields []field) error {
	switch format {
	case config.FormatJSON:
		out, err := json.MarshalIndent(fieldMap(fields), "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(fieldMap(fields)); err != nil {
			return err
		}
		return enc.Close()
	}
	for _, f := range fields {
		if _, err := fmt.Fprintf(w, "%s: %s\n", f.Name, f.Value); err != nil {
			return err
		}
	}
	return nil
}

func fieldMap(fields []field) map[string]string {
	obj := make(map[string]string, len(fields))
	for _, f := range fields {
		obj[f.Name] = f.Value
	}
	return obj
}
