package main

import (
	"bytes"
	"encoding/hex"
	"flag"
	"fmt"
	"io"

	"github.com/danmuck/agentwire/internal/config"
	"github.com/danmuck/agentwire/internal/observability"
	"github.com/danmuck/agentwire/internal/protocol/key"
	"github.com/danmuck/agentwire/internal/protocol/message"
	"github.com/danmuck/agentwire/internal/protocol/sshcompat"
	"golang.org/x/crypto/ssh"
)

func runPubkey(args []string, cfg config.Config, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("pubkey", flag.ContinueOnError)
	fs.SetOutput(stderr)
	answer := fs.Bool("answer", false, "emit a single identities_answer message covering every key")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: pubkey takes exactly one input (file or -)", errUsage)
	}

	data, err := readInput(fs.Arg(0), stdin, cfg.Limits.MaxInputBytes)
	if err != nil {
		return err
	}
	identities, err := parseAuthorizedKeys(data)
	if err != nil {
		return err
	}

	if *answer {
		b, err := message.Marshal(message.IdentitiesAnswer{Identities: identities})
		observability.RecordEncode(kindMessage, err)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(stdout, hex.EncodeToString(b))
		return err
	}
	for _, id := range identities {
		if _, err := fmt.Fprintf(stdout, "%s %s\n", hex.EncodeToString(id.PubkeyBlob), id.Comment); err != nil {
			return err
		}
	}
	return nil
}

// parseAuthorizedKeys converts every key line in authorized_keys format.
// Blank lines and # comments are skipped; options before the key are
// accepted and dropped.
func parseAuthorizedKeys(data []byte) ([]message.Identity, error) {
	identities := make([]message.Identity, 0)
	for i, line := range bytes.Split(data, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		pub, comment, _, _, err := ssh.ParseAuthorizedKey(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		k, err := sshcompat.PublicKeyFromSSH(pub)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		blob, err := key.Marshal(k)
		observability.RecordEncode(kindPubkey, err)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		identities = append(identities, message.Identity{PubkeyBlob: blob, Comment: comment})
	}
	if len(identities) == 0 {
		return nil, fmt.Errorf("no public keys found")
	}
	return identities, nil
}
