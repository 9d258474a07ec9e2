package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var errNoInput = errors.New("no input")

// secretReader reads phrases and passphrases without echoing them when stdin
// is a terminal, and line by line when stdin is a pipe or file.
type secretReader struct {
	prompts  io.Writer
	lines    *bufio.Reader
	terminal bool
	fd       int
}

func newSecretReader(cmd *cobra.Command) *secretReader {
	in := cmd.InOrStdin()
	r := &secretReader{
		prompts: cmd.ErrOrStderr(),
		lines:   bufio.NewReader(in),
	}
	if f, ok := in.(*os.File); ok {
		fd := f.Fd()
		if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
			r.terminal = true
			r.fd = int(fd)
		}
	}
	return r
}

// read returns one secret. On a terminal the prompt is shown on stderr and
// input is hidden; otherwise the next input line is consumed.
func (r *secretReader) read(prompt string) (string, error) {
	if r.terminal {
		fmt.Fprint(r.prompts, prompt)
		b, err := term.ReadPassword(r.fd)
		fmt.Fprintln(r.prompts) // newline after hidden input
		if err != nil {
			return "", err
		}
		s := string(b)
		for i := range b {
			b[i] = 0
		}
		return s, nil
	}

	line, err := r.lines.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			return "", errNoInput
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// readPhrase returns the mnemonic from the arguments when present, else from
// stdin.
func readPhrase(r *secretReader, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	phrase, err := r.read("Mnemonic phrase: ")
	if err != nil {
		return "", fmt.Errorf("read mnemonic: %w", err)
	}
	return phrase, nil
}

// readPassphrase prompts for the optional BIP-39 passphrase when asked to.
func readPassphrase(r *secretReader, ask bool) (string, error) {
	if !ask {
		return "", nil
	}
	pass, err := r.read("BIP-39 passphrase: ")
	if err != nil {
		return "", fmt.Errorf("read passphrase: %w", err)
	}
	return pass, nil
}
