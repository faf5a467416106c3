package main

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/term"
)

// readLine prompts for one line on the terminal.
func readLine(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("stdin is not a terminal, pass the value as a flag")
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return "", errors.Wrap(err, "setting terminal raw mode")
	}
	defer func() { _ = term.Restore(fd, state) }()

	t := term.NewTerminal(struct {
		io.Reader
		io.Writer
	}{os.Stdin, os.Stdout}, prompt)
	line, err := t.ReadLine()
	if err != nil {
		return "", errors.Wrap(err, "reading line")
	}
	return line, nil
}
