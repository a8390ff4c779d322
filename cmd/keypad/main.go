package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"pocketCalc/internal/keypad"
)

// crlfWriter — в raw-режиме терминал не переводит \n в \r\n сам.
type crlfWriter struct {
	w io.Writer
}

func (c crlfWriter) Write(p []byte) (int, error) {
	if _, err := c.w.Write(bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))); err != nil {
		return 0, err
	}
	return len(p), nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "keypad:", err)
		os.Exit(1)
	}
}

// run включает raw-режим, если stdin — терминал, и отдаёт ввод клавиатуре.
func run() error {
	var out io.Writer = os.Stdout

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		old, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("raw mode: %w", err)
		}
		defer term.Restore(fd, old)
		out = crlfWriter{w: os.Stdout}
		fmt.Fprint(out, "0-9 . + - * / = %   c: сброс   n: смена знака   q: выход\n")
	}

	_, err := keypad.Run(os.Stdin, out)
	return err
}
