package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// readPassword and isTerminal are test seams for golang.org/x/term.
// In tests you can replace them with stubs to avoid touching the terminal.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The trailing newline is trimmed. If EOF occurs after some input was read,
// the partial line is returned.
//
// Example prompt format:
//
//	Prompt text
//	> _
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassword prints prompt to w and reads a password. On a terminal the
// input is not echoed; otherwise (piped input) a plain line is read from
// reader so scripted sessions keep working.
//
// The returned byte slice should be wiped by the caller when no longer needed.
func GetPassword(reader *bufio.Reader, prompt string, w io.Writer) ([]byte, error) {
	fd := int(os.Stdin.Fd())
	if !isTerminal(fd) {
		line, err := GetSimpleText(reader, prompt, w)
		if err != nil {
			return nil, err
		}
		return []byte(line), nil
	}

	if _, err := fmt.Fprint(w, prompt+": "); err != nil {
		return nil, err
	}
	pw, err := readPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}

// promptDefault asks for a value and returns def when the answer is empty.
func promptDefault(reader *bufio.Reader, prompt, def string, w io.Writer) (string, error) {
	if def != "" {
		prompt = fmt.Sprintf("%s [%s]", prompt, def)
	}
	v, err := getSimpleText(reader, prompt, w)
	if err != nil {
		return "", err
	}
	if v == "" {
		return def, nil
	}
	return v, nil
}

// promptChoice asks until the answer is one of choices (case-insensitive).
// An empty answer selects def.
func promptChoice(reader *bufio.Reader, prompt string, choices []string, def string, w io.Writer) (string, error) {
	for {
		v, err := promptDefault(reader, fmt.Sprintf("%s (%s)", prompt, strings.Join(choices, "/")), def, w)
		if err != nil {
			return "", err
		}
		for _, c := range choices {
			if strings.EqualFold(c, v) {
				return c, nil
			}
		}
		fmt.Fprintf(w, "Please choose one of: %s\n", strings.Join(choices, ", "))
	}
}

// promptInt asks for an integer. An empty answer returns 0 when optional.
func promptInt(reader *bufio.Reader, prompt string, optional bool, w io.Writer) (int, error) {
	for {
		v, err := getSimpleText(reader, prompt, w)
		if err != nil {
			return 0, err
		}
		if v == "" && optional {
			return 0, nil
		}
		n, err := strconv.Atoi(v)
		if err == nil {
			return n, nil
		}
		fmt.Fprintln(w, "Please enter a whole number")
	}
}

// promptRequired asks until a non-empty answer is given.
func promptRequired(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	for {
		v, err := getSimpleText(reader, prompt, w)
		if err != nil {
			return "", err
		}
		if v != "" {
			return v, nil
		}
		fmt.Fprintln(w, "This field is required")
	}
}

// splitList splits a comma separated answer, dropping blanks.
func splitList(s string) []string {
	out := []string{}
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
