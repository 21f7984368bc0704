package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// GetSimpleText prints a prompt and reads a single line of input from
// reader. The trailing newline is trimmed. If EOF occurs after some
// input was read, the partial line is returned.
func GetSimpleText(reader *bufio.Reader, prompt string) (string, error) {
	fmt.Print(prompt + "\n> ")
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassword reads a password from the terminal without echo.
func GetPassword() ([]byte, error) {
	fmt.Print("Enter password: ")
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return nil, err
	}
	return pw, nil
}

// GetMultiline reads lines until an empty line is entered and joins them
// with '\n'. Used for note bodies.
func GetMultiline(reader *bufio.Reader, prompt string) (string, error) {
	fmt.Print(prompt + "\n(press Enter on an empty line to finish)\n")

	var lines []string
	for {
		line, _ := reader.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		lines = append(lines, line)
	}

	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// GetTags reads a comma-separated tag list, trimming blanks.
func GetTags(reader *bufio.Reader) ([]string, error) {
	line, err := GetSimpleText(reader, "- Enter tags (comma-separated, empty for none)")
	if err != nil {
		return nil, err
	}
	if line == "" {
		return []string{}, nil
	}
	parts := strings.Split(line, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags, nil
}
