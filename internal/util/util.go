package util

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

var Red = color.New(color.FgRed)
var Cyan = color.New(color.FgCyan)
var CyanBold = color.New(color.FgCyan).Add(color.Bold)
var Green = color.New(color.FgGreen)
var GreenBold = color.New(color.FgGreen).Add(color.Bold)
var Magenta = color.New(color.FgMagenta)

// shared so buffered input isn't lost between prompts
var stdin = bufio.NewReader(os.Stdin)

func Scanline() string {
	line, err := stdin.ReadString('\n')
	if err != nil && (err != io.EOF || len(line) == 0) {
		color.Red("\nInterrupted")
		os.Exit(1)
	}
	return strings.TrimRight(line, "\r\n")
}

// ScanlineTrim : Scans input and trims
func ScanlineTrim() string {
	return strings.TrimSpace(Scanline())
}

// ScanlineOr returns the trimmed input, or current when the input is empty
func ScanlineOr(current string) string {
	if v := ScanlineTrim(); v != "" {
		return v
	}
	return current
}

// ReadAll reads everything left on stdin, used for message bodies piped in
func ReadAll() (string, error) {
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
