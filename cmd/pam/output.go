package main

import (
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/sdulaney/pam/internal/api"
)

// Human-oriented status lines go to stderr so command output (documents,
// JSON, reflection text) stays pipeable.

const (
	ansiReset  = "\033[0m"
	ansiRed    = "\033[31m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiCyan   = "\033[36m"
	ansiBold   = "\033[1m"
)

func colorize(color, text string) string {
	if noColor {
		return text
	}
	return color + text + ansiReset
}

func statusLine(color, mark, format string, args ...any) {
	fmt.Fprintln(os.Stderr, colorize(color, mark+" "+fmt.Sprintf(format, args...)))
}

func printSuccess(format string, args ...any) { statusLine(ansiGreen, "✓", format, args...) }

func printError(format string, args ...any) { statusLine(ansiRed, "✗", format, args...) }

func printWarning(format string, args ...any) { statusLine(ansiYellow, "!", format, args...) }

func printStep(format string, args ...any) { statusLine(ansiCyan, "›", format, args...) }

func printStatus(label string, format string, args ...any) {
	val := fmt.Sprintf(format, args...)
	fmt.Fprintf(os.Stderr, "  %s %s\n", colorize(ansiBold, label+":"), val)
}

// printSection prints a titled bullet list on stdout, skipping empty
// sections.
func printSection(title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Printf("\n%s\n", colorize(ansiBold, title))
	for _, item := range items {
		fmt.Printf("  • %s\n", item)
	}
}

// printReflection renders a reflection's four sections in reading order.
func printReflection(r api.Reflection) {
	printSection("What worked", r.WhatWorked)
	printSection("What failed", r.WhatFailed)
	printSection("Learnings", r.Learnings)
	printSection("Action items", r.ActionItems)
}

// truncate shortens s to at most max runes. Cutting on a rune boundary
// keeps multi-byte content from ending in a mangled partial character.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max]) + "..."
}
