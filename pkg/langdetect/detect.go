// Package langdetect names the language of a code block, from its info
// string when one is present and from the code itself otherwise. Guessing
// is backed by go-enry.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Text is returned when no language can be determined.
const Text = "text"

// Source records how a language was determined.
type Source string

// Language sources.
const (
	SourceInfo    Source = "info"
	SourceShebang Source = "shebang"
	SourcePattern Source = "pattern"
	SourceGuess   Source = "classifier"
	SourceNone    Source = "none"
)

// Result is a resolved code block language.
type Result struct {
	Language string `json:"language"`
	Source   Source `json:"source"`
}

// classifierCandidates bounds the enry classifier to languages that
// commonly appear in documentation.
//
//nolint:gochecknoglobals // Read-only lookup table.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Markdown", "Dockerfile",
}

// Resolve returns the language of a code block. A non-empty info string
// wins; its first word is looked up as an enry alias and kept verbatim
// (lowercased) when enry does not know it.
func Resolve(info string, content []byte) Result {
	if word := InfoLanguage(info); word != "" {
		if lang, ok := enry.GetLanguageByAlias(word); ok {
			return Result{Language: normalize(lang), Source: SourceInfo}
		}
		return Result{Language: word, Source: SourceInfo}
	}

	lang, source := detect(content)
	return Result{Language: lang, Source: source}
}

// Detect guesses the language of code content, or returns Text.
func Detect(content []byte) string {
	lang, _ := detect(content)
	return lang
}

// InfoLanguage returns the lowercased first word of a fence info string,
// without any attribute block ("go {.numberLines}" gives "go").
func InfoLanguage(info string) string {
	fields := strings.Fields(info)
	if len(fields) == 0 {
		return ""
	}
	word := fields[0]
	if i := strings.IndexAny(word, "{,"); i >= 0 {
		word = word[:i]
	}
	return strings.ToLower(word)
}

func detect(content []byte) (string, Source) {
	if len(bytes.TrimSpace(content)) == 0 {
		return Text, SourceNone
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang), SourceShebang
	}

	trimmed := bytes.TrimSpace(content)
	for _, p := range patterns {
		if p.match(content, trimmed) {
			return p.lang, SourcePattern
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return normalize(lang), SourceGuess
	}

	return Text, SourceNone
}

// pattern is a cheap, highly indicative check tried before the classifier.
type pattern struct {
	lang  string
	match func(content, trimmed []byte) bool
}

//nolint:gochecknoglobals // Read-only detector table, checked in order.
var patterns = []pattern{
	{"go", func(_, trimmed []byte) bool {
		return bytes.HasPrefix(trimmed, []byte("package "))
	}},
	{"python", func(content, _ []byte) bool {
		return containsAll(content, "def ", "):") ||
			bytes.Contains(content, []byte("__name__")) ||
			bytes.HasPrefix(bytes.TrimSpace(content), []byte("from ")) && bytes.Contains(content, []byte(" import "))
	}},
	{"html", func(_, trimmed []byte) bool {
		lower := bytes.ToLower(trimmed)
		return containsAny(lower, "<!doctype html", "<html", "<head>", "<body>")
	}},
	{"json", func(_, trimmed []byte) bool {
		return (bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("["))) &&
			bytes.Contains(trimmed, []byte(`"`))
	}},
	{"dockerfile", func(content, trimmed []byte) bool {
		return bytes.HasPrefix(trimmed, []byte("FROM ")) || containsAll(content, "WORKDIR ", "COPY ")
	}},
	{"sql", func(_, trimmed []byte) bool {
		upper := bytes.ToUpper(trimmed)
		for _, kw := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
			if bytes.HasPrefix(upper, []byte(kw)) {
				return true
			}
		}
		return false
	}},
	{"rust", func(content, _ []byte) bool {
		return containsAny(content, "fn main()", "println!", "let mut ")
	}},
	{"javascript", func(content, _ []byte) bool {
		return containsAny(content, "=>", "console.log", "const ")
	}},
	{"yaml", func(content, _ []byte) bool {
		return yamlKeys(content) >= 2
	}},
}

// yamlKeys counts lines shaped like "key: value" or "- item".
func yamlKeys(content []byte) int {
	count := 0
	for line := range bytes.SplitSeq(content, []byte("\n")) {
		line = bytes.TrimSpace(line)
		switch {
		case len(line) == 0, line[0] == '#':
		case bytes.HasPrefix(line, []byte("- ")):
			count++
		case bytes.Contains(line, []byte(": ")) && !bytes.ContainsAny(line, "({") && line[0] != '"':
			count++
		}
	}
	return count
}

func containsAll(content []byte, subs ...string) bool {
	for _, s := range subs {
		if !bytes.Contains(content, []byte(s)) {
			return false
		}
	}
	return true
}

func containsAny(content []byte, subs ...string) bool {
	for _, s := range subs {
		if bytes.Contains(content, []byte(s)) {
			return true
		}
	}
	return false
}

// normalize converts go-enry language names to fence tags.
func normalize(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(lang)
}
