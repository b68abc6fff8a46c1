// Package test provides fuzz-shaped input generators shared across the
// lox package's benchmarks.
package test

import (
	"math/rand"
	"strings"
)

// validTokens is a semicolon-separated set of Lox lexeme fragments covering
// punctuation, operators, keywords, string and number literals, and a line
// comment. Since ';' is the separator, the ';' token itself never appears:
// the ";;;" run splits into empty fragments instead.
const validTokens = "class;fun;var;(;);{;};,;.;;;and;or;if;else;while;for;return;this;super;nil;true;false;print;+;-;*;/;=;==;!;!=;<;<=;>;>=;\"a short string\";\"Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor incididunt ut labore et dolore magna aliqua.\";\"\";123;3.14159;// a trailing comment\n"

// GetRandomTokens returns size space-separated lexeme fragments drawn from
// validTokens.
func GetRandomTokens(size int) string {
	return GetRandomTokensWithSep(size, " ")
}

// GetRandomTokensWithSep is GetRandomTokens with a caller-chosen separator,
// letting a benchmark approximate denser or sparser source text.
func GetRandomTokensWithSep(size int, sep string) string {
	valid := strings.Split(validTokens, ";")

	var toks []string
	for len(toks) < size {
		toks = append(toks, valid[rand.Intn(len(valid))])
	}

	return strings.Join(toks, sep)
}
