// Package mdlex implements the line-level tokenizer: it splits a document
// into lines and classifies each one (blank, horizontal rule, block quote,
// attribute, task, heading, or plain inline content), delegating the inline
// grammar to mdparse. A Newline token follows every line so the section
// builder can reconstruct original line boundaries.
package mdlex

import (
	"strings"

	"github.com/senna-lang/mdj/internal/mderr"
	"github.com/senna-lang/mdj/internal/mdparse"
	"github.com/senna-lang/mdj/internal/mdtoken"
)

// Tokenize splits input into lines and classifies each one in turn. It
// always returns every token it could produce; a non-nil error (always an
// mderr MultiError) reports the lines that failed to classify, one bulleted
// sub-error per line, collected rather than aborting at the first failure so
// a single malformed heading doesn't hide problems on later lines.
func Tokenize(input string) ([]mdtoken.Token, error) {
	lines := strings.Split(input, "\n")
	var tokens []mdtoken.Token
	var errs []*mderr.Error

	for lineNumber, line := range lines {
		lineTokens, err := tokenizeLine(line)
		if err != nil {
			errs = append(errs, mderr.MarkdownParse(err.Error(), lineNumber))
			tokens = append(tokens, mdtoken.Token{Kind: mdtoken.Newline})
			continue
		}
		tokens = append(tokens, lineTokens...)
		tokens = append(tokens, mdtoken.Token{Kind: mdtoken.Newline})
	}

	return tokens, plainError(mderr.Multi(errs))
}

// plainError re-boxes a possibly-nil *mderr.Error as an error interface
// value that is actually nil when there's nothing to report (a bare
// *mderr.Error(nil) wrapped in an error interface is a non-nil interface).
func plainError(e *mderr.Error) error {
	if e == nil {
		return nil
	}
	return e
}

// isBlankLine reports whether line contains only whitespace (including the
// empty string).
func isBlankLine(line string) bool {
	return strings.TrimSpace(line) == ""
}

func tokenizeLine(line string) ([]mdtoken.Token, error) {
	switch {
	case isBlankLine(line):
		return []mdtoken.Token{{Kind: mdtoken.Blank}}, nil
	case line == "---":
		return []mdtoken.Token{{Kind: mdtoken.HRule}}, nil
	}

	if rest, ok := strings.CutPrefix(line, "> "); ok {
		return []mdtoken.Token{{Kind: mdtoken.BlockQuoteKind, Children: mdparse.ParseInline(rest)}}, nil
	}

	if name, value, ok := mdparse.Attribute(line); ok {
		return []mdtoken.Token{{Kind: mdtoken.AttributeKind, Name: name, Children: value}}, nil
	}

	if tok, ok := mdparse.Task(line); ok {
		return []mdtoken.Token{tok}, nil
	}

	if tok, consumed, invalid := mdparse.Heading(line); consumed {
		return []mdtoken.Token{tok}, nil
	} else if invalid {
		return nil, mderr.Syntax("a heading cannot have more than 4 '#' characters")
	}

	return mdparse.ParseInline(line), nil
}
