// Package mdparse implements the inline combinator parsers: small functions
// that each consume a prefix of the remaining input and report the parsed
// token plus what's left. Combinators are composed by ordered fallback
// (first one that matches wins) rather than a parser-combinator library —
// Go has none in this corpus's dependency set, so each "alt" from the
// ported grammar becomes a short if/else-if chain.
package mdparse

import (
	"net/mail"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/senna-lang/mdj/internal/mdtoken"
)

// isWordFinishChar reports the punctuation that terminates a bare word.
func isWordFinishChar(r rune) bool {
	switch r {
	case ',', '.', ':', ';', ')', ']':
		return true
	}
	return false
}

func nonWSChar(r rune) bool {
	return !unicode.IsSpace(r)
}

// word consumes the longest run of non-whitespace characters stopping
// before any of `, . : ; ) ]`. Requires at least one character.
func word(input string) (rest, tok string, ok bool) {
	i := 0
	for i < len(input) {
		r, size := utf8.DecodeRuneInString(input[i:])
		if !nonWSChar(r) || isWordFinishChar(r) {
			break
		}
		i += size
	}
	if i == 0 {
		return input, "", false
	}
	return input[i:], input[:i], true
}

// fenced matches when input begins with start, captures everything up to
// the first literal occurrence of end, and consumes both fences. Unlike
// takeUntilUnbalanced this is a plain substring search, not bracket-aware.
func fenced(input, start, end string) (rest, content string, ok bool) {
	if !strings.HasPrefix(input, start) {
		return input, "", false
	}
	body := input[len(start):]
	idx := strings.Index(body, end)
	if idx < 0 {
		return input, "", false
	}
	return body[idx+len(end):], body[:idx], true
}

// takeUntilUnbalanced scans input counting nesting depth of opening/closing,
// honoring a backslash as a one-character escape (the backslash and the
// following code point are both skipped). It returns the prefix through the
// first *unmatched* closing rune, without consuming that rune. If the whole
// input is consumed with depth != 0, it fails.
func takeUntilUnbalanced(input string, opening, closing rune) (rest, content string, ok bool) {
	depth := 0
	i := 0
	for i < len(input) {
		r, size := utf8.DecodeRuneInString(input[i:])
		switch {
		case r == '\\':
			i += size
			if i < len(input) {
				_, size2 := utf8.DecodeRuneInString(input[i:])
				i += size2
			}
		case r == opening:
			depth++
			i += size
		case r == closing:
			depth--
			if depth == -1 {
				return input[i:], input[:i], true
			}
			i += size
		default:
			i += size
		}
	}
	if depth == 0 {
		return "", input, true
	}
	return input, "", false
}

func link(input string) (rest, content string, ok bool) {
	return fenced(input, "[[", "]]")
}

func markdownLink(input string) (rest, title, url string, ok bool) {
	afterTitle, title, ok := fenced(input, "[", "]")
	if !ok {
		return input, "", "", false
	}
	if !strings.HasPrefix(afterTitle, "(") {
		return input, "", "", false
	}
	afterOpen := afterTitle[1:]
	afterURL, url, ok := takeUntilUnbalanced(afterOpen, '(', ')')
	if !ok {
		return input, "", "", false
	}
	if !strings.HasPrefix(afterURL, ")") {
		return input, "", "", false
	}
	return afterURL[1:], title, url, true
}

func linkOrWord(input string) (rest, content string, ok bool) {
	if rest, content, ok := link(input); ok {
		return rest, content, true
	}
	return word(input)
}

func hashtag(input string) (rest, content string, ok bool) {
	if !strings.HasPrefix(input, "#") {
		return input, "", false
	}
	return linkOrWord(input[1:])
}

func tripleBacktick(input string) (rest, content string, ok bool) {
	return fenced(input, "```", "```")
}

func singleBacktick(input string) (rest, content string, ok bool) {
	if !strings.HasPrefix(input, "`") {
		return input, "", false
	}
	body := input[1:]
	idx := strings.IndexByte(body, '`')
	if idx <= 0 { // is_not requires a non-empty match
		return input, "", false
	}
	return body[idx+1:], body[:idx], true
}

func blockRef(input string) (rest, content string, ok bool) {
	return fenced(input, "((", "))")
}

// style matches a boundary-delimited span and re-parses its body with
// ParseInline.
func style(input, boundary string) (rest string, children []mdtoken.Token, ok bool) {
	r, body, ok := fenced(input, boundary, boundary)
	if !ok {
		return input, nil, false
	}
	return r, ParseInline(body), true
}

func bold(input string) (rest string, children []mdtoken.Token, ok bool) {
	return style(input, "**")
}

func italic(input string) (rest string, children []mdtoken.Token, ok bool) {
	return style(input, "*")
}

func strike(input string) (rest string, children []mdtoken.Token, ok bool) {
	return style(input, "~~")
}

func highlight(input string) (rest string, children []mdtoken.Token, ok bool) {
	return style(input, "^^")
}

func latex(input string) (rest, content string, ok bool) {
	return fenced(input, "$$", "$$")
}

func image(input string) (rest, alt, url string, ok bool) {
	if !strings.HasPrefix(input, "!") {
		return input, "", "", false
	}
	return markdownLink(input[1:])
}

const (
	minEmailLength = 5
	maxEmailLength = 50
)

// email tries decreasing prefix lengths from min(50, len(input)) down to 5;
// each candidate must contain no space and must validate as a well-formed
// address. It returns the longest prefix that validates.
func email(input string) (rest, content string, ok bool) {
	limit := maxEmailLength
	if len(input) < limit {
		limit = len(input)
	}
	considered := input[:limit]

	for i := len(considered); i >= minEmailLength; i-- {
		candidate := considered[:i]
		if strings.Contains(candidate, " ") {
			continue
		}
		if isValidEmail(candidate) {
			return input[i:], candidate, true
		}
	}
	return input, "", false
}

// isValidEmail validates candidate against the standard RFC 5322 address
// grammar via net/mail — the standard library's equivalent of the original's
// dedicated email-address-validation crate (no such crate exists among this
// module's example pack; see DESIGN.md).
func isValidEmail(candidate string) bool {
	addr, err := mail.ParseAddress(candidate)
	if err != nil {
		return false
	}
	return addr.Address == candidate && addr.Name == ""
}

func tagToken(input string) (rest, content string, ok bool) {
	if !strings.HasPrefix(input, "@") {
		return input, "", false
	}
	return word(input[1:])
}

// rawURL recognizes http(s)/ftp/file-like URLs and bare "www."-prefixed
// hosts with a single forward scan, returning the longest prefix classified
// as a URL. No Go library in this module's example pack implements the
// locator state machine the original ports (see DESIGN.md); this hand-rolled
// scanner follows the same contract: scheme-or-www recognition followed by
// a greedy scan over URL characters, trimming trailing sentence punctuation.
func rawURL(input string) (rest, content string, ok bool) {
	schemes := []string{"https://", "http://", "ftp://", "file://"}
	matchLen := -1
	for _, s := range schemes {
		if strings.HasPrefix(input, s) {
			matchLen = len(s)
			break
		}
	}
	if matchLen < 0 && strings.HasPrefix(input, "www.") {
		matchLen = len("www.")
	}
	if matchLen < 0 {
		return input, "", false
	}

	end := matchLen
	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if !isURLChar(r) {
			break
		}
		end += size
	}
	for end > matchLen && strings.ContainsRune(".,;:!?)]'\"", rune(input[end-1])) {
		end--
	}
	if end <= 0 {
		return input, "", false
	}
	return input[end:], input[:end], true
}

func isURLChar(r rune) bool {
	if unicode.IsSpace(r) {
		return false
	}
	switch r {
	case '<', '>', '"', '`':
		return false
	}
	return true
}

// directive tries every inline construct in a fixed priority order:
// markdown_link before image/link/hashtag so brackets aren't misread,
// triple before single backtick so the longer fence wins, bold before
// italic so "**" is not read as two "*" spans.
func directive(input string) (rest string, tok mdtoken.Token, ok bool) {
	if r, title, url, ok := markdownLink(input); ok {
		if strings.HasPrefix(url, "#") {
			return r, mdtoken.Token{Kind: mdtoken.MarkdownInternalLinkKind, Label: title, URL: url}, true
		}
		return r, mdtoken.Token{Kind: mdtoken.MarkdownExternalLinkKind, Label: title, URL: url}, true
	}
	if r, d, ok := Date(input); ok {
		return r, mdtoken.Token{Kind: mdtoken.DateKind, Date: d}, true
	}
	if r, s, ok := email(input); ok {
		return r, mdtoken.Token{Kind: mdtoken.EmailKind, Str: s}, true
	}
	if r, s, ok := tagToken(input); ok {
		return r, mdtoken.Token{Kind: mdtoken.TagKind, Str: s}, true
	}
	if r, s, ok := tripleBacktick(input); ok {
		return r, mdtoken.Token{Kind: mdtoken.TripleBacktickKind, Str: s}, true
	}
	if r, s, ok := singleBacktick(input); ok {
		return r, mdtoken.Token{Kind: mdtoken.SingleBacktickKind, Str: s}, true
	}
	if r, s, ok := hashtag(input); ok {
		return r, mdtoken.Token{Kind: mdtoken.HashtagKind, Str: s}, true
	}
	if r, s, ok := blockRef(input); ok {
		return r, mdtoken.Token{Kind: mdtoken.BlockRefKind, Str: s}, true
	}
	if r, alt, url, ok := image(input); ok {
		return r, mdtoken.Token{Kind: mdtoken.ImageKind, Label: alt, URL: url}, true
	}
	if r, s, ok := link(input); ok {
		return r, mdtoken.Token{Kind: mdtoken.LinkKind, Str: s}, true
	}
	if r, children, ok := bold(input); ok {
		return r, mdtoken.Token{Kind: mdtoken.BoldKind, Children: children}, true
	}
	if r, children, ok := italic(input); ok {
		return r, mdtoken.Token{Kind: mdtoken.ItalicKind, Children: children}, true
	}
	if r, children, ok := strike(input); ok {
		return r, mdtoken.Token{Kind: mdtoken.StrikeKind, Children: children}, true
	}
	if r, children, ok := highlight(input); ok {
		return r, mdtoken.Token{Kind: mdtoken.HighlightKind, Children: children}, true
	}
	if r, s, ok := latex(input); ok {
		return r, mdtoken.Token{Kind: mdtoken.LatexKind, Str: s}, true
	}
	if r, s, ok := rawURL(input); ok {
		return r, mdtoken.Token{Kind: mdtoken.RawHyperlinkKind, Str: s}, true
	}
	return input, mdtoken.Token{}, false
}

// ParseInline scans input left to right. At each byte position it attempts
// directive; on success it emits the preceding un-emitted run as Text (if
// non-empty), emits the directive, and continues from the remainder. On
// failure at a position it advances one rune. At end of input any residual
// text is emitted as Text. This never fails — a line with no recognizable
// directives becomes a single Text token.
func ParseInline(input string) []mdtoken.Token {
	var output []mdtoken.Token
	current := input

	for len(current) > 0 {
		found := false
		for idx := range current {
			if rest, tok, ok := directive(current[idx:]); ok {
				if leading := current[:idx]; leading != "" {
					output = append(output, mdtoken.Text(leading))
				}
				output = append(output, tok)
				current = rest
				found = true
				break
			}
		}
		if !found {
			output = append(output, mdtoken.Text(current))
			break
		}
	}

	return output
}

// Attribute parses "Name:: Arbitrary [[text]]". The name is the longest run
// of characters before the first ':' or '`'; the rest after a literal "::"
// is parsed inline.
func Attribute(input string) (name string, value []mdtoken.Token, ok bool) {
	idx := strings.IndexAny(input, ":`")
	if idx <= 0 {
		return "", nil, false
	}
	if !strings.HasPrefix(input[idx:], "::") {
		return "", nil, false
	}
	return input[:idx], ParseInline(input[idx+2:]), true
}

func consumeMultispace1(input string) (rest string, ok bool) {
	i := 0
	for i < len(input) {
		switch input[i] {
		case ' ', '\t', '\r', '\n':
			i++
			continue
		}
		break
	}
	if i == 0 {
		return input, false
	}
	return input[i:], true
}

// taskPrefix pairs a literal task-status tag with the status it produces.
type taskPrefix struct {
	tag   string
	state mdtoken.TaskState
}

var taskPrefixes = []taskPrefix{
	{"TODO:", mdtoken.Todo},
	{"DOING:", mdtoken.Doing},
	{"REVIEW:", mdtoken.Review},
	{"DONE:", mdtoken.Done},
}

// Task matches one of the literal prefixes TODO:, DOING:, REVIEW:, DONE:, or
// "TODO UNTIL " + date + ":", each requiring mandatory trailing whitespace
// before the task content, which is then parsed inline. Returns ok=false if
// no prefix matches at all — including a TODO-UNTIL prefix with a valid date
// but no trailing whitespace before its colon's content.
func Task(input string) (tok mdtoken.Token, ok bool) {
	for _, p := range taskPrefixes {
		if !strings.HasPrefix(input, p.tag) {
			continue
		}
		afterTag, hasWS := consumeMultispace1(input[len(p.tag):])
		if !hasWS {
			return mdtoken.Token{}, false
		}
		content := ParseInline(afterTag)
		return mdtoken.Token{
			Kind:     mdtoken.TaskKind,
			Status:   mdtoken.TaskStatus{State: p.state},
			Children: content,
		}, true
	}

	const untilPrefix = "TODO UNTIL "
	if strings.HasPrefix(input, untilPrefix) {
		afterDate, d, ok := Date(input[len(untilPrefix):])
		if !ok || !strings.HasPrefix(afterDate, ":") {
			return mdtoken.Token{}, false
		}
		afterColon, hasWS := consumeMultispace1(afterDate[1:])
		if !hasWS {
			return mdtoken.Token{}, false
		}
		content := ParseInline(afterColon)
		return mdtoken.Token{
			Kind:     mdtoken.TaskKind,
			Status:   mdtoken.TaskStatus{State: mdtoken.TodoUntil, Until: d},
			Children: content,
		}, true
	}

	return mdtoken.Token{}, false
}

// Heading matches one to four leading '#' characters followed by mandatory
// whitespace, then inline-parses the remainder. consumed reports whether a
// heading of level 1-4 was matched at all (false means "try the next line
// alternative", not an error); invalid reports the five-or-more-# case,
// which is a line-scoped parse error rather than a silent fallback.
func Heading(input string) (tok mdtoken.Token, consumed bool, invalid bool) {
	i := 0
	for i < len(input) && input[i] == '#' {
		i++
	}
	if i == 0 {
		return mdtoken.Token{}, false, false
	}
	rest, ok := consumeMultispace1(input[i:])
	if !ok {
		return mdtoken.Token{}, false, false
	}
	if i >= 5 {
		return mdtoken.Token{}, false, true
	}
	children := ParseInline(rest)
	kinds := map[int]mdtoken.Kind{
		1: mdtoken.HeadingH1Kind,
		2: mdtoken.HeadingH2Kind,
		3: mdtoken.HeadingH3Kind,
		4: mdtoken.HeadingH4Kind,
	}
	return mdtoken.Token{Kind: kinds[i], Children: children}, true, false
}
