// Package mdsection builds the section tree from a flat token stream in two
// passes: hierarchize nests heading tokens by level (an H2 attaches under
// the nearest preceding H1, a new H1 detaches any open H2-H4 and starts a
// fresh top-level node), then materialize walks that tree resolving each
// section's inherited date, direct tags, and accumulated content.
package mdsection

import (
	"time"

	"github.com/senna-lang/mdj/internal/mderr"
	"github.com/senna-lang/mdj/internal/mdtoken"
)

// maxRecursionDepth guards the materialize walk against pathological input;
// headings only nest 4 levels deep (H1-H4) so this is never hit by
// well-formed documents.
const maxRecursionDepth = 10

// SectionType is the heading level a Section was built from.
type SectionType int

const (
	H1 SectionType = iota
	H2
	H3
	H4
)

func (t SectionType) String() string {
	switch t {
	case H1:
		return "H1"
	case H2:
		return "H2"
	case H3:
		return "H3"
	case H4:
		return "H4"
	default:
		return "H1"
	}
}

func sectionType(level int) SectionType {
	switch level {
	case 2:
		return H2
	case 3:
		return H3
	case 4:
		return H4
	default:
		return H1
	}
}

// Section is a single dated entry in the journal, with its own tags,
// accumulated body content, and any nested subsections. Title is the whole
// heading token (e.g. a HeadingH1Kind token rendering as "# 2022-11-02"),
// not just its inline children, so callers can recover the section's own
// heading markers without re-deriving them from SectionType.
type Section struct {
	Date        time.Time
	Title       mdtoken.Token
	SectionType SectionType
	Tags        []string
	Content     []mdtoken.Token
	Subsections []Section
}

// hnode is an intermediate heading-tree node produced by hierarchize.
type hnode struct {
	Heading  mdtoken.Token
	Content  []mdtoken.Token
	Children []*hnode
}

func headingLevel(k mdtoken.Kind) int {
	switch k {
	case mdtoken.HeadingH1Kind:
		return 1
	case mdtoken.HeadingH2Kind:
		return 2
	case mdtoken.HeadingH3Kind:
		return 3
	case mdtoken.HeadingH4Kind:
		return 4
	default:
		return 0
	}
}

// hierarchize groups a flat token stream into a forest of heading nodes.
// Preamble tokens before the first heading are discarded (they carry no
// date and cannot become a section); HRule and Blank tokens never become
// section content. A heading of level L detaches any currently-open nodes
// deeper than L-1 and attaches under the nearest open ancestor shallower
// than L, so e.g. an H1 following an open H3 ends the H3 (and its parent
// H2) and starts a new top-level node.
func hierarchize(tokens []mdtoken.Token) []*hnode {
	root := &hnode{Heading: mdtoken.Token{Kind: mdtoken.Blank}}
	stack := []*hnode{root}

	for _, tok := range tokens {
		if lvl := headingLevel(tok.Kind); lvl > 0 {
			for headingLevel(stack[len(stack)-1].Heading.Kind) >= lvl {
				stack = stack[:len(stack)-1]
			}
			parent := stack[len(stack)-1]
			node := &hnode{Heading: tok}
			parent.Children = append(parent.Children, node)
			stack = append(stack, node)
			continue
		}
		if tok.Kind == mdtoken.HRule || tok.Kind == mdtoken.Blank {
			continue
		}
		top := stack[len(stack)-1]
		top.Content = append(top.Content, tok)
	}

	return root.Children
}

// directTags returns the Tag tokens that appear directly in a section's body
// content (not nested inside Bold/Italic/etc. spans, and not the section's
// own title), in source order, as plain strings.
func directTags(content []mdtoken.Token) []string {
	var tags []string
	for _, tok := range content {
		if tok.Kind == mdtoken.TagKind {
			tags = append(tags, tok.Str)
		}
	}
	return tags
}

func materialize(node *hnode, inherited time.Time, hasInherited bool, depth int) (Section, error) {
	if depth > maxRecursionDepth {
		return Section{}, mderr.Syntax("section nesting exceeds the maximum supported depth")
	}

	var date time.Time
	if hasInherited {
		date = inherited
	} else {
		var dates []time.Time
		for _, tok := range node.Heading.Children {
			if tok.Kind == mdtoken.DateKind {
				dates = append(dates, tok.Date)
			}
		}
		switch len(dates) {
		case 0:
			return Section{}, mderr.Syntax(
				"The section title " + node.Heading.ToMarkdownString() + " doesn't contain a date.")
		case 1:
			date = dates[0]
		default:
			return Section{}, mderr.Syntax(
				"The section title " + node.Heading.ToMarkdownString() + " does contain more than one date.")
		}
	}

	subsections := make([]Section, 0, len(node.Children))
	for _, child := range node.Children {
		sub, err := materialize(child, date, true, depth+1)
		if err != nil {
			return Section{}, err
		}
		subsections = append(subsections, sub)
	}

	return Section{
		Date:        date,
		Title:       node.Heading,
		SectionType: sectionType(headingLevel(node.Heading.Kind)),
		Tags:        directTags(node.Content),
		Content:     node.Content,
		Subsections: subsections,
	}, nil
}

// BuildSections runs both passes over tokens, producing the top-level
// sections of a document. Fails on the first section with a missing or
// duplicate date.
func BuildSections(tokens []mdtoken.Token) ([]Section, error) {
	forest := hierarchize(tokens)
	sections := make([]Section, 0, len(forest))
	for _, node := range forest {
		sec, err := materialize(node, time.Time{}, false, 1)
		if err != nil {
			return nil, err
		}
		sections = append(sections, sec)
	}
	return sections, nil
}
