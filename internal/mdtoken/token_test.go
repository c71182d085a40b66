package mdtoken

import (
	"testing"
	"time"
)

func TestToMarkdownStringRoundTrip(t *testing.T) {
	cases := []struct {
		tok  Token
		want string
	}{
		{Token{Kind: Blank}, ""},
		{Token{Kind: HRule}, "---"},
		{Token{Kind: Newline}, "\n"},
		{Token{Kind: TagKind, Str: "rega"}, "@rega"},
		{Token{Kind: HashtagKind, Str: "work"}, "#work"},
		{Token{Kind: LinkKind, Str: "notes"}, "[[notes]]"},
		{Token{Kind: BlockRefKind, Str: "abc123"}, "((abc123))"},
		{Token{Kind: SingleBacktickKind, Str: "x"}, "`x`"},
		{Token{Kind: TripleBacktickKind, Str: "go"}, "```go```"},
		{Token{Kind: LatexKind, Str: "x^2"}, "$$x^2$$"},
		{Token{Kind: BoldKind, Children: []Token{Text("hi")}}, "**hi**"},
		{Token{Kind: ItalicKind, Children: []Token{Text("hi")}}, "*hi*"},
		{Token{Kind: StrikeKind, Children: []Token{Text("hi")}}, "~~hi~~"},
		{Token{Kind: HighlightKind, Children: []Token{Text("hi")}}, "^^hi^^"},
		{Token{Kind: BlockQuoteKind, Children: []Token{Text("hi")}}, "> hi"},
		{Token{Kind: HeadingH1Kind, Children: []Token{Text("hi")}}, "# hi"},
		{Token{Kind: HeadingH2Kind, Children: []Token{Text("hi")}}, "## hi"},
		{Token{Kind: HeadingH3Kind, Children: []Token{Text("hi")}}, "### hi"},
		{Token{Kind: HeadingH4Kind, Children: []Token{Text("hi")}}, "#### hi"},
		{Token{Kind: AttributeKind, Name: "Status", Children: []Token{Text("ok")}}, "Status::ok"},
		{Token{Kind: ImageKind, Label: "alt", URL: "a.png"}, "![alt](a.png)"},
		{Token{Kind: MarkdownExternalLinkKind, Label: "go", URL: "https://go.dev"}, "[go](https://go.dev)"},
		{Token{Kind: MarkdownInternalLinkKind, Label: "sec", URL: "#sec"}, "[sec](#sec)"},
		{
			Token{Kind: TaskKind, Status: TaskStatus{State: Done}, Children: []Token{Text("ship it")}},
			"DONE: ship it",
		},
	}
	for _, c := range cases {
		if got := c.tok.ToMarkdownString(); got != c.want {
			t.Errorf("ToMarkdownString(%+v) = %q, want %q", c.tok, got, c.want)
		}
	}
}

func TestDateRenders(t *testing.T) {
	tok := Token{Kind: DateKind, Date: time.Date(2023, 10, 10, 0, 0, 0, 0, time.UTC)}
	if got := tok.ToMarkdownString(); got != "2023-10-10" {
		t.Errorf("got %q", got)
	}
}

func TestTaskStatusTodoUntilRenders(t *testing.T) {
	status := TaskStatus{State: TodoUntil, Until: time.Date(2023, 10, 10, 0, 0, 0, 0, time.UTC)}
	if got := status.String(); got != "TODO UNTIL 2023-10-10" {
		t.Errorf("got %q", got)
	}
}

func TestTokenTypeConflatesInternalAndExternalLinks(t *testing.T) {
	internal := Token{Kind: MarkdownInternalLinkKind, Label: "a", URL: "#a"}
	external := Token{Kind: MarkdownExternalLinkKind, Label: "a", URL: "https://a"}
	if internal.TokenType() != TypeMarkdownInternalLink {
		t.Errorf("internal TokenType = %v", internal.TokenType())
	}
	if external.TokenType() != TypeMarkdownInternalLink {
		t.Errorf("external TokenType = %v, want the same conflated tag as internal", external.TokenType())
	}
}

func TestContainsFindsNestedTag(t *testing.T) {
	bold := Token{Kind: BoldKind, Children: []Token{
		Text("see "),
		{Kind: TagKind, Str: "roger"},
	}}
	if !bold.Contains(Token{Kind: TagKind, Str: "roger"}) {
		t.Error("expected Contains to find the nested Tag")
	}
	if bold.Contains(Token{Kind: TagKind, Str: "nope"}) {
		t.Error("did not expect Contains to find an absent tag")
	}
}

func TestContainsSelfEquality(t *testing.T) {
	tag := Token{Kind: TagKind, Str: "x"}
	if !tag.Contains(tag) {
		t.Error("Contains should be true for a token equal to itself")
	}
}

func TestContainsWalksTaskContent(t *testing.T) {
	task := Token{
		Kind:   TaskKind,
		Status: TaskStatus{State: Todo},
		Children: []Token{
			Text("call "),
			{Kind: TagKind, Str: "roger"},
		},
	}
	if !task.Contains(Token{Kind: TagKind, Str: "roger"}) {
		t.Error("expected Contains to walk into Task.Children")
	}
}

func TestContainsWalksAttributeValue(t *testing.T) {
	attr := Token{
		Kind: AttributeKind,
		Name: "Status",
		Children: []Token{
			{Kind: TagKind, Str: "blocked"},
		},
	}
	if !attr.Contains(Token{Kind: TagKind, Str: "blocked"}) {
		t.Error("expected Contains to walk into Attribute.Children (the value)")
	}
}

func TestEqualDistinguishesKindAndPayload(t *testing.T) {
	a := Token{Kind: TagKind, Str: "x"}
	b := Token{Kind: TagKind, Str: "y"}
	c := Token{Kind: HashtagKind, Str: "x"}
	if a.Equal(b) {
		t.Error("tokens with different payloads should not be equal")
	}
	if a.Equal(c) {
		t.Error("tokens with different kinds should not be equal")
	}
	if !a.Equal(Token{Kind: TagKind, Str: "x"}) {
		t.Error("tokens with the same kind and payload should be equal")
	}
}
