package cmd

import (
	"fmt"
	"strings"

	"github.com/senna-lang/mdj/internal/docio"
	"github.com/senna-lang/mdj/internal/mdlex"
	"github.com/senna-lang/mdj/internal/mdsection"
	"github.com/senna-lang/mdj/internal/mdtoken"
	"github.com/spf13/cobra"
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Render the journal's section structure as a tree",
	Long: `Parse the given journal files and print their section hierarchy: each
dated entry, its nested headings, and each piece of body content as a leaf.
With --debug, leaves print a token's internal debug representation instead
of its rendered markdown.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		inputs, _ := cmd.Flags().GetStringArray("input")
		output, _ := cmd.Flags().GetString("output")
		debug, _ := cmd.Flags().GetBool("debug")
		debugSet := cmd.Flags().Changed("debug")
		toStdout, _ := cmd.Flags().GetBool("stdout")
		return runTree(inputs, output, debug, debugSet, toStdout)
	},
}

func init() {
	treeCmd.Flags().StringArrayP("input", "i", nil, "Journal file or directory to render (repeatable)")
	treeCmd.Flags().StringP("output", "o", "", "File to write the tree to")
	treeCmd.Flags().Bool("debug", false, "Print token debug strings instead of rendered markdown")
	treeCmd.Flags().Bool("stdout", false, "Also print the tree to stdout")
	rootCmd.AddCommand(treeCmd)
}

// treeBuilder accumulates lines of a box-drawing tree, tracking at each
// depth whether the current branch is the last sibling (so it can switch
// from a "├── "/"│   " prefix to "└── "/"    " at the right moment).
type treeBuilder struct {
	lines []string
}

func (b *treeBuilder) addLine(prefix, text string, last bool) string {
	connector := "├── "
	if last {
		connector = "└── "
	}
	return prefix + connector + text
}

func (b *treeBuilder) childPrefix(prefix string, last bool) string {
	if last {
		return prefix + "    "
	}
	return prefix + "│   "
}

func sectionsAsTree(sections []mdsection.Section, debug bool) string {
	var b treeBuilder
	for i, s := range sections {
		b.addSection(s, "", i == len(sections)-1, debug)
	}
	return strings.Join(b.lines, "\n")
}

// treeChild is either a pre-rendered leaf line (a content token, or an
// empty-titled subsection collapsed to its title alone) or a subsection to
// recurse into.
type treeChild struct {
	line string
	sub  *mdsection.Section
}

// childrenOf lists exactly what addSection will draw under s: its own
// content tokens as leaves, plus one entry per subsection — except a
// subsection with no content and no subsections of its own is dropped
// entirely unless its title itself renders empty, in which case it
// contributes a single empty child line instead of a nested branch.
func childrenOf(s mdsection.Section, debug bool) []treeChild {
	children := make([]treeChild, 0, len(s.Content)+len(s.Subsections))
	for _, tok := range s.Content {
		if tok.Kind == mdtoken.Newline || tok.Kind == mdtoken.Blank {
			continue
		}
		if strings.TrimSpace(tok.ToMarkdownString()) == "" {
			continue
		}
		children = append(children, treeChild{line: renderToken(tok, debug)})
	}
	for i := range s.Subsections {
		sub := s.Subsections[i]
		if len(sub.Content) == 0 && len(sub.Subsections) == 0 {
			if strings.TrimSpace(sub.Title.ToMarkdownString()) == "" {
				children = append(children, treeChild{line: renderToken(sub.Title, debug)})
			}
			continue
		}
		children = append(children, treeChild{sub: &sub})
	}
	return children
}

func (b *treeBuilder) addSection(s mdsection.Section, prefix string, last bool, debug bool) {
	b.lines = append(b.lines, b.addLine(prefix, renderToken(s.Title, debug), last))
	childPrefix := b.childPrefix(prefix, last)

	children := childrenOf(s, debug)
	for i, c := range children {
		isLast := i == len(children)-1
		if c.sub != nil {
			b.addSection(*c.sub, childPrefix, isLast, debug)
		} else {
			b.lines = append(b.lines, b.addLine(childPrefix, c.line, isLast))
		}
	}
}

func renderToken(tok mdtoken.Token, debug bool) string {
	if debug {
		return tok.ToDebugString()
	}
	return tok.ToMarkdownString()
}

func runTree(inputs []string, output string, debug, debugSet, toStdout bool) error {
	_, cfg, err := loadProjectConfig()
	if err != nil {
		return err
	}
	if !debugSet {
		debug = cfg.Tree.Debug
	}
	if len(inputs) == 0 {
		return fmt.Errorf("tree requires at least one -i/--input path")
	}

	content, err := docio.ReadAll(inputs)
	if err != nil {
		return err
	}
	tokens, err := mdlex.Tokenize(content)
	if err != nil {
		warnf("warning: %v\n", err)
	}
	sections, err := mdsection.BuildSections(tokens)
	if err != nil {
		return err
	}

	rendered := sectionsAsTree(sections, debug)

	writers := []docio.Writer{}
	if toStdout || output == "" {
		writers = append(writers, docio.StdoutWriter{})
	}
	if output != "" {
		writers = append(writers, docio.FileWriter{Path: output})
	}
	for _, w := range writers {
		if err := w.Write(rendered); err != nil {
			return err
		}
	}
	return nil
}
