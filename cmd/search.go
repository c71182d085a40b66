package cmd

import (
	"os"
	"strings"
	"time"

	"github.com/senna-lang/mdj/internal/docio"
	"github.com/senna-lang/mdj/internal/mderr"
	"github.com/senna-lang/mdj/internal/mdlex"
	"github.com/senna-lang/mdj/internal/mdsection"
	"github.com/senna-lang/mdj/pkg/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// searchPresetsFile is the shape of .mdj/search-presets.yaml: a named list
// of term sets so a frequent search doesn't need to be retyped on the
// command line.
type searchPresetsFile struct {
	Presets []searchPreset `yaml:"presets"`
}

type searchPreset struct {
	Name     string   `yaml:"name"`
	Terms    []string `yaml:"terms"`
	Mode     string   `yaml:"mode"`
	Ordering string   `yaml:"ordering"`
	From     string   `yaml:"from,omitempty"`
	Until    string   `yaml:"until,omitempty"`
}

func loadPreset(projectRoot string, cfg config.Config, name string) (searchPreset, error) {
	data, err := os.ReadFile(config.PresetsPath(projectRoot, cfg))
	if err != nil {
		return searchPreset{}, mderr.IORead(config.PresetsPath(projectRoot, cfg), err.Error())
	}
	var file searchPresetsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return searchPreset{}, mderr.IO("malformed search-presets.yaml: " + err.Error())
	}
	for _, p := range file.Presets {
		if p.Name == name {
			return p, nil
		}
	}
	return searchPreset{}, mderr.IO("no search preset named " + name)
}

// searchTerms splits a comma-separated term string, trimming whitespace
// around each term. A term containing internal whitespace is rejected —
// that's a sign the user meant to quote a phrase, which this search doesn't
// support.
func searchTerms(raw string) ([]string, error) {
	parts := strings.Split(raw, ",")
	terms := make([]string, 0, len(parts))
	for _, p := range parts {
		term := strings.TrimSpace(p)
		if term == "" {
			continue
		}
		if strings.ContainsAny(term, " \t") {
			return nil, mderr.Config(mderr.ConfigInvalidSearchTerm)
		}
		terms = append(terms, term)
	}
	if len(terms) == 0 {
		return nil, mderr.Config(mderr.ConfigInvalidSearchTerm)
	}
	return terms, nil
}

type searchMode int

const (
	searchModeOr searchMode = iota
	searchModeAnd
)

func parseSearchMode(s string) searchMode {
	if strings.EqualFold(s, "and") {
		return searchModeAnd
	}
	return searchModeOr
}

type searchOrdering int

const (
	orderByDate searchOrdering = iota
	orderByRelevance
)

func parseSearchOrdering(s string) searchOrdering {
	if strings.EqualFold(s, "relevance") {
		return orderByRelevance
	}
	return orderByDate
}

// matchCount reports how many of terms appear among a section's own tags
// (ancestor tags are never consulted, so a subsection must carry the tag
// itself to match). Matching is exact and case-sensitive, same as the tag
// text itself.
func matchCount(s mdsection.Section, terms []string) int {
	count := 0
	for _, term := range terms {
		for _, tag := range s.Tags {
			if tag == term {
				count++
				break
			}
		}
	}
	return count
}

func sectionMatches(s mdsection.Section, terms []string, mode searchMode) bool {
	count := matchCount(s, terms)
	if mode == searchModeAnd {
		return count == len(terms)
	}
	return count > 0
}

type searchResult struct {
	section mdsection.Section
	count   int
}

// collectMatches walks every section and subsection, regardless of whether
// an ancestor matched, and records the ones that do.
func collectMatches(sections []mdsection.Section, terms []string, mode searchMode, from, until *time.Time) []searchResult {
	var results []searchResult
	var walk func([]mdsection.Section)
	walk = func(secs []mdsection.Section) {
		for _, s := range secs {
			if from != nil && s.Date.Before(*from) {
				walk(s.Subsections)
				continue
			}
			if until != nil && s.Date.After(*until) {
				walk(s.Subsections)
				continue
			}
			if sectionMatches(s, terms, mode) {
				results = append(results, searchResult{section: s, count: matchCount(s, terms)})
			}
			walk(s.Subsections)
		}
	}
	walk(sections)
	return results
}

func orderResults(results []searchResult, ordering searchOrdering) {
	switch ordering {
	case orderByRelevance:
		sortStableBy(results, func(a, b searchResult) bool {
			if a.count != b.count {
				return a.count > b.count
			}
			return a.section.Date.Before(b.section.Date)
		})
	default:
		sortStableBy(results, func(a, b searchResult) bool {
			if !a.section.Date.Equal(b.section.Date) {
				return a.section.Date.Before(b.section.Date)
			}
			return a.count > b.count
		})
	}
}

func sortStableBy(results []searchResult, less func(a, b searchResult) bool) {
	for i := 1; i < len(results); i++ {
		for j := i; j > 0 && less(results[j], results[j-1]); j-- {
			results[j], results[j-1] = results[j-1], results[j]
		}
	}
}

// renderSection renders a section the way it reads in its source document:
// its own title line, its content, then each subsection in turn.
func renderSection(s mdsection.Section) string {
	var b strings.Builder
	b.WriteString(s.Title.ToMarkdownString())
	for _, tok := range s.Content {
		b.WriteString(tok.ToMarkdownString())
	}
	for _, sub := range s.Subsections {
		b.WriteString(renderSection(sub))
	}
	return b.String()
}

// renderResults assumes results is already ordered. A result whose section
// is not a top-level (H1) entry gets a synthetic "# yyyy-mm-dd" header of
// its own, since its title alone wouldn't carry the date — but consecutive
// results sharing that date are merged under a single header rather than
// each getting one, so two matching subsections from the same day read as
// one block. Merged blocks are then joined by a rule.
func renderResults(results []searchResult) string {
	var sectionStrings []string
	var previousDate time.Time
	havePrevious := false

	for _, r := range results {
		var s string
		if r.section.SectionType != mdsection.H1 {
			if !havePrevious || !previousDate.Equal(r.section.Date) {
				s = "# " + r.section.Date.Format("2006-01-02") + "\n\n"
			} else {
				last := sectionStrings[len(sectionStrings)-1]
				sectionStrings = sectionStrings[:len(sectionStrings)-1]
				s = last + "\n\n"
			}
		}
		s += strings.TrimSpace(renderSection(r.section))
		sectionStrings = append(sectionStrings, s)
		previousDate = r.section.Date
		havePrevious = true
	}

	return strings.Join(sectionStrings, "\n\n---\n\n")
}

var searchCmd = &cobra.Command{
	Use:   "search [term[,term...]]",
	Short: "Search journal sections by tag",
	Long: `Search every section of a journal for one or more comma-separated tag
terms. --mode OR (the default) matches a section that carries any of the
terms; --mode AND requires all of them. Matching looks only at a section's
own tags, never its ancestors' — a subsection under a matching entry must
carry the tag itself to appear in the results.

Use --preset to load a named term/mode/ordering bundle from
.mdj/search-presets.yaml instead of specifying them on the command line.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputs, _ := cmd.Flags().GetStringArray("input")
		output, _ := cmd.Flags().GetString("output")
		modeFlag, _ := cmd.Flags().GetString("mode")
		orderFlag, _ := cmd.Flags().GetString("order")
		toStdout, _ := cmd.Flags().GetBool("stdout")
		fromFlag, _ := cmd.Flags().GetString("from")
		untilFlag, _ := cmd.Flags().GetString("until")
		preset, _ := cmd.Flags().GetString("preset")

		var termString string
		if len(args) == 1 {
			termString = args[0]
		}

		return runSearch(searchOptions{
			termString: termString,
			inputs:     inputs,
			output:     output,
			mode:       modeFlag,
			ordering:   orderFlag,
			toStdout:   toStdout,
			from:       fromFlag,
			until:      untilFlag,
			preset:     preset,
		})
	},
}

func init() {
	searchCmd.Flags().StringArrayP("input", "i", nil, "Journal file or directory to search (repeatable)")
	searchCmd.Flags().StringP("output", "o", "./search.md", "File to write matched sections to")
	searchCmd.Flags().String("mode", "", "Match mode: AND or OR")
	searchCmd.Flags().String("order", "", "Result ordering: RELEVANCE or DATE")
	searchCmd.Flags().Bool("stdout", false, "Also print matched sections to stdout")
	searchCmd.Flags().String("from", "", "Only include sections dated on or after this date (yyyy-mm-dd)")
	searchCmd.Flags().String("until", "", "Only include sections dated on or before this date (yyyy-mm-dd)")
	searchCmd.Flags().String("preset", "", "Name of a preset from .mdj/search-presets.yaml")
	rootCmd.AddCommand(searchCmd)
}

type searchOptions struct {
	termString string
	inputs     []string
	output     string
	mode       string
	ordering   string
	toStdout   bool
	from       string
	until      string
	preset     string
}

func runSearch(opts searchOptions) error {
	root, cfg, err := loadProjectConfig()
	if err != nil {
		return err
	}

	mode := opts.mode
	ordering := opts.ordering
	termString := opts.termString
	from := opts.from
	until := opts.until

	if opts.preset != "" {
		p, err := loadPreset(root, cfg, opts.preset)
		if err != nil {
			return err
		}
		if termString == "" {
			termString = strings.Join(p.Terms, ",")
		}
		if mode == "" {
			mode = p.Mode
		}
		if ordering == "" {
			ordering = p.Ordering
		}
		if from == "" {
			from = p.From
		}
		if until == "" {
			until = p.Until
		}
	}
	if mode == "" {
		mode = cfg.Search.Mode
	}
	if ordering == "" {
		ordering = cfg.Search.Ordering
	}

	if termString == "" {
		return mderr.Config(mderr.ConfigInvalidSearchTerm)
	}
	terms, err := searchTerms(termString)
	if err != nil {
		return err
	}

	var fromDate, untilDate *time.Time
	if from != "" {
		d, err := time.Parse("2006-01-02", from)
		if err != nil {
			return mderr.Config(mderr.ConfigInvalidSearchTerm)
		}
		fromDate = &d
	}
	if until != "" {
		d, err := time.Parse("2006-01-02", until)
		if err != nil {
			return mderr.Config(mderr.ConfigInvalidSearchTerm)
		}
		untilDate = &d
	}

	inputs := opts.inputs
	if len(inputs) == 0 {
		return mderr.Config(mderr.ConfigIncompatible)
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

	results := collectMatches(sections, terms, parseSearchMode(mode), fromDate, untilDate)
	orderResults(results, parseSearchOrdering(ordering))
	rendered := renderResults(results)

	writers := []docio.Writer{}
	if opts.toStdout {
		writers = append(writers, docio.StdoutWriter{})
	}
	if opts.output != "" {
		writers = append(writers, docio.FileWriter{Path: opts.output})
	}
	if len(writers) == 0 {
		writers = append(writers, docio.StdoutWriter{})
	}
	for _, w := range writers {
		if err := w.Write(rendered); err != nil {
			return err
		}
	}
	return nil
}
