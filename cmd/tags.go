package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/senna-lang/mdj/internal/docio"
	"github.com/senna-lang/mdj/internal/mdlex"
	"github.com/senna-lang/mdj/internal/mdtoken"
	"github.com/spf13/cobra"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List every @tag used in the journal, with counts",
	Long: `Count every top-level @tag token across the given journal files and
print a table, ordered alphabetically or by count. A @tag nested inside
another token (a heading title, emphasis, a task) is not counted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		inputs, _ := cmd.Flags().GetStringArray("input")
		output, _ := cmd.Flags().GetString("output")
		ordering, _ := cmd.Flags().GetString("ordering")
		toStdout, _ := cmd.Flags().GetBool("stdout")
		return runTags(inputs, output, ordering, toStdout)
	},
}

func init() {
	tagsCmd.Flags().StringArrayP("input", "i", nil, "Journal file or directory to scan (repeatable)")
	tagsCmd.Flags().StringP("output", "o", "", "File to write the tag table to")
	tagsCmd.Flags().String("ordering", "", "Ordering: alphabetic or count")
	tagsCmd.Flags().Bool("stdout", false, "Also print the tag table to stdout")
	rootCmd.AddCommand(tagsCmd)
}

func countTags(tokens []mdtoken.Token) map[string]int {
	counts := make(map[string]int)
	for _, tok := range tokens {
		if tok.Kind == mdtoken.TagKind {
			counts[tok.Str]++
		}
	}
	return counts
}

func tagsTable(counts map[string]int, ordering string) string {
	type tagCount struct {
		tag   string
		count int
	}
	rows := make([]tagCount, 0, len(counts))
	for t, c := range counts {
		rows = append(rows, tagCount{t, c})
	}

	switch strings.ToLower(ordering) {
	case "count":
		sort.Slice(rows, func(i, j int) bool {
			if rows[i].count != rows[j].count {
				return rows[i].count < rows[j].count
			}
			return rows[i].tag < rows[j].tag
		})
	default:
		sort.Slice(rows, func(i, j int) bool { return rows[i].tag < rows[j].tag })
	}

	out := fmt.Sprintf("%-20s %10s\n", "Tag", "Count")
	for _, r := range rows {
		out += fmt.Sprintf("%-20s %10d\n", r.tag, r.count)
	}
	return out
}

func runTags(inputs []string, output, ordering string, toStdout bool) error {
	_, cfg, err := loadProjectConfig()
	if err != nil {
		return err
	}
	if ordering == "" {
		ordering = cfg.Tags.Ordering
	}
	if len(inputs) == 0 {
		return fmt.Errorf("tags requires at least one -i/--input path")
	}

	content, err := docio.ReadAll(inputs)
	if err != nil {
		return err
	}
	tokens, err := mdlex.Tokenize(content)
	if err != nil {
		warnf("warning: %v\n", err)
	}

	counts := countTags(tokens)
	if len(counts) == 0 {
		fmt.Println("no tags found")
		return nil
	}

	rendered := tagsTable(counts, ordering)

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
