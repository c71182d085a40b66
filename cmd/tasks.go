package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/senna-lang/mdj/internal/docio"
	"github.com/senna-lang/mdj/internal/mdlex"
	"github.com/senna-lang/mdj/internal/mdsection"
	"github.com/spf13/cobra"
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "List the journal's TODO/DOING/REVIEW/DONE tasks",
	Long: `Extract every task line from the given journal files and print it,
filtered by finished state and ordered by urgency or document order.

Urgency ranks DONE lowest, then REVIEW, then DOING, then TODO, with
TODO UNTIL <date> ranked by how close (or how overdue) the date is.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		inputs, _ := cmd.Flags().GetStringArray("input")
		output, _ := cmd.Flags().GetString("output")
		filter, _ := cmd.Flags().GetString("show")
		ordering, _ := cmd.Flags().GetString("order")
		toStdout, _ := cmd.Flags().GetBool("stdout")
		return runTasks(inputs, output, filter, ordering, toStdout)
	},
}

func init() {
	tasksCmd.Flags().StringArrayP("input", "i", nil, "Journal file or directory to scan (repeatable)")
	tasksCmd.Flags().StringP("output", "o", "", "File to write the task list to")
	tasksCmd.Flags().String("show", "", "Which tasks to show: all, unfinished, or finished")
	tasksCmd.Flags().String("order", "", "Ordering: urgency or occurence")
	tasksCmd.Flags().Bool("stdout", false, "Also print the task list to stdout")
	rootCmd.AddCommand(tasksCmd)
}

func parseTaskFilter(s string) mdsection.Filter {
	switch strings.ToLower(s) {
	case "all":
		return mdsection.FilterAll
	case "finished":
		return mdsection.FilterFinished
	default:
		return mdsection.FilterUnfinished
	}
}

func runTasks(inputs []string, output, filter, ordering string, toStdout bool) error {
	_, cfg, err := loadProjectConfig()
	if err != nil {
		return err
	}
	if filter == "" {
		filter = cfg.Tasks.Filter
	}
	if ordering == "" {
		ordering = cfg.Tasks.Ordering
	}
	if len(inputs) == 0 {
		return fmt.Errorf("tasks requires at least one -i/--input path")
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

	items := mdsection.ExtractTasks(sections)
	items = mdsection.FilterTasks(items, parseTaskFilter(filter))

	order := mdsection.OrderOccurence
	if strings.EqualFold(ordering, "urgency") {
		order = mdsection.OrderUrgency
	}
	mdsection.Order(items, order, time.Now())

	if len(items) == 0 {
		fmt.Println("no tasks found")
		return nil
	}

	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, item.Token.ToMarkdownString())
	}
	rendered := strings.Join(lines, "\n")

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
