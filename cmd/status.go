package cmd

import (
	"fmt"

	"github.com/senna-lang/mdj/internal/gitutil"
	"github.com/senna-lang/mdj/internal/project"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the git status of journal files",
	Long: `Display the git working-tree status of every path given with
-i/--input: staged changes, unstaged changes, and untracked files.

This command is read-only. mdj never stages, commits, or pushes anything
on a user's behalf.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		inputs, _ := cmd.Flags().GetStringArray("input")
		return runStatus(inputs)
	},
}

func init() {
	statusCmd.Flags().StringArrayP("input", "i", nil, "Journal file or directory to check (repeatable)")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(inputs []string) error {
	if len(inputs) == 0 {
		return fmt.Errorf("status requires at least one -i/--input path")
	}

	root, err := project.FindRoot()
	if err != nil {
		return err
	}

	entries, err := gitutil.StatusForPaths(root, inputs, true)
	if err != nil {
		return fmt.Errorf("query git status: %w", err)
	}

	var staged, unstaged, untracked []gitutil.FileStatus
	for _, e := range entries {
		switch {
		case e.Staging == gitutil.Untracked && e.Worktree == gitutil.Untracked:
			untracked = append(untracked, e)
		case e.Staging != gitutil.Unmodified && e.Staging != gitutil.Untracked:
			staged = append(staged, e)
		case e.Worktree != gitutil.Unmodified && e.Worktree != gitutil.Untracked:
			unstaged = append(unstaged, e)
		}
	}

	if len(staged) == 0 && len(unstaged) == 0 && len(untracked) == 0 {
		fmt.Println("nothing to commit, working tree clean")
		return nil
	}

	if len(staged) > 0 {
		fmt.Println("Staged:")
		for _, e := range staged {
			fmt.Printf("  %s  %s\n", e.Staging, e.Path)
		}
		fmt.Println()
	}
	if len(unstaged) > 0 {
		fmt.Println("Not staged:")
		for _, e := range unstaged {
			fmt.Printf("  %s  %s\n", e.Worktree, e.Path)
		}
		fmt.Println()
	}
	if len(untracked) > 0 {
		fmt.Println("Untracked:")
		for _, e := range untracked {
			fmt.Printf("  ?  %s\n", e.Path)
		}
	}

	return nil
}
