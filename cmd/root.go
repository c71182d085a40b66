// Package cmd implements the mdj CLI commands using the cobra framework.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mdj",
	Short: "Query and inspect a dated, tagged markdown journal",
	Long: `mdj reads a personal markdown journal — dated entries with nested
sections, hashtags, and inline TODO/DOING/REVIEW/DONE tasks — and lets you
search it by tag, list every tag in use, render its section structure as a
tree, or list its outstanding tasks by urgency.`,
}

// verbose mirrors the root --verbose flag. Recovered per-line tokenizer
// errors are swallowed by default (a malformed line elsewhere in a large
// journal shouldn't keep the rest of the journal from being searched,
// tagged, or listed); --verbose prints them to stderr after tokenization.
var verbose bool

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print recovered per-line parse warnings to stderr")
}

// warnf prints a diagnostic line to stderr when --verbose is set; it is a
// no-op otherwise.
func warnf(format string, args ...interface{}) {
	if !verbose {
		return
	}
	fmt.Fprintf(os.Stderr, format, args...)
}
