package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/senna-lang/mdj/pkg/config"
	"github.com/spf13/cobra"
)

// defaultPresetsYAML is the content written to .mdj/search-presets.yaml on
// mdj init: a starter preset showing the shape `mdj search --preset` reads.
const defaultPresetsYAML = `# Named search presets for "mdj search --preset <name>".
# Each preset bundles a term list, match mode, and ordering so a frequent
# search doesn't need to be retyped. Delete the example below once you've
# added your own.
presets:
  - name: open-work
    terms: ["work"]
    mode: or
    ordering: date
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize mdj in the current directory",
	Long: `Create .mdj/ with config.json and search-presets.yaml.
Exits with an error if the project has already been initialized.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInit()
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit() error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("cannot determine working directory: %w", err)
	}

	mdjDir := filepath.Join(cwd, config.DirName)

	if _, err := os.Stat(mdjDir); err == nil {
		return errors.New("already initialized: .mdj/ already exists")
	}

	if err := os.MkdirAll(mdjDir, 0o755); err != nil {
		return fmt.Errorf("create .mdj directory: %w", err)
	}

	projectName := filepath.Base(cwd)
	cfg := config.Default(projectName)
	if err := config.Save(cwd, cfg); err != nil {
		return fmt.Errorf("write config.json: %w", err)
	}

	presetsPath := config.PresetsPath(cwd, cfg)
	if err := os.WriteFile(presetsPath, []byte(defaultPresetsYAML), 0o644); err != nil {
		return fmt.Errorf("write search-presets.yaml: %w", err)
	}

	fmt.Printf("Initialized mdj in %s\n", cwd)
	fmt.Printf("  Created  .mdj/\n")
	fmt.Printf("  Created  .mdj/config.json\n")
	fmt.Printf("  Created  .mdj/search-presets.yaml\n")
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Printf("  1. Point -i/--input at your journal file(s) or directory\n")
	fmt.Printf("  2. Run `mdj tree -i journal.md` to see its section structure\n")

	return nil
}
