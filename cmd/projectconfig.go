package cmd

import (
	"github.com/senna-lang/mdj/internal/project"
	"github.com/senna-lang/mdj/pkg/config"
)

// loadProjectConfig resolves config defaults for search/tags/tree/tasks via
// project.Resolve: inside an initialized project the on-disk config.json is
// loaded, and anywhere else the built-in defaults apply, so these commands
// never require `mdj init` first. Only `mdj status`, which inspects the
// enclosing git worktree, insists on a real project root.
func loadProjectConfig() (string, config.Config, error) {
	root, err := project.Resolve()
	if err != nil {
		return "", config.Config{}, err
	}
	if !root.Initialized {
		return root.Dir, config.Default(""), nil
	}
	cfg, err := config.Load(root.Dir)
	if err != nil {
		return "", config.Config{}, err
	}
	return root.Dir, cfg, nil
}
