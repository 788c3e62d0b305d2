package doctor

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/fixcpp/fixcpp/internal/config"
	"github.com/fixcpp/fixcpp/internal/fix"
	"github.com/fixcpp/fixcpp/internal/tidy"
)

// fixIssue applies the repair for issue. It returns a short description of
// what changed.
func fixIssue(cfg *config.Config, issue Issue) (string, error) {
	switch issue.FixAction {
	case ActionSync:
		names, err := fix.LoadCatalog(cfg.CatalogPath)
		if err != nil {
			return "", err
		}
		added := cfg.Reconcile(names)
		if err := cfg.Save(); err != nil {
			return "", err
		}
		return fmt.Sprintf("added %d checks to config (disabled)", added), nil

	case ActionRestore:
		stash, err := tidy.StashPath(cfg.ProjectPath)
		if err != nil {
			return "", err
		}
		b, err := tidy.LoadStash(stash)
		if err != nil {
			return "", fmt.Errorf("load stash: %w", err)
		}
		if err := b.Restore(); err != nil {
			return "", err
		}
		if err := tidy.RemoveStash(stash); err != nil {
			return "", err
		}
		if b.Existed() {
			return "restored original " + b.Target(), nil
		}
		return "removed generated " + b.Target(), nil

	case ActionRemove:
		if err := os.Remove(issue.Key); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
		return "removed " + issue.Key, nil
	}
	return "", fmt.Errorf("no automatic fix for %s", issue.Key)
}
