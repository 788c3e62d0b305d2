package main

import (
	"slices"

	"github.com/spf13/cobra"

	"github.com/fixcpp/fixcpp/internal/config"
	"github.com/fixcpp/fixcpp/internal/fix"
)

// loadConfigForCompletion loads the config without the root pre-run, which
// cobra skips for __complete.
func loadConfigForCompletion() (*config.Config, bool) {
	path, err := configFilePath()
	if err != nil {
		return nil, false
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, false
	}
	return &cfg, true
}

// completeFixNames completes fix names from the config, skipping names
// already given as arguments.
func completeFixNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	cfg, ok := loadConfigForCompletion()
	if !ok {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var names []string
	for _, name := range fix.Names(cfg.Fixes) {
		if !slices.Contains(args, name) {
			names = append(names, name)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

// completeConfigKeys completes keys accepted by config set/get.
func completeConfigKeys(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return config.SettableKeys, cobra.ShellCompDirectiveNoFileComp
}
