// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg from the environment through the env and envPrefix tags
// of [StructuredConfig].
//
// Paths read from the environment may start with "~/", as they often do in
// .env files where the shell does not expand them. The output directory, the
// cache DSN and the log file are resolved against the user's home directory.
func parseEnv(cfg *StructuredConfig) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	for _, path := range []*string{&cfg.App.OutputDir, &cfg.Storage.DB.DSN, &cfg.App.LogFile} {
		expanded, err := expandHome(*path)
		if err != nil {
			return fmt.Errorf("error getting env configs: %w", err)
		}
		*path = expanded
	}

	return nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", path, err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
