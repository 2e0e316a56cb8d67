//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/skilltools/internal/skill"
)

const skillFileName = "SKILL.md"

// ValidateAll validates every SKILL.md under dir and fails if any has issues.
func ValidateAll(dir string) error {
	var files, failed int
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || d.Name() != skillFileName {
			return nil
		}
		files++
		issues, err := skill.Validate(path, skill.Options{})
		if err != nil {
			return err
		}
		if len(issues) == 0 {
			fmt.Printf("ok:     %s\n", path)
			return nil
		}
		failed++
		fmt.Printf("failed: %s\n", path)
		for _, is := range issues {
			fmt.Printf("  ⚠ %s\n", is)
		}
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Printf("\nSummary: %d checked, %d with issues\n", files, failed)
	if failed > 0 {
		return fmt.Errorf("%d skill file(s) have issues", failed)
	}
	return nil
}
