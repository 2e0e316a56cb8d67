package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/skilltools/internal/skill"
	"github.com/pdiddy/skilltools/pkg/types"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file_path>",
	Short: "Check a SKILL.md file for frontmatter and body problems",
	Long: `Validate checks that a skill file starts with a "---" frontmatter block that
declares name and description, that the name is lowercase with hyphens only,
and that the body is non-empty and not longer than the line ceiling.

Each problem is printed on its own line and the command exits with status 1.
A clean file prints a single success line.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().Int("max-body-lines", types.DefaultMaxBodyLines, "largest accepted body line count")
	validateCmd.Flags().Bool("json", false, "print the result as JSON")

	_ = viper.BindPFlag("validation.max_body_lines", validateCmd.Flags().Lookup("max-body-lines"))

	rootCmd.AddCommand(validateCmd)
}

// validationReport is the JSON form of a validate run.
type validationReport struct {
	Path   string        `json:"path"`
	Valid  bool          `json:"valid"`
	Issues []types.Issue `json:"issues"`
}

func runValidate(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	path := args[0]

	issues, err := skill.Validate(path, skill.Options{MaxBodyLines: toolsCfg.Validation.MaxBodyLines})
	if err != nil {
		return err
	}
	logger.Debug().Str("file", path).Int("issues", len(issues)).Msg("validated")

	asJSON, _ := cmd.Flags().GetBool("json")
	out := cmd.OutOrStdout()
	if asJSON {
		if issues == nil {
			issues = []types.Issue{}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(validationReport{Path: path, Valid: len(issues) == 0, Issues: issues}); err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
	} else {
		printIssues(out, issues)
	}

	if len(issues) > 0 {
		return fmt.Errorf("%s: %d issue(s) found", path, len(issues))
	}
	return nil
}

// printIssues writes one warning line per issue, or a success line when
// there are none.
func printIssues(w io.Writer, issues []types.Issue) {
	if len(issues) == 0 {
		fmt.Fprintln(w, "  ✓ Valid")
		return
	}
	for _, is := range issues {
		fmt.Fprintf(w, "  ⚠ %s\n", is)
	}
}
