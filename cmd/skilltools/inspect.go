package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/skilltools/internal/skill"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file_path>",
	Short: "Show the parsed frontmatter and outline of a skill file",
	Long: `Inspect decodes the YAML frontmatter of a skill file and prints its fields,
any extra keys, the body line count, and the heading outline of the body.
Output is YAML unless --json is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		doc, err := skill.Inspect(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(doc)
		}

		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encoding %s: %w", args[0], err)
		}
		return enc.Close()
	},
}

func init() {
	inspectCmd.Flags().Bool("json", false, "print JSON instead of YAML")

	rootCmd.AddCommand(inspectCmd)
}
