package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/steveyegge/speclint/internal/config"
	"github.com/steveyegge/speclint/internal/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the spec documents and their enabled and disabled rules",
	Long: `Parse the spec documents and show which rules a scan would check.

Examples:
  speclint rules
  speclint rules --spec-dir docs/spec --disabled=false`,
	Run: func(cmd *cobra.Command, args []string) {
		c := cfg
		if cmd.Flags().Changed("spec-dir") {
			c.SpecDir, _ = cmd.Flags().GetString("spec-dir")
		}
		showDisabled, _ := cmd.Flags().GetBool("disabled")

		if err := listRules(os.Stdout, c, showDisabled); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rulesCmd.Flags().String("spec-dir", "", "Directory holding the spec documents")
	rulesCmd.Flags().Bool("disabled", true, "Also list disabled rules")
	rootCmd.AddCommand(rulesCmd)
}

func listRules(w io.Writer, c config.Config, showDisabled bool) error {
	info, err := os.Stat(c.SpecDir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", config.ErrSpecDirMissing, c.SpecDir)
	}

	reg, err := rules.LoadRegistry(os.DirFS(c.SpecDir), c.LoadOptions())
	if err != nil {
		return err
	}

	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	docs := reg.Documents()
	if len(docs) == 0 {
		fmt.Fprintf(w, "%s No spec documents found in %s\n", yellow("!"), c.SpecDir)
		return nil
	}

	enabled, total := 0, 0
	for _, doc := range docs {
		fmt.Fprintf(w, "%s %s\n", bold(doc.Name), faint(doc.Path))
		if doc.Warning != "" {
			fmt.Fprintf(w, "  %s %s\n", yellow("!"), doc.Warning)
		}
		for _, ref := range doc.Enabled {
			fmt.Fprintf(w, "  %s [%s] %s\n", green("✓"), ref.ID, ref.Title)
		}
		if showDisabled {
			for _, ref := range doc.Disabled {
				fmt.Fprintf(w, "  %s [%s] %s\n", faint("-"), ref.ID, faint(ref.Title+" (disabled)"))
			}
		}
		enabled += len(doc.Enabled)
		total += len(doc.Enabled) + len(doc.Disabled)
	}

	fmt.Fprintf(w, "\n%d of %d rule(s) enabled across %d document(s)\n", enabled, total, len(docs))
	return nil
}
