package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/brogergvhs/bascrape/internal/config"

	"github.com/spf13/cobra"
)

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available configs",
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := config.ListConfigs()
		if err != nil {
			return fmt.Errorf("cannot read configs directory: %w", err)
		}

		if len(list) == 0 {
			fmt.Println("No configs yet. Run `bascrape config init` to create one.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 4, ' ', 0)
		_, _ = fmt.Fprintln(w, "LABEL\tPATH\tACTIVE\tSTATUS")

		for _, c := range list {
			activeMark := ""
			if c.Active {
				activeMark = "yes"
			}
			status := "ok"
			if c.Err != nil {
				status = strings.ReplaceAll(c.Err.Error(), "\n", "; ")
			}
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.Label, c.Path, activeMark, status)
		}

		if err := w.Flush(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to flush table output: %v\n", err)
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configListCmd)
}
