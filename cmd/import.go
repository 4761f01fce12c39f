package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"capitol/constellation/internal/dataset"
	"capitol/constellation/internal/db"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Load a .json/.yaml network into the SQLite database (replaces its contents)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := dataset.LoadFile(args[0])
		if err != nil {
			return err
		}

		target := dbPath
		if target == "" {
			target = defaultDBName
		}
		d, err := db.OpenDB(target)
		if err != nil {
			return err
		}
		defer d.Close()

		if err := d.Migrate(); err != nil {
			return err
		}
		if err := dataset.Save(d, doc); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d nodes and %d edges into %s\n", len(doc.Nodes), len(doc.Edges), target)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
