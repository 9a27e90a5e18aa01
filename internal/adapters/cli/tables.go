package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewTablesCommand creates the tables command group
func NewTablesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tables",
		Short: "Manage lookup tables",
		Long:  `List, copy and delete the engine's lookup tables per kind.`,
	}

	cmd.AddCommand(newTablesListCommand())
	cmd.AddCommand(newTablesCopyCommand())
	cmd.AddCommand(newTablesDeleteCommand())

	return cmd
}

func newTablesListCommand() *cobra.Command {
	var kindName string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List lookup tables of one kind",
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKindFlag(kindName)
			if err != nil {
				return err
			}

			ctx := context.Background()
			eng, err := openEngine(ctx)
			if err != nil {
				return err
			}
			defer eng.close()

			manager := eng.registry.Manager(kind)
			fmt.Printf("%s tables: %d\n", kind, manager.Count())
			for _, t := range manager.Tables() {
				fmt.Printf("  [%d] %s (%d rows, %d resources)\n",
					t.ID(), t.Name(), len(t.Rows()), len(t.Assignments()))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&kindName, "kind", "", "Table kind (required)")
	cmd.MarkFlagRequired("kind")
	return cmd
}

func newTablesCopyCommand() *cobra.Command {
	var kindName string
	var tableID int64

	cmd := &cobra.Command{
		Use:   "copy",
		Short: "Copy a lookup table",
		Long:  `Clone a table under a fresh id. The copy starts with no resource assignments.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKindFlag(kindName)
			if err != nil {
				return err
			}

			ctx := context.Background()
			eng, err := openEngine(ctx)
			if err != nil {
				return err
			}
			defer eng.close()

			clone, err := eng.registry.Manager(kind).Copy(tableID)
			if err != nil {
				return err
			}
			if err := eng.persist(ctx); err != nil {
				return err
			}

			fmt.Printf("Created [%d] %s\n", clone.ID(), clone.Name())
			return nil
		},
	}

	cmd.Flags().StringVar(&kindName, "kind", "", "Table kind (required)")
	cmd.Flags().Int64Var(&tableID, "id", 0, "Source table id (required)")
	cmd.MarkFlagRequired("kind")
	cmd.MarkFlagRequired("id")
	return cmd
}

func newTablesDeleteCommand() *cobra.Command {
	var kindName string
	var tableID int64

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a lookup table",
		Long:  `Delete a table, unlinking it from every assigned resource first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKindFlag(kindName)
			if err != nil {
				return err
			}

			ctx := context.Background()
			eng, err := openEngine(ctx)
			if err != nil {
				return err
			}
			defer eng.close()

			if err := eng.registry.Manager(kind).Delete(tableID); err != nil {
				return err
			}
			if err := eng.persist(ctx); err != nil {
				return err
			}

			fmt.Printf("Deleted table %d\n", tableID)
			return nil
		},
	}

	cmd.Flags().StringVar(&kindName, "kind", "", "Table kind (required)")
	cmd.Flags().Int64Var(&tableID, "id", 0, "Table id (required)")
	cmd.MarkFlagRequired("kind")
	cmd.MarkFlagRequired("id")
	return cmd
}
