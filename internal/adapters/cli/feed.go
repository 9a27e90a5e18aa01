package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/planforge/aps-go/internal/application/tables"
	"github.com/planforge/aps-go/internal/domain/lookup"
	"github.com/planforge/aps-go/internal/infrastructure/config"
)

// feedFile is the on-disk form of one feed batch. The kind travels as its
// external name; table definitions use the same shape the application
// layer consumes. AutoDelete is a pointer so a file that omits it falls
// back to the configured default.
type feedFile struct {
	Kind       string                   `mapstructure:"kind"`
	AutoDelete *bool                    `mapstructure:"auto_delete"`
	Tables     []tables.TableDefinition `mapstructure:"tables"`
}

// NewFeedCommand creates the feed command group
func NewFeedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Apply lookup table feeds",
	}

	cmd.AddCommand(newFeedApplyCommand())
	return cmd
}

func newFeedApplyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply <file>",
		Short: "Apply a feed batch from a YAML or JSON file",
		Long: `Reconcile one feed batch against the stored tables of its kind.
Existing tables matching an incoming name are rebuilt; with auto_delete
set, stored tables absent from the batch are deleted afterwards.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			eng, err := openEngine(ctx)
			if err != nil {
				return err
			}
			defer eng.close()

			batch, err := loadFeedFile(args[0], eng.cfg.Feed)
			if err != nil {
				return err
			}

			changes := &printChangeSink{}
			result, err := eng.registry.Reconcile(batch, changes, &printErrorSink{})
			if err != nil {
				return err
			}
			eng.registry.Manager(batch.Kind).ExecuteDeferred(result.Deferred, changes)

			if err := eng.persist(ctx); err != nil {
				return err
			}

			fmt.Printf("Batch %s: %d added, %d updated, %d deleted, %d errors\n",
				result.BatchID, len(result.AddedIDs), len(result.UpdatedIDs),
				len(result.Deferred), len(result.Errors))
			return nil
		},
	}
	return cmd
}

func loadFeedFile(path string, feedCfg config.FeedConfig) (tables.FeedBatch, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return tables.FeedBatch{}, fmt.Errorf("failed to read feed file: %w", err)
	}

	var ff feedFile
	if err := v.Unmarshal(&ff); err != nil {
		return tables.FeedBatch{}, fmt.Errorf("failed to parse feed file: %w", err)
	}

	if len(ff.Tables) > feedCfg.MaxBatchSize {
		return tables.FeedBatch{}, fmt.Errorf("feed contains %d tables, exceeding the configured batch limit of %d",
			len(ff.Tables), feedCfg.MaxBatchSize)
	}

	kind, err := parseKindFlag(ff.Kind)
	if err != nil {
		return tables.FeedBatch{}, err
	}

	autoDelete := feedCfg.AutoDeleteDefault
	if ff.AutoDelete != nil {
		autoDelete = *ff.AutoDelete
	}
	return tables.NewFeedBatch(kind, autoDelete, ff.Tables...), nil
}

// printChangeSink echoes change records to stdout.
type printChangeSink struct{}

func (printChangeSink) TableAdded(kind lookup.TableKind, id int64) {
	fmt.Printf("  added   %s table %d\n", kind, id)
}

func (printChangeSink) TableUpdated(kind lookup.TableKind, id int64) {
	fmt.Printf("  updated %s table %d\n", kind, id)
}

func (printChangeSink) TableDeleted(kind lookup.TableKind, id int64) {
	fmt.Printf("  deleted %s table %d\n", kind, id)
}

// printErrorSink echoes batch validation errors to stdout.
type printErrorSink struct{}

func (printErrorSink) ReportBatch(batchID uuid.UUID, errs []error) {
	fmt.Printf("Batch %s reported %d errors:\n", batchID, len(errs))
	for _, err := range errs {
		fmt.Printf("  %v\n", err)
	}
}
