package main

import (
	"fmt"

	"shop-assistant/internal/catalog/backend"
	"shop-assistant/internal/catalog/memory"
	"shop-assistant/internal/common/config"
	"shop-assistant/internal/common/logger"

	"github.com/spf13/cobra"
)

func newImportCmd(opts *rootOptions) *cobra.Command {
	var attempts int

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Write the fixture into the configured catalog backend",
		Long: `import loads the fixture and upserts it into the backend selected by
catalog.backend: rows for postgres and sqlite, documents for elasticsearch.
Cached query results are invalidated afterwards.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.config)
			if err != nil {
				return err
			}

			products, err := memory.LoadFile(opts.fixture)
			if err != nil {
				return fmt.Errorf("load fixture: %w", err)
			}

			level := "warn"
			if opts.verbose {
				level = "debug"
			}
			zapLog := logger.New(level, "console", "stderr")
			defer zapLog.Sync()

			b, err := backend.Open(cmd.Context(), cfg, backend.Options{Logger: zapLog, Attempts: attempts})
			if err != nil {
				return err
			}
			defer b.Close()

			if err := b.Import(cmd.Context(), products); err != nil {
				return fmt.Errorf("import into %s: %w", b.Name, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d products into %s\n", len(products), b.Name)
			return nil
		},
	}
	cmd.Flags().IntVar(&attempts, "attempts", 3, "connection attempts before giving up")
	return cmd
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}
