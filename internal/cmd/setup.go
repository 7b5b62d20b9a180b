package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matthieukhl/storefront/internal/config"
	"github.com/matthieukhl/storefront/internal/database"
)

var (
	dropFirst  bool
	schemaOnly bool
	resetData  bool
)

var setupCmd = &cobra.Command{
	Use:   "setup-storage",
	Short: "Prepare the storage backend and seed the product catalog",
	Long: `Prepares the configured storage backend.

For the mysql driver this creates the storage_entries table. Every driver
then gets the sample product catalog, unless --schema-only is set, so the
manager console has something to price.`,
	RunE: setupStorage,
}

func init() {
	rootCmd.AddCommand(setupCmd)

	setupCmd.Flags().BoolVar(&dropFirst, "drop-first", false, "Drop the storage table before creating it (mysql only)")
	setupCmd.Flags().BoolVar(&schemaOnly, "schema-only", false, "Create schema only, skip the sample catalog")
	setupCmd.Flags().BoolVar(&resetData, "reset", false, "Remove the cart, the order history and the catalog before seeding")
}

func setupStorage(cmd *cobra.Command, args []string) error {
	fmt.Println("🔧 Setting up storage...")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if cfg.Storage.Driver == config.DriverMySQL {
		if err := setupSQLSchema(cmd, cfg); err != nil {
			return err
		}
	} else {
		fmt.Printf("📋 The %s driver needs no schema\n", cfg.Storage.Driver)
	}

	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	if resetData && cfg.Storage.Driver != config.DriverMySQL {
		fmt.Println("🗑️  Removing stored data...")
		for _, key := range []string{cfg.Keys.Cart, cfg.Keys.Orders, cfg.Keys.Products} {
			if err := a.storage.Delete(cmd.Context(), key); err != nil {
				return fmt.Errorf("failed to remove %s: %w", key, err)
			}
		}
	}

	if !schemaOnly {
		fmt.Println("📦 Seeding product catalog...")
		if err := a.catalog.Seed(cmd.Context()); err != nil {
			return fmt.Errorf("failed to seed catalog: %w", err)
		}
	}

	fmt.Println("✅ Storage setup complete!")
	return nil
}

func setupSQLSchema(cmd *cobra.Command, cfg *config.Config) error {
	db, err := database.NewConnection(cmd.Context(), &cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if dropFirst {
		fmt.Println("🗑️  Dropping existing storage table...")
		if err := db.DropSchema(cmd.Context()); err != nil {
			return fmt.Errorf("failed to drop schema: %w", err)
		}
	}

	fmt.Println("📋 Creating storage schema...")
	if err := db.SetupSchema(cmd.Context()); err != nil {
		return fmt.Errorf("failed to setup schema: %w", err)
	}

	if resetData {
		fmt.Println("🗑️  Removing stored data...")
		if err := db.CleanupData(cmd.Context()); err != nil {
			return fmt.Errorf("failed to cleanup data: %w", err)
		}
	}
	return nil
}
