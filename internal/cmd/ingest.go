package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matthieukhl/storefront/internal/ingest"
)

var (
	importFile string
	exportFile string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a local storage dump",
	Long: `Import a JSON dump of browser local storage ({"cart": ..., "orders": ...}).

Orders are merged by id: an order whose id is already stored is skipped.
The cart is replaced when the dump carries one. Values may be JSON arrays
or, as local storage keeps them, strings holding JSON.`,
	RunE: importDump,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the cart and order history as a local storage dump",
	RunE:  exportDump,
}

func init() {
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)

	importCmd.Flags().StringVarP(&importFile, "file", "f", "-", "Dump file to read (- for stdin)")
	exportCmd.Flags().StringVarP(&exportFile, "output", "o", "-", "File to write (- for stdout)")
}

func importDump(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	var r io.Reader = cmd.InOrStdin()
	if importFile != "-" {
		f, err := os.Open(importFile)
		if err != nil {
			return fmt.Errorf("failed to open dump: %w", err)
		}
		defer f.Close()
		r = f
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "🔄 Importing local storage dump...\n")
	ingester := ingest.NewIngester(a.cart, a.orders.Store(), a.logger)
	result, err := ingester.Import(cmd.Context(), r)
	if err != nil {
		return err
	}

	fmt.Printf("✅ Imported %d order(s), skipped %d already stored\n", result.OrdersAdded, result.OrdersSkipped)
	if result.CartReplaced {
		fmt.Printf("🛒 Cart replaced with %d line(s)\n", result.CartItems)
	}
	return nil
}

func exportDump(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	ingester := ingest.NewIngester(a.cart, a.orders.Store(), a.logger)

	if exportFile == "-" {
		_, err := ingester.Export(cmd.Context(), cmd.OutOrStdout())
		return err
	}

	f, err := os.Create(exportFile)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", exportFile, err)
	}
	dump, err := exportTo(cmd.Context(), ingester, f)
	if err != nil {
		return fmt.Errorf("failed to export to %s: %w", exportFile, err)
	}

	fmt.Printf("📤 Exported %d cart line(s) and %d order(s) to %s\n", len(dump.Cart), len(dump.Orders), exportFile)
	return nil
}

// exportTo writes the dump to wc and closes it. A failed close means the
// dump may be incomplete and is reported as an error.
func exportTo(ctx context.Context, ingester *ingest.Ingester, wc io.WriteCloser) (ingest.Dump, error) {
	dump, err := ingester.Export(ctx, wc)
	if err != nil {
		wc.Close()
		return ingest.Dump{}, err
	}
	if err := wc.Close(); err != nil {
		return ingest.Dump{}, fmt.Errorf("failed to close dump: %w", err)
	}
	return dump, nil
}
