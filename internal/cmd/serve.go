package cmd

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/matthieukhl/storefront/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the storefront API server",
	Long: `Start the storefront API server which provides:
- Cart endpoints for the shop front end
- Checkout and order history
- Order status management and finance summary for managers
- Product pricing and sales`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides server.addr)")
}

func runServer(cmd *cobra.Command, args []string) error {
	fmt.Println("🚀 Storefront Starting...")

	fmt.Println("🔌 Opening storage...")
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	fmt.Printf("✅ Storage ready (%s)\n", a.cfg.Storage.Driver)

	fmt.Println("⚙️  Setting up server...")
	gin.SetMode(a.cfg.Server.Mode)
	srv := server.NewServer(server.Deps{
		Storage: a.storage,
		Cart:    a.cart,
		Orders:  a.orders,
		Catalog: a.catalog,
		Logger:  a.logger,
	})

	addr := a.cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	fmt.Printf("🌐 Starting server on %s...\n", addr)
	if err := srv.Start(addr); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
