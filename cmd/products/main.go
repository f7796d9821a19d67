// Command products loads product data files through the injector and can
// serve them over HTTP.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/km-arc/go-injector/framework/app"
	"github.com/km-arc/go-injector/framework/config"
	"github.com/km-arc/go-injector/framework/container"
	"github.com/km-arc/go-injector/internal/products"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:           "products",
	Short:         "Load and serve product catalogs",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var listCmd = &cobra.Command{
	Use:   "list [file]",
	Short: "Parse a product file and print its entries",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load(envFile)
		application, err := app.New(cfg, &products.Provider{})
		if err != nil {
			return err
		}
		defer application.Logger.Sync() //nolint:errcheck

		file := cfg.Products.File
		if len(args) == 1 {
			file = args[0]
		}
		svc, err := container.Resolve[products.ProductService](application.Container)
		if err != nil {
			return err
		}
		list, err := svc.GetAllFromFile(file)
		if err != nil {
			return err
		}
		for _, p := range list {
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%.2f\t%s\n", p.ID, p.Name, p.Category, p.Price, p.Description)
		}
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the product API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := config.Load(envFile)
		application, err := app.New(cfg, &products.Provider{Mount: true})
		if err != nil {
			return err
		}
		defer application.Logger.Sync() //nolint:errcheck

		preload, _ := cmd.Flags().GetBool("preload")
		if preload {
			svc, err := container.Resolve[products.ProductService](application.Container)
			if err != nil {
				return err
			}
			list, err := svc.GetAllFromFile(cfg.Products.File)
			if err != nil {
				return err
			}
			svc.Save(list...)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return application.Run(ctx)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the build version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), app.Version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	serveCmd.Flags().Bool("preload", false, "import PRODUCTS_FILE before serving")
	rootCmd.AddCommand(listCmd, serveCmd, versionCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
