package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/beanvanilla/storefront-backend/config"
	"github.com/beanvanilla/storefront-backend/internal/app/repository"
	"github.com/beanvanilla/storefront-backend/internal/app/service"
	"github.com/beanvanilla/storefront-backend/internal/db"
	"github.com/beanvanilla/storefront-backend/pkg/logger"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	assumeYes bool
	dryRun    bool
)

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load products into the Bean and Vanilla catalog",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Initialize(logger.Config{Level: "info", Format: "console", EnableColor: true})
	},
	SilenceUsage: true,
}

var fixturesCmd = &cobra.Command{
	Use:   "fixtures",
	Short: "Seed the built-in catalog into an empty products table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, closeDB, err := connect()
		if err != nil {
			return err
		}
		defer closeDB()
		return db.SeedProducts(conn)
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file.xlsx>",
	Short: "Create or update products from the first sheet of an XLSX workbook",
	Long: `Reads products from the first sheet of an XLSX workbook. The first row is a
header naming the columns: name, image, brand, category, type, description,
material, stone, movement, caseSize, occasions, tags, recipients, price,
countInStock. List columns are separated by commas or semicolons. A product
whose name already exists is updated in place.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Import without asking for confirmation")
	importCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Parse the workbook and report without writing")
	rootCmd.AddCommand(fixturesCmd, importCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func connect() (*gorm.DB, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := db.Initialize(&cfg.Database); err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return db.GetDB(), func() { _ = db.Close() }, nil
}

func runImport(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Reading XLSX file: %s\n", args[0])
	result, err := readProductsFromXLSX(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\nSummary:\n")
	fmt.Fprintf(out, "  Total rows: %d\n", result.Rows)
	fmt.Fprintf(out, "  Valid products: %d\n", len(result.Products))
	fmt.Fprintf(out, "  Skipped rows: %d\n", len(result.Skipped))
	for _, s := range result.Skipped {
		fmt.Fprintf(out, "    row %d: %s\n", s.Row, s.Reason)
	}

	if dryRun || len(result.Products) == 0 {
		return nil
	}

	if !assumeYes {
		fmt.Fprint(out, "Do you want to proceed with the import? (yes/no): ")
		answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		answer = strings.TrimSpace(strings.ToLower(answer))
		if answer != "yes" && answer != "y" {
			fmt.Fprintln(out, "Import cancelled.")
			return nil
		}
	}

	conn, closeDB, err := connect()
	if err != nil {
		return err
	}
	defer closeDB()

	productRepo := repository.NewProductRepository(conn)
	productService := service.NewProductService(service.NewRepositoryCatalog(productRepo), 1, productRepo)

	created, updated := 0, 0
	for i := range result.Products {
		product := &result.Products[i]
		existing, err := productRepo.FindByName(product.Name)
		switch {
		case err == nil:
			product.ID = existing.ID
			if err := productService.UpdateProduct(product); err != nil {
				return fmt.Errorf("failed to update %q: %w", product.Name, err)
			}
			updated++
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := productService.CreateProduct(product); err != nil {
				return fmt.Errorf("failed to create %q: %w", product.Name, err)
			}
			created++
		default:
			return err
		}
	}

	fmt.Fprintln(out, "Import completed successfully!")
	fmt.Fprintf(out, "  Created: %d\n  Updated: %d\n", created, updated)
	return nil
}
