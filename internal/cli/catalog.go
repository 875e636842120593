package cli

import (
	"fmt"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/shotleylegal/taxaengine/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the POPIMAR and Purpose tag catalogs with descriptions",
	RunE:  runCatalog,
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}

func runCatalog(cmd *cobra.Command, args []string) error {
	cat, err := catalog.Load()
	if err != nil {
		return oops.Code("CATALOG_LOAD_FAILED").Wrap(err)
	}

	fmt.Println("POPIMAR categories:")
	for _, e := range cat.Popimar {
		fmt.Printf("  %-55s %s\n", e.Tag, e.Description)
	}

	fmt.Println()
	fmt.Println("Purpose tags:")
	for _, e := range cat.Purpose {
		fmt.Printf("  %-35s %s\n", e.Tag, e.Description)
	}

	return nil
}
