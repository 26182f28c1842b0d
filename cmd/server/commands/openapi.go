package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/iliyamo/ticket-booking-api/internal/openapi"
)

var (
	openapiOut    string
	openapiFormat string
)

var openapiCmd = &cobra.Command{
	Use:   "openapi",
	Short: "Write the OpenAPI document to a file",
	Long: `Write the OpenAPI 3 document describing the API.

Examples:
  ticket-booking-api openapi                                   # interfaces/openapi.json
  ticket-booking-api openapi --format yaml --out api.yaml      # YAML`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return writeOpenAPI(openapiOut, openapiFormat)
	},
}

func init() {
	openapiCmd.Flags().StringVarP(&openapiOut, "out", "o", filepath.Join("interfaces", "openapi.json"), "Output file")
	openapiCmd.Flags().StringVar(&openapiFormat, "format", "json", "Output format: json or yaml")
}

func writeOpenAPI(out, format string) error {
	doc := openapi.Document()
	var (
		data []byte
		err  error
	)
	switch format {
	case "json":
		data, err = openapi.JSON(doc)
	case "yaml", "yml":
		data, err = openapi.YAML(doc)
	default:
		return fmt.Errorf("unknown format %q (want json or yaml)", format)
	}
	if err != nil {
		return fmt.Errorf("render openapi: %w", err)
	}
	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return err
	}
	fmt.Printf("OpenAPI schema written to %s\n", out)
	return nil
}
