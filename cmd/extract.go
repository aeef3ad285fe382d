package cmd

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/gcascante/bankmerge/consolidate"
	"github.com/gcascante/bankmerge/extractor"
	"github.com/gcascante/bankmerge/extractor/common"
)

var extractKind string

var extractCmd = &cobra.Command{
	Use:   "extract [files]",
	Short: "Extract transactions from statement files",
	Long: `Extract reads one or more statement files and prints the parsed
transactions as JSON, without deduplication or cleaning. Useful for
inspecting what the pipeline sees in a single file.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	kind, err := extractor.KindFromString(extractKind)
	if err != nil {
		return err
	}

	paths, err := consolidate.ExpandPaths(args)
	if err != nil {
		return err
	}

	type fileResult struct {
		File         string               `json:"file"`
		Transactions []common.Transaction `json:"transactions"`
		Error        string               `json:"error,omitempty"`
	}

	results := make([]fileResult, 0, len(paths))
	for _, path := range paths {
		records, err := extractor.ProcessFile(path, kind)
		res := fileResult{File: path, Transactions: records}
		if err != nil {
			res.Error = err.Error()
		}
		results = append(results, res)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().StringVarP(&extractKind, "type", "t", "auto", "source type: auto, table, freetext or bac")
}
