package cmd

import (
	"github.com/spf13/cobra"

	"github.com/gcascante/bankmerge/api"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP extraction API",
	Long:  `Starts an HTTP server that accepts statement uploads and returns the extracted transactions as JSON.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := api.DefaultConfig()
		if servePort != "" {
			cfg.Port = ":" + servePort
		}
		return api.New(cfg).Start()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "8080", "port to listen on")
}
