package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Embedded default configuration; a .bankmerge.yaml in the working or
// home directory overrides it.
const defaultConfigYAML = `
schema:
  columns:
    date: [date, transaction date, trans date, post date, posting date, fecha]
    description: [description, merchant, desc, memo, details, payee, descripcion]
    amount: [amount, transaction amount, debit, credit, value, monto]
    balance: [balance, running balance, account balance, ending balance, saldo]
    category: [category, type, transaction type, class]
    account: [account, account name, account number, cuenta]
statement:
  BAC:
    patterns:
      transaction: ^\s*(\d+)\s+([A-Z]{3})/(\d{1,2})\s+(.*?)\s+([\d,]+\.\d{2})\s*$
dedupe:
  tolerance_days: 2
`

var (
	cfgFile string
	verbose bool

	rootCmd = &cobra.Command{
		Use:   "bankmerge",
		Short: "Merge bank statement exports into one canonical ledger",
		Long: `bankmerge ingests bank statement exports in whatever shape your banks
produce (CSV, XLSX, XLS, PDF) and consolidates them into a single
deduplicated, chronologically ordered transaction ledger.`,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}
)

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig, initLogging)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default is ./.bankmerge.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

func initLogging() {
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.SetConfigName(".bankmerge")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			viper.SetConfigType("yaml")
			if err := viper.ReadConfig(bytes.NewBufferString(defaultConfigYAML)); err != nil {
				fmt.Printf("Error loading embedded configuration: %v\n", err)
				os.Exit(1)
			}
		} else {
			fmt.Printf("Error reading config file: %v\n", err)
			os.Exit(1)
		}
	}
}
