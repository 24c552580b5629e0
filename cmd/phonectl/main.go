// Command phonectl runs phone number lookups from the command line.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	regionFlag string
	langFlag   string
	formatFlag string
	jsonFlag   bool
)

var rootCmd = &cobra.Command{
	Use:           "phonectl",
	Short:         "Parse, validate, format and locate phone numbers",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&regionFlag, "region", "r", "", "default region for numbers without a country prefix")
	rootCmd.PersistentFlags().StringVarP(&langFlag, "lang", "l", "", "language for location labels (en, zh)")
	rootCmd.PersistentFlags().BoolVar(&jsonFlag, "json", false, "print results as JSON")

	formatCmd.Flags().StringVarP(&formatFlag, "format", "f", "e164", "output format: e164, international, national, rfc3966")

	rootCmd.AddCommand(validateCmd, formatCmd, extractCmd, batchCmd, locateCmd, samplesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
