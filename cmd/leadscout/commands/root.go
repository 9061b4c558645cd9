// Package commands implements the CLI commands for leadscout.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "leadscout",
	Short: "Find multifamily property leads from apartment listing sites",
	Long: `Leadscout scans apartment listing sites for multifamily properties
and extracts contact leads: property name, address, management company,
phone, and where discoverable, a public email.

Examples:
  # Scan a city and export leads as CSV
  leadscout scan --city "Miami" --state FL -o leads.csv

  # Scan from a pasted search URL with outreach messages included
  leadscout scan --url "https://www.apartments.com/miami-fl/" \
      --messages -o leads.xlsx --format xlsx

  # Extract from known property pages
  leadscout urls properties.txt -o leads.csv

  # Append results to a Google Sheet
  leadscout scan --city "Austin" --state TX \
      --sheet-id 1BxiMVs0XRA5nFMdK --credentials service-account.json`,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.leadscout.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress output")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".leadscout")
		viper.SetConfigType("yaml")
	}

	// Environment variables
	viper.SetEnvPrefix("LEADSCOUT")
	viper.AutomaticEnv()

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// logError prints an error message to stderr.
func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}
