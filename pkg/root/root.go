package root

import (
	"fmt"
	"os"

	"github.com/femi9outfit/storefront/pkg/config"
	"github.com/spf13/cobra"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "femi9",
	Short: "Femi9outfit storefront services",
	Long:  `Mail delivery, queue worker and scheduled jobs for the Femi9outfit storefront.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "optional YAML config file; environment variables override it")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func GetRoot() *cobra.Command {
	return rootCmd
}

// SetInfo overrides the root command's help text.
func SetInfo(use, short, long string) {
	rootCmd.Use = use
	rootCmd.Short = short
	rootCmd.Long = long
}

// LoadConfig loads configuration from --config when given, otherwise
// from the environment alone.
func LoadConfig() (*config.Config, error) {
	if configFile != "" {
		return config.LoadFile(configFile)
	}
	return config.Load()
}
