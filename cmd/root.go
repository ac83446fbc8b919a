package cmd

import (
	"fmt"
	"os"

	"restaurant-storefront/config"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	v       *viper.Viper
)

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Restaurant storefront and back office",
	Long:  `storefront serves the ordering storefront, the admin back office and the point-of-sale API over one key-value store.`,
}

func init() {
	v = config.New()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./storefront.yaml)")
	rootCmd.PersistentFlags().String("storage", "", "storage driver: sqlite, redis, postgres or memory")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn or error")

	v.BindPFlag("storage.driver", rootCmd.PersistentFlags().Lookup("storage"))
	v.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(serveCmd, seedCmd, eventsCmd)
}

func loadConfig() (*config.Config, error) {
	return config.Load(v, cfgFile)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
