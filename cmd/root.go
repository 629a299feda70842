package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var cfgFile string
var logger *zap.SugaredLogger

var rootCmd = &cobra.Command{
	Use:   "netdiag",
	Short: "Network connectivity diagnostics (DNS, TLS, HTTP, ping, GeoIP)",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// init config
		if cfgFile != "" {
			viper.SetConfigFile(cfgFile)
		} else {
			viper.AddConfigPath("$HOME")
			viper.SetConfigName(".netdiag")
			viper.SetConfigType("yaml")
		}
		viper.SetEnvPrefix("NETDIAG")
		viper.AutomaticEnv()
		setConfigDefaults()

		_ = viper.ReadInConfig()
		applyConfigDefaults(cmd)

		// init logger
		l, _ := zap.NewProduction()
		logger = l.Sugar()

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.netdiag.yaml)")

	rootCmd.AddCommand(diagnoseCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}
