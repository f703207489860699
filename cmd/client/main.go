package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"larktalk/internal/client"
	"larktalk/internal/config"
	"larktalk/internal/logx"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "larktalk",
	Short: "Terminal client for the LarkTalk chat service",
	Long: `larktalk signs you in against a LarkTalk API server, shows the room
lobby and lets you open a room and exchange messages.

Configuration is read from flags, LARKTALK_* environment variables and
~/.larktalk/config.yaml, in that priority order.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(viper.GetViper(), cfgFile)
		if err != nil {
			return err
		}
		if err := logx.Init(cfg.LogFile, cfg.IsDevelopment()); err != nil {
			return err
		}
		return client.StartClientApp(cfg)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.larktalk/config.yaml)")
	rootCmd.Flags().String("api-url", "http://localhost:8080", "base URL of the LarkTalk API server")
	rootCmd.Flags().String("data-dir", "", "directory for local data (default is $HOME/.larktalk)")
	rootCmd.Flags().Bool("trust-token", true, "treat a persisted token as a valid session at startup")
	rootCmd.Flags().String("log-file", "", "file to append structured logs to")
	rootCmd.Flags().String("environment", "development", "runtime profile: development or production")

	viper.BindPFlag(config.KeyAPIURL, rootCmd.Flags().Lookup("api-url"))
	viper.BindPFlag(config.KeyDataDir, rootCmd.Flags().Lookup("data-dir"))
	viper.BindPFlag(config.KeyTrustToken, rootCmd.Flags().Lookup("trust-token"))
	viper.BindPFlag(config.KeyLogFile, rootCmd.Flags().Lookup("log-file"))
	viper.BindPFlag(config.KeyEnvironment, rootCmd.Flags().Lookup("environment"))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
