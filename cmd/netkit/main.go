package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/harborlab/netkit/cmd/netkit/config"
	"github.com/harborlab/netkit/internal/common"
)

var rootCmd = &cobra.Command{
	Use:           "netkit",
	Short:         "Issue HTTP requests through the netkit client layer",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		common.SetDefaultLogger(buildLogger(cfg.Logging))
		return nil
	},
}

func init() {
	// Defaults
	v := viper.GetViper()
	v.SetDefault("config", "./netkit.yaml")
	v.SetDefault("mock", false)
	v.SetDefault("mapper", "")

	// Environment variables support: NETKIT_CONFIG, NETKIT_MOCK, NETKIT_MAPPER, ...
	v.SetEnvPrefix("NETKIT")
	v.AutomaticEnv()

	rootCmd.PersistentFlags().String("config", v.GetString("config"), "path to a config yaml")
	rootCmd.PersistentFlags().Bool("mock", v.GetBool("mock"), "serve requests from local fixtures instead of the network")
	_ = v.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = v.BindPFlag("mock", rootCmd.PersistentFlags().Lookup("mock"))

	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(postCmd)
	rootCmd.AddCommand(pingCmd)
	rootCmd.AddCommand(historyCmd)
}

func loadConfig() (*config.Doc, error) {
	return config.Load(viper.GetString("config"))
}

func buildLogger(lc config.LoggingConfig) *common.Logger {
	level := common.ParseLogLevel(lc.Level)
	if lc.Format == "json" {
		return common.NewJSONLogger(level)
	}
	return common.NewLogger(level)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		common.GetLogger().Error("command failed", "error", err)
		os.Exit(1)
	}
}
