package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"cosmossdk.io/log"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/paw-chain/stableswap/api"
	"github.com/paw-chain/stableswap/x/stableswap/keeper"
)

const envPrefix = "STABLESWAP"

// NewRootCmd builds the stableswapd command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "stableswapd",
		Short: "Stableswap liquidity pool daemon",
		Long: `stableswapd runs a two-asset stableswap pool engine and exposes it
over an HTTP API with Prometheus metrics.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("config", "", "path to a config file (TOML/YAML/JSON)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the pool engine API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger, err := newLogger(v.GetString("log-level"))
			if err != nil {
				return err
			}

			cfg := serverConfig(v)
			k := keeper.NewKeeper(keeper.NewMemStore(), nil, logger)
			server := api.NewServer(k, cfg, logger)

			logger.Info("starting stableswapd",
				"host", cfg.Host,
				"port", cfg.Port,
				"rate_limit_rps", cfg.RateLimitRPS,
			)
			return server.Start()
		},
	}

	cmd.Flags().String("host", "0.0.0.0", "listen address")
	cmd.Flags().String("port", "5000", "listen port")
	cmd.Flags().Int("rate-limit-rps", 100, "per-client requests per second (0 disables)")
	cmd.Flags().StringSlice("cors-origins", []string{"http://localhost:3000"}, "allowed CORS origins")
	cmd.Flags().Duration("read-timeout", 15*time.Second, "HTTP read timeout")
	cmd.Flags().Duration("write-timeout", 15*time.Second, "HTTP write timeout")
	cmd.Flags().Duration("shutdown-timeout", 10*time.Second, "graceful shutdown timeout")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}

// loadConfig merges flags, environment and an optional config file. Flags win
// over the environment, the environment wins over the file.
func loadConfig(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, err
	}
	if err := v.BindPFlags(cmd.Root().PersistentFlags()); err != nil {
		return nil, err
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	return v, nil
}

func serverConfig(v *viper.Viper) *api.Config {
	cfg := api.DefaultConfig()
	cfg.Host = v.GetString("host")
	cfg.Port = v.GetString("port")
	cfg.RateLimitRPS = cast.ToInt(v.Get("rate-limit-rps"))
	cfg.CORSOrigins = v.GetStringSlice("cors-origins")
	cfg.ReadTimeout = cast.ToDuration(v.Get("read-timeout"))
	cfg.WriteTimeout = cast.ToDuration(v.Get("write-timeout"))
	cfg.ShutdownTimeout = cast.ToDuration(v.Get("shutdown-timeout"))
	return cfg
}

func newLogger(level string) (log.Logger, error) {
	filter, err := log.ParseLogLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}
	return log.NewLogger(os.Stderr, log.FilterOption(filter)), nil
}
