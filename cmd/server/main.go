package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/auditwarp/auditwarp/internal/ipfs"
	"github.com/auditwarp/auditwarp/internal/server"
	"github.com/auditwarp/auditwarp/internal/version"
)

var rootCmd = &cobra.Command{
	Use:     "auditwarp-server",
	Short:   "AuditWarp storage gateway",
	Version: version.Detailed(),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		showHeader()

		config := &server.Config{
			HTTP: server.HTTPConfig{
				Addr:     viper.GetString("bind"),
				CertFile: viper.GetString("cert"),
				KeyFile:  viper.GetString("key"),
			},
			DBPath:          viper.GetString("db"),
			SuiRPCURL:       viper.GetString("sui_rpc_url"),
			DeployRateLimit: viper.GetString("deploy_rate"),
			IPFS: ipfs.Config{
				JWT:       viper.GetString("pinata_jwt"),
				APIKey:    viper.GetString("pinata_api_key"),
				APISecret: viper.GetString("pinata_api_secret"),
				Gateway:   viper.GetString("pinata_gateway"),
			},
		}

		s, err := server.New(config)
		if err != nil {
			return err
		}
		defer slog.Info("Bye!")
		return s.Start(cmd.Context())
	},
}

func init() {
	rootCmd.Flags().SortFlags = false
	rootCmd.Flags().StringP("bind", "b", server.DefaultAddr, "Address to bind the server")
	rootCmd.Flags().StringP("cert", "c", "", "Path to the certificate file")
	rootCmd.Flags().StringP("key", "k", "", "Path to the key file")
	rootCmd.Flags().StringP("db", "d", "", "Path to the sqlite database file")
	rootCmd.Flags().String("sui-rpc-url", "", "Sui fullnode RPC url (defaults to testnet)")
	rootCmd.Flags().String("deploy-rate", "10-M", "Rate limit for the deploy endpoint")
}

func bindConfig(cmd *cobra.Command) error {
	// .env is optional, flags and env win over it
	_ = godotenv.Load()

	viper.BindPFlag("bind", cmd.Flags().Lookup("bind"))
	viper.BindPFlag("cert", cmd.Flags().Lookup("cert"))
	viper.BindPFlag("key", cmd.Flags().Lookup("key"))
	viper.BindPFlag("db", cmd.Flags().Lookup("db"))
	viper.BindPFlag("sui_rpc_url", cmd.Flags().Lookup("sui-rpc-url"))
	viper.BindPFlag("deploy_rate", cmd.Flags().Lookup("deploy-rate"))

	viper.SetEnvPrefix("AUDITWARP")
	viper.AutomaticEnv()

	return nil
}

func showHeader() {
	color.New(color.FgHiCyan, color.Bold).Println("AuditWarp " + version.Short())
}

func main() {
	handler := tint.NewHandler(os.Stdout, &tint.Options{
		Level:      slog.LevelDebug,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
		NoColor:    !isatty.IsTerminal(os.Stdout.Fd()),
	})
	slog.SetDefault(slog.New(handler))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
