package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wormhole-foundation/example-liquidity-layer-sub002/api"
	"github.com/wormhole-foundation/example-liquidity-layer-sub002/api/handlers"
	versioncmd "github.com/wormhole-foundation/example-liquidity-layer-sub002/cmd/version"
	"github.com/wormhole-foundation/example-liquidity-layer-sub002/config"
	"github.com/wormhole-foundation/example-liquidity-layer-sub002/engine"
	"github.com/wormhole-foundation/example-liquidity-layer-sub002/store"
	utils "github.com/wormhole-foundation/example-liquidity-layer-sub002/utils/viper"
)

var RootCmd = &cobra.Command{
	Use:   "fast-transfer-engine",
	Short: "Auction and settlement engine for cross-chain fast transfers",
	Long: `Settlement core for a cross-chain fast transfer liquidity layer:
runs the competitive auction lifecycle, the penalty/reward model, and the
fast-fill sequencing for locally settled fills.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			if err := cmd.Usage(); err != nil {
				log.Fatalf("Error printing usage: %v", err)
			}
		}
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the engine",
	Long:  `Initialize the engine by generating a config file with default values.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Config{}
		if err := viper.Unmarshal(&cfg); err != nil {
			log.Fatalf("failed to unmarshal config: %v", err)
		}

		if _, err := os.Stat(cfg.DBPath); os.IsNotExist(err) {
			if err := os.MkdirAll(cfg.DBPath, 0o755); err != nil {
				log.Fatalf("failed to create data directory: %v", err)
			}
		}

		if err := viper.WriteConfigAs(config.CfgFile); err != nil {
			log.Fatalf("failed to write config file: %v", err)
		}

		fmt.Printf("Config file created: %s\n", config.CfgFile)
		fmt.Println()
		fmt.Println("Edit the config file to set the correct values for your environment.")
	},
}

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the engine",
	Long:  `Start the auction and settlement engine and its query API.`,
	Run: func(cmd *cobra.Command, args []string) {
		viper.AutomaticEnv()

		if err := viper.ReadInConfig(); err == nil {
			fmt.Println("Using config file:", viper.ConfigFileUsed())
		}

		cfg := config.Config{}
		if err := viper.Unmarshal(&cfg); err != nil {
			log.Fatalf("failed to unmarshal config: %v", err)
		}
		if err := cfg.Auction.Validate(); err != nil {
			log.Fatalf("invalid auction parameters: %v", err)
		}

		logger, err := buildLogger(cfg.LogLevel)
		if err != nil {
			log.Fatalf("failed to build logger: %v", err)
		}
		defer logger.Sync() // nolint: errcheck

		db, err := store.NewLevelDB(cfg.DBPath)
		if err != nil {
			log.Fatalf("failed to open database: %v", err)
		}
		st := store.New(db)
		defer st.Close() // nolint: errcheck

		clock := engine.WallClock{}
		params := engine.NewParameterStore(st, clock, cfg.ProposalDelay, logger)
		if _, _, err := params.Active(); err != nil {
			if _, err := params.Bootstrap(cfg.Auction); err != nil {
				log.Fatalf("failed to bootstrap parameters: %v", err)
			}
		}

		eng := engine.New(
			engine.Config{
				LocalChainID:    cfg.ChainID,
				FeeRecipient:    cfg.FeeRecipient,
				ArchiveCoolDown: cfg.ArchiveCoolDown,
			},
			st,
			params,
			engine.NewMemoryBank(),
			clock,
			engine.NewMemoryTokenResolver(),
			engine.LogMessenger{Logger: logger},
			logger,
		)
		eng.SetPaused(cfg.Paused)

		eh := handlers.NewEngineHandler(eng, params, logger)
		api.NewServer(eh, cfg.ServerAddress, logger).Start()
	},
}

var setCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a config value",
	Long:  `Update a single key in the config file, e.g. "set paused true".`,
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		home, err := homedir.Dir()
		if err != nil {
			log.Fatalf("failed to get home directory: %v", err)
		}

		defaultHomeDir := home + "/.fast-transfer-engine"
		config.CfgFile = defaultHomeDir + "/config.yaml"

		viper.SetConfigFile(config.CfgFile)
		if err := viper.ReadInConfig(); err != nil {
			log.Fatalf("failed to read config file: %v", err)
		}

		if err := utils.UpdateViperConfig(args[0], args[1], viper.ConfigFileUsed()); err != nil {
			log.Fatalf("failed to update config: %v", err)
		}

		fmt.Printf("%s set to %s, please restart the engine if it's running\n", args[0], args[1])
	},
}

func buildLogger(logLevel string) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.Set(logLevel); err != nil {
		return nil, fmt.Errorf("failed to set log level: %w", err)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger := zap.New(zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.Lock(os.Stdout),
		level,
	))

	return logger, nil
}

func init() {
	RootCmd.CompletionOptions.DisableDefaultCmd = true
	RootCmd.AddCommand(initCmd)
	RootCmd.AddCommand(startCmd)
	RootCmd.AddCommand(setCmd)
	RootCmd.AddCommand(versioncmd.Cmd())

	cobra.OnInitialize(config.InitConfig)

	RootCmd.PersistentFlags().StringVar(&config.CfgFile, "config", "", "config file")
}
