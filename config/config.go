package config

import (
	"log"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/wormhole-foundation/example-liquidity-layer-sub002/types"
)

type Config struct {
	DBPath        string `mapstructure:"db_path"`
	ServerAddress string `mapstructure:"server_address"`
	LogLevel      string `mapstructure:"log_level"`

	ChainID      uint16 `mapstructure:"chain_id"`
	FeeRecipient string `mapstructure:"fee_recipient"`
	Paused       bool   `mapstructure:"paused"`

	// ProposalDelay is the mandatory number of ticks between proposing and
	// enacting a parameter change.
	ProposalDelay uint64 `mapstructure:"proposal_delay"`

	// ArchiveCoolDown is the number of ticks a settled auction rests before
	// it may be archived.
	ArchiveCoolDown uint64 `mapstructure:"archive_cool_down"`

	Auction types.AuctionParameters `mapstructure:"auction"`
}

const (
	defaultServerAddress = ":8000"
	defaultLogLevel      = "info"
	defaultChainID       = 1

	defaultDuration             = 2
	defaultGracePeriod          = 6
	defaultPenaltyPeriod        = 20
	defaultInitialPenaltyBps    = 1_000
	defaultUserPenaltyRewardBps = 2_500
	defaultMinOfferDeltaBps     = 500
	defaultSecurityDepositBps   = 500

	defaultProposalDelay   = 120
	defaultArchiveCoolDown = 300
)

var CfgFile string

func InitConfig() {
	home, err := homedir.Dir()
	if err != nil {
		log.Fatalf("failed to get home directory: %v", err)
	}
	defaultHomeDir := home + "/.fast-transfer-engine"

	viper.SetDefault("db_path", defaultHomeDir+"/data")
	viper.SetDefault("server_address", defaultServerAddress)
	viper.SetDefault("log_level", defaultLogLevel)

	viper.SetDefault("chain_id", defaultChainID)
	viper.SetDefault("fee_recipient", "fee-recipient")
	viper.SetDefault("paused", false)

	viper.SetDefault("proposal_delay", defaultProposalDelay)
	viper.SetDefault("archive_cool_down", defaultArchiveCoolDown)

	viper.SetDefault("auction.duration", defaultDuration)
	viper.SetDefault("auction.grace_period", defaultGracePeriod)
	viper.SetDefault("auction.penalty_period", defaultPenaltyPeriod)
	viper.SetDefault("auction.initial_penalty_bps", defaultInitialPenaltyBps)
	viper.SetDefault("auction.user_penalty_reward_bps", defaultUserPenaltyRewardBps)
	viper.SetDefault("auction.min_offer_delta_bps", defaultMinOfferDeltaBps)
	viper.SetDefault("auction.security_deposit_bps", defaultSecurityDepositBps)

	viper.SetConfigType("yaml")
	if CfgFile != "" {
		viper.SetConfigFile(CfgFile)
	} else {
		CfgFile = defaultHomeDir + "/config.yaml"
		viper.AddConfigPath(defaultHomeDir)
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
	}
}
