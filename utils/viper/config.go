package utils

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

func UpdateViperConfig(key string, value any, configFile string) error {
	viper.Set(key, value)

	updatedConfig, err := yaml.Marshal(viper.AllSettings())
	if err != nil {
		return fmt.Errorf("unable to marshal config to yaml: %w", err)
	}

	if err := os.WriteFile(configFile, updatedConfig, 0o644); err != nil {
		return fmt.Errorf("failed to update config file: %w", err)
	}

	return nil
}
