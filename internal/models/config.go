package models

import (
	"fmt"

	"github.com/spf13/viper"
)

type CloudStorageConfig struct {
	Provider   string `mapstructure:"provider"`
	Region     string `mapstructure:"region"`
	BucketName string `mapstructure:"bucket_name"`
}

type Config struct {
	APIBaseURL       string             `mapstructure:"api_base_url"`
	Backend          string             `mapstructure:"backend"` // "api" or "postgres"
	DatabaseURL      string             `mapstructure:"database_url"`
	StateFile        string             `mapstructure:"state_file"`
	KafkaEnabled     bool               `mapstructure:"kafka_enabled"`
	KafkaBrokerList  string             `mapstructure:"kafka_broker_list"`
	KafkaTopicPrefix string             `mapstructure:"kafka_topic_prefix"`
	ExportFormat     string             `mapstructure:"export_format"`
	ExportPath       string             `mapstructure:"export_path"`
	CloudStorage     CloudStorageConfig `mapstructure:"cloud_storage"`
}

// LoadConfig initializes and reads the configuration using Viper
func LoadConfig(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("lunchero")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv() // Read in environment variables that match

	viper.SetDefault("api_base_url", "http://localhost:4000/api")
	viper.SetDefault("backend", "api")
	viper.SetDefault("kafka_broker_list", "localhost:9092")
	viper.SetDefault("kafka_topic_prefix", "lunchero")
	viper.SetDefault("export_format", "csv")
	viper.SetDefault("export_path", "reports")

	if err := viper.ReadInConfig(); err != nil {
		// a config file is optional; flags, env and defaults cover everything
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	return &config, nil
}
