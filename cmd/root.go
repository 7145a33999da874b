package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "lunchero",
	Short: "Management client for a home-lunch delivery operation",
	Long:  `lunchero is a CLI companion for a home-lunch delivery business: it mirrors the lunch catalog, customer orders and expenses from the persistence backend, and can filter orders and export reports.`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./lunchero.yaml)")

	rootCmd.PersistentFlags().String("api-url", "http://localhost:4000/api", "Base URL of the REST backend")
	rootCmd.PersistentFlags().String("backend", "api", "Persistence backend: api or postgres")
	rootCmd.PersistentFlags().String("database-url", "", "Postgres connection string (backend=postgres)")
	rootCmd.PersistentFlags().String("state-file", "", "Path of the UI-state sidecar file")
	rootCmd.PersistentFlags().Bool("kafka-enabled", false, "Publish change events to Kafka")
	rootCmd.PersistentFlags().String("kafka-broker-list", "localhost:9092", "Kafka broker list")

	viper.BindPFlag("api_base_url", rootCmd.PersistentFlags().Lookup("api-url"))
	viper.BindPFlag("backend", rootCmd.PersistentFlags().Lookup("backend"))
	viper.BindPFlag("database_url", rootCmd.PersistentFlags().Lookup("database-url"))
	viper.BindPFlag("state_file", rootCmd.PersistentFlags().Lookup("state-file"))
	viper.BindPFlag("kafka_enabled", rootCmd.PersistentFlags().Lookup("kafka-enabled"))
	viper.BindPFlag("kafka_broker_list", rootCmd.PersistentFlags().Lookup("kafka-broker-list"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
	viper.AutomaticEnv()
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
