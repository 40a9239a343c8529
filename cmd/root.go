package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Zachkp/portfolio/internal/config"
)

var cfgFile string
var appConfig config.Config

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Personal portfolio site",
	Long: `Serves the portfolio: home page, blog, projects, résumé and the contact
form relay. Configuration comes from flags, environment variables (a .env file
is loaded automatically) and an optional config.yaml, in that order of priority.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
}

func initializeConfig(cmd *cobra.Command) error {
	cfg, err := loadConfig(viper.New(), cfgFile, cmd)
	if err != nil {
		return err
	}
	appConfig = cfg
	return nil
}

// loadConfig layers defaults, the config file, the environment and any flags
// the command defines with the same name as a config key.
func loadConfig(v *viper.Viper, file string, cmd *cobra.Command) (config.Config, error) {
	for k, val := range config.Defaults {
		v.SetDefault(k, val)
	}

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// PORT, SMTP_HOST, ... map straight onto the lower-case keys.
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	for k := range config.Defaults {
		if err := v.BindEnv(k, strings.ToUpper(k)); err != nil {
			return config.Config{}, err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || file != "" {
			return config.Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		log.Println("Using config file:", v.ConfigFileUsed())
	}

	if cmd != nil {
		for k := range config.Defaults {
			flagName := strings.ReplaceAll(k, "_", "-")
			if f := cmd.Flags().Lookup(flagName); f != nil {
				if err := v.BindPFlag(k, f); err != nil {
					return config.Config{}, err
				}
			}
		}
	}

	var cfg config.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return config.Config{}, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
