// Package config carries the settings of the sntp command-line binary. The
// library in lib/sntp reads no configuration; the server address is always
// supplied per call.
package config

import (
	"path/filepath"

	"github.com/go-i2p/logger"
	"github.com/go-i2p/sntp/lib/util"
	"github.com/spf13/viper"
)

var (
	CfgFile string
	log     = logger.GetGoI2PLogger()
)

const SNTP_BASE_DIR = ".sntp"

// DefaultServer is queried when neither the command line, the environment,
// nor a config file names one.
const DefaultServer = "pool.ntp.org"

// CLIConfig holds the resolved settings for one invocation.
type CLIConfig struct {
	// Server is the SNTP server address, with or without ":port".
	Server string
	// Strict applies the response hardening checks from lib/sntp.
	Strict bool
}

func InitConfig() {
	if CfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(CfgFile)
	} else {
		// Set up viper to use the default config path $HOME/.sntp/
		viper.AddConfigPath(BuildSNTPDirPath())
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	setDefaults()

	// Environment overrides: SNTP_SERVER, SNTP_STRICT
	viper.SetEnvPrefix("sntp")
	viper.AutomaticEnv()

	handleConfigFile()
}

func setDefaults() {
	viper.SetDefault("server", DefaultServer)
	viper.SetDefault("strict", false)
}

// NewCLIConfigFromViper creates a new CLIConfig from current viper settings.
func NewCLIConfigFromViper() *CLIConfig {
	return &CLIConfig{
		Server: viper.GetString("server"),
		Strict: viper.GetBool("strict"),
	}
}

func handleConfigFile() {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if CfgFile != "" {
				log.Fatalf("Config file %s is not found: %s", CfgFile, err)
			}
			// No config file is the normal case; defaults and the
			// environment are enough for a one-shot query.
			log.Debug("no sntp config file found, using defaults")
		} else {
			log.Fatalf("Error reading config file: %s", err)
		}
	} else {
		log.Debugf("Using config file: %s", viper.ConfigFileUsed())
	}
}

func BuildSNTPDirPath() string {
	return filepath.Join(util.UserHome(), SNTP_BASE_DIR)
}
