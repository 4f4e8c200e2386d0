// Package config loads service and CLI configuration.
//
// It uses Viper to read a config.yml found in the standard search paths,
// godotenv to load an optional .env file, and binds prefixed environment
// variables onto nested keys before unmarshalling into the caller's struct.
//
// # Usage
//
//	var cfg MyConfig
//	err := config.LoadConfig("inspectctl", &cfg, config.WithEnvPrefix("INSPECTCTL"))
//
// With the prefix INSPECTCTL, the variable INSPECTCTL_API_BASE_URL sets
// api.base_url.
package config
