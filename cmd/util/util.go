// Package util provides shared environment and flag helpers for the CLI.
package util

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rehydrate-io/rehydrate/lib/storage/fstore"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// InitEnvConfig loads .env files and wires viper to REHYDRATE_* environment
// variables. Called once via cobra.OnInitialize.
func InitEnvConfig() {
	// load .env files - ignore errors (e.g. file not found)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("rehydrate")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}

// SetupStorageFlags adds the common storage directory flags to a command
func SetupStorageFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("dir", ".", "Storage directory holding the record files")
	cmd.PersistentFlags().String("codec", "json", "Record codec to use (json, gob)")
	cmd.PersistentFlags().String("key", "", "Hex-encoded 32-byte key for at-rest encryption (empty = plaintext)")
}

// GetStore builds the file-backed storage from the viper configuration
func GetStore() (*fstore.Store, error) {
	codec, err := getCodec()
	if err != nil {
		return nil, err
	}
	return fstore.New(viper.GetString("dir"), &fstore.Options{Codec: codec})
}

// getCodec reads the codec and encryption configuration from viper
func getCodec() (fstore.Codec, error) {
	var codec fstore.Codec
	switch viper.GetString("codec") {
	case "", "json":
		codec = fstore.NewJSONCodec()
	case "gob":
		codec = fstore.NewGOBCodec()
	default:
		return nil, fmt.Errorf("invalid codec %s", viper.GetString("codec"))
	}

	if keyHex := viper.GetString("key"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil {
			return nil, fmt.Errorf("invalid encryption key: %w", err)
		}
		codec, err = fstore.NewEncryptedCodec(codec, key)
		if err != nil {
			return nil, err
		}
	}
	return codec, nil
}
