package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/misterclayt0n/prescribe/internal/config"
	"github.com/misterclayt0n/prescribe/internal/storage"
	"github.com/spf13/cobra"
)

const localDB = "file:./prescribe.db?cache=shared&mode=rwc"

var initSetupCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the local database file prescribe.db and a default config",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := storage.NewStorage(localDB, storage.WithLogger(logger))
		if err != nil {
			return fmt.Errorf("Failed to initialize database: %w", err)
		}
		defer st.Close()
		fmt.Println("✅ Database initialized successfully as prescribe.db")

		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		if _, err := os.Stat(path); !errors.Is(err, fs.ErrNotExist) {
			return nil
		}

		def := config.Default()
		def.DB.ConnectionString = localDB
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("Failed to write config: %w", err)
		}
		defer f.Close()
		if err := toml.NewEncoder(f).Encode(def); err != nil {
			return fmt.Errorf("Failed to write config: %w", err)
		}
		fmt.Printf("✅ Default config written to %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initSetupCmd)
}
