package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// initCmd represents the init command.
var initCmd = &cobra.Command{
	Use:          "init",
	Short:        "Initializes a new write-ahead log.",
	Long:         `Creates the storage directory and the first block of the write-ahead log.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		logFilePath := filepath.Join(directory, logFile)
		if _, err := os.Stat(logFilePath); err == nil {
			return fmt.Errorf("write-ahead log already initialized at %q", logFilePath)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}

		fileManager, err := newFileManager()
		if err != nil {
			return err
		}
		defer closeFileManager(fileManager, &err)

		logManager, err := newLogManager(fileManager)
		if err != nil {
			return err
		}
		defer closeLogManager(logManager, &err)

		fmt.Printf("Write-ahead log initialized at %q.\n", logFilePath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
