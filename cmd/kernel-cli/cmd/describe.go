package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/backbone81/storage-kernel/pkg/wal"
)

// describeCmd represents the describe command.
var describeCmd = &cobra.Command{
	Use:          "describe",
	Short:        "Provides detailed information about the write-ahead log.",
	Long:         `Provides the space usage and the number of records of every block of the write-ahead log.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		fileManager, err := newFileManager()
		if err != nil {
			return err
		}
		defer closeFileManager(fileManager, &err)

		infos, err := wal.Describe(fileManager, logFile)
		if err != nil {
			return err
		}
		if len(infos) == 0 {
			return fmt.Errorf("no write-ahead log found at %q", logFile)
		}

		fmt.Printf("Log File:   %s\n", logFile)
		fmt.Printf("Block Size: %d\n", fileManager.BlockSize())
		fmt.Println()
		for _, info := range infos {
			fmt.Printf("Block:        %d\n", info.Block.Number())
			fmt.Printf("Boundary:     %d\n", info.Boundary)
			fmt.Printf("Used Bytes:   %d\n", info.UsedBytes)
			fmt.Printf("Free Bytes:   %d\n", info.FreeBytes)
			fmt.Printf("Record Count: %d\n", info.RecordCount)
			fmt.Println()
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
}
