package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// appendCmd represents the append command.
var appendCmd = &cobra.Command{
	Use:          "append RECORD...",
	Short:        "Appends records to the write-ahead log.",
	Long:         `Appends every argument as a separate record to the write-ahead log and flushes it afterward.`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
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

		var sequenceNumber uint64
		for _, arg := range args {
			sequenceNumber, err = logManager.Append([]byte(arg))
			if err != nil {
				return err
			}
			fmt.Printf("Appended record %d.\n", sequenceNumber)
		}
		return logManager.FlushBySequenceNumber(sequenceNumber)
	},
}

func init() {
	rootCmd.AddCommand(appendCmd)
}
