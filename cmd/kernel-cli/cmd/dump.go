package cmd

import (
	"encoding/hex"
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/backbone81/storage-kernel/pkg/file"
	"github.com/backbone81/storage-kernel/pkg/wal"
)

// dumpCmd represents the dump command.
var dumpCmd = &cobra.Command{
	Use:          "dump",
	Short:        "Prints all records of the write-ahead log.",
	Long:         `Prints all records of the write-ahead log from the most recently appended to the oldest one.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		fileManager, err := newFileManager()
		if err != nil {
			return err
		}
		defer closeFileManager(fileManager, &err)

		blockCount, err := fileManager.Length(logFile)
		if err != nil {
			return err
		}
		if blockCount == 0 {
			return fmt.Errorf("no write-ahead log found at %q", logFile)
		}

		iterator, err := wal.NewIterator(fileManager, file.NewBlockID(logFile, blockCount-1))
		if err != nil {
			return err
		}
		index := 0
		for record := range iterator.All() {
			fmt.Printf("%6d %s\n", index, formatRecord(record))
			index++
		}
		return iterator.Err()
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)
}

// formatRecord returns printable records as they are and everything else hex encoded.
func formatRecord(record []byte) string {
	if !utf8.Valid(record) {
		return "0x" + hex.EncodeToString(record)
	}
	for _, r := range string(record) {
		if !unicode.IsPrint(r) {
			return "0x" + hex.EncodeToString(record)
		}
	}
	return string(record)
}
