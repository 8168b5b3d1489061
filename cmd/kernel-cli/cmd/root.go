package cmd

import (
	"log/slog"
	"os"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/backbone81/storage-kernel/pkg/file"
	"github.com/backbone81/storage-kernel/pkg/wal"
)

var (
	directory  string
	blockSize  uint64
	logFile    string
	syncPolicy string
	verbose    bool

	logger = logr.Discard()
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "kernel-cli",
	Short: "A tool for interacting with the storage kernel.",
	Long:  `A tool for interacting with the block files and the write-ahead log of a storage directory.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger = logr.FromSlogHandler(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(
		&directory,
		"directory",
		"d",
		".",
		"The storage directory the log file is located in.",
	)

	rootCmd.PersistentFlags().Uint64VarP(
		&blockSize,
		"block-size",
		"b",
		4096,
		"The size of every block in bytes. Must match the block size the log was created with.",
	)

	rootCmd.PersistentFlags().StringVarP(
		&logFile,
		"log-file",
		"l",
		"kernel.log",
		"The name of the log file inside the storage directory.",
	)

	rootCmd.PersistentFlags().StringVarP(
		&syncPolicy,
		"sync-policy",
		"s",
		wal.DefaultSyncPolicy.String(),
		"The sync policy to apply when flushing the log. Valid values are none, immediate, periodic.",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Log every block allocation and file access.",
	)
}

// newFileManager creates the file manager for the storage directory. The caller needs to close it.
func newFileManager() (*file.Manager, error) {
	return file.NewManager(directory, blockSize, file.WithLogger(logger))
}

// newLogManager opens the log file and creates it if necessary.
func newLogManager(fileManager *file.Manager) (*wal.Manager, error) {
	syncPolicyType, err := wal.ParseSyncPolicyType(syncPolicy)
	if err != nil {
		return nil, err
	}
	policy, err := wal.GetSyncPolicy(syncPolicyType)
	if err != nil {
		return nil, err
	}
	return wal.NewManager(fileManager, logFile, wal.WithLogger(logger), wal.WithSyncPolicy(policy))
}

// closeLogManager flushes and closes the log manager and reports a failure to close when the command itself
// succeeded.
func closeLogManager(logManager *wal.Manager, err *error) {
	if closeErr := logManager.Close(); closeErr != nil && *err == nil {
		*err = closeErr
	}
}

// closeFileManager closes the file manager and reports a failure to close when the command itself succeeded.
func closeFileManager(fileManager *file.Manager, err *error) {
	if closeErr := fileManager.Close(); closeErr != nil && *err == nil {
		*err = closeErr
	}
}
