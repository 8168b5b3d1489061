package wal_test

import (
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/backbone81/storage-kernel/internal/file"
	"github.com/backbone81/storage-kernel/internal/wal"
)

var _ = Describe("Describe", func() {
	var (
		dir         string
		fileManager *file.Manager
	)

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "test-wal-describe-*")
		Expect(err).ToNot(HaveOccurred())

		fileManager, err = file.NewManager(dir, 64)
		Expect(err).ToNot(HaveOccurred())
	})

	AfterEach(func() {
		Expect(fileManager.Close()).To(Succeed())
		Expect(os.RemoveAll(dir)).To(Succeed())
	})

	It("should report nothing for a missing log", func() {
		Expect(wal.Describe(fileManager, logFile)).To(BeEmpty())
	})

	It("should report the space usage of every block", func() {
		manager, err := wal.NewManager(fileManager, logFile)
		Expect(err).ToNot(HaveOccurred())
		for _, record := range []string{"a-record", "b-record", "c-record", "d-record"} {
			Expect(manager.Append([]byte(record))).Error().ToNot(HaveOccurred())
		}
		Expect(manager.Flush()).To(Succeed())

		Expect(wal.Describe(fileManager, logFile)).To(Equal([]wal.BlockInfo{
			{
				Block:       file.NewBlockID(logFile, 0),
				Boundary:    16,
				UsedBytes:   48,
				FreeBytes:   8,
				RecordCount: 3,
			},
			{
				Block:       file.NewBlockID(logFile, 1),
				Boundary:    48,
				UsedBytes:   16,
				FreeBytes:   40,
				RecordCount: 1,
			},
		}))
	})

	It("should fail on corrupt blocks", func() {
		block, err := fileManager.Append(logFile)
		Expect(err).ToNot(HaveOccurred())
		page := file.NewLockedPage(file.NewPage(64))
		Expect(page.SetUint64(0, 3)).To(Succeed())
		Expect(fileManager.Write(block, page)).To(Equal(64))

		Expect(wal.Describe(fileManager, logFile)).Error().To(MatchError(wal.ErrCorruptBlock))
	})
})
