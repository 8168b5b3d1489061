package wal_test

import (
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/backbone81/storage-kernel/internal/file"
	"github.com/backbone81/storage-kernel/internal/wal"
)

var _ = Describe("Iterator", func() {
	var (
		dir         string
		fileManager *file.Manager
		manager     *wal.Manager
	)

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "test-wal-iterator-*")
		Expect(err).ToNot(HaveOccurred())

		fileManager, err = file.NewManager(dir, 64, file.WithLogger(GinkgoLogr))
		Expect(err).ToNot(HaveOccurred())
		manager, err = wal.NewManager(fileManager, logFile, wal.WithLogger(GinkgoLogr))
		Expect(err).ToNot(HaveOccurred())
	})

	AfterEach(func() {
		Expect(fileManager.Close()).To(Succeed())
		Expect(os.RemoveAll(dir)).To(Succeed())
	})

	appendRecords := func(records ...string) {
		for _, record := range records {
			Expect(manager.Append([]byte(record))).Error().ToNot(HaveOccurred())
		}
	}

	It("should not return anything for an empty log", func() {
		iterator, err := manager.Iterator()
		Expect(err).ToNot(HaveOccurred())
		Expect(iterator.Next()).To(BeFalse())
		Expect(iterator.Err()).ToNot(HaveOccurred())
		Expect(iterator.Next()).To(BeFalse())
	})

	It("should see the newest records of the current block right away", func() {
		appendRecords("foo")
		iterator, err := manager.Iterator()
		Expect(err).ToNot(HaveOccurred())
		Expect(iterator.Next()).To(BeTrue())
		Expect(iterator.Value()).To(Equal([]byte("foo")))
		Expect(iterator.Next()).To(BeFalse())
	})

	It("should return empty records", func() {
		appendRecords("foo", "", "bar")
		iterator, err := manager.Iterator()
		Expect(err).ToNot(HaveOccurred())
		Expect(collect(iterator)).To(Equal([][]byte{[]byte("bar"), {}, []byte("foo")}))
	})

	It("should return independent copies of the records", func() {
		appendRecords("foo", "bar")
		iterator, err := manager.Iterator()
		Expect(err).ToNot(HaveOccurred())
		Expect(iterator.Next()).To(BeTrue())
		first := iterator.Value()
		first[0] = 'X'

		iterator, err = manager.Iterator()
		Expect(err).ToNot(HaveOccurred())
		Expect(collect(iterator)).To(Equal([][]byte{[]byte("bar"), []byte("foo")}))
	})

	It("should start at the given block", func() {
		appendRecords("a-record", "b-record", "c-record", "d-record", "e-record")
		Expect(manager.CurrentBlock().Number()).To(Equal(uint64(1)))
		Expect(manager.Flush()).To(Succeed())

		iterator, err := wal.NewIterator(fileManager, file.NewBlockID(logFile, 0))
		Expect(err).ToNot(HaveOccurred())
		Expect(collect(iterator)).To(Equal([][]byte{[]byte("c-record"), []byte("b-record"), []byte("a-record")}))
	})

	It("should skip empty blocks", func() {
		appendRecords("a-record")
		Expect(manager.Flush()).To(Succeed())

		By("adding a block which was never initialized")
		_, err := fileManager.Append(logFile)
		Expect(err).ToNot(HaveOccurred())

		By("adding a block with the boundary of an empty block")
		page := file.NewLockedPage(file.NewPage(64))
		Expect(page.SetUint64(0, 64)).To(Succeed())
		Expect(fileManager.Write(file.NewBlockID(logFile, 2), page)).To(Equal(64))

		iterator, err := wal.NewIterator(fileManager, file.NewBlockID(logFile, 2))
		Expect(err).ToNot(HaveOccurred())
		Expect(collect(iterator)).To(Equal([][]byte{[]byte("a-record")}))
		Expect(iterator.Err()).ToNot(HaveOccurred())
	})

	It("should stop early at corrupt blocks", func() {
		appendRecords("a-record", "b-record", "c-record", "d-record", "e-record")
		Expect(manager.Flush()).To(Succeed())

		By("corrupting the boundary of the oldest block")
		page := file.NewLockedPage(file.NewPage(64))
		Expect(page.SetUint64(0, 1)).To(Succeed())
		Expect(fileManager.Write(file.NewBlockID(logFile, 0), page)).To(Equal(64))

		iterator, err := manager.Iterator()
		Expect(err).ToNot(HaveOccurred())
		Expect(collect(iterator)).To(Equal([][]byte{[]byte("e-record"), []byte("d-record")}))
		Expect(iterator.Err()).To(MatchError(wal.ErrCorruptBlock))
		Expect(iterator.Next()).To(BeFalse())
	})

	It("should stop early at undecodable records", func() {
		appendRecords("a-record")
		Expect(manager.Flush()).To(Succeed())

		By("overwriting the record length with garbage")
		page := file.NewLockedPage(file.NewPage(64))
		Expect(fileManager.Read(file.NewBlockID(logFile, 0), page)).To(Equal(64))
		Expect(page.SetUint64(48, 1000)).To(Succeed())
		Expect(fileManager.Write(file.NewBlockID(logFile, 0), page)).To(Equal(64))

		iterator, err := wal.NewIterator(fileManager, file.NewBlockID(logFile, 0))
		Expect(err).ToNot(HaveOccurred())
		Expect(iterator.Next()).To(BeFalse())
		Expect(iterator.Err()).To(HaveOccurred())
	})

	It("should fail to start at a block which does not exist", func() {
		Expect(wal.NewIterator(fileManager, file.NewBlockID(logFile, 7))).Error().To(MatchError(file.ErrShortRead))
	})

	It("should stop the sequence when the caller breaks", func() {
		appendRecords("a-record", "b-record", "c-record")
		iterator, err := manager.Iterator()
		Expect(err).ToNot(HaveOccurred())

		var records []string
		for record := range iterator.All() {
			records = append(records, string(record))
			if len(records) == 2 {
				break
			}
		}
		Expect(records).To(Equal([]string{"c-record", "b-record"}))

		Expect(iterator.Next()).To(BeTrue())
		Expect(iterator.Value()).To(Equal([]byte("a-record")))
	})
})
