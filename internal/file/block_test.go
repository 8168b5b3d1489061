package file_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/backbone81/storage-kernel/internal/file"
)

var _ = Describe("BlockID", func() {
	It("should report file name and block number", func() {
		block := file.NewBlockID("table.tbl", 7)
		Expect(block.Filename()).To(Equal("table.tbl"))
		Expect(block.Number()).To(Equal(uint64(7)))
	})

	It("should compare both fields", func() {
		block := file.NewBlockID("a", 1)
		Expect(block.Equal(file.NewBlockID("a", 1))).To(BeTrue())
		Expect(block.Equal(file.NewBlockID("a", 2))).To(BeFalse())
		Expect(block.Equal(file.NewBlockID("b", 1))).To(BeFalse())
		Expect(block).To(Equal(file.NewBlockID("a", 1)))
	})

	It("should hash equal blocks to the same value", func() {
		Expect(file.NewBlockID("a", 1).HashCode()).To(Equal(file.NewBlockID("a", 1).HashCode()))
		Expect(file.NewBlockID("a", 1).HashCode()).ToNot(Equal(file.NewBlockID("a", 2).HashCode()))
		Expect(file.NewBlockID("a", 1).HashCode()).ToNot(Equal(file.NewBlockID("b", 1).HashCode()))
	})

	It("should be usable as a map key", func() {
		blocks := map[file.BlockID]int{}
		blocks[file.NewBlockID("a", 1)]++
		blocks[file.NewBlockID("a", 1)]++
		blocks[file.NewBlockID("a", 2)]++
		Expect(blocks).To(HaveLen(2))
		Expect(blocks[file.NewBlockID("a", 1)]).To(Equal(2))
	})

	It("should describe itself", func() {
		Expect(file.NewBlockID("log", 3).String()).To(Equal(`[file "log", block 3]`))
	})
})
