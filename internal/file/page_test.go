package file_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/backbone81/storage-kernel/internal/encoding"
	"github.com/backbone81/storage-kernel/internal/file"
)

var _ = Describe("Page", func() {
	It("should allocate zeroed pages", func() {
		page := file.NewPage(256)
		Expect(page.Size()).To(Equal(256))
		Expect(page.Contents()).To(Equal(make([]byte, 256)))
	})

	It("should copy the initial contents", func() {
		data := []byte{1, 2, 3, 4, 5}
		page := file.NewPageFromBytes(data)
		Expect(page.Contents()).To(Equal(data))

		data[0] = 9
		Expect(page.Contents()[0]).To(Equal(byte(1)))
	})

	It("should set and get unsigned integers", func() {
		page := file.NewPage(256)
		Expect(page.SetUint64(23, 1234)).To(Succeed())
		Expect(page.Uint64(23)).To(Equal(uint64(1234)))
		Expect(page.SetUint64(248, math.MaxUint64)).To(Succeed())
		Expect(page.Uint64(248)).To(Equal(uint64(math.MaxUint64)))
	})

	It("should set and get byte strings", func() {
		page := file.NewPage(256)
		Expect(page.SetBytes(23, []byte{1, 2, 3, 4})).To(Succeed())
		Expect(page.Bytes(23)).To(Equal([]byte{1, 2, 3, 4}))
	})

	It("should overwrite byte strings in place", func() {
		page := file.NewPage(64)
		Expect(page.SetBytes(0, []byte("longer value"))).To(Succeed())
		Expect(page.SetBytes(0, []byte("short"))).To(Succeed())
		Expect(page.Bytes(0)).To(Equal([]byte("short")))
	})

	DescribeTable("Setting and getting strings",
		func(value string) {
			page := file.NewPage(256)
			Expect(page.SetString(23, value)).To(Succeed())
			Expect(page.String(23)).To(Equal(value))
		},
		Entry("When using ASCII", "hello world"),
		Entry("When using the empty string", ""),
		Entry("When using multi-byte characters", "你好，世界"),
	)

	It("should calculate the maximum length of strings in bytes", func() {
		Expect(file.MaxLengthForString("hello")).To(Equal(13))
		Expect(file.MaxLengthForString("你好，世界")).To(Equal(23))
	})

	It("should fail on out of bounds access", func() {
		page := file.NewPage(16)
		Expect(page.SetUint64(9, 1)).To(MatchError(encoding.ErrOutOfBounds))
		Expect(page.Uint64(16)).Error().To(MatchError(encoding.ErrOutOfBounds))
		Expect(page.SetBytes(0, make([]byte, 9))).To(MatchError(encoding.ErrOutOfBounds))
		Expect(page.SetString(4, "hello")).To(MatchError(encoding.ErrOutOfBounds))
	})

	It("should fail decoding malformed strings", func() {
		page := file.NewPage(16)
		Expect(page.SetBytes(0, []byte{0xC3, 0x28})).To(Succeed())
		Expect(page.String(0)).Error().To(MatchError(encoding.ErrInvalidUTF8))
	})

	It("should share contents with a locked page", func() {
		page := file.NewPage(16)
		lockedPage := file.NewLockedPage(page)
		lockedPage.Lock()
		Expect(lockedPage.SetUint64(0, 42)).To(Succeed())
		lockedPage.Unlock()
		Expect(page.Uint64(0)).To(Equal(uint64(42)))
	})
})
