package encoding_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/backbone81/storage-kernel/internal/encoding"
)

var _ = Describe("Bytes", func() {
	DescribeTable("Round trips",
		func(offset int, data []byte) {
			buffer := make([]byte, 256)
			Expect(encoding.PutBytes(buffer, offset, data)).To(Succeed())
			got, err := encoding.Bytes(buffer, offset)
			Expect(err).ToNot(HaveOccurred())
			Expect(got).To(HaveLen(len(data)))
			if len(data) > 0 {
				Expect(got).To(Equal(data))
			}
		},
		Entry("When writing a few bytes", 23, []byte{1, 2, 3, 4}),
		Entry("When writing an empty byte string", 0, []byte{}),
		Entry("When filling the buffer to the last byte", 0, make([]byte, 248)),
	)

	It("should prefix the data with its length", func() {
		buffer := make([]byte, 16)
		Expect(encoding.PutBytes(buffer, 0, []byte{0xAA, 0xBB})).To(Succeed())
		Expect(buffer[:10]).To(Equal([]byte{0, 0, 0, 0, 0, 0, 0, 2, 0xAA, 0xBB}))
	})

	It("should report the encoded size", func() {
		Expect(encoding.BytesSize(0)).To(Equal(8))
		Expect(encoding.BytesSize(5)).To(Equal(13))
	})

	It("should fail writing data which does not fit and leave the buffer untouched", func() {
		buffer := make([]byte, 16)
		Expect(encoding.PutBytes(buffer, 4, []byte{1, 2, 3, 4, 5})).To(MatchError(encoding.ErrOutOfBounds))
		Expect(buffer).To(Equal(make([]byte, 16)))
	})

	It("should fail reading a length prefix which exceeds the buffer", func() {
		buffer := make([]byte, 16)
		Expect(encoding.PutUint64(buffer, 0, 9)).To(Succeed())
		Expect(encoding.Bytes(buffer, 0)).Error().To(MatchError(encoding.ErrOutOfBounds))
	})

	It("should fail reading a garbage length prefix without overflowing", func() {
		buffer := make([]byte, 16)
		for i := range 8 {
			buffer[i] = 0xFF
		}
		Expect(encoding.Bytes(buffer, 0)).Error().To(MatchError(encoding.ErrOutOfBounds))
	})

	It("should return a view into the buffer", func() {
		buffer := make([]byte, 16)
		Expect(encoding.PutBytes(buffer, 0, []byte{1})).To(Succeed())
		got, err := encoding.Bytes(buffer, 0)
		Expect(err).ToNot(HaveOccurred())
		buffer[8] = 7
		Expect(got).To(Equal([]byte{7}))
	})
})
