package wal_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/backbone81/storage-kernel/internal/wal"
)

var _ = Describe("SyncPolicy", func() {
	It("should parse every supported sync policy type", func() {
		for _, syncPolicyType := range wal.SyncPolicyTypes {
			Expect(wal.ParseSyncPolicyType(syncPolicyType.String())).To(Equal(syncPolicyType))

			syncPolicy, err := wal.GetSyncPolicy(syncPolicyType)
			Expect(err).ToNot(HaveOccurred())
			Expect(syncPolicy).ToNot(BeNil())
		}
	})

	It("should reject unknown sync policy types", func() {
		Expect(wal.ParseSyncPolicyType("sometimes")).Error().To(MatchError(wal.ErrSyncPolicyUnsupported))
		Expect(wal.GetSyncPolicy(wal.SyncPolicyType(42))).Error().To(MatchError(wal.ErrSyncPolicyUnsupported))
		Expect(wal.SyncPolicyType(42).String()).To(Equal("unknown"))
	})

	It("should name sync policy periodic for the command line", func() {
		Expect(wal.SyncPolicyTypePeriodic.String()).To(Equal("periodic"))
		Expect(wal.ParseSyncPolicyType("periodic")).To(Equal(wal.SyncPolicyTypePeriodic))
		Expect(wal.GetSyncPolicy(wal.SyncPolicyTypePeriodic)).To(BeAssignableToTypeOf(&wal.SyncPolicyPeriodic{}))
	})

	It("should default to sync policy none", func() {
		Expect(wal.DefaultSyncPolicy).To(Equal(wal.SyncPolicyTypeNone))
	})
})
