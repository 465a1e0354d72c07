package application_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/evisarw/visa-management/internal/application"
)

var _ = Describe("EvaluateValidity", func() {
	var (
		arrival   time.Time
		departure time.Time
	)

	BeforeEach(func() {
		arrival = time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
		departure = time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
	})

	Context("for an approved visa", func() {
		It("is valid but not yet active before the arrival date", func() {
			now := time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC)

			v := application.EvaluateValidity(application.StatusApproved, arrival, departure, nil, nil, now)

			Expect(v.IsValid).To(BeTrue())
			Expect(v.Status).To(Equal(application.ValidityNotActive))
		})

		It("is valid inside the travel window", func() {
			now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

			v := application.EvaluateValidity(application.StatusApproved, arrival, departure, nil, nil, now)

			Expect(v.IsValid).To(BeTrue())
			Expect(v.Status).To(Equal(application.ValidityValid))
		})

		It("expires after the expected departure date", func() {
			now := time.Date(2024, 1, 25, 12, 0, 0, 0, time.UTC)

			v := application.EvaluateValidity(application.StatusApproved, arrival, departure, nil, nil, now)

			Expect(v.IsValid).To(BeFalse())
			Expect(v.Status).To(Equal(application.ValidityExpired))
		})

		It("uses the actual arrival as the window start when recorded", func() {
			actualArrival := time.Date(2024, 1, 12, 8, 0, 0, 0, time.UTC)
			now := time.Date(2024, 1, 13, 12, 0, 0, 0, time.UTC)

			v := application.EvaluateValidity(application.StatusApproved, arrival, departure, &actualArrival, nil, now)

			Expect(v.IsValid).To(BeTrue())
			Expect(v.Status).To(Equal(application.ValidityValid))
		})

		It("expires when an actual arrival recorded in the future leaves now outside the window", func() {
			// Scheduled arrival has passed, but the recorded arrival is
			// still ahead of now. The future stamp narrows the window; it
			// does not make the visa not-yet-active again.
			actualArrival := time.Date(2024, 1, 12, 8, 0, 0, 0, time.UTC)
			now := time.Date(2024, 1, 11, 12, 0, 0, 0, time.UTC)

			v := application.EvaluateValidity(application.StatusApproved, arrival, departure, &actualArrival, nil, now)

			Expect(v.IsValid).To(BeFalse())
			Expect(v.Status).To(Equal(application.ValidityExpired))
		})

		It("is no longer valid once a departure is recorded", func() {
			actualArrival := time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)
			actualDeparture := time.Date(2024, 1, 14, 16, 0, 0, 0, time.UTC)
			now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

			v := application.EvaluateValidity(application.StatusApproved, arrival, departure, &actualArrival, &actualDeparture, now)

			Expect(v.IsValid).To(BeFalse())
			Expect(v.Status).To(Equal(application.ValidityDeparted))
		})
	})

	Context("for an unapproved visa", func() {
		It("reports a pending application even inside the window", func() {
			now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

			v := application.EvaluateValidity(application.StatusPending, arrival, departure, nil, nil, now)

			Expect(v.IsValid).To(BeFalse())
			Expect(v.Status).To(Equal(application.ValidityPending))
		})

		It("reports a rejected application regardless of dates", func() {
			now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

			v := application.EvaluateValidity(application.StatusRejected, arrival, departure, nil, nil, now)

			Expect(v.IsValid).To(BeFalse())
			Expect(v.Status).To(Equal(application.ValidityRejected))
		})
	})
})

var _ = Describe("GenerateReferenceNumber", func() {
	It("produces RW followed by year, day of year and a sequence", func() {
		now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

		ref, err := application.GenerateReferenceNumber(now)

		Expect(err).ToNot(HaveOccurred())
		Expect(ref).To(HaveLen(10))
		Expect(ref).To(HavePrefix("RW26060"))
	})
})
