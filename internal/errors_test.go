package internal_test

import (
	"net/http"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/evisarw/visa-management/internal"
)

func TestErrors(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Errors Suite")
}

var _ = Describe("AppError taxonomy", func() {
	It("answers domain-state conflicts with 400 and a descriptive code", func() {
		for _, err := range []*internal.AppError{
			internal.ErrAlreadyApproved,
			internal.ErrAlreadyRejected,
			internal.ErrNotApproved,
			internal.ErrNoArrivalRecorded,
			internal.ErrAlreadyDeparted,
			internal.ErrUserReferenced,
		} {
			Expect(err.StatusCode).To(Equal(http.StatusBadRequest))
			Expect(err.Type).To(Equal(internal.ErrorTypeConflict))
			Expect(string(err.Code)).ToNot(BeEmpty())
		}
	})

	It("keeps conflict messages distinguishable from validation failures", func() {
		status, _ := internal.ErrAlreadyApproved.ToHTTPResponse()

		Expect(status).To(Equal(http.StatusBadRequest))
		Expect(internal.ErrAlreadyApproved.Message).To(Equal("Application is already approved"))
		Expect(internal.ErrAlreadyApproved.Type).ToNot(Equal(internal.ErrorTypeValidation))
	})

	It("rejects duplicate signup emails with 400", func() {
		Expect(internal.ErrEmailTaken.StatusCode).To(Equal(http.StatusBadRequest))
	})

	It("maps missing entities to 404", func() {
		Expect(internal.ErrApplicationNotFound.StatusCode).To(Equal(http.StatusNotFound))
		Expect(internal.ErrArrivalNotFound.StatusCode).To(Equal(http.StatusNotFound))
		Expect(internal.ErrUserNotFound.StatusCode).To(Equal(http.StatusNotFound))
	})
})
