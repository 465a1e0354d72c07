package arrival_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	internal "github.com/evisarw/visa-management/internal"
	"github.com/evisarw/visa-management/internal/application"
	"github.com/evisarw/visa-management/internal/arrival"
)

func TestArrivalService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Arrival Service Suite")
}

type mockArrivalRepository struct {
	records           map[int64]*arrival.ArrivalRecord
	byApplication     map[int64]*arrival.ArrivalRecord
	applicationStatus map[int64]string
	nextID            int64

	recordArrivalError   error
	recordDepartureError error
	getError             error
	statusError          error
}

func newMockArrivalRepository() *mockArrivalRepository {
	return &mockArrivalRepository{
		records:           make(map[int64]*arrival.ArrivalRecord),
		byApplication:     make(map[int64]*arrival.ArrivalRecord),
		applicationStatus: make(map[int64]string),
		nextID:            1,
	}
}

func (m *mockArrivalRepository) GetByID(id int64) (*arrival.ArrivalRecord, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	return m.records[id], nil
}

func (m *mockArrivalRepository) GetByApplicationID(applicationID int64) (*arrival.ArrivalRecord, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	return m.byApplication[applicationID], nil
}

func (m *mockArrivalRepository) List(filter arrival.ListRecordsFilter) ([]*arrival.ArrivalRecord, int64, error) {
	result := make([]*arrival.ArrivalRecord, 0, len(m.records))
	for _, r := range m.records {
		if filter.EntryStatus != "" && r.EntryStatus != filter.EntryStatus {
			continue
		}
		result = append(result, r)
	}
	return result, int64(len(result)), nil
}

func (m *mockArrivalRepository) GetApplicationStatus(applicationID int64) (string, error) {
	if m.statusError != nil {
		return "", m.statusError
	}
	return m.applicationStatus[applicationID], nil
}

func (m *mockArrivalRepository) RecordArrival(applicationID, officerID int64, arrivedAt time.Time) error {
	if m.recordArrivalError != nil {
		return m.recordArrivalError
	}
	if m.applicationStatus[applicationID] == application.StatusPending {
		m.applicationStatus[applicationID] = application.StatusApproved
	}
	record, exists := m.byApplication[applicationID]
	if !exists {
		record = &arrival.ArrivalRecord{
			ID:                m.nextID,
			VisaApplicationID: applicationID,
			ApprovedBy:        officerID,
		}
		m.nextID++
		m.records[record.ID] = record
		m.byApplication[applicationID] = record
	}
	record.EntryStatus = arrival.EntryStatusArrived
	record.ActualArrivalDate = &arrivedAt
	record.ArrivalProcessedBy = &officerID
	return nil
}

func (m *mockArrivalRepository) RecordDeparture(recordID, officerID int64, departedAt time.Time) error {
	if m.recordDepartureError != nil {
		return m.recordDepartureError
	}
	if record, exists := m.records[recordID]; exists {
		record.EntryStatus = arrival.EntryStatusDeparted
		record.ActualDepartureDate = &departedAt
		record.DepartureProcessedBy = &officerID
	}
	return nil
}

var _ = Describe("ArrivalService", func() {
	var (
		service  *arrival.Service
		mockRepo *mockArrivalRepository
	)

	BeforeEach(func() {
		mockRepo = newMockArrivalRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = arrival.NewService(mockRepo, logger)
	})

	Describe("RecordArrival", func() {
		Context("for an approved application", func() {
			BeforeEach(func() {
				mockRepo.applicationStatus[1] = application.StatusApproved
			})

			It("creates an arrival record with the acting officer", func() {
				dto := &arrival.RecordArrivalDTO{VisaApplicationID: 1}

				record, err := service.RecordArrival(dto, 7)

				Expect(err).ToNot(HaveOccurred())
				Expect(record.EntryStatus).To(Equal(arrival.EntryStatusArrived))
				Expect(record.ActualArrivalDate).ToNot(BeNil())
				Expect(record.ArrivalProcessedBy).ToNot(BeNil())
				Expect(*record.ArrivalProcessedBy).To(Equal(int64(7)))
			})

			It("uses the supplied arrival timestamp when given", func() {
				arrivedAt := time.Date(2026, 9, 10, 14, 30, 0, 0, time.UTC)
				dto := &arrival.RecordArrivalDTO{VisaApplicationID: 1, ActualArrivalDate: &arrivedAt}

				record, err := service.RecordArrival(dto, 7)

				Expect(err).ToNot(HaveOccurred())
				Expect(record.ActualArrivalDate.Equal(arrivedAt)).To(BeTrue())
			})

			It("updates the existing record on repeat arrivals", func() {
				dto := &arrival.RecordArrivalDTO{VisaApplicationID: 1}

				first, err := service.RecordArrival(dto, 7)
				Expect(err).ToNot(HaveOccurred())

				second, err := service.RecordArrival(dto, 8)
				Expect(err).ToNot(HaveOccurred())
				Expect(second.ID).To(Equal(first.ID))
				Expect(*second.ArrivalProcessedBy).To(Equal(int64(8)))
			})
		})

		Context("for a pending application", func() {
			It("promotes the application to approved in the same operation", func() {
				mockRepo.applicationStatus[1] = application.StatusPending
				dto := &arrival.RecordArrivalDTO{VisaApplicationID: 1}

				record, err := service.RecordArrival(dto, 7)

				Expect(err).ToNot(HaveOccurred())
				Expect(record.EntryStatus).To(Equal(arrival.EntryStatusArrived))
				Expect(mockRepo.applicationStatus[1]).To(Equal(application.StatusApproved))
			})
		})

		Context("for a rejected application", func() {
			It("refuses the arrival", func() {
				mockRepo.applicationStatus[1] = application.StatusRejected
				dto := &arrival.RecordArrivalDTO{VisaApplicationID: 1}

				_, err := service.RecordArrival(dto, 7)

				Expect(err).To(Equal(internal.ErrAlreadyRejected))
			})
		})

		It("returns not found for an unknown application", func() {
			dto := &arrival.RecordArrivalDTO{VisaApplicationID: 999}

			_, err := service.RecordArrival(dto, 7)

			Expect(err).To(Equal(internal.ErrApplicationNotFound))
		})

		It("rejects a missing application id", func() {
			dto := &arrival.RecordArrivalDTO{}

			_, err := service.RecordArrival(dto, 7)

			Expect(err).To(HaveOccurred())
		})

		It("returns repository errors", func() {
			mockRepo.applicationStatus[1] = application.StatusApproved
			mockRepo.recordArrivalError = errors.New("database error")
			dto := &arrival.RecordArrivalDTO{VisaApplicationID: 1}

			_, err := service.RecordArrival(dto, 7)

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("RecordDeparture", func() {
		var record *arrival.ArrivalRecord

		BeforeEach(func() {
			arrivedAt := time.Date(2026, 9, 10, 14, 30, 0, 0, time.UTC)
			record = &arrival.ArrivalRecord{
				ID:                1,
				VisaApplicationID: 1,
				EntryStatus:       arrival.EntryStatusArrived,
				ActualArrivalDate: &arrivedAt,
				ApprovedBy:        7,
			}
			mockRepo.records[1] = record
			mockRepo.byApplication[1] = record
		})

		It("records the departure with the acting officer", func() {
			result, err := service.RecordDeparture(1, nil, 9)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.EntryStatus).To(Equal(arrival.EntryStatusDeparted))
			Expect(result.ActualDepartureDate).ToNot(BeNil())
			Expect(*result.DepartureProcessedBy).To(Equal(int64(9)))
		})

		It("uses the supplied departure timestamp when given", func() {
			departedAt := time.Date(2026, 9, 18, 9, 0, 0, 0, time.UTC)
			dto := &arrival.RecordDepartureDTO{ActualDepartureDate: &departedAt}

			result, err := service.RecordDeparture(1, dto, 9)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.ActualDepartureDate.Equal(departedAt)).To(BeTrue())
		})

		It("refuses a departure before any arrival", func() {
			record.ActualArrivalDate = nil
			record.EntryStatus = arrival.EntryStatusPending

			_, err := service.RecordDeparture(1, nil, 9)

			Expect(err).To(Equal(internal.ErrNoArrivalRecorded))
		})

		It("refuses a second departure", func() {
			record.EntryStatus = arrival.EntryStatusDeparted

			_, err := service.RecordDeparture(1, nil, 9)

			Expect(err).To(Equal(internal.ErrAlreadyDeparted))
		})

		It("returns not found for an unknown record", func() {
			_, err := service.RecordDeparture(999, nil, 9)

			Expect(err).To(Equal(internal.ErrArrivalNotFound))
		})
	})

	Describe("GetRecord", func() {
		It("returns an existing record", func() {
			mockRepo.records[1] = &arrival.ArrivalRecord{ID: 1, VisaApplicationID: 1}

			result, err := service.GetRecord(1)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.ID).To(Equal(int64(1)))
		})

		It("returns not found for an unknown record", func() {
			_, err := service.GetRecord(404)

			Expect(err).To(Equal(internal.ErrArrivalNotFound))
		})
	})

	Describe("ListRecords", func() {
		It("filters by entry status", func() {
			mockRepo.records[1] = &arrival.ArrivalRecord{ID: 1, EntryStatus: arrival.EntryStatusArrived}
			mockRepo.records[2] = &arrival.ArrivalRecord{ID: 2, EntryStatus: arrival.EntryStatusDeparted}

			result, total, err := service.ListRecords(arrival.ListRecordsFilter{EntryStatus: arrival.EntryStatusArrived})

			Expect(err).ToNot(HaveOccurred())
			Expect(total).To(Equal(int64(1)))
			Expect(result).To(HaveLen(1))
			Expect(result[0].ID).To(Equal(int64(1)))
		})
	})
})
