package report_test

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/xuri/excelize/v2"

	"github.com/evisarw/visa-management/internal/report"
)

func TestReportService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Report Service Suite")
}

type mockReportRepository struct {
	dashboard       *report.DashboardReport
	byNationality   []report.CountByLabel
	byPurpose       []report.CountByLabel
	byMonth         []report.CountByLabel
	officerActivity []report.OfficerActivity

	dashboardError   error
	nationalityError error
	purposeError     error
	monthError       error
	officersError    error

	startOfDay   time.Time
	startOfMonth time.Time
	startOfYear  time.Time
}

func (m *mockReportRepository) Dashboard(startOfDay, startOfMonth, startOfYear time.Time) (*report.DashboardReport, error) {
	m.startOfDay = startOfDay
	m.startOfMonth = startOfMonth
	m.startOfYear = startOfYear
	return m.dashboard, m.dashboardError
}

func (m *mockReportRepository) CountByNationality() ([]report.CountByLabel, error) {
	return m.byNationality, m.nationalityError
}

func (m *mockReportRepository) CountByPurpose() ([]report.CountByLabel, error) {
	return m.byPurpose, m.purposeError
}

func (m *mockReportRepository) CountByMonth() ([]report.CountByLabel, error) {
	return m.byMonth, m.monthError
}

func (m *mockReportRepository) OfficerActivity() ([]report.OfficerActivity, error) {
	return m.officerActivity, m.officersError
}

var _ = Describe("ReportService", func() {
	var (
		service  *report.Service
		mockRepo *mockReportRepository
	)

	BeforeEach(func() {
		mockRepo = &mockReportRepository{
			dashboard: &report.DashboardReport{
				TotalApplications:    150,
				PendingApplications:  30,
				ApprovedApplications: 100,
				RejectedApplications: 20,
				SubmittedToday:       5,
				SubmittedThisMonth:   40,
				SubmittedThisYear:    150,
				CurrentlyInCountry:   25,
			},
			byNationality: []report.CountByLabel{
				{Label: "Kenya", Count: 60},
				{Label: "Burundi", Count: 40},
			},
			byPurpose: []report.CountByLabel{
				{Label: "Tourism", Count: 90},
				{Label: "Business", Count: 60},
			},
			byMonth: []report.CountByLabel{
				{Label: "2026-08", Count: 110},
				{Label: "2026-09", Count: 40},
			},
			officerActivity: []report.OfficerActivity{
				{OfficerID: 7, OfficerName: "Eric Niyonzima", ApprovedCount: 80, ArrivalsProcessed: 60, DeparturesProcessed: 45},
			},
		}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = report.NewService(mockRepo, logger)
	})

	Describe("Dashboard", func() {
		It("passes midnight-aligned window starts to the repository", func() {
			result, err := service.Dashboard()

			Expect(err).ToNot(HaveOccurred())
			Expect(result.TotalApplications).To(Equal(int64(150)))
			Expect(mockRepo.startOfDay.Hour()).To(BeZero())
			Expect(mockRepo.startOfMonth.Day()).To(Equal(1))
			Expect(mockRepo.startOfYear.Month()).To(Equal(time.January))
			Expect(mockRepo.startOfYear.Day()).To(Equal(1))
		})

		It("wraps repository failures", func() {
			mockRepo.dashboardError = errors.New("database error")

			_, err := service.Dashboard()

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Applications", func() {
		It("combines the three groupings", func() {
			result, err := service.Applications()

			Expect(err).ToNot(HaveOccurred())
			Expect(result.ByNationality).To(HaveLen(2))
			Expect(result.ByPurpose).To(HaveLen(2))
			Expect(result.ByMonth).To(HaveLen(2))
		})

		It("fails the whole report when one grouping fails", func() {
			mockRepo.purposeError = errors.New("database error")

			_, err := service.Applications()

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Officers", func() {
		It("returns per-officer activity", func() {
			result, err := service.Officers()

			Expect(err).ToNot(HaveOccurred())
			Expect(result).To(HaveLen(1))
			Expect(result[0].ApprovedCount).To(Equal(int64(80)))
		})
	})

	Describe("Export", func() {
		It("renders a workbook with the three report sheets", func() {
			data, err := service.Export()

			Expect(err).ToNot(HaveOccurred())
			Expect(data).ToNot(BeEmpty())

			workbook, err := excelize.OpenReader(bytes.NewReader(data))
			Expect(err).ToNot(HaveOccurred())
			defer workbook.Close()

			Expect(workbook.GetSheetList()).To(ConsistOf("Dashboard", "Applications", "Officers"))

			value, err := workbook.GetCellValue("Dashboard", "B2")
			Expect(err).ToNot(HaveOccurred())
			Expect(value).To(Equal("150"))
		})

		It("fails when any underlying report fails", func() {
			mockRepo.officersError = errors.New("database error")

			_, err := service.Export()

			Expect(err).To(HaveOccurred())
		})
	})
})
