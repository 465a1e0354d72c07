package postgres_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/evisarw/visa-management/internal/application"
	applicationPostgres "github.com/evisarw/visa-management/internal/application/postgres"
	applicationDatamodel "github.com/evisarw/visa-management/internal/core/datamodel/application"
	arrivalDatamodel "github.com/evisarw/visa-management/internal/core/datamodel/arrival"
)

func TestApplicationPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Application Postgres Suite")
}

var _ = Describe("Application PostgreSQL Repository", func() {
	var (
		db   *gorm.DB
		repo application.RepositoryAPI
	)

	newApplication := func(ref string) *applicationDatamodel.VisaApplication {
		return &applicationDatamodel.VisaApplication{
			ReferenceNumber:       ref,
			FirstName:             "Amina",
			LastName:              "Uwase",
			Email:                 "amina.uwase@example.com",
			PassportNumber:        "PC1234567",
			Nationality:           "Kenya",
			PurposeOfVisit:        "Tourism",
			Status:                "pending",
			ArrivalDate:           time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
			ExpectedDepartureDate: time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC),
			AppliedAt:             time.Now(),
		}
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(
			&applicationDatamodel.VisaApplication{},
			&applicationDatamodel.UserApplication{},
			&arrivalDatamodel.ArrivalRecord{},
		)
		Expect(err).NotTo(HaveOccurred())

		repo = applicationPostgres.NewApplicationRepository(db)
	})

	Describe("Create", func() {
		It("should create a new application", func() {
			app := newApplication("RW26253001")

			err := repo.Create(app)
			Expect(err).NotTo(HaveOccurred())
			Expect(app.ID).To(BeNumerically(">", 0))
			Expect(app.CreatedAt).NotTo(BeZero())
		})

		It("should return ErrDuplicateReference on a reference collision", func() {
			Expect(repo.Create(newApplication("RW26253001"))).To(Succeed())

			err := repo.Create(newApplication("RW26253001"))
			Expect(err).To(MatchError(application.ErrDuplicateReference))
		})
	})

	Describe("GetByID and GetByReference", func() {
		var created *applicationDatamodel.VisaApplication

		BeforeEach(func() {
			created = newApplication("RW26253001")
			Expect(repo.Create(created)).To(Succeed())
		})

		It("should retrieve an application by id", func() {
			result, err := repo.GetByID(created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(result).NotTo(BeNil())
			Expect(result.ReferenceNumber).To(Equal("RW26253001"))
		})

		It("should retrieve an application by reference number", func() {
			result, err := repo.GetByReference("RW26253001")
			Expect(err).NotTo(HaveOccurred())
			Expect(result).NotTo(BeNil())
			Expect(result.ID).To(Equal(created.ID))
		})

		It("should return nil for an unknown id", func() {
			result, err := repo.GetByID(999)
			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(BeNil())
		})

		It("should return nil for an unknown reference", func() {
			result, err := repo.GetByReference("RW26999999")
			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(BeNil())
		})
	})

	Describe("List", func() {
		BeforeEach(func() {
			first := newApplication("RW26253001")
			first.AppliedAt = time.Now().Add(-2 * time.Hour)
			Expect(repo.Create(first)).To(Succeed())

			second := newApplication("RW26253002")
			second.FirstName = "Jean"
			second.LastName = "Habimana"
			second.Nationality = "Burundi"
			second.Status = "approved"
			second.AppliedAt = time.Now().Add(-1 * time.Hour)
			Expect(repo.Create(second)).To(Succeed())
		})

		It("should return all applications ordered by newest first", func() {
			apps, total, err := repo.List(application.ListApplicationsFilter{Page: 1, PageSize: 20})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(2)))
			Expect(apps).To(HaveLen(2))
			Expect(apps[0].ReferenceNumber).To(Equal("RW26253002"))
		})

		It("should filter by status", func() {
			apps, total, err := repo.List(application.ListApplicationsFilter{Status: "approved", Page: 1, PageSize: 20})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(1)))
			Expect(apps[0].Status).To(Equal("approved"))
		})

		It("should filter by nationality", func() {
			apps, _, err := repo.List(application.ListApplicationsFilter{Nationality: "Burundi", Page: 1, PageSize: 20})
			Expect(err).NotTo(HaveOccurred())
			Expect(apps).To(HaveLen(1))
			Expect(apps[0].Nationality).To(Equal("Burundi"))
		})

		It("should search case-insensitively across applicant fields", func() {
			apps, _, err := repo.List(application.ListApplicationsFilter{Search: "habimana", Page: 1, PageSize: 20})
			Expect(err).NotTo(HaveOccurred())
			Expect(apps).To(HaveLen(1))
			Expect(apps[0].LastName).To(Equal("Habimana"))
		})

		It("should paginate results", func() {
			apps, total, err := repo.List(application.ListApplicationsFilter{Page: 2, PageSize: 1})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(2)))
			Expect(apps).To(HaveLen(1))
		})
	})

	Describe("ApproveAndCreateArrival", func() {
		It("should approve and open the arrival ledger record together", func() {
			app := newApplication("RW26253001")
			Expect(repo.Create(app)).To(Succeed())

			now := time.Now()
			app.Status = "approved"
			app.ProcessedAt = &now
			Expect(repo.ApproveAndCreateArrival(app, 7)).To(Succeed())

			var stored applicationDatamodel.VisaApplication
			Expect(db.First(&stored, app.ID).Error).To(Succeed())
			Expect(stored.Status).To(Equal("approved"))

			var record arrivalDatamodel.ArrivalRecord
			Expect(db.Where("visa_application_id = ?", app.ID).First(&record).Error).To(Succeed())
			Expect(record.EntryStatus).To(Equal(arrivalDatamodel.EntryStatusPending))
			Expect(record.ApprovedBy).To(Equal(int64(7)))
		})
	})

	Describe("Delete", func() {
		It("should remove the application with its arrival record and user link", func() {
			app := newApplication("RW26253001")
			Expect(repo.Create(app)).To(Succeed())
			Expect(repo.LinkUserApplication(42, app.ID)).To(Succeed())
			Expect(repo.ApproveAndCreateArrival(app, 7)).To(Succeed())

			Expect(repo.Delete(app.ID)).To(Succeed())

			result, err := repo.GetByID(app.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(BeNil())

			var count int64
			Expect(db.Model(&arrivalDatamodel.ArrivalRecord{}).Where("visa_application_id = ?", app.ID).Count(&count).Error).To(Succeed())
			Expect(count).To(BeZero())
		})
	})

	Describe("ArrivalDates", func() {
		It("should return nils when no ledger record exists", func() {
			app := newApplication("RW26253001")
			Expect(repo.Create(app)).To(Succeed())

			arrivedAt, departedAt, err := repo.ArrivalDates(app.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(arrivedAt).To(BeNil())
			Expect(departedAt).To(BeNil())
		})

		It("should return the recorded travel dates", func() {
			app := newApplication("RW26253001")
			Expect(repo.Create(app)).To(Succeed())

			arrived := time.Date(2026, 9, 10, 14, 0, 0, 0, time.UTC)
			record := &arrivalDatamodel.ArrivalRecord{
				VisaApplicationID: app.ID,
				EntryStatus:       arrivalDatamodel.EntryStatusArrived,
				ActualArrivalDate: &arrived,
				ApprovedBy:        7,
			}
			Expect(db.Create(record).Error).To(Succeed())

			arrivedAt, departedAt, err := repo.ArrivalDates(app.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(arrivedAt).NotTo(BeNil())
			Expect(arrivedAt.Equal(arrived)).To(BeTrue())
			Expect(departedAt).To(BeNil())
		})
	})
})
