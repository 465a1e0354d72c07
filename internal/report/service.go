package report

import (
	"log/slog"
	"time"

	internal "github.com/evisarw/visa-management/internal"
)

type ServiceAPI interface {
	Dashboard() (*DashboardReport, error)
	Applications() (*ApplicationsReport, error)
	Officers() ([]OfficerActivity, error)
	Export() ([]byte, error)
}

type RepositoryAPI interface {
	Dashboard(startOfDay, startOfMonth, startOfYear time.Time) (*DashboardReport, error)
	CountByNationality() ([]CountByLabel, error)
	CountByPurpose() ([]CountByLabel, error)
	CountByMonth() ([]CountByLabel, error)
	OfficerActivity() ([]OfficerActivity, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

func (s *Service) Dashboard() (*DashboardReport, error) {
	now := s.now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	startOfYear := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())

	report, err := s.repo.Dashboard(startOfDay, startOfMonth, startOfYear)
	if err != nil {
		s.logger.Error("failed to build dashboard report", "error", err)
		return nil, internal.NewInternalError("Failed to build dashboard report", err)
	}
	return report, nil
}

// Applications is all-or-nothing: a failure in any grouping fails the
// whole report rather than returning partial numbers.
func (s *Service) Applications() (*ApplicationsReport, error) {
	byNationality, err := s.repo.CountByNationality()
	if err != nil {
		s.logger.Error("failed to count applications by nationality", "error", err)
		return nil, internal.NewInternalError("Failed to build applications report", err)
	}
	byPurpose, err := s.repo.CountByPurpose()
	if err != nil {
		s.logger.Error("failed to count applications by purpose", "error", err)
		return nil, internal.NewInternalError("Failed to build applications report", err)
	}
	byMonth, err := s.repo.CountByMonth()
	if err != nil {
		s.logger.Error("failed to count applications by month", "error", err)
		return nil, internal.NewInternalError("Failed to build applications report", err)
	}

	return &ApplicationsReport{
		ByNationality: byNationality,
		ByPurpose:     byPurpose,
		ByMonth:       byMonth,
	}, nil
}

func (s *Service) Officers() ([]OfficerActivity, error) {
	activity, err := s.repo.OfficerActivity()
	if err != nil {
		s.logger.Error("failed to build officers report", "error", err)
		return nil, internal.NewInternalError("Failed to build officers report", err)
	}
	return activity, nil
}

// Export renders the full report set as an xlsx workbook.
func (s *Service) Export() ([]byte, error) {
	dashboard, err := s.Dashboard()
	if err != nil {
		return nil, err
	}
	applications, err := s.Applications()
	if err != nil {
		return nil, err
	}
	officers, err := s.Officers()
	if err != nil {
		return nil, err
	}

	data, err := buildWorkbook(dashboard, applications, officers)
	if err != nil {
		s.logger.Error("failed to render report workbook", "error", err)
		return nil, internal.NewInternalError("Failed to export reports", err)
	}
	return data, nil
}
