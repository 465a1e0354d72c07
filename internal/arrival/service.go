package arrival

import (
	"log/slog"
	"time"

	internal "github.com/evisarw/visa-management/internal"
	"github.com/evisarw/visa-management/internal/application"
)

type ServiceAPI interface {
	RecordArrival(dto *RecordArrivalDTO, officerID int64) (*ArrivalRecord, error)
	RecordDeparture(recordID int64, dto *RecordDepartureDTO, officerID int64) (*ArrivalRecord, error)
	GetRecord(id int64) (*ArrivalRecord, error)
	ListRecords(filter ListRecordsFilter) ([]*ArrivalRecord, int64, error)
}

type RepositoryAPI interface {
	GetByID(id int64) (*ArrivalRecord, error)
	GetByApplicationID(applicationID int64) (*ArrivalRecord, error)
	List(filter ListRecordsFilter) ([]*ArrivalRecord, int64, error)
	GetApplicationStatus(applicationID int64) (string, error)
	// RecordArrival upserts the ledger record and, when the application is
	// still pending, promotes it to approved in the same transaction.
	RecordArrival(applicationID, officerID int64, arrivedAt time.Time) error
	RecordDeparture(recordID, officerID int64, departedAt time.Time) error
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

// RecordArrival marks the applicant as arrived. A pending application is
// promoted to approved in the same transaction; the acting officer becomes
// both approver and arrival officer. Repeat calls update the existing
// record instead of duplicating it.
func (s *Service) RecordArrival(dto *RecordArrivalDTO, officerID int64) (*ArrivalRecord, error) {
	if appErr := dto.Validate(); appErr != nil {
		return nil, appErr
	}

	status, err := s.repo.GetApplicationStatus(dto.VisaApplicationID)
	if err != nil {
		s.logger.Error("failed to load application for arrival",
			"error", err, "application_id", dto.VisaApplicationID)
		return nil, internal.NewInternalError("Failed to record arrival", err)
	}
	if status == "" {
		return nil, internal.ErrApplicationNotFound
	}
	if status == application.StatusRejected {
		s.logger.Warn("arrival attempted for rejected application",
			"application_id", dto.VisaApplicationID)
		return nil, internal.ErrAlreadyRejected
	}

	arrivedAt := s.now()
	if dto.ActualArrivalDate != nil {
		arrivedAt = *dto.ActualArrivalDate
	}

	if err := s.repo.RecordArrival(dto.VisaApplicationID, officerID, arrivedAt); err != nil {
		s.logger.Error("failed to record arrival",
			"error", err, "application_id", dto.VisaApplicationID, "officer_id", officerID)
		return nil, internal.NewInternalError("Failed to record arrival", err)
	}

	record, err := s.repo.GetByApplicationID(dto.VisaApplicationID)
	if err != nil || record == nil {
		return nil, internal.NewInternalError("Failed to load arrival record", err)
	}

	s.logger.Info("arrival recorded",
		"record_id", record.ID,
		"application_id", dto.VisaApplicationID,
		"officer_id", officerID,
		"promoted_from_pending", status == application.StatusPending)

	return record, nil
}

func (s *Service) RecordDeparture(recordID int64, dto *RecordDepartureDTO, officerID int64) (*ArrivalRecord, error) {
	record, err := s.repo.GetByID(recordID)
	if err != nil {
		return nil, internal.NewInternalError("Failed to load arrival record", err)
	}
	if record == nil {
		return nil, internal.ErrArrivalNotFound
	}
	if record.EntryStatus == EntryStatusDeparted {
		return nil, internal.ErrAlreadyDeparted
	}
	if record.ActualArrivalDate == nil {
		s.logger.Warn("departure attempted before arrival", "record_id", recordID)
		return nil, internal.ErrNoArrivalRecorded
	}

	departedAt := s.now()
	if dto != nil && dto.ActualDepartureDate != nil {
		departedAt = *dto.ActualDepartureDate
	}

	if err := s.repo.RecordDeparture(recordID, officerID, departedAt); err != nil {
		s.logger.Error("failed to record departure",
			"error", err, "record_id", recordID, "officer_id", officerID)
		return nil, internal.NewInternalError("Failed to record departure", err)
	}

	record, err = s.repo.GetByID(recordID)
	if err != nil || record == nil {
		return nil, internal.NewInternalError("Failed to load arrival record", err)
	}

	s.logger.Info("departure recorded",
		"record_id", recordID,
		"application_id", record.VisaApplicationID,
		"officer_id", officerID)

	return record, nil
}

func (s *Service) GetRecord(id int64) (*ArrivalRecord, error) {
	record, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get arrival record", "error", err, "record_id", id)
		return nil, internal.NewInternalError("Failed to get arrival record", err)
	}
	if record == nil {
		return nil, internal.ErrArrivalNotFound
	}
	return record, nil
}

func (s *Service) ListRecords(filter ListRecordsFilter) ([]*ArrivalRecord, int64, error) {
	records, total, err := s.repo.List(filter)
	if err != nil {
		s.logger.Error("failed to list arrival records", "error", err)
		return nil, 0, internal.NewInternalError("Failed to list arrival records", err)
	}
	return records, total, nil
}
