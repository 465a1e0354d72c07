package postgres

import (
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/evisarw/visa-management/internal/report"
)

// ReportRepository runs the aggregate queries directly over SQL; gorm
// models buy nothing for grouped counts.
type ReportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) report.RepositoryAPI {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Dashboard(startOfDay, startOfMonth, startOfYear time.Time) (*report.DashboardReport, error) {
	const query = `
		SELECT
			(SELECT COUNT(*) FROM visa_applications) AS total_applications,
			(SELECT COUNT(*) FROM visa_applications WHERE status = 'pending') AS pending_applications,
			(SELECT COUNT(*) FROM visa_applications WHERE status = 'approved') AS approved_applications,
			(SELECT COUNT(*) FROM visa_applications WHERE status = 'rejected') AS rejected_applications,
			(SELECT COUNT(*) FROM visa_applications WHERE applied_at >= $1) AS submitted_today,
			(SELECT COUNT(*) FROM visa_applications WHERE applied_at >= $2) AS submitted_this_month,
			(SELECT COUNT(*) FROM visa_applications WHERE applied_at >= $3) AS submitted_this_year,
			(SELECT COUNT(*) FROM arrival_records WHERE entry_status = 'arrived') AS currently_in_country`

	var result report.DashboardReport
	if err := r.db.Get(&result, query, startOfDay, startOfMonth, startOfYear); err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *ReportRepository) CountByNationality() ([]report.CountByLabel, error) {
	const query = `
		SELECT nationality AS label, COUNT(*) AS count
		FROM visa_applications
		GROUP BY nationality
		ORDER BY count DESC, label ASC`
	return r.countByLabel(query)
}

func (r *ReportRepository) CountByPurpose() ([]report.CountByLabel, error) {
	const query = `
		SELECT COALESCE(NULLIF(purpose_of_visit, ''), 'Not specified') AS label, COUNT(*) AS count
		FROM visa_applications
		GROUP BY 1
		ORDER BY count DESC, label ASC`
	return r.countByLabel(query)
}

func (r *ReportRepository) CountByMonth() ([]report.CountByLabel, error) {
	const query = `
		SELECT TO_CHAR(applied_at, 'YYYY-MM') AS label, COUNT(*) AS count
		FROM visa_applications
		GROUP BY 1
		ORDER BY label ASC`
	return r.countByLabel(query)
}

func (r *ReportRepository) OfficerActivity() ([]report.OfficerActivity, error) {
	const query = `
		SELECT
			u.id AS officer_id,
			u.first_name || ' ' || u.last_name AS officer_name,
			(SELECT COUNT(*) FROM arrival_records ar WHERE ar.approved_by = u.id) AS approved_count,
			(SELECT COUNT(*) FROM arrival_records ar WHERE ar.arrival_processed_by = u.id) AS arrivals_processed,
			(SELECT COUNT(*) FROM arrival_records ar WHERE ar.departure_processed_by = u.id) AS departures_processed
		FROM users u
		WHERE u.role IN ('admin', 'officer')
		ORDER BY approved_count DESC, u.id ASC`

	var rows []report.OfficerActivity
	if err := r.db.Select(&rows, query); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ReportRepository) countByLabel(query string, args ...interface{}) ([]report.CountByLabel, error) {
	var rows []report.CountByLabel
	if err := r.db.Select(&rows, query, args...); err != nil {
		return nil, err
	}
	return rows, nil
}
