package report

// DashboardReport is the landing-page summary for the back office.
type DashboardReport struct {
	TotalApplications    int64 `json:"total_applications" db:"total_applications"`
	PendingApplications  int64 `json:"pending_applications" db:"pending_applications"`
	ApprovedApplications int64 `json:"approved_applications" db:"approved_applications"`
	RejectedApplications int64 `json:"rejected_applications" db:"rejected_applications"`
	SubmittedToday       int64 `json:"submitted_today" db:"submitted_today"`
	SubmittedThisMonth   int64 `json:"submitted_this_month" db:"submitted_this_month"`
	SubmittedThisYear    int64 `json:"submitted_this_year" db:"submitted_this_year"`
	CurrentlyInCountry   int64 `json:"currently_in_country" db:"currently_in_country"`
}

type CountByLabel struct {
	Label string `json:"label" db:"label"`
	Count int64  `json:"count" db:"count"`
}

// ApplicationsReport groups submissions by the dimensions the border
// authority reports on.
type ApplicationsReport struct {
	ByNationality []CountByLabel `json:"by_nationality"`
	ByPurpose     []CountByLabel `json:"by_purpose"`
	ByMonth       []CountByLabel `json:"by_month"`
}

// OfficerActivity is one row of the per-officer processing report.
type OfficerActivity struct {
	OfficerID           int64  `json:"officer_id" db:"officer_id"`
	OfficerName         string `json:"officer_name" db:"officer_name"`
	ApprovedCount       int64  `json:"approved_count" db:"approved_count"`
	ArrivalsProcessed   int64  `json:"arrivals_processed" db:"arrivals_processed"`
	DeparturesProcessed int64  `json:"departures_processed" db:"departures_processed"`
}
