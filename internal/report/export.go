package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// buildWorkbook renders the three reports as one xlsx workbook with a
// sheet per report.
func buildWorkbook(dashboard *DashboardReport, applications *ApplicationsReport, officers []OfficerActivity) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const dashboardSheet = "Dashboard"
	if err := f.SetSheetName("Sheet1", dashboardSheet); err != nil {
		return nil, err
	}

	dashboardRows := [][]interface{}{
		{"Metric", "Value"},
		{"Total applications", dashboard.TotalApplications},
		{"Pending", dashboard.PendingApplications},
		{"Approved", dashboard.ApprovedApplications},
		{"Rejected", dashboard.RejectedApplications},
		{"Submitted today", dashboard.SubmittedToday},
		{"Submitted this month", dashboard.SubmittedThisMonth},
		{"Submitted this year", dashboard.SubmittedThisYear},
		{"Currently in country", dashboard.CurrentlyInCountry},
	}
	if err := writeRows(f, dashboardSheet, dashboardRows); err != nil {
		return nil, err
	}

	appRows := [][]interface{}{{"Dimension", "Label", "Count"}}
	for _, c := range applications.ByNationality {
		appRows = append(appRows, []interface{}{"Nationality", c.Label, c.Count})
	}
	for _, c := range applications.ByPurpose {
		appRows = append(appRows, []interface{}{"Purpose", c.Label, c.Count})
	}
	for _, c := range applications.ByMonth {
		appRows = append(appRows, []interface{}{"Month", c.Label, c.Count})
	}
	if err := addSheet(f, "Applications", appRows); err != nil {
		return nil, err
	}

	officerRows := [][]interface{}{{"Officer", "Approved", "Arrivals processed", "Departures processed"}}
	for _, o := range officers {
		officerRows = append(officerRows, []interface{}{o.OfficerName, o.ApprovedCount, o.ArrivalsProcessed, o.DeparturesProcessed})
	}
	if err := addSheet(f, "Officers", officerRows); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func addSheet(f *excelize.File, name string, rows [][]interface{}) error {
	if _, err := f.NewSheet(name); err != nil {
		return err
	}
	return writeRows(f, name, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d on %s: %w", i+1, sheet, err)
		}
	}
	return nil
}
