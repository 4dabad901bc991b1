package moderation

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"researchhub/internal/repository"
)

// csvHeader matches the columns the admin export screen promises.
var csvHeader = []string{
	"Name", "Email", "Phone", "Country", "City", "Status",
	"Field Category", "Experience", "Skills", "Availability", "Created At",
}

// WriteRegistrationsCSV streams the records as CSV. encoding/csv
// handles quoting, so commas and quotes inside fields survive a
// round-trip through any standard parser.
func WriteRegistrationsCSV(w io.Writer, records []repository.RegistrationRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, rec := range records {
		if err := cw.Write(registrationCSVRow(rec)); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func registrationCSVRow(rec repository.RegistrationRecord) []string {
	a := rec.Account
	app := rec.Application

	experience := "No"
	if app.HasExperience {
		experience = "Yes"
		if app.ExperienceDescription != "" {
			experience = "Yes: " + app.ExperienceDescription
		}
	}

	return []string{
		a.Name,
		a.Email,
		a.Phone,
		a.Country,
		a.City,
		string(a.Status),
		app.FieldCategory,
		experience,
		strings.Join(app.Skills, "; "),
		fmt.Sprintf("%d days / %d hours", app.AvailabilityDays, app.AvailabilityHours),
		a.CreatedAt.Format(time.RFC3339),
	}
}
