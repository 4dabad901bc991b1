package moderation

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"researchhub/internal/domain"
	"researchhub/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteRegistrationsCSV_RoundTrip(t *testing.T) {
	created := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	records := []repository.RegistrationRecord{
		{
			Account: domain.Account{
				Name:      `Núñez, Ana "Annie"`, // comma and quotes must survive
				Email:     "ana@example.org",
				Phone:     "+34 600 000 000",
				Country:   "Spain",
				City:      "Madrid",
				Status:    domain.StatusPending,
				CreatedAt: created,
			},
			Application: domain.RegistrationApplication{
				FieldCategory:         "Data Science",
				HasExperience:         true,
				ExperienceDescription: "2 years, mostly NLP",
				Skills:                []string{"python", "go"},
				AvailabilityDays:      3,
				AvailabilityHours:     12,
			},
		},
		{
			Account: domain.Account{
				Name:      "Plain Row",
				Email:     "plain@example.org",
				Status:    domain.StatusApproved,
				CreatedAt: created,
			},
			Application: domain.RegistrationApplication{
				FieldCategory: "Biology",
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteRegistrationsCSV(&buf, records))

	parsed, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	require.Len(t, parsed, 3) // header + two rows
	assert.Equal(t, csvHeader, parsed[0])

	first := parsed[1]
	assert.Equal(t, `Núñez, Ana "Annie"`, first[0])
	assert.Equal(t, "ana@example.org", first[1])
	assert.Equal(t, "Spain", first[3])
	assert.Equal(t, "pending", first[5])
	assert.Equal(t, "Data Science", first[6])
	assert.Equal(t, "Yes: 2 years, mostly NLP", first[7])
	assert.Equal(t, "python; go", first[8])
	assert.Equal(t, "3 days / 12 hours", first[9])
	assert.Equal(t, created.Format(time.RFC3339), first[10])

	second := parsed[2]
	assert.Equal(t, "No", second[7])
	assert.Equal(t, "", second[8])
}

func TestWriteRegistrationsCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRegistrationsCSV(&buf, nil))

	parsed, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	assert.Equal(t, csvHeader, parsed[0])
}
