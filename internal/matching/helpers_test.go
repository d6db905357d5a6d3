package matching

import (
	"time"

	"jobmatch-workers/internal/models"
)

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func datePtr(t time.Time) *models.Date { return models.NewDate(t) }

func remotePtr(r models.RemoteType) *models.RemoteType { return &r }

func activeJob(id string) models.NormalizedJobRecord {
	return models.NormalizedJobRecord{ID: id, Title: "Software Engineer", Company: "Initech", IsActive: true}
}
