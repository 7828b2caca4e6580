package mcrit

import (
	"encoding/json"
	"strings"
	"time"

	"go.trai.ch/matchview/internal/core/domain"
	"go.trai.ch/zerr"
)

// timestampLayouts lists the timestamp formats the service has used, newest first.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02-15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05.999999",
}

type jobDTO struct {
	ID           string         `json:"job_id"`
	Number       int            `json:"number"`
	Parameters   string         `json:"parameters"`
	Payload      map[string]any `json:"payload"`
	Result       *string        `json:"result"`
	CreatedAt    string         `json:"created_at"`
	StartedAt    string         `json:"started_at"`
	FinishedAt   string         `json:"finished_at"`
	Dependencies []string       `json:"all_dependencies"`
	Failed       bool           `json:"is_failed"`
	Progress     float64        `json:"progress"`
}

func (d *jobDTO) toDomain() (*domain.JobInfo, error) {
	job := &domain.JobInfo{
		ID:           d.ID,
		Number:       d.Number,
		Parameters:   d.Parameters,
		Kind:         domain.ClassifyJob(d.Parameters),
		Payload:      d.Payload,
		Dependencies: d.Dependencies,
		Failed:       d.Failed,
		Progress:     d.Progress,
	}
	if d.Result != nil {
		job.ResultID = *d.Result
	}

	created, err := parseTimestamp(d.CreatedAt)
	if err != nil {
		return nil, zerr.With(err, "field", "created_at")
	}
	if created != nil {
		job.CreatedAt = *created
	}
	if job.StartedAt, err = parseTimestamp(d.StartedAt); err != nil {
		return nil, zerr.With(err, "field", "started_at")
	}
	if job.FinishedAt, err = parseTimestamp(d.FinishedAt); err != nil {
		return nil, zerr.With(err, "field", "finished_at")
	}
	return job, nil
}

func parseTimestamp(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return nil, nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, zerr.With(zerr.Wrap(domain.ErrRemoteUnavailable, "malformed timestamp"), "timestamp", raw)
}

type cursorDTO struct {
	Forward  *string `json:"forward"`
	Backward *string `json:"backward"`
}

func (c cursorDTO) toDomain() domain.Cursor {
	var out domain.Cursor
	if c.Forward != nil {
		out.Forward = *c.Forward
	}
	if c.Backward != nil {
		out.Backward = *c.Backward
	}
	return out
}

type searchDTO struct {
	Results  json.RawMessage `json:"search_results"`
	Cursor   cursorDTO       `json:"cursor"`
	IDMatch  json.RawMessage `json:"id_match"`
	SHAMatch json.RawMessage `json:"sha_match"`
}
