// Package repository implements lead persistence for PostgreSQL and MySQL with
// transaction support via database.GetTx().
package repository

import (
	"database/sql"
	"encoding/json"
	"time"

	leadDomain "github.com/allisson/outreach/internal/lead/domain"
	apperrors "github.com/allisson/outreach/internal/errors"
)

const leadColumns = `id, source, name, company_name, email, linkedin_url, campaign_id, status, send_count,
	last_sent_at, next_scheduled_at, last_message_id, thread_id, subject, body,
	company_summary, product_summary, metadata, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

// scanLead reads one row selected with leadColumns.
func scanLead(row rowScanner) (*leadDomain.Lead, error) {
	var lead leadDomain.Lead
	var email, linkedinURL, lastMessageID, threadID sql.NullString
	var lastSentAt, nextScheduledAt sql.NullTime
	var status string
	var metadataJSON []byte

	err := row.Scan(
		&lead.ID,
		&lead.Source,
		&lead.Name,
		&lead.CompanyName,
		&email,
		&linkedinURL,
		&lead.CampaignID,
		&status,
		&lead.SendCount,
		&lastSentAt,
		&nextScheduledAt,
		&lastMessageID,
		&threadID,
		&lead.Subject,
		&lead.Body,
		&lead.CompanySummary,
		&lead.ProductSummary,
		&metadataJSON,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	lead.Status, err = leadDomain.ParseStatus(status)
	if err != nil {
		return nil, apperrors.Wrapf(err, "lead %s", lead.ID)
	}

	lead.Email = email.String
	lead.LinkedInURL = linkedinURL.String
	lead.LastMessageID = lastMessageID.String
	lead.ThreadID = threadID.String
	lead.LastSentAt = timePtr(lastSentAt)
	lead.NextScheduledAt = timePtr(nextScheduledAt)

	if metadataJSON != nil {
		if err := json.Unmarshal(metadataJSON, &lead.Metadata); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal lead metadata")
		}
	}

	return &lead, nil
}

// marshalMetadata encodes a nil map as database NULL.
func marshalMetadata(metadata map[string]any) ([]byte, error) {
	if metadata == nil {
		return nil, nil
	}
	data, err := json.Marshal(metadata)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal lead metadata")
	}
	return data, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
