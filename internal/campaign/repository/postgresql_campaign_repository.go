// Package repository implements campaign persistence for PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/lib/pq"

	campaignDomain "github.com/allisson/outreach/internal/campaign/domain"
	"github.com/allisson/outreach/internal/database"
	apperrors "github.com/allisson/outreach/internal/errors"
)

const campaignColumns = `id, name, icp_description, email_template_ref, blacklist_domains, daily_limit, status, created_at`

// PostgreSQLCampaignRepository implements Campaign persistence for PostgreSQL.
type PostgreSQLCampaignRepository struct {
	db *sql.DB
}

// Create inserts a new Campaign. Returns ErrCampaignExists on a duplicate ID.
func (p *PostgreSQLCampaignRepository) Create(ctx context.Context, campaign *campaignDomain.Campaign) error {
	querier := database.GetTx(ctx, p.db)

	blacklist, err := marshalDomains(campaign.BlacklistDomains)
	if err != nil {
		return err
	}

	query := `INSERT INTO campaigns (` + campaignColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = querier.ExecContext(
		ctx,
		query,
		campaign.ID,
		campaign.Name,
		campaign.ICPDescription,
		campaign.EmailTemplateRef,
		blacklist,
		campaign.DailyLimit,
		string(campaign.Status),
		campaign.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return campaignDomain.ErrCampaignExists
		}
		return apperrors.Wrap(err, "failed to create campaign")
	}
	return nil
}

// Get retrieves a Campaign by ID. Returns ErrCampaignNotFound if absent.
func (p *PostgreSQLCampaignRepository) Get(ctx context.Context, id string) (*campaignDomain.Campaign, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE id = $1`

	campaign, err := scanCampaign(querier.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, campaignDomain.ErrCampaignNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get campaign")
	}
	return campaign, nil
}

// List returns campaigns ordered by creation time, newest first.
func (p *PostgreSQLCampaignRepository) List(ctx context.Context, offset, limit int) ([]*campaignDomain.Campaign, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + campaignColumns + ` FROM campaigns ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list campaigns")
	}
	return collectCampaigns(rows)
}

// UpdateStatus pauses or resumes a Campaign. Returns ErrCampaignNotFound if absent.
func (p *PostgreSQLCampaignRepository) UpdateStatus(
	ctx context.Context,
	id string,
	status campaignDomain.Status,
) error {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `UPDATE campaigns SET status = $1 WHERE id = $2`, string(status), id)
	if err != nil {
		return apperrors.Wrap(err, "failed to update campaign status")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		return campaignDomain.ErrCampaignNotFound
	}
	return nil
}

// NewPostgreSQLCampaignRepository creates a new PostgreSQL Campaign repository.
func NewPostgreSQLCampaignRepository(db *sql.DB) *PostgreSQLCampaignRepository {
	return &PostgreSQLCampaignRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCampaign(row rowScanner) (*campaignDomain.Campaign, error) {
	var campaign campaignDomain.Campaign
	var blacklist []byte
	var status string

	err := row.Scan(
		&campaign.ID,
		&campaign.Name,
		&campaign.ICPDescription,
		&campaign.EmailTemplateRef,
		&blacklist,
		&campaign.DailyLimit,
		&status,
		&campaign.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	campaign.Status = campaignDomain.Status(status)
	campaign.BlacklistDomains = make([]string, 0)
	if len(blacklist) > 0 {
		if err := json.Unmarshal(blacklist, &campaign.BlacklistDomains); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal campaign blacklist")
		}
	}
	return &campaign, nil
}

func collectCampaigns(rows *sql.Rows) ([]*campaignDomain.Campaign, error) {
	defer func() {
		_ = rows.Close()
	}()

	campaigns := make([]*campaignDomain.Campaign, 0)
	for rows.Next() {
		campaign, err := scanCampaign(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan campaign")
		}
		campaigns = append(campaigns, campaign)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate campaigns")
	}
	return campaigns, nil
}

func marshalDomains(domains []string) ([]byte, error) {
	if domains == nil {
		domains = []string{}
	}
	data, err := json.Marshal(domains)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal campaign blacklist")
	}
	return data, nil
}
