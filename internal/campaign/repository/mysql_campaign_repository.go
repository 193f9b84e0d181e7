package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	campaignDomain "github.com/allisson/outreach/internal/campaign/domain"
	"github.com/allisson/outreach/internal/database"
	apperrors "github.com/allisson/outreach/internal/errors"
)

// mysqlDuplicateEntry is the server error number for a unique key violation.
const mysqlDuplicateEntry = 1062

// MySQLCampaignRepository implements Campaign persistence for MySQL.
type MySQLCampaignRepository struct {
	db *sql.DB
}

// Create inserts a new Campaign. Returns ErrCampaignExists on a duplicate ID.
func (m *MySQLCampaignRepository) Create(ctx context.Context, campaign *campaignDomain.Campaign) error {
	querier := database.GetTx(ctx, m.db)

	blacklist, err := marshalDomains(campaign.BlacklistDomains)
	if err != nil {
		return err
	}

	query := `INSERT INTO campaigns (` + campaignColumns + `)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

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
		var myErr *mysql.MySQLError
		if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
			return campaignDomain.ErrCampaignExists
		}
		return apperrors.Wrap(err, "failed to create campaign")
	}
	return nil
}

// Get retrieves a Campaign by ID. Returns ErrCampaignNotFound if absent.
func (m *MySQLCampaignRepository) Get(ctx context.Context, id string) (*campaignDomain.Campaign, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE id = ?`

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
func (m *MySQLCampaignRepository) List(ctx context.Context, offset, limit int) ([]*campaignDomain.Campaign, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + campaignColumns + ` FROM campaigns ORDER BY created_at DESC, id LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list campaigns")
	}
	return collectCampaigns(rows)
}

// UpdateStatus pauses or resumes a Campaign. Returns ErrCampaignNotFound if absent.
func (m *MySQLCampaignRepository) UpdateStatus(
	ctx context.Context,
	id string,
	status campaignDomain.Status,
) error {
	querier := database.GetTx(ctx, m.db)

	result, err := querier.ExecContext(ctx, `UPDATE campaigns SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return apperrors.Wrap(err, "failed to update campaign status")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if affected > 0 {
		return nil
	}

	// MySQL reports changed rows, not matched rows: pausing a paused campaign affects nothing.
	var exists int
	err = querier.QueryRowContext(ctx, `SELECT 1 FROM campaigns WHERE id = ?`, id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return campaignDomain.ErrCampaignNotFound
	}
	if err != nil {
		return apperrors.Wrap(err, "failed to check campaign existence")
	}
	return nil
}

// NewMySQLCampaignRepository creates a new MySQL Campaign repository.
func NewMySQLCampaignRepository(db *sql.DB) *MySQLCampaignRepository {
	return &MySQLCampaignRepository{db: db}
}
