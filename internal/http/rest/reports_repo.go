package rest

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/bwise1/waze_kibris/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReportRepo struct {
	DB *pgxpool.Pool
}

var (
	ErrReportNotFound = errors.New("report not found")
	ErrUpdateFailed   = errors.New("failed to update report")
	ErrDeleteFailed   = errors.New("failed to delete report")
)

// CreateReportRepo inserts a new report and returns its generated ID.
func (api *API) CreateReportRepo(ctx context.Context, report model.Report) (string, error) {
	query := `
        INSERT INTO reports (
            user_id, type, subtype, position, description, severity,
            expires_at, image_url, report_source, report_status
        ) VALUES (
            $1, $2, $3, ST_SetSRID(ST_MakePoint($4, $5), 4326), $6,
            COALESCE(NULLIF($7, 0), 4),
            COALESCE($8, NOW() + INTERVAL '24 hours'),
            $9,
            COALESCE(NULLIF($10, ''), 'USER'),
            COALESCE(NULLIF($11, ''), 'PENDING')
        ) RETURNING id
    `
	var id int64
	err := api.DB.QueryRow(ctx, query,
		report.UserID, report.Type, report.Subtype, report.Longitude, report.Latitude,
		report.Description, report.Severity, report.ExpiresAt, report.ImageURL,
		report.ReportSource, report.ReportStatus,
	).Scan(&id)
	if err != nil {
		log.Println("creating report:", err)
		return "", err
	}
	return fmt.Sprintf("%d", id), nil
}

// GetReportByIDRepo retrieves a report by ID.
func (api *API) GetReportByIDRepo(ctx context.Context, id string) (model.Report, error) {
	query := `
        SELECT
            id, user_id, type, subtype, ST_X(position) as longitude,
            ST_Y(position) as latitude, description, severity, verified_count,
            active, resolved, created_at, updated_at, expires_at, image_url,
            report_source, report_status, comments_count, upvotes_count, downvotes_count
        FROM reports
        WHERE id = $1
    `
	var report model.Report
	err := api.DB.QueryRow(ctx, query, id).Scan(
		&report.ID, &report.UserID, &report.Type, &report.Subtype,
		&report.Longitude, &report.Latitude, &report.Description, &report.Severity,
		&report.VerifiedCount, &report.Active, &report.Resolved, &report.CreatedAt,
		&report.UpdatedAt, &report.ExpiresAt, &report.ImageURL, &report.ReportSource,
		&report.ReportStatus, &report.CommentsCount, &report.UpvotesCount,
		&report.DownvotesCount,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Report{}, ErrReportNotFound
	}
	if err != nil {
		log.Println("fetching report by id:", err)
	}
	return report, err
}

// GetNearbyReportsRepo retrieves active, unexpired reports within radiusMeters
// of the given point, nearest first.
func (api *API) GetNearbyReportsRepo(ctx context.Context, longitude, latitude, radiusMeters float64) ([]model.Report, error) {
	query := `
        SELECT
            id, user_id, type, subtype,
            ST_X(position::geometry) as longitude,
            ST_Y(position::geometry) as latitude,
            description, severity, verified_count,
            active, resolved, created_at, updated_at,
            expires_at, image_url, report_source, report_status,
            comments_count, upvotes_count, downvotes_count
        FROM reports
        WHERE ST_DWithin(
            position::geography,
            ST_MakePoint($1, $2)::geography,
            $3
        )
        AND active = true
        AND expires_at > NOW()
        ORDER BY ST_Distance(position::geography, ST_MakePoint($1, $2)::geography)
    `
	rows, err := api.DB.Query(ctx, query, longitude, latitude, radiusMeters)
	if err != nil {
		return nil, fmt.Errorf("querying nearby reports: %w", err)
	}
	defer rows.Close()

	var reports []model.Report
	for rows.Next() {
		var report model.Report
		if err := rows.Scan(
			&report.ID, &report.UserID, &report.Type, &report.Subtype,
			&report.Longitude, &report.Latitude, &report.Description,
			&report.Severity, &report.VerifiedCount, &report.Active,
			&report.Resolved, &report.CreatedAt, &report.UpdatedAt,
			&report.ExpiresAt, &report.ImageURL, &report.ReportSource,
			&report.ReportStatus, &report.CommentsCount, &report.UpvotesCount,
			&report.DownvotesCount,
		); err != nil {
			return nil, fmt.Errorf("scanning report: %w", err)
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}

// GetAllReportsRepo retrieves every active, unexpired report.
func (api *API) GetAllReportsRepo(ctx context.Context) ([]model.Report, error) {
	query := `
        SELECT
            id, user_id, type, subtype, ST_X(position) as longitude,
            ST_Y(position) as latitude, description, severity, verified_count,
            active, resolved, created_at, updated_at, expires_at, image_url,
            report_source, report_status, comments_count, upvotes_count, downvotes_count
        FROM reports
        WHERE active = true AND expires_at > NOW()
        ORDER BY created_at DESC
    `
	rows, err := api.DB.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying all reports: %w", err)
	}
	defer rows.Close()

	var reports []model.Report
	for rows.Next() {
		var report model.Report
		if err := rows.Scan(
			&report.ID, &report.UserID, &report.Type, &report.Subtype,
			&report.Longitude, &report.Latitude, &report.Description, &report.Severity,
			&report.VerifiedCount, &report.Active, &report.Resolved, &report.CreatedAt,
			&report.UpdatedAt, &report.ExpiresAt, &report.ImageURL, &report.ReportSource,
			&report.ReportStatus, &report.CommentsCount, &report.UpvotesCount,
			&report.DownvotesCount,
		); err != nil {
			return nil, fmt.Errorf("scanning report: %w", err)
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}

// UpdateReportRepo updates an existing report.
func (api *API) UpdateReportRepo(ctx context.Context, report model.Report) error {
	query := `
        UPDATE reports
        SET
            type = $1,
            subtype = $2,
            position = ST_SetSRID(ST_MakePoint($3, $4), 4326),
            description = $5,
            severity = $6,
            active = $7,
            resolved = $8,
            expires_at = $9,
            image_url = $10,
            report_status = $11,
            updated_at = NOW()
        WHERE id = $12 AND user_id = $13
    `
	result, err := api.DB.Exec(ctx, query,
		report.Type, report.Subtype, report.Longitude, report.Latitude,
		report.Description, report.Severity, report.Active, report.Resolved,
		report.ExpiresAt, report.ImageURL, report.ReportStatus,
		report.ID, report.UserID,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrUpdateFailed
	}
	return nil
}

// DeleteReportRepo soft deletes a report by setting active to false.
func (api *API) DeleteReportRepo(ctx context.Context, id string, userID string) error {
	query := `
        UPDATE reports
        SET active = false, updated_at = NOW()
        WHERE id = $1 AND user_id = $2
    `
	result, err := api.DB.Exec(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrDeleteFailed
	}
	return nil
}

// UpdateReportVotesRepo adjusts the vote counts for a report.
func (api *API) UpdateReportVotesRepo(ctx context.Context, id string, upvotes, downvotes int) error {
	query := `
        UPDATE reports
        SET
            upvotes_count = upvotes_count + $1,
            downvotes_count = downvotes_count + $2,
            updated_at = NOW()
        WHERE id = $3
    `
	result, err := api.DB.Exec(ctx, query, upvotes, downvotes, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrUpdateFailed
	}
	return nil
}

// IncrementVerifiedCountRepo increments the verified count for a report.
func (api *API) IncrementVerifiedCountRepo(ctx context.Context, id string) error {
	query := `
        UPDATE reports
        SET
            verified_count = verified_count + 1,
            updated_at = NOW()
        WHERE id = $1
    `
	result, err := api.DB.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrUpdateFailed
	}
	return nil
}

// GetUserReportsRepo retrieves all reports filed by a specific user.
func (api *API) GetUserReportsRepo(ctx context.Context, userID string) ([]model.Report, error) {
	query := `
        SELECT
            id, user_id, type, subtype, ST_X(position) as longitude,
            ST_Y(position) as latitude, description, severity, verified_count,
            active, resolved, created_at, updated_at, expires_at, image_url,
            report_source, report_status, comments_count, upvotes_count, downvotes_count
        FROM reports
        WHERE user_id = $1
        ORDER BY created_at DESC
    `
	rows, err := api.DB.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []model.Report
	for rows.Next() {
		var report model.Report
		if err := rows.Scan(
			&report.ID, &report.UserID, &report.Type, &report.Subtype,
			&report.Longitude, &report.Latitude, &report.Description, &report.Severity,
			&report.VerifiedCount, &report.Active, &report.Resolved, &report.CreatedAt,
			&report.UpdatedAt, &report.ExpiresAt, &report.ImageURL, &report.ReportSource,
			&report.ReportStatus, &report.CommentsCount, &report.UpvotesCount,
			&report.DownvotesCount,
		); err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}
