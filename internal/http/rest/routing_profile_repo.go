package rest

import (
	"context"
	"fmt"

	"github.com/bwise1/waze_kibris/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

func (api *API) CreateRoutingProfileRepo(ctx context.Context, p model.RoutingProfile) error {
	stmt := `
        INSERT INTO routing_profiles (user_id, name, profile_xml)
        VALUES ($1, $2, $3)
    `
	_, err := api.Deps.DB.Pool().Exec(ctx, stmt, p.UserID, p.Name, p.ProfileXML)
	if err != nil {
		return fmt.Errorf("creating routing profile: %w", err)
	}
	return nil
}

func (api *API) GetRoutingProfileRepo(ctx context.Context, userID uuid.UUID, name string) (model.RoutingProfile, error) {
	var p model.RoutingProfile
	stmt := `
        SELECT id, user_id, name, profile_xml, created_at
        FROM routing_profiles
        WHERE user_id = $1 AND name = $2
    `
	err := api.Deps.DB.Pool().QueryRow(ctx, stmt, userID, name).Scan(
		&p.ID,
		&p.UserID,
		&p.Name,
		&p.ProfileXML,
		&p.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return model.RoutingProfile{}, nil
		}
		return model.RoutingProfile{}, fmt.Errorf("getting routing profile: %w", err)
	}
	return p, nil
}

func (api *API) ListRoutingProfilesRepo(ctx context.Context, userID uuid.UUID) ([]model.RoutingProfileResponse, error) {
	stmt := `
        SELECT id, name
        FROM routing_profiles
        WHERE user_id = $1
        ORDER BY name
    `
	rows, err := api.Deps.DB.Pool().Query(ctx, stmt, userID)
	if err != nil {
		return nil, fmt.Errorf("listing routing profiles: %w", err)
	}
	defer rows.Close()

	var profiles []model.RoutingProfileResponse
	for rows.Next() {
		var p model.RoutingProfileResponse
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, fmt.Errorf("scanning routing profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

func (api *API) DeleteRoutingProfileRepo(ctx context.Context, userID uuid.UUID, name string) error {
	stmt := `DELETE FROM routing_profiles WHERE user_id = $1 AND name = $2`

	result, err := api.Deps.DB.Pool().Exec(ctx, stmt, userID, name)
	if err != nil {
		return fmt.Errorf("deleting routing profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("routing profile %q not found", name)
	}
	return nil
}
