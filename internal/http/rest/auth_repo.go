package rest

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/bwise1/waze_kibris/internal/model"
	"github.com/jackc/pgx/v5"
)

// StoreVerificationToken(ctx context.Context, userID uuid.UUID, token string) error
// StoreRefreshToken(ctx context.Context, userID uuid.UUID, token string) error
// RevokeRefreshToken(ctx context.Context, token string) error
// GetUserByRefreshToken(ctx context.Context, token string) (*User, error)

func (api *API) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	stmt := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`

	// err := api.Deps.DB.QueryRow(ctx, stmt, email).Scan(&exists)
	err := api.DB.QueryRow(ctx, stmt, email).Scan(&exists)
	if err != nil {
		log.Println("error checking email", err)
		return false, err
	}
	return exists, nil
}

func (api *API) CreateNewUserRepo(ctx context.Context, req model.User) error {
	stmt := `
        INSERT INTO users (
            id,
            email,
            auth_provider
        ) VALUES ($1, $2, $3)
    `
	_, err := api.Deps.DB.Pool().Exec(ctx, stmt, req.ID, req.Email, req.AuthProvider)
	if err != nil {
		log.Println("error creating new user", err)
		return err
	}
	return nil
}

func (api *API) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	var user model.User
	stmt := `-- name: get-user-by-email
		SELECT id, email FROM users WHERE email = $1`

	err := api.DB.QueryRow(ctx, stmt, email).Scan(
		&user.ID,
		&user.Email,
	)
	if err != nil {
		log.Println("error getting user by email", err)
		return model.User{}, err
	}
	return user, nil
}

func (api *API) GetUserByID(ctx context.Context, userID string) (model.User, error) {
	var user model.User
	stmt := `SELECT id, email, firstname, lastname, auth_provider, is_verified, preferred_language, created_at, updated_at FROM users WHERE id = $1`

	err := api.Deps.DB.Pool().QueryRow(ctx, stmt, userID).Scan(
		&user.ID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.AuthProvider,
		&user.IsVerified,
		&user.PreferredLanguage,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		log.Println("error getting user by ID", err)
		return model.User{}, err
	}
	return user, nil
}

func (api *API) StoreVerificationCode(ctx context.Context, userID string, email string, code string, tokenType string, expiresAt time.Time) error {
	stmt := `
        INSERT INTO email_verifications (user_id, email, verification_code, type, expires_at)
        VALUES ($1, $2, $3, $4, $5)
    `
	_, err := api.DB.Exec(ctx, stmt, userID, email, code, tokenType, expiresAt)
	if err != nil {
		log.Println("error storing verification code", err)
	}
	return err
}

// StoreRefreshToken stores the refresh token in the database
func (api *API) StoreRefreshToken(ctx context.Context, userID, token string, expiresAt time.Time) error {
	query := `
        INSERT INTO auth_tokens (user_id, token_type, token_value, expires_at, created_at)
        VALUES ($1, 'refresh', $2, $3, NOW())
    `
	_, err := api.DB.Exec(ctx, query, userID, token, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return nil
}

func (api *API) ValidateRefreshToken(ctx context.Context, token string) error {
	query := `
        SELECT 1 FROM auth_tokens
        WHERE token_value = $1 AND token_type = 'refresh' AND is_revoked = FALSE AND expires_at > NOW()
    `
	var exists int
	err := api.DB.QueryRow(ctx, query, token).Scan(&exists)
	if err != nil {
		if err == pgx.ErrNoRows {
			return fmt.Errorf("refresh token is invalid or expired")
		}
		return err
	}
	return nil
}

func (api *API) RevokeRefreshToken(ctx context.Context, token string) error {
	query := `
        UPDATE auth_tokens
        SET is_revoked = TRUE
        WHERE token_value = $1
    `
	_, err := api.DB.Exec(ctx, query, token)
	if err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

func (api *API) VerifyCodeRepo(ctx context.Context, code string, tokenType string, email string) (string, error) {
	var userID string
	stmt := `SELECT user_id FROM email_verifications WHERE verification_code = $1 AND type = $2 AND email= $3 AND expires_at > NOW()`

	err := api.Deps.DB.Pool().QueryRow(ctx, stmt, code, tokenType, email).Scan(&userID)
	if err != nil {
		log.Println("error verifying code", err)
		return "", err
	}
	return userID, nil
}

func (api *API) UpdateEmailVerifiedStatus(ctx context.Context, userID string) error {
	stmt := `UPDATE users SET is_verified = TRUE WHERE id = $1`

	_, err := api.Deps.DB.Pool().Exec(ctx, stmt, userID)
	if err != nil {
		log.Println("error updating email verification status", err)
		return err
	}
	return nil
}

func (api *API) verifyTokenRepo() (*string, error) {
	return nil, nil
}

// GetUserAuthProviderByProviderID looks up the linkage row for a federated
// login, e.g. ("google", "109847...") -> which user it belongs to.
func (api *API) GetUserAuthProviderByProviderID(ctx context.Context, provider, providerID string) (model.UserAuthProvider, error) {
	var record model.UserAuthProvider
	stmt := `SELECT id, user_id, auth_provider, auth_provider_id FROM user_auth_providers WHERE auth_provider = $1 AND auth_provider_id = $2`

	err := api.DB.QueryRow(ctx, stmt, provider, providerID).Scan(
		&record.ID, &record.UserID, &record.AuthProvider, &record.AuthProviderID,
	)
	if err != nil {
		return model.UserAuthProvider{}, err
	}
	return record, nil
}

// InsertUserAuthProvider links a federated identity to a local user.
func (api *API) InsertUserAuthProvider(ctx context.Context, record model.UserAuthProvider) (model.UserAuthProvider, error) {
	stmt := `
        INSERT INTO user_auth_providers (user_id, auth_provider, auth_provider_id)
        VALUES ($1, $2, $3)
        RETURNING id
    `
	err := api.DB.QueryRow(ctx, stmt, record.UserID, record.AuthProvider, record.AuthProviderID).Scan(&record.ID)
	if err != nil {
		log.Println("error linking auth provider", err)
		return model.UserAuthProvider{}, err
	}
	return record, nil
}

// CreateGoogleUserRepo creates a new user account for a first-time Google
// sign-in, returning the stored row (with its generated ID) for the caller
// to issue tokens against.
func (api *API) CreateGoogleUserRepo(ctx context.Context, user model.User) (model.User, error) {
	stmt := `
        INSERT INTO users (id, email, firstname, lastname, auth_provider, is_verified)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, email, firstname, lastname, auth_provider, is_verified, preferred_language, created_at, updated_at
    `
	var created model.User
	err := api.DB.QueryRow(ctx, stmt, user.ID, user.Email, user.FirstName, user.LastName, user.AuthProvider, user.IsVerified).Scan(
		&created.ID, &created.Email, &created.FirstName, &created.LastName,
		&created.AuthProvider, &created.IsVerified, &created.PreferredLanguage,
		&created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		log.Println("error creating google user", err)
		return model.User{}, err
	}
	return created, nil
}
