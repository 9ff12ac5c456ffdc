package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) DB() *sql.DB {
	return s.db
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// IsUniqueViolation reports whether err is a postgres unique-constraint
// violation (duplicate slug, duplicate admin email).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// ── Admin users ──

func (s *PostgresStore) GetAdminByEmail(ctx context.Context, email string) (AdminUser, error) {
	var user AdminUser
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, display_name, password_hash, created_at
		FROM admin_users WHERE LOWER(email)=LOWER($1)
	`, email).Scan(&user.ID, &user.Email, &user.DisplayName, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		return AdminUser{}, err
	}
	return user, nil
}

func (s *PostgresStore) GetAdminByID(ctx context.Context, adminID string) (AdminUser, error) {
	var user AdminUser
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, display_name, password_hash, created_at
		FROM admin_users WHERE id=$1
	`, adminID).Scan(&user.ID, &user.Email, &user.DisplayName, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		return AdminUser{}, err
	}
	return user, nil
}

func (s *PostgresStore) CountAdminUsers(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM admin_users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count admin users: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) InsertAdminUser(ctx context.Context, user AdminUser) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO admin_users (id, email, display_name, password_hash)
		VALUES ($1, $2, $3, $4)
	`, user.ID, user.Email, user.DisplayName, user.PasswordHash)
	if err != nil {
		return fmt.Errorf("insert admin user: %w", err)
	}
	return nil
}

// ── Refresh sessions (postgres fallback when Redis is absent) ──

func (s *PostgresStore) SaveRefreshSession(ctx context.Context, tokenHash, adminID string, expiresAt time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO refresh_sessions (token_hash, admin_id, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (token_hash) DO UPDATE SET admin_id=EXCLUDED.admin_id, expires_at=EXCLUDED.expires_at, revoked_at=NULL
	`, tokenHash, adminID, expiresAt)
	if err != nil {
		return fmt.Errorf("save refresh session: %w", err)
	}
	return nil
}

func (s *PostgresStore) LookupRefreshSession(ctx context.Context, tokenHash string) (AdminUser, error) {
	const query = `
		SELECT a.id, a.email, a.display_name
		FROM refresh_sessions rs
		JOIN admin_users a ON a.id = rs.admin_id
		WHERE rs.token_hash = $1
			AND rs.revoked_at IS NULL
			AND rs.expires_at > NOW()
	`
	var user AdminUser
	err := s.db.QueryRowContext(ctx, query, tokenHash).Scan(&user.ID, &user.Email, &user.DisplayName)
	if err != nil {
		return AdminUser{}, err
	}
	return user, nil
}

func (s *PostgresStore) RevokeRefreshSession(ctx context.Context, tokenHash string) error {
	_, err := s.db.ExecContext(ctx, `UPDATE refresh_sessions SET revoked_at=NOW() WHERE token_hash=$1`, tokenHash)
	if err != nil {
		return fmt.Errorf("revoke refresh session: %w", err)
	}
	return nil
}

func (s *PostgresStore) RevokeAccessToken(ctx context.Context, jti string, expiresAt time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO revoked_tokens (jti, expires_at)
		VALUES ($1, $2)
		ON CONFLICT (jti) DO NOTHING
	`, jti, expiresAt)
	if err != nil {
		return fmt.Errorf("revoke access token: %w", err)
	}
	return nil
}

func (s *PostgresStore) IsAccessTokenRevoked(ctx context.Context, jti string) (bool, error) {
	var revoked bool
	err := s.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM revoked_tokens WHERE jti=$1 AND expires_at > NOW())`, jti).Scan(&revoked)
	if err != nil {
		return false, fmt.Errorf("check revoked token: %w", err)
	}
	return revoked, nil
}

// ── Sectors ──

const sectorColumns = `id, title, slug, description, content, featured_image,
	meta_title, meta_description, sort_order, is_active, is_featured, created_at, updated_at`

func scanSector(row interface{ Scan(...any) error }) (Sector, error) {
	var sector Sector
	err := row.Scan(
		&sector.ID, &sector.Title, &sector.Slug, &sector.Description, &sector.Content,
		&sector.FeaturedImage, &sector.MetaTitle, &sector.MetaDescription,
		&sector.SortOrder, &sector.IsActive, &sector.IsFeatured,
		&sector.CreatedAt, &sector.UpdatedAt,
	)
	return sector, err
}

// ListSectors returns sectors ordered by rank. onlyActive restricts to the
// publicly visible set; onlyFeatured additionally restricts to the homepage
// subset (featured implies active at this boundary).
func (s *PostgresStore) ListSectors(ctx context.Context, onlyActive, onlyFeatured bool) ([]Sector, error) {
	query := `SELECT ` + sectorColumns + ` FROM sectors`
	if onlyFeatured {
		query += ` WHERE is_active AND is_featured`
	} else if onlyActive {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY sort_order ASC, created_at ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list sectors: %w", err)
	}
	defer rows.Close()

	var sectors []Sector
	for rows.Next() {
		sector, err := scanSector(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sector: %w", err)
		}
		sectors = append(sectors, sector)
	}
	return sectors, rows.Err()
}

func (s *PostgresStore) GetSector(ctx context.Context, sectorID string) (Sector, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+sectorColumns+` FROM sectors WHERE id=$1`, sectorID)
	return scanSector(row)
}

func (s *PostgresStore) GetSectorBySlug(ctx context.Context, slug string) (Sector, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+sectorColumns+` FROM sectors WHERE slug=$1`, slug)
	return scanSector(row)
}

func (s *PostgresStore) InsertSector(ctx context.Context, sector Sector) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sectors (id, title, slug, description, content, featured_image,
			meta_title, meta_description, sort_order, is_active, is_featured)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, sector.ID, sector.Title, sector.Slug, sector.Description, sector.Content,
		sector.FeaturedImage, sector.MetaTitle, sector.MetaDescription,
		sector.SortOrder, sector.IsActive, sector.IsFeatured)
	if err != nil {
		return fmt.Errorf("insert sector: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpdateSector(ctx context.Context, sector Sector) (bool, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE sectors SET title=$2, slug=$3, description=$4, content=$5, featured_image=$6,
			meta_title=$7, meta_description=$8, is_active=$9, is_featured=$10, updated_at=NOW()
		WHERE id=$1
	`, sector.ID, sector.Title, sector.Slug, sector.Description, sector.Content,
		sector.FeaturedImage, sector.MetaTitle, sector.MetaDescription,
		sector.IsActive, sector.IsFeatured)
	if err != nil {
		return false, fmt.Errorf("update sector: %w", err)
	}
	affected, _ := result.RowsAffected()
	return affected > 0, nil
}

// DeleteSector removes the sector without renumbering survivors; the gap
// persists until the next explicit reorder.
func (s *PostgresStore) DeleteSector(ctx context.Context, sectorID string) (bool, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM sectors WHERE id=$1`, sectorID)
	if err != nil {
		return false, fmt.Errorf("delete sector: %w", err)
	}
	affected, _ := result.RowsAffected()
	return affected > 0, nil
}

func (s *PostgresStore) MaxSectorSortOrder(ctx context.Context) (int, error) {
	var max int
	err := s.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(sort_order), 0) FROM sectors`).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("max sector sort order: %w", err)
	}
	return max, nil
}

// UpdateSectorSortOrders persists a reorder in a single transaction so a
// mid-batch failure cannot leave the collection with gaps or duplicates.
func (s *PostgresStore) UpdateSectorSortOrders(ctx context.Context, updates []SortOrderUpdate) error {
	return s.updateSortOrders(ctx, "sectors", updates)
}

// ── Case studies ──

const caseStudyColumns = `id, title, slug, description, content, client_name, industry,
	technologies, challenge, solution, results, category, featured_image, logo, images,
	meta_title, meta_description, sort_order, is_published, created_at, updated_at`

func scanCaseStudy(row interface{ Scan(...any) error }) (CaseStudy, error) {
	var study CaseStudy
	err := row.Scan(
		&study.ID, &study.Title, &study.Slug, &study.Description, &study.Content,
		&study.ClientName, &study.Industry, &study.Technologies, &study.Challenge,
		&study.Solution, &study.Results, &study.Category, &study.FeaturedImage,
		&study.Logo, &study.Images, &study.MetaTitle, &study.MetaDescription,
		&study.SortOrder, &study.IsPublished, &study.CreatedAt, &study.UpdatedAt,
	)
	return study, err
}

func (s *PostgresStore) ListCaseStudies(ctx context.Context, onlyPublished bool) ([]CaseStudy, error) {
	query := `SELECT ` + caseStudyColumns + ` FROM case_studies`
	if onlyPublished {
		query += ` WHERE is_published`
	}
	query += ` ORDER BY sort_order ASC, created_at ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list case studies: %w", err)
	}
	defer rows.Close()

	var studies []CaseStudy
	for rows.Next() {
		study, err := scanCaseStudy(rows)
		if err != nil {
			return nil, fmt.Errorf("scan case study: %w", err)
		}
		studies = append(studies, study)
	}
	return studies, rows.Err()
}

func (s *PostgresStore) GetCaseStudy(ctx context.Context, studyID string) (CaseStudy, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+caseStudyColumns+` FROM case_studies WHERE id=$1`, studyID)
	return scanCaseStudy(row)
}

func (s *PostgresStore) GetCaseStudyBySlug(ctx context.Context, slug string) (CaseStudy, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+caseStudyColumns+` FROM case_studies WHERE slug=$1`, slug)
	return scanCaseStudy(row)
}

func (s *PostgresStore) InsertCaseStudy(ctx context.Context, study CaseStudy) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO case_studies (id, title, slug, description, content, client_name,
			industry, technologies, challenge, solution, results, category,
			featured_image, logo, images, meta_title, meta_description, sort_order, is_published)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`, study.ID, study.Title, study.Slug, study.Description, study.Content,
		study.ClientName, study.Industry, study.Technologies, study.Challenge,
		study.Solution, study.Results, study.Category, study.FeaturedImage,
		study.Logo, study.Images, study.MetaTitle, study.MetaDescription,
		study.SortOrder, study.IsPublished)
	if err != nil {
		return fmt.Errorf("insert case study: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpdateCaseStudy(ctx context.Context, study CaseStudy) (bool, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE case_studies SET title=$2, slug=$3, description=$4, content=$5,
			client_name=$6, industry=$7, technologies=$8, challenge=$9, solution=$10,
			results=$11, category=$12, featured_image=$13, logo=$14, images=$15,
			meta_title=$16, meta_description=$17, is_published=$18, updated_at=NOW()
		WHERE id=$1
	`, study.ID, study.Title, study.Slug, study.Description, study.Content,
		study.ClientName, study.Industry, study.Technologies, study.Challenge,
		study.Solution, study.Results, study.Category, study.FeaturedImage,
		study.Logo, study.Images, study.MetaTitle, study.MetaDescription, study.IsPublished)
	if err != nil {
		return false, fmt.Errorf("update case study: %w", err)
	}
	affected, _ := result.RowsAffected()
	return affected > 0, nil
}

func (s *PostgresStore) DeleteCaseStudy(ctx context.Context, studyID string) (bool, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM case_studies WHERE id=$1`, studyID)
	if err != nil {
		return false, fmt.Errorf("delete case study: %w", err)
	}
	affected, _ := result.RowsAffected()
	return affected > 0, nil
}

func (s *PostgresStore) MaxCaseStudySortOrder(ctx context.Context) (int, error) {
	var max int
	err := s.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(sort_order), 0) FROM case_studies`).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("max case study sort order: %w", err)
	}
	return max, nil
}

func (s *PostgresStore) UpdateCaseStudySortOrders(ctx context.Context, updates []SortOrderUpdate) error {
	return s.updateSortOrders(ctx, "case_studies", updates)
}

func (s *PostgresStore) updateSortOrders(ctx context.Context, table string, updates []SortOrderUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reorder tx: %w", err)
	}
	// table is always a compile-time constant here, never user input
	query := `UPDATE ` + table + ` SET sort_order=$2, updated_at=NOW() WHERE id=$1`
	for _, update := range updates {
		if _, err := tx.ExecContext(ctx, query, update.ID, update.SortOrder); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("update sort order %s: %w", update.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit reorder tx: %w", err)
	}
	return nil
}

// ── Global settings ──

// GetSettings returns the singleton settings row, creating an empty one on
// first read.
func (s *PostgresStore) GetSettings(ctx context.Context) (GlobalSettings, error) {
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO global_settings (id) VALUES ('global') ON CONFLICT (id) DO NOTHING
	`); err != nil {
		return GlobalSettings{}, fmt.Errorf("ensure settings row: %w", err)
	}

	var settings GlobalSettings
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, phone, address, facebook, linkedin, twitter, instagram, youtube, updated_at
		FROM global_settings WHERE id='global'
	`).Scan(&settings.ID, &settings.Email, &settings.Phone, &settings.Address,
		&settings.Facebook, &settings.Linkedin, &settings.Twitter,
		&settings.Instagram, &settings.Youtube, &settings.UpdatedAt)
	if err != nil {
		return GlobalSettings{}, fmt.Errorf("read settings: %w", err)
	}
	return settings, nil
}

func (s *PostgresStore) UpdateSettings(ctx context.Context, settings GlobalSettings) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO global_settings (id, email, phone, address, facebook, linkedin, twitter, instagram, youtube)
		VALUES ('global', $1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			email=EXCLUDED.email, phone=EXCLUDED.phone, address=EXCLUDED.address,
			facebook=EXCLUDED.facebook, linkedin=EXCLUDED.linkedin, twitter=EXCLUDED.twitter,
			instagram=EXCLUDED.instagram, youtube=EXCLUDED.youtube, updated_at=NOW()
	`, settings.Email, settings.Phone, settings.Address, settings.Facebook,
		settings.Linkedin, settings.Twitter, settings.Instagram, settings.Youtube)
	if err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	return nil
}

// ── Contact submissions ──

func (s *PostgresStore) InsertContactSubmission(ctx context.Context, submission ContactSubmission) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO contact_submissions (id, first_name, last_name, company, phone, email, message)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, submission.ID, submission.FirstName, submission.LastName, submission.Company,
		submission.Phone, submission.Email, submission.Message)
	if err != nil {
		return fmt.Errorf("insert contact submission: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListContactSubmissions(ctx context.Context, limit int) ([]ContactSubmission, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, first_name, last_name, company, phone, email, message, created_at
		FROM contact_submissions ORDER BY created_at DESC LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list contact submissions: %w", err)
	}
	defer rows.Close()

	var submissions []ContactSubmission
	for rows.Next() {
		var submission ContactSubmission
		if err := rows.Scan(&submission.ID, &submission.FirstName, &submission.LastName,
			&submission.Company, &submission.Phone, &submission.Email,
			&submission.Message, &submission.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan contact submission: %w", err)
		}
		submissions = append(submissions, submission)
	}
	return submissions, rows.Err()
}
