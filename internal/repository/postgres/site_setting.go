package postgres

import (
	"context"

	"genset-rental-backend/internal/domain"
	"genset-rental-backend/internal/repository"
)

type siteSettingRepository struct {
	db DBTX
}

func NewSiteSettingRepository(db DBTX) repository.SiteSettingRepository {
	return &siteSettingRepository{db: db}
}

const settingColumns = `id, setting_key, setting_value, setting_type, description, updated_at`

func scanSetting(row interface{ Scan(...any) error }, s *domain.SiteSetting) error {
	return row.Scan(&s.ID, &s.Key, &s.Value, &s.Type, &s.Description, &s.UpdatedAt)
}

func (r *siteSettingRepository) List(ctx context.Context) ([]domain.SiteSetting, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+settingColumns+` FROM site_settings ORDER BY setting_key`)
	if err != nil {
		return nil, mapError("list settings", "setting", nil, err)
	}
	defer rows.Close()

	settings := []domain.SiteSetting{}
	for rows.Next() {
		var s domain.SiteSetting
		if err := scanSetting(rows, &s); err != nil {
			return nil, mapError("scan setting", "setting", nil, err)
		}
		settings = append(settings, s)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("list settings", "setting", nil, err)
	}
	return settings, nil
}

func (r *siteSettingRepository) Get(ctx context.Context, key string) (*domain.SiteSetting, error) {
	s := &domain.SiteSetting{}
	if err := scanSetting(r.db.QueryRowContext(ctx, `SELECT `+settingColumns+` FROM site_settings WHERE setting_key = $1`, key), s); err != nil {
		return nil, mapError("get setting", "setting", key, err)
	}
	return s, nil
}

func (r *siteSettingRepository) Create(ctx context.Context, s *domain.SiteSetting) error {
	query := `INSERT INTO site_settings (setting_key, setting_value, setting_type, description)
	          VALUES ($1, $2, $3, $4) RETURNING id, updated_at`
	err := r.db.QueryRowContext(ctx, query, s.Key, s.Value, s.Type, s.Description).Scan(&s.ID, &s.UpdatedAt)
	return mapError("create setting", "setting", s.Key, err)
}

func (r *siteSettingRepository) UpdateValue(ctx context.Context, key, value string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE site_settings SET setting_value = $1, updated_at = NOW() WHERE setting_key = $2`, value, key)
	if err != nil {
		return mapError("update setting", "setting", key, err)
	}
	return requireAffected(res, "setting", key)
}

func (r *siteSettingRepository) Upsert(ctx context.Context, s *domain.SiteSetting) error {
	query := `INSERT INTO site_settings (setting_key, setting_value, setting_type, description)
	          VALUES ($1, $2, $3, $4)
	          ON CONFLICT (setting_key) DO UPDATE SET setting_value = EXCLUDED.setting_value, updated_at = NOW()
	          RETURNING id, setting_type, description, updated_at`
	err := r.db.QueryRowContext(ctx, query, s.Key, s.Value, s.Type, s.Description).Scan(&s.ID, &s.Type, &s.Description, &s.UpdatedAt)
	return mapError("upsert setting", "setting", s.Key, err)
}
