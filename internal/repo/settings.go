package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"ytdeck/internal/domain/consts"
	"ytdeck/internal/models"

	"github.com/Masterminds/squirrel"
)

// SettingsStore holds a pointer to the sql.DB.
type SettingsStore struct {
	DB *sql.DB
}

// GetSettingsStore returns a settings store instance with injected database.
func GetSettingsStore(db *sql.DB) *SettingsStore {
	return &SettingsStore{
		DB: db,
	}
}

// GetSetting returns the value stored under key.
func (ss *SettingsStore) GetSetting(ctx context.Context, key string) (value string, found bool, err error) {
	query := squirrel.
		Select(consts.QSettingValue).
		From(consts.DBSettings).
		Where(squirrel.Eq{consts.QSettingKey: key}).
		RunWith(ss.DB)

	if err := query.QueryRowContext(ctx).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get setting %q: %w", key, err)
	}
	return value, true, nil
}

// SetSetting stores value under key, replacing any prior value.
func (ss *SettingsStore) SetSetting(ctx context.Context, key, value string) error {
	query := squirrel.
		Insert(consts.DBSettings).
		Columns(consts.QSettingKey, consts.QSettingValue).
		Values(key, value).
		Suffix(fmt.Sprintf("ON CONFLICT(%s) DO UPDATE SET %s = excluded.%s",
			consts.QSettingKey, consts.QSettingValue, consts.QSettingValue)).
		RunWith(ss.DB)

	if _, err := query.ExecContext(ctx); err != nil {
		return fmt.Errorf("failed to set setting %q: %w", key, err)
	}
	return nil
}

// AllSettings returns every stored setting ordered by key.
func (ss *SettingsStore) AllSettings(ctx context.Context) ([]models.Setting, error) {
	query := squirrel.
		Select(consts.QSettingKey, consts.QSettingValue).
		From(consts.DBSettings).
		OrderBy(consts.QSettingKey)

	sqlPlaceholder, args, err := query.PlaceholderFormat(squirrel.Question).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := ss.DB.QueryContext(ctx, sqlPlaceholder, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}
	defer rows.Close()

	out := []models.Setting{}
	for rows.Next() {
		var s models.Setting
		if err := rows.Scan(&s.Key, &s.Value); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
