// Package store persists feasible builds in SQLite.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"build-optimizer/internal/build"
	"build-optimizer/internal/store/migrations"
)

// Store is a build.Sink backed by a SQLite file.
type Store struct {
	sqlDB *sql.DB
}

// Open opens the database at path and applies embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(ctx, sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

const buildColumns = `url, code, weapon,
	helmet, chest_plate, leggings, boots, ring_1, ring_2, bracelet, necklace,
	earth_assign, thunder_assign, water_assign, fire_assign, air_assign,
	earth_original, thunder_original, water_original, fire_original, air_original,
	earth_def, thunder_def, water_def, fire_def, air_def,
	max_hpr_raw, max_hpr_pct, max_mr, max_ls, max_ms, max_spd, max_sd_raw, max_sd_pct,
	max_hpr, max_hp, max_ehp,
	max_neutral_dam_pct, max_earth_dam_pct, max_thunder_dam_pct, max_water_dam_pct, max_fire_dam_pct, max_air_dam_pct`

// SaveBuild inserts one feasible build.
func (s *Store) SaveBuild(ctx context.Context, r build.Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	st := r.Status
	sp := st.SkillPoint
	args := []any{r.URL, r.Code, r.Weapon,
		r.Items[build.SlotHelmet], r.Items[build.SlotChestplate], r.Items[build.SlotLeggings], r.Items[build.SlotBoots],
		r.Items[build.SlotRing0], r.Items[build.SlotRing1], r.Items[build.SlotBracelet], r.Items[build.SlotNecklace],
	}
	for _, v := range sp.Assigned {
		args = append(args, v)
	}
	for _, v := range sp.Original {
		args = append(args, v)
	}
	for _, v := range st.MaxDef {
		args = append(args, v)
	}
	for _, v := range st.MaxStat {
		args = append(args, v)
	}
	args = append(args, st.MaxHPR, st.MaxHP, st.MaxEHP)
	for _, v := range st.MaxDamPct {
		args = append(args, v)
	}
	args = append(args, sp.Assigned.Sum(), time.Now().UTC().UnixMilli())

	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO builds (`+buildColumns+`, assign_total, created_at)
		 VALUES (`+placeholders(len(args))+`)`,
		args...,
	)
	if err != nil {
		return fmt.Errorf("save build: %w", err)
	}
	return nil
}

// CountBuilds returns the number of stored builds.
func (s *Store) CountBuilds(ctx context.Context) (int, error) {
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}
	var n int
	if err := s.sqlDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM builds`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count builds: %w", err)
	}
	return n, nil
}

// ListBuilds returns up to limit builds, fewest assigned points first and
// then highest effective health.
func (s *Store) ListBuilds(ctx context.Context, limit int) ([]build.Result, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT `+buildColumns+`
		   FROM builds
		  ORDER BY assign_total ASC, max_ehp DESC, id ASC
		  LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list builds: %w", err)
	}
	defer rows.Close()

	var out []build.Result
	for rows.Next() {
		var r build.Result
		st := &r.Status
		dest := []any{&r.URL, &r.Code, &r.Weapon,
			&r.Items[build.SlotHelmet], &r.Items[build.SlotChestplate], &r.Items[build.SlotLeggings], &r.Items[build.SlotBoots],
			&r.Items[build.SlotRing0], &r.Items[build.SlotRing1], &r.Items[build.SlotBracelet], &r.Items[build.SlotNecklace],
		}
		for i := range st.SkillPoint.Assigned {
			dest = append(dest, &st.SkillPoint.Assigned[i])
		}
		for i := range st.SkillPoint.Original {
			dest = append(dest, &st.SkillPoint.Original[i])
		}
		for i := range st.MaxDef {
			dest = append(dest, &st.MaxDef[i])
		}
		for i := range st.MaxStat {
			dest = append(dest, &st.MaxStat[i])
		}
		dest = append(dest, &st.MaxHPR, &st.MaxHP, &st.MaxEHP)
		for i := range st.MaxDamPct {
			dest = append(dest, &st.MaxDamPct[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan build: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list builds: %w", err)
	}
	return out, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
