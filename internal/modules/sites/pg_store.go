// README: Gazetteer backed by the Postgres cultural_sites table.
package sites

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"nusavarta/internal/types"
)

// DB is the subset of pgxpool.Pool the store needs.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type PGStore struct {
	db DB
}

func NewPGStore(db DB) *PGStore {
	return &PGStore{db: db}
}

const listSitesSQL = `SELECT id, name, aliases, category, description, location, latitude, longitude, image_url
FROM cultural_sites
ORDER BY id`

func (s *PGStore) List(ctx context.Context) ([]Site, error) {
	rows, err := s.db.Query(ctx, listSitesSQL)
	if err != nil {
		return nil, fmt.Errorf("query cultural_sites: %w", err)
	}
	defer rows.Close()

	var out []Site
	for rows.Next() {
		var (
			site     Site
			id       string
			category string
		)
		if err := rows.Scan(
			&id,
			&site.Name,
			&site.Aliases,
			&category,
			&site.Description,
			&site.Location,
			&site.Coordinates.Lat,
			&site.Coordinates.Lng,
			&site.ImageURL,
		); err != nil {
			return nil, fmt.Errorf("scan cultural_sites: %w", err)
		}
		site.ID = types.ID(id)
		site.Category = ParseCategory(category)
		out = append(out, site)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cultural_sites: %w", err)
	}
	return out, nil
}

const upsertSiteSQL = `INSERT INTO cultural_sites (id, name, aliases, category, description, location, latitude, longitude, image_url)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (id) DO UPDATE SET
	name = EXCLUDED.name,
	aliases = EXCLUDED.aliases,
	category = EXCLUDED.category,
	description = EXCLUDED.description,
	location = EXCLUDED.location,
	latitude = EXCLUDED.latitude,
	longitude = EXCLUDED.longitude,
	image_url = EXCLUDED.image_url,
	updated_at = now()`

// Upsert inserts or replaces each site.
func (s *PGStore) Upsert(ctx context.Context, list []Site) error {
	for _, site := range list {
		aliases := site.Aliases
		if aliases == nil {
			aliases = []string{}
		}
		if _, err := s.db.Exec(ctx, upsertSiteSQL,
			string(site.ID),
			site.Name,
			aliases,
			string(site.Category),
			site.Description,
			site.Location,
			site.Coordinates.Lat,
			site.Coordinates.Lng,
			site.ImageURL,
		); err != nil {
			return fmt.Errorf("upsert site %s: %w", site.ID, err)
		}
	}
	return nil
}
