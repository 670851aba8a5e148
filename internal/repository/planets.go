package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/starwars-blog/internal/model"
	"github.com/deppfellow/starwars-blog/internal/server"
	"github.com/deppfellow/starwars-blog/internal/sqlerr"
	"github.com/jackc/pgx/v5"
)

const planetColumns = `id, name, diameter, rotation_period, orbital_period, gravity,
	population, climate, terrain, surface_water, description, image_url,
	created_at, updated_at`

// PlanetsRepository performs database operations on planets.
type PlanetsRepository struct {
	s *server.Server
}

// NewPlanetsRepository constructs a PlanetsRepository using the server's pool.
func NewPlanetsRepository(s *server.Server) *PlanetsRepository {
	return &PlanetsRepository{s: s}
}

// PlanetParams carries the planet fields for create and update. Only the
// name is required; every descriptive field is optional text.
type PlanetParams struct {
	Name           string
	Diameter       *string
	RotationPeriod *string
	OrbitalPeriod  *string
	Gravity        *string
	Population     *string
	Climate        *string
	Terrain        *string
	SurfaceWater   *string
	Description    *string
	ImageURL       *string
}

func scanPlanet(row pgx.Row) (*model.Planet, error) {
	var p model.Planet
	err := row.Scan(
		&p.ID, &p.Name, &p.Diameter, &p.RotationPeriod, &p.OrbitalPeriod,
		&p.Gravity, &p.Population, &p.Climate, &p.Terrain, &p.SurfaceWater,
		&p.Description, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new planet.
func (r *PlanetsRepository) Create(ctx context.Context, params PlanetParams) (*model.Planet, error) {
	query := `
		INSERT INTO planets (name, diameter, rotation_period, orbital_period, gravity,
			population, climate, terrain, surface_water, description, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + planetColumns

	planet, err := scanPlanet(r.s.DB.Pool.QueryRow(ctx, query,
		params.Name, params.Diameter, params.RotationPeriod, params.OrbitalPeriod,
		params.Gravity, params.Population, params.Climate, params.Terrain,
		params.SurfaceWater, params.Description, params.ImageURL,
	))
	if err != nil {
		return nil, sqlerr.HandleError(fmt.Errorf("table:planets: %w", err))
	}
	return planet, nil
}

// GetByID fetches a planet by primary key.
func (r *PlanetsRepository) GetByID(ctx context.Context, id int64) (*model.Planet, error) {
	query := `SELECT ` + planetColumns + ` FROM planets WHERE id = $1`

	planet, err := scanPlanet(r.s.DB.Pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, sqlerr.HandleError(fmt.Errorf("table:planets: %w", err))
	}
	return planet, nil
}

// List returns all planets ordered by id.
func (r *PlanetsRepository) List(ctx context.Context) ([]*model.Planet, error) {
	query := `SELECT ` + planetColumns + ` FROM planets ORDER BY id`

	rows, err := r.s.DB.Pool.Query(ctx, query)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	defer rows.Close()

	var planets []*model.Planet
	for rows.Next() {
		planet, err := scanPlanet(rows)
		if err != nil {
			return nil, sqlerr.HandleError(err)
		}
		planets = append(planets, planet)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return planets, nil
}

// Update replaces the planet fields and refreshes updated_at.
func (r *PlanetsRepository) Update(ctx context.Context, id int64, params PlanetParams) (*model.Planet, error) {
	query := `
		UPDATE planets
		SET name = $2, diameter = $3, rotation_period = $4, orbital_period = $5,
		    gravity = $6, population = $7, climate = $8, terrain = $9,
		    surface_water = $10, description = $11, image_url = $12,
		    updated_at = now()
		WHERE id = $1
		RETURNING ` + planetColumns

	planet, err := scanPlanet(r.s.DB.Pool.QueryRow(ctx, query,
		id, params.Name, params.Diameter, params.RotationPeriod, params.OrbitalPeriod,
		params.Gravity, params.Population, params.Climate, params.Terrain,
		params.SurfaceWater, params.Description, params.ImageURL,
	))
	if err != nil {
		return nil, sqlerr.HandleError(fmt.Errorf("table:planets: %w", err))
	}
	return planet, nil
}

// Delete removes a planet. Favorite rows pointing at it cascade away;
// deleting a planet that still has resident characters is rejected by the
// homeworld foreign key.
func (r *PlanetsRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.s.DB.Pool.Exec(ctx, `DELETE FROM planets WHERE id = $1`, id)
	if err != nil {
		return sqlerr.HandleError(err)
	}
	if tag.RowsAffected() == 0 {
		return sqlerr.HandleError(fmt.Errorf("table:planets: %w", pgx.ErrNoRows))
	}
	return nil
}
