package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/starwars-blog/internal/model"
	"github.com/deppfellow/starwars-blog/internal/server"
	"github.com/deppfellow/starwars-blog/internal/sqlerr"
	"github.com/jackc/pgx/v5"
)

// characterWithHomeworld selects a character joined to its optional
// homeworld, so a single query yields everything Serialize needs.
const characterWithHomeworld = `
	SELECT c.id, c.name, c.birth_year, c.eye_color, c.gender, c.hair_color,
	       c.height, c.mass, c.skin_color, c.homeworld_id, c.description,
	       c.image_url, c.created_at, c.updated_at,
	       p.id, p.name, p.diameter, p.rotation_period, p.orbital_period,
	       p.gravity, p.population, p.climate, p.terrain, p.surface_water,
	       p.description, p.image_url, p.created_at, p.updated_at
	FROM characters c
	LEFT JOIN planets p ON p.id = c.homeworld_id`

// CharactersRepository performs database operations on characters.
type CharactersRepository struct {
	s *server.Server
}

// NewCharactersRepository constructs a CharactersRepository using the
// server's pool.
func NewCharactersRepository(s *server.Server) *CharactersRepository {
	return &CharactersRepository{s: s}
}

// CharacterParams carries the character fields for create and update.
type CharacterParams struct {
	Name        string
	BirthYear   *string
	EyeColor    *string
	Gender      *string
	HairColor   *string
	Height      *string
	Mass        *string
	SkinColor   *string
	HomeworldID *int64
	Description *string
	ImageURL    *string
}

// scanCharacterRow scans a characterWithHomeworld row. The planet side of
// the join is entirely nullable; the homeworld is attached only when the
// joined planet id is present.
func scanCharacterRow(row pgx.Row) (*model.Character, error) {
	var c model.Character
	var pID *int64
	var pName *string
	var pDiameter, pRotation, pOrbital, pGravity, pPopulation, pClimate *string
	var pTerrain, pSurfaceWater, pDescription, pImageURL *string
	var pCreatedAt, pUpdatedAt *time.Time

	err := row.Scan(
		&c.ID, &c.Name, &c.BirthYear, &c.EyeColor, &c.Gender, &c.HairColor,
		&c.Height, &c.Mass, &c.SkinColor, &c.HomeworldID, &c.Description,
		&c.ImageURL, &c.CreatedAt, &c.UpdatedAt,
		&pID, &pName, &pDiameter, &pRotation, &pOrbital,
		&pGravity, &pPopulation, &pClimate, &pTerrain, &pSurfaceWater,
		&pDescription, &pImageURL, &pCreatedAt, &pUpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if pID != nil {
		c.Homeworld = &model.Planet{
			ID:             *pID,
			Name:           *pName,
			Diameter:       pDiameter,
			RotationPeriod: pRotation,
			OrbitalPeriod:  pOrbital,
			Gravity:        pGravity,
			Population:     pPopulation,
			Climate:        pClimate,
			Terrain:        pTerrain,
			SurfaceWater:   pSurfaceWater,
			Description:    pDescription,
			ImageURL:       pImageURL,
			CreatedAt:      *pCreatedAt,
			UpdatedAt:      pUpdatedAt,
		}
	}

	return &c, nil
}

// Create inserts a new character. A homeworld id pointing at a missing
// planet surfaces as a foreign-key application error.
func (r *CharactersRepository) Create(ctx context.Context, params CharacterParams) (*model.Character, error) {
	query := `
		INSERT INTO characters (name, birth_year, eye_color, gender, hair_color,
			height, mass, skin_color, homeworld_id, description, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`

	var id int64
	err := r.s.DB.Pool.QueryRow(ctx, query,
		params.Name, params.BirthYear, params.EyeColor, params.Gender,
		params.HairColor, params.Height, params.Mass, params.SkinColor,
		params.HomeworldID, params.Description, params.ImageURL,
	).Scan(&id)
	if err != nil {
		return nil, sqlerr.HandleError(fmt.Errorf("table:characters: %w", err))
	}

	return r.GetByID(ctx, id)
}

// GetByID fetches a character with its homeworld eagerly loaded.
func (r *CharactersRepository) GetByID(ctx context.Context, id int64) (*model.Character, error) {
	query := characterWithHomeworld + ` WHERE c.id = $1`

	character, err := scanCharacterRow(r.s.DB.Pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, sqlerr.HandleError(fmt.Errorf("table:characters: %w", err))
	}
	return character, nil
}

// List returns all characters, homeworlds included, ordered by id.
func (r *CharactersRepository) List(ctx context.Context) ([]*model.Character, error) {
	query := characterWithHomeworld + ` ORDER BY c.id`

	rows, err := r.s.DB.Pool.Query(ctx, query)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	defer rows.Close()

	var characters []*model.Character
	for rows.Next() {
		character, err := scanCharacterRow(rows)
		if err != nil {
			return nil, sqlerr.HandleError(err)
		}
		characters = append(characters, character)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return characters, nil
}

// ListByHomeworld returns a planet's resident characters, the explicit
// reverse lookup for the homeworld relation.
func (r *CharactersRepository) ListByHomeworld(ctx context.Context, planetID int64) ([]*model.Character, error) {
	query := characterWithHomeworld + ` WHERE c.homeworld_id = $1 ORDER BY c.id`

	rows, err := r.s.DB.Pool.Query(ctx, query, planetID)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	defer rows.Close()

	var characters []*model.Character
	for rows.Next() {
		character, err := scanCharacterRow(rows)
		if err != nil {
			return nil, sqlerr.HandleError(err)
		}
		characters = append(characters, character)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return characters, nil
}

// Update replaces the character fields and refreshes updated_at.
func (r *CharactersRepository) Update(ctx context.Context, id int64, params CharacterParams) (*model.Character, error) {
	query := `
		UPDATE characters
		SET name = $2, birth_year = $3, eye_color = $4, gender = $5,
		    hair_color = $6, height = $7, mass = $8, skin_color = $9,
		    homeworld_id = $10, description = $11, image_url = $12,
		    updated_at = now()
		WHERE id = $1
		RETURNING id`

	var updated int64
	err := r.s.DB.Pool.QueryRow(ctx, query,
		id, params.Name, params.BirthYear, params.EyeColor, params.Gender,
		params.HairColor, params.Height, params.Mass, params.SkinColor,
		params.HomeworldID, params.Description, params.ImageURL,
	).Scan(&updated)
	if err != nil {
		return nil, sqlerr.HandleError(fmt.Errorf("table:characters: %w", err))
	}

	return r.GetByID(ctx, updated)
}

// Delete removes a character. Favorite rows pointing at it cascade away.
func (r *CharactersRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.s.DB.Pool.Exec(ctx, `DELETE FROM characters WHERE id = $1`, id)
	if err != nil {
		return sqlerr.HandleError(err)
	}
	if tag.RowsAffected() == 0 {
		return sqlerr.HandleError(fmt.Errorf("table:characters: %w", pgx.ErrNoRows))
	}
	return nil
}
