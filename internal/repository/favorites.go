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

// FavoritesRepository manages the three favorite junction tables.
//
// Uniqueness of each (user, entity) pair is a database constraint, so two
// concurrent inserts of the same pair resolve to exactly one success and one
// duplicate-favorite error.
type FavoritesRepository struct {
	s *server.Server
}

// NewFavoritesRepository constructs a FavoritesRepository using the server's
// pool.
func NewFavoritesRepository(s *server.Server) *FavoritesRepository {
	return &FavoritesRepository{s: s}
}

// FavoriteCounts summarizes a user's favorites per entity type.
type FavoriteCounts struct {
	Characters int64 `json:"characters"`
	Planets    int64 `json:"planets"`
	Vehicles   int64 `json:"vehicles"`
}

// AddCharacter favorites a character for a user, returning the junction row
// with the character (and its homeworld) loaded.
func (r *FavoritesRepository) AddCharacter(ctx context.Context, userID, characterID int64) (*model.FavoriteCharacter, error) {
	query := `
		INSERT INTO favorite_characters (user_id, character_id)
		VALUES ($1, $2)
		RETURNING id, created_at`

	favorite := &model.FavoriteCharacter{UserID: userID, CharacterID: characterID}
	err := r.s.DB.Pool.QueryRow(ctx, query, userID, characterID).
		Scan(&favorite.ID, &favorite.CreatedAt)
	if err != nil {
		return nil, sqlerr.HandleError(fmt.Errorf("table:favorite_characters: %w", err))
	}

	character, err := scanCharacterRow(r.s.DB.Pool.QueryRow(ctx,
		characterWithHomeworld+` WHERE c.id = $1`, characterID))
	if err != nil {
		return nil, sqlerr.HandleError(fmt.Errorf("table:characters: %w", err))
	}
	favorite.Character = character

	return favorite, nil
}

// RemoveCharacter deletes a user's character favorite.
func (r *FavoritesRepository) RemoveCharacter(ctx context.Context, userID, characterID int64) error {
	query := `DELETE FROM favorite_characters WHERE user_id = $1 AND character_id = $2`

	tag, err := r.s.DB.Pool.Exec(ctx, query, userID, characterID)
	if err != nil {
		return sqlerr.HandleError(err)
	}
	if tag.RowsAffected() == 0 {
		return sqlerr.HandleError(fmt.Errorf("table:favorite_characters: %w", pgx.ErrNoRows))
	}
	return nil
}

// ListCharactersByUser returns a user's character favorites with each
// character and its homeworld loaded.
func (r *FavoritesRepository) ListCharactersByUser(ctx context.Context, userID int64) ([]*model.FavoriteCharacter, error) {
	query := `
		SELECT f.id, f.user_id, f.character_id, f.created_at,
		       c.id, c.name, c.birth_year, c.eye_color, c.gender, c.hair_color,
		       c.height, c.mass, c.skin_color, c.homeworld_id, c.description,
		       c.image_url, c.created_at, c.updated_at,
		       p.id, p.name, p.diameter, p.rotation_period, p.orbital_period,
		       p.gravity, p.population, p.climate, p.terrain, p.surface_water,
		       p.description, p.image_url, p.created_at, p.updated_at
		FROM favorite_characters f
		JOIN characters c ON c.id = f.character_id
		LEFT JOIN planets p ON p.id = c.homeworld_id
		WHERE f.user_id = $1
		ORDER BY f.id`

	rows, err := r.s.DB.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	defer rows.Close()

	var favorites []*model.FavoriteCharacter
	for rows.Next() {
		var f model.FavoriteCharacter
		var c model.Character
		var pID *int64
		var pName *string
		var pDiameter, pRotation, pOrbital, pGravity, pPopulation, pClimate *string
		var pTerrain, pSurfaceWater, pDescription, pImageURL *string
		var pCreatedAt, pUpdatedAt *time.Time

		err := rows.Scan(
			&f.ID, &f.UserID, &f.CharacterID, &f.CreatedAt,
			&c.ID, &c.Name, &c.BirthYear, &c.EyeColor, &c.Gender, &c.HairColor,
			&c.Height, &c.Mass, &c.SkinColor, &c.HomeworldID, &c.Description,
			&c.ImageURL, &c.CreatedAt, &c.UpdatedAt,
			&pID, &pName, &pDiameter, &pRotation, &pOrbital,
			&pGravity, &pPopulation, &pClimate, &pTerrain, &pSurfaceWater,
			&pDescription, &pImageURL, &pCreatedAt, &pUpdatedAt,
		)
		if err != nil {
			return nil, sqlerr.HandleError(err)
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

		f.Character = &c
		favorites = append(favorites, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return favorites, nil
}

// AddPlanet favorites a planet for a user, returning the junction row with
// the planet loaded.
func (r *FavoritesRepository) AddPlanet(ctx context.Context, userID, planetID int64) (*model.FavoritePlanet, error) {
	query := `
		INSERT INTO favorite_planets (user_id, planet_id)
		VALUES ($1, $2)
		RETURNING id, created_at`

	favorite := &model.FavoritePlanet{UserID: userID, PlanetID: planetID}
	err := r.s.DB.Pool.QueryRow(ctx, query, userID, planetID).
		Scan(&favorite.ID, &favorite.CreatedAt)
	if err != nil {
		return nil, sqlerr.HandleError(fmt.Errorf("table:favorite_planets: %w", err))
	}

	planet, err := scanPlanet(r.s.DB.Pool.QueryRow(ctx,
		`SELECT `+planetColumns+` FROM planets WHERE id = $1`, planetID))
	if err != nil {
		return nil, sqlerr.HandleError(fmt.Errorf("table:planets: %w", err))
	}
	favorite.Planet = planet

	return favorite, nil
}

// RemovePlanet deletes a user's planet favorite.
func (r *FavoritesRepository) RemovePlanet(ctx context.Context, userID, planetID int64) error {
	query := `DELETE FROM favorite_planets WHERE user_id = $1 AND planet_id = $2`

	tag, err := r.s.DB.Pool.Exec(ctx, query, userID, planetID)
	if err != nil {
		return sqlerr.HandleError(err)
	}
	if tag.RowsAffected() == 0 {
		return sqlerr.HandleError(fmt.Errorf("table:favorite_planets: %w", pgx.ErrNoRows))
	}
	return nil
}

// ListPlanetsByUser returns a user's planet favorites with each planet
// loaded.
func (r *FavoritesRepository) ListPlanetsByUser(ctx context.Context, userID int64) ([]*model.FavoritePlanet, error) {
	query := `
		SELECT f.id, f.user_id, f.planet_id, f.created_at,
		       p.id, p.name, p.diameter, p.rotation_period, p.orbital_period,
		       p.gravity, p.population, p.climate, p.terrain, p.surface_water,
		       p.description, p.image_url, p.created_at, p.updated_at
		FROM favorite_planets f
		JOIN planets p ON p.id = f.planet_id
		WHERE f.user_id = $1
		ORDER BY f.id`

	rows, err := r.s.DB.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	defer rows.Close()

	var favorites []*model.FavoritePlanet
	for rows.Next() {
		var f model.FavoritePlanet
		var p model.Planet

		err := rows.Scan(
			&f.ID, &f.UserID, &f.PlanetID, &f.CreatedAt,
			&p.ID, &p.Name, &p.Diameter, &p.RotationPeriod, &p.OrbitalPeriod,
			&p.Gravity, &p.Population, &p.Climate, &p.Terrain, &p.SurfaceWater,
			&p.Description, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, sqlerr.HandleError(err)
		}

		f.Planet = &p
		favorites = append(favorites, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return favorites, nil
}

// AddVehicle favorites a vehicle for a user, returning the junction row with
// the vehicle loaded.
func (r *FavoritesRepository) AddVehicle(ctx context.Context, userID, vehicleID int64) (*model.FavoriteVehicle, error) {
	query := `
		INSERT INTO favorite_vehicles (user_id, vehicle_id)
		VALUES ($1, $2)
		RETURNING id, created_at`

	favorite := &model.FavoriteVehicle{UserID: userID, VehicleID: vehicleID}
	err := r.s.DB.Pool.QueryRow(ctx, query, userID, vehicleID).
		Scan(&favorite.ID, &favorite.CreatedAt)
	if err != nil {
		return nil, sqlerr.HandleError(fmt.Errorf("table:favorite_vehicles: %w", err))
	}

	vehicle, err := scanVehicle(r.s.DB.Pool.QueryRow(ctx,
		`SELECT `+vehicleColumns+` FROM vehicles WHERE id = $1`, vehicleID))
	if err != nil {
		return nil, sqlerr.HandleError(fmt.Errorf("table:vehicles: %w", err))
	}
	favorite.Vehicle = vehicle

	return favorite, nil
}

// RemoveVehicle deletes a user's vehicle favorite.
func (r *FavoritesRepository) RemoveVehicle(ctx context.Context, userID, vehicleID int64) error {
	query := `DELETE FROM favorite_vehicles WHERE user_id = $1 AND vehicle_id = $2`

	tag, err := r.s.DB.Pool.Exec(ctx, query, userID, vehicleID)
	if err != nil {
		return sqlerr.HandleError(err)
	}
	if tag.RowsAffected() == 0 {
		return sqlerr.HandleError(fmt.Errorf("table:favorite_vehicles: %w", pgx.ErrNoRows))
	}
	return nil
}

// ListVehiclesByUser returns a user's vehicle favorites with each vehicle
// loaded.
func (r *FavoritesRepository) ListVehiclesByUser(ctx context.Context, userID int64) ([]*model.FavoriteVehicle, error) {
	query := `
		SELECT f.id, f.user_id, f.vehicle_id, f.created_at,
		       v.id, v.name, v.model, v.vehicle_class, v.manufacturer,
		       v.cost_in_credits, v.length, v.crew, v.passengers,
		       v.max_atmosphering_speed, v.cargo_capacity, v.consumables,
		       v.vehicle_type, v.hyperdrive_rating, v.mglt, v.starship_class,
		       v.description, v.image_url, v.created_at, v.updated_at
		FROM favorite_vehicles f
		JOIN vehicles v ON v.id = f.vehicle_id
		WHERE f.user_id = $1
		ORDER BY f.id`

	rows, err := r.s.DB.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	defer rows.Close()

	var favorites []*model.FavoriteVehicle
	for rows.Next() {
		var f model.FavoriteVehicle
		var v model.Vehicle

		err := rows.Scan(
			&f.ID, &f.UserID, &f.VehicleID, &f.CreatedAt,
			&v.ID, &v.Name, &v.Model, &v.VehicleClass, &v.Manufacturer,
			&v.CostInCredits, &v.Length, &v.Crew, &v.Passengers,
			&v.MaxAtmospheringSpeed, &v.CargoCapacity, &v.Consumables,
			&v.VehicleType, &v.HyperdriveRating, &v.MGLT, &v.StarshipClass,
			&v.Description, &v.ImageURL, &v.CreatedAt, &v.UpdatedAt,
		)
		if err != nil {
			return nil, sqlerr.HandleError(err)
		}

		f.Vehicle = &v
		favorites = append(favorites, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return favorites, nil
}

// CountsByUser reports how many favorites a user holds per entity type.
func (r *FavoritesRepository) CountsByUser(ctx context.Context, userID int64) (*FavoriteCounts, error) {
	query := `
		SELECT
			(SELECT count(*) FROM favorite_characters WHERE user_id = $1),
			(SELECT count(*) FROM favorite_planets WHERE user_id = $1),
			(SELECT count(*) FROM favorite_vehicles WHERE user_id = $1)`

	var counts FavoriteCounts
	err := r.s.DB.Pool.QueryRow(ctx, query, userID).
		Scan(&counts.Characters, &counts.Planets, &counts.Vehicles)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return &counts, nil
}
