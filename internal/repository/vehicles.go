package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/starwars-blog/internal/model"
	"github.com/deppfellow/starwars-blog/internal/server"
	"github.com/deppfellow/starwars-blog/internal/sqlerr"
	"github.com/jackc/pgx/v5"
)

const vehicleColumns = `id, name, model, vehicle_class, manufacturer, cost_in_credits,
	length, crew, passengers, max_atmosphering_speed, cargo_capacity, consumables,
	vehicle_type, hyperdrive_rating, mglt, starship_class, description, image_url,
	created_at, updated_at`

// VehiclesRepository performs database operations on vehicles and starships.
type VehiclesRepository struct {
	s *server.Server
}

// NewVehiclesRepository constructs a VehiclesRepository using the server's
// pool.
func NewVehiclesRepository(s *server.Server) *VehiclesRepository {
	return &VehiclesRepository{s: s}
}

// VehicleParams carries the vehicle fields for create and update.
// VehicleType must be "vehicle" or "starship"; an empty value defaults to
// "vehicle". The starship-only fields are stored as given; keeping them
// meaningful only for starships is a convention, not a structural rule.
type VehicleParams struct {
	Name                 string
	Model                *string
	VehicleClass         *string
	Manufacturer         *string
	CostInCredits        *string
	Length               *string
	Crew                 *string
	Passengers           *string
	MaxAtmospheringSpeed *string
	CargoCapacity        *string
	Consumables          *string
	VehicleType          string
	HyperdriveRating     *string
	MGLT                 *string
	StarshipClass        *string
	Description          *string
	ImageURL             *string
}

func scanVehicle(row pgx.Row) (*model.Vehicle, error) {
	var v model.Vehicle
	err := row.Scan(
		&v.ID, &v.Name, &v.Model, &v.VehicleClass, &v.Manufacturer,
		&v.CostInCredits, &v.Length, &v.Crew, &v.Passengers,
		&v.MaxAtmospheringSpeed, &v.CargoCapacity, &v.Consumables,
		&v.VehicleType, &v.HyperdriveRating, &v.MGLT, &v.StarshipClass,
		&v.Description, &v.ImageURL, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Create inserts a new vehicle or starship.
func (r *VehiclesRepository) Create(ctx context.Context, params VehicleParams) (*model.Vehicle, error) {
	vehicleType := params.VehicleType
	if vehicleType == "" {
		vehicleType = model.VehicleTypeVehicle
	}

	query := `
		INSERT INTO vehicles (name, model, vehicle_class, manufacturer, cost_in_credits,
			length, crew, passengers, max_atmosphering_speed, cargo_capacity,
			consumables, vehicle_type, hyperdrive_rating, mglt, starship_class,
			description, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING ` + vehicleColumns

	vehicle, err := scanVehicle(r.s.DB.Pool.QueryRow(ctx, query,
		params.Name, params.Model, params.VehicleClass, params.Manufacturer,
		params.CostInCredits, params.Length, params.Crew, params.Passengers,
		params.MaxAtmospheringSpeed, params.CargoCapacity, params.Consumables,
		vehicleType, params.HyperdriveRating, params.MGLT, params.StarshipClass,
		params.Description, params.ImageURL,
	))
	if err != nil {
		return nil, sqlerr.HandleError(fmt.Errorf("table:vehicles: %w", err))
	}
	return vehicle, nil
}

// GetByID fetches a vehicle by primary key.
func (r *VehiclesRepository) GetByID(ctx context.Context, id int64) (*model.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`

	vehicle, err := scanVehicle(r.s.DB.Pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, sqlerr.HandleError(fmt.Errorf("table:vehicles: %w", err))
	}
	return vehicle, nil
}

// List returns all vehicles ordered by id.
func (r *VehiclesRepository) List(ctx context.Context) ([]*model.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles ORDER BY id`

	rows, err := r.s.DB.Pool.Query(ctx, query)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	defer rows.Close()

	var vehicles []*model.Vehicle
	for rows.Next() {
		vehicle, err := scanVehicle(rows)
		if err != nil {
			return nil, sqlerr.HandleError(err)
		}
		vehicles = append(vehicles, vehicle)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return vehicles, nil
}

// Update replaces the vehicle fields and refreshes updated_at.
func (r *VehiclesRepository) Update(ctx context.Context, id int64, params VehicleParams) (*model.Vehicle, error) {
	vehicleType := params.VehicleType
	if vehicleType == "" {
		vehicleType = model.VehicleTypeVehicle
	}

	query := `
		UPDATE vehicles
		SET name = $2, model = $3, vehicle_class = $4, manufacturer = $5,
		    cost_in_credits = $6, length = $7, crew = $8, passengers = $9,
		    max_atmosphering_speed = $10, cargo_capacity = $11, consumables = $12,
		    vehicle_type = $13, hyperdrive_rating = $14, mglt = $15,
		    starship_class = $16, description = $17, image_url = $18,
		    updated_at = now()
		WHERE id = $1
		RETURNING ` + vehicleColumns

	vehicle, err := scanVehicle(r.s.DB.Pool.QueryRow(ctx, query,
		id, params.Name, params.Model, params.VehicleClass, params.Manufacturer,
		params.CostInCredits, params.Length, params.Crew, params.Passengers,
		params.MaxAtmospheringSpeed, params.CargoCapacity, params.Consumables,
		vehicleType, params.HyperdriveRating, params.MGLT, params.StarshipClass,
		params.Description, params.ImageURL,
	))
	if err != nil {
		return nil, sqlerr.HandleError(fmt.Errorf("table:vehicles: %w", err))
	}
	return vehicle, nil
}

// Delete removes a vehicle. Favorite rows pointing at it cascade away.
func (r *VehiclesRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.s.DB.Pool.Exec(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return sqlerr.HandleError(err)
	}
	if tag.RowsAffected() == 0 {
		return sqlerr.HandleError(fmt.Errorf("table:vehicles: %w", pgx.ErrNoRows))
	}
	return nil
}
