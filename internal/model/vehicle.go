package model

import "time"

// Vehicle type discriminator values. Starship-only fields are meaningful
// only when VehicleType is VehicleTypeStarship; for plain vehicles they stay
// null but are always present in the projection.
const (
	VehicleTypeVehicle  = "vehicle"
	VehicleTypeStarship = "starship"
)

// Vehicle is a Star Wars vehicle or starship, discriminated by VehicleType.
type Vehicle struct {
	ID                   int64      `json:"id"`
	Name                 string     `json:"name"`
	Model                *string    `json:"model"`
	VehicleClass         *string    `json:"vehicle_class"`
	Manufacturer         *string    `json:"manufacturer"`
	CostInCredits        *string    `json:"cost_in_credits"`
	Length               *string    `json:"length"`
	Crew                 *string    `json:"crew"`
	Passengers           *string    `json:"passengers"`
	MaxAtmospheringSpeed *string    `json:"max_atmosphering_speed"`
	CargoCapacity        *string    `json:"cargo_capacity"`
	Consumables          *string    `json:"consumables"`
	VehicleType          string     `json:"vehicle_type"`
	HyperdriveRating     *string    `json:"hyperdrive_rating"`
	MGLT                 *string    `json:"MGLT"`
	StarshipClass        *string    `json:"starship_class"`
	Description          *string    `json:"description"`
	ImageURL             *string    `json:"image_url"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            *time.Time `json:"updated_at"`
}

// Serialize projects the vehicle for transmission.
func (v *Vehicle) Serialize() map[string]any {
	return map[string]any{
		"id":                     v.ID,
		"name":                   v.Name,
		"model":                  strOrNil(v.Model),
		"vehicle_class":          strOrNil(v.VehicleClass),
		"manufacturer":           strOrNil(v.Manufacturer),
		"cost_in_credits":        strOrNil(v.CostInCredits),
		"length":                 strOrNil(v.Length),
		"crew":                   strOrNil(v.Crew),
		"passengers":             strOrNil(v.Passengers),
		"max_atmosphering_speed": strOrNil(v.MaxAtmospheringSpeed),
		"cargo_capacity":         strOrNil(v.CargoCapacity),
		"consumables":            strOrNil(v.Consumables),
		"vehicle_type":           v.VehicleType,
		"hyperdrive_rating":      strOrNil(v.HyperdriveRating),
		"MGLT":                   strOrNil(v.MGLT),
		"starship_class":         strOrNil(v.StarshipClass),
		"description":            strOrNil(v.Description),
		"image_url":              strOrNil(v.ImageURL),
		"created_at":             formatTime(v.CreatedAt),
		"updated_at":             formatTimePtr(v.UpdatedAt),
	}
}
