package model

import "time"

// FavoriteCharacter is one row of the user/character favorites junction.
// The composite (user_id, character_id) pair is unique in storage.
type FavoriteCharacter struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	CharacterID int64     `json:"character_id"`
	CreatedAt   time.Time `json:"created_at"`

	// Character is the loaded target entity.
	Character *Character `json:"character"`
}

// Serialize projects the favorite with its target embedded when loaded.
func (f *FavoriteCharacter) Serialize() map[string]any {
	var character any
	if f.Character != nil {
		character = f.Character.Serialize()
	}

	return map[string]any{
		"id":           f.ID,
		"user_id":      f.UserID,
		"character_id": f.CharacterID,
		"character":    character,
		"created_at":   formatTime(f.CreatedAt),
	}
}

// FavoritePlanet is one row of the user/planet favorites junction.
type FavoritePlanet struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	PlanetID  int64     `json:"planet_id"`
	CreatedAt time.Time `json:"created_at"`

	Planet *Planet `json:"planet"`
}

// Serialize projects the favorite with its target embedded when loaded.
func (f *FavoritePlanet) Serialize() map[string]any {
	var planet any
	if f.Planet != nil {
		planet = f.Planet.Serialize()
	}

	return map[string]any{
		"id":         f.ID,
		"user_id":    f.UserID,
		"planet_id":  f.PlanetID,
		"planet":     planet,
		"created_at": formatTime(f.CreatedAt),
	}
}

// FavoriteVehicle is one row of the user/vehicle favorites junction.
type FavoriteVehicle struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	VehicleID int64     `json:"vehicle_id"`
	CreatedAt time.Time `json:"created_at"`

	Vehicle *Vehicle `json:"vehicle"`
}

// Serialize projects the favorite with its target embedded when loaded.
func (f *FavoriteVehicle) Serialize() map[string]any {
	var vehicle any
	if f.Vehicle != nil {
		vehicle = f.Vehicle.Serialize()
	}

	return map[string]any{
		"id":         f.ID,
		"user_id":    f.UserID,
		"vehicle_id": f.VehicleID,
		"vehicle":    vehicle,
		"created_at": formatTime(f.CreatedAt),
	}
}
