package model

import "time"

// Planet is a Star Wars planet. Physical fields are free-form text because
// the source data frequently holds values like "unknown".
type Planet struct {
	ID             int64      `json:"id"`
	Name           string     `json:"name"`
	Diameter       *string    `json:"diameter"`
	RotationPeriod *string    `json:"rotation_period"`
	OrbitalPeriod  *string    `json:"orbital_period"`
	Gravity        *string    `json:"gravity"`
	Population     *string    `json:"population"`
	Climate        *string    `json:"climate"`
	Terrain        *string    `json:"terrain"`
	SurfaceWater   *string    `json:"surface_water"`
	Description    *string    `json:"description"`
	ImageURL       *string    `json:"image_url"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at"`
}

// Serialize projects the planet for transmission.
func (p *Planet) Serialize() map[string]any {
	return map[string]any{
		"id":              p.ID,
		"name":            p.Name,
		"diameter":        strOrNil(p.Diameter),
		"rotation_period": strOrNil(p.RotationPeriod),
		"orbital_period":  strOrNil(p.OrbitalPeriod),
		"gravity":         strOrNil(p.Gravity),
		"population":      strOrNil(p.Population),
		"climate":         strOrNil(p.Climate),
		"terrain":         strOrNil(p.Terrain),
		"surface_water":   strOrNil(p.SurfaceWater),
		"description":     strOrNil(p.Description),
		"image_url":       strOrNil(p.ImageURL),
		"created_at":      formatTime(p.CreatedAt),
		"updated_at":      formatTimePtr(p.UpdatedAt),
	}
}
