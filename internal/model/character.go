package model

import "time"

// Character is a Star Wars character. Homeworld is optional; when the
// repository loaded the related planet it is embedded in the projection,
// otherwise the homeworld key is an explicit null.
type Character struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	BirthYear   *string    `json:"birth_year"`
	EyeColor    *string    `json:"eye_color"`
	Gender      *string    `json:"gender"`
	HairColor   *string    `json:"hair_color"`
	Height      *string    `json:"height"`
	Mass        *string    `json:"mass"`
	SkinColor   *string    `json:"skin_color"`
	HomeworldID *int64     `json:"homeworld_id"`
	Description *string    `json:"description"`
	ImageURL    *string    `json:"image_url"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`

	// Homeworld is the loaded relation for HomeworldID.
	Homeworld *Planet `json:"homeworld"`
}

// Serialize projects the character for transmission, embedding the full
// homeworld projection when present.
func (c *Character) Serialize() map[string]any {
	var homeworld any
	if c.Homeworld != nil {
		homeworld = c.Homeworld.Serialize()
	}

	return map[string]any{
		"id":           c.ID,
		"name":         c.Name,
		"birth_year":   strOrNil(c.BirthYear),
		"eye_color":    strOrNil(c.EyeColor),
		"gender":       strOrNil(c.Gender),
		"hair_color":   strOrNil(c.HairColor),
		"height":       strOrNil(c.Height),
		"mass":         strOrNil(c.Mass),
		"skin_color":   strOrNil(c.SkinColor),
		"homeworld_id": idOrNil(c.HomeworldID),
		"homeworld":    homeworld,
		"description":  strOrNil(c.Description),
		"image_url":    strOrNil(c.ImageURL),
		"created_at":   formatTime(c.CreatedAt),
		"updated_at":   formatTimePtr(c.UpdatedAt),
	}
}
