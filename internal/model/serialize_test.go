package model

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func int64Ptr(i int64) *int64 { return &i }

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func TestUserSerialize(t *testing.T) {
	createdAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	updatedAt := time.Date(2024, 3, 2, 8, 30, 0, 0, time.UTC)

	user := &User{
		ID:           1,
		Email:        "rey@resistance.org",
		Username:     "rey",
		PasswordHash: "$2a$10$secret",
		FirstName:    "Rey",
		LastName:     "Skywalker",
		IsActive:     true,
		CreatedAt:    createdAt,
		UpdatedAt:    &updatedAt,
	}

	out := user.Serialize()

	wantKeys := []string{
		"created_at", "email", "first_name", "id", "is_active",
		"last_name", "updated_at", "username",
	}
	assert.Equal(t, wantKeys, sortedKeys(out))

	if _, ok := out["password_hash"]; ok {
		t.Fatal("Serialize() leaked password_hash")
	}

	assert.Equal(t, int64(1), out["id"])
	assert.Equal(t, "rey", out["username"])
	assert.Equal(t, "2024-03-01T12:00:00Z", out["created_at"])
	assert.Equal(t, "2024-03-02T08:30:00Z", out["updated_at"])
}

func TestUserSerialize_NilUpdatedAt(t *testing.T) {
	user := &User{ID: 2, CreatedAt: time.Now()}

	out := user.Serialize()

	assert.Nil(t, out["updated_at"])
}

func TestCharacterSerialize_NoHomeworld(t *testing.T) {
	character := &Character{
		ID:        5,
		Name:      "Yoda",
		BirthYear: strPtr("896BBY"),
		CreatedAt: time.Now(),
	}

	out := character.Serialize()

	assert.Nil(t, out["homeworld_id"])
	assert.Nil(t, out["homeworld"])
	assert.Equal(t, "Yoda", out["name"])
	assert.Nil(t, out["eye_color"])
	assert.Equal(t, "896BBY", out["birth_year"])
}

func TestCharacterSerialize_WithHomeworld(t *testing.T) {
	planet := &Planet{
		ID:        3,
		Name:      "Tatooine",
		Climate:   strPtr("arid"),
		CreatedAt: time.Now(),
	}
	character := &Character{
		ID:          1,
		Name:        "Luke Skywalker",
		HomeworldID: int64Ptr(3),
		Homeworld:   planet,
		CreatedAt:   time.Now(),
	}

	out := character.Serialize()

	assert.Equal(t, int64(3), out["homeworld_id"])

	nested, ok := out["homeworld"].(map[string]any)
	if !ok {
		t.Fatalf("homeworld = %T, want nested projection", out["homeworld"])
	}
	assert.Equal(t, "Tatooine", nested["name"])
	assert.Equal(t, "arid", nested["climate"])

	wantKeys := []string{
		"climate", "created_at", "description", "diameter", "gravity",
		"id", "image_url", "name", "orbital_period", "population",
		"rotation_period", "surface_water", "terrain", "updated_at",
	}
	assert.Equal(t, wantKeys, sortedKeys(nested))
}

func TestVehicleSerialize_PlainVehicle(t *testing.T) {
	vehicle := &Vehicle{
		ID:          7,
		Name:        "Sand Crawler",
		VehicleType: VehicleTypeVehicle,
		CreatedAt:   time.Now(),
	}

	out := vehicle.Serialize()

	// Starship-only fields stay present but null for plain vehicles.
	assert.Equal(t, VehicleTypeVehicle, out["vehicle_type"])
	assert.Nil(t, out["hyperdrive_rating"])
	assert.Nil(t, out["MGLT"])
	assert.Nil(t, out["starship_class"])
}

func TestVehicleSerialize_Starship(t *testing.T) {
	vehicle := &Vehicle{
		ID:               8,
		Name:             "Millennium Falcon",
		Model:            strPtr("YT-1300 light freighter"),
		VehicleType:      VehicleTypeStarship,
		HyperdriveRating: strPtr("0.5"),
		MGLT:             strPtr("75"),
		StarshipClass:    strPtr("Light freighter"),
		CreatedAt:        time.Now(),
	}

	out := vehicle.Serialize()

	assert.Equal(t, VehicleTypeStarship, out["vehicle_type"])
	assert.Equal(t, "0.5", out["hyperdrive_rating"])
	assert.Equal(t, "75", out["MGLT"])
	assert.Equal(t, "Light freighter", out["starship_class"])

	wantKeys := []string{
		"MGLT", "cargo_capacity", "consumables", "cost_in_credits",
		"created_at", "crew", "description", "hyperdrive_rating", "id",
		"image_url", "length", "manufacturer", "max_atmosphering_speed",
		"model", "name", "passengers", "starship_class", "updated_at",
		"vehicle_class", "vehicle_type",
	}
	assert.Equal(t, wantKeys, sortedKeys(out))
}

func TestFavoriteCharacterSerialize(t *testing.T) {
	created := time.Date(2024, 5, 4, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		favorite  *FavoriteCharacter
		wantValue bool
	}{
		{
			name: "target loaded",
			favorite: &FavoriteCharacter{
				ID:          1,
				UserID:      2,
				CharacterID: 3,
				CreatedAt:   created,
				Character:   &Character{ID: 3, Name: "Chewbacca", CreatedAt: created},
			},
			wantValue: true,
		},
		{
			name: "target not loaded",
			favorite: &FavoriteCharacter{
				ID:          1,
				UserID:      2,
				CharacterID: 3,
				CreatedAt:   created,
			},
			wantValue: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := tt.favorite.Serialize()

			wantKeys := []string{"character", "character_id", "created_at", "id", "user_id"}
			assert.Equal(t, wantKeys, sortedKeys(out))
			assert.Equal(t, int64(2), out["user_id"])
			assert.Equal(t, int64(3), out["character_id"])
			assert.Equal(t, "2024-05-04T00:00:00Z", out["created_at"])

			if tt.wantValue {
				nested, ok := out["character"].(map[string]any)
				if !ok {
					t.Fatalf("character = %T, want nested projection", out["character"])
				}
				assert.Equal(t, "Chewbacca", nested["name"])
			} else {
				assert.Nil(t, out["character"])
			}
		})
	}
}

func TestFavoritePlanetSerialize(t *testing.T) {
	favorite := &FavoritePlanet{
		ID:        4,
		UserID:    2,
		PlanetID:  9,
		CreatedAt: time.Now(),
		Planet:    &Planet{ID: 9, Name: "Hoth", CreatedAt: time.Now()},
	}

	out := favorite.Serialize()

	wantKeys := []string{"created_at", "id", "planet", "planet_id", "user_id"}
	assert.Equal(t, wantKeys, sortedKeys(out))

	nested := out["planet"].(map[string]any)
	assert.Equal(t, "Hoth", nested["name"])
}

func TestFavoriteVehicleSerialize_NotLoaded(t *testing.T) {
	favorite := &FavoriteVehicle{
		ID:        6,
		UserID:    2,
		VehicleID: 8,
		CreatedAt: time.Now(),
	}

	out := favorite.Serialize()

	wantKeys := []string{"created_at", "id", "user_id", "vehicle", "vehicle_id"}
	assert.Equal(t, wantKeys, sortedKeys(out))
	assert.Nil(t, out["vehicle"])
}

func TestBlogPostSerialize_Tags(t *testing.T) {
	tests := []struct {
		name string
		tags *string
		want []string
	}{
		{"unset tags", nil, []string{}},
		{"empty tags", strPtr(""), []string{}},
		{"joined tags", strPtr("jedi,sith,force"), []string{"jedi", "sith", "force"}},
		{"single tag", strPtr("droids"), []string{"droids"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			post := &BlogPost{ID: 1, Title: "t", Content: "c", Slug: "s", Tags: tt.tags, CreatedAt: time.Now()}

			out := post.Serialize()

			assert.Equal(t, tt.want, out["tags"])
		})
	}
}

func TestBlogPostSerialize_ReducedAuthor(t *testing.T) {
	author := &User{
		ID:           10,
		Email:        "ben@jedi.org",
		Username:     "obiwan",
		PasswordHash: "$2a$10$secret",
		FirstName:    "Obi-Wan",
		LastName:     "Kenobi",
		IsActive:     true,
		CreatedAt:    time.Now(),
	}
	publishedAt := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	post := &BlogPost{
		ID:          2,
		Title:       "High Ground Tactics",
		Content:     "...",
		Slug:        "high-ground-tactics",
		AuthorID:    int64Ptr(10),
		Author:      author,
		IsPublished: true,
		PublishedAt: &publishedAt,
		ViewCount:   42,
		CreatedAt:   time.Now(),
	}

	out := post.Serialize()

	wantKeys := []string{
		"author", "author_id", "content", "created_at", "excerpt",
		"featured_image_url", "id", "is_published", "published_at",
		"slug", "tags", "title", "updated_at", "view_count",
	}
	assert.Equal(t, wantKeys, sortedKeys(out))

	nested, ok := out["author"].(map[string]any)
	if !ok {
		t.Fatalf("author = %T, want reduced projection", out["author"])
	}
	// Only the display fields: no id, no email, no password hash.
	assert.Equal(t, []string{"first_name", "last_name", "username"}, sortedKeys(nested))
	assert.Equal(t, "obiwan", nested["username"])

	assert.Equal(t, "2024-06-01T09:00:00Z", out["published_at"])
	assert.Equal(t, 42, out["view_count"])
}

func TestBlogPostSerialize_OrphanedAuthor(t *testing.T) {
	post := &BlogPost{ID: 3, Title: "t", Content: "c", Slug: "s", CreatedAt: time.Now()}

	out := post.Serialize()

	assert.Nil(t, out["author_id"])
	assert.Nil(t, out["author"])
}
