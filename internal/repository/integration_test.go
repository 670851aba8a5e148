//go:build integration
// +build integration

package repository_test

import (
	"context"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/deppfellow/starwars-blog/internal/config"
	"github.com/deppfellow/starwars-blog/internal/database"
	"github.com/deppfellow/starwars-blog/internal/errs"
	"github.com/deppfellow/starwars-blog/internal/model"
	"github.com/deppfellow/starwars-blog/internal/repository"
	"github.com/deppfellow/starwars-blog/internal/server"
)

// setupRepos starts a PostgreSQL container, migrates the schema, and wires
// the repository container the same way main does.
func setupRepos(t *testing.T) *repository.Repositories {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "starting postgres container")
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("terminating container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	cfg := configFromConnString(t, connStr)
	logger := zerolog.Nop()

	require.NoError(t, database.Migrate(ctx, &logger, cfg), "applying migrations")

	srv, err := server.New(cfg, &logger, nil)
	require.NoError(t, err, "initializing database pool")
	t.Cleanup(func() { _ = srv.DB.Close() })

	return repository.NewRepositories(srv)
}

// configFromConnString maps the container's connection URL onto the same
// config shape the app loads from the environment.
func configFromConnString(t *testing.T, connStr string) *config.Config {
	t.Helper()

	u, err := url.Parse(connStr)
	require.NoError(t, err)

	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)
	password, _ := u.User.Password()

	return &config.Config{
		Primary: config.Primary{Env: "test"},
		Server: config.ServerConfig{
			Port:               "8080",
			ReadTimeout:        10,
			WriteTimeout:       10,
			IdleTimeout:        60,
			CORSAllowedOrigins: []string{"*"},
		},
		Database: config.DatabaseConfig{
			Host:            u.Hostname(),
			Port:            port,
			User:            u.User.Username(),
			Password:        password,
			Name:            u.Path[1:],
			SSLMode:         "disable",
			MaxOpenConns:    5,
			MaxIdleConns:    2,
			ConnMaxLifetime: 300,
			ConnMaxIdleTime: 60,
		},
		Observability: config.DefaultObservabilityConfig(),
	}
}

func createUser(t *testing.T, repos *repository.Repositories, username string) *model.User {
	t.Helper()
	user, err := repos.Users.Create(context.Background(), repository.CreateUserParams{
		Email:        username + "@tatooine.net",
		Username:     username,
		PasswordHash: "$2a$10$notarealhash",
		FirstName:    "Test",
		LastName:     "User",
	})
	require.NoError(t, err)
	return user
}

func strPtr(s string) *string { return &s }

func TestRepositoriesIntegration(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	t.Run("unique email and username", func(t *testing.T) {
		createUser(t, repos, "solo")

		_, err := repos.Users.Create(ctx, repository.CreateUserParams{
			Email:        "different@tatooine.net",
			Username:     "solo",
			PasswordHash: "x",
			FirstName:    "Han",
			LastName:     "Solo",
		})
		require.Error(t, err)

		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, "USER_ALREADY_EXISTS", httpErr.Code)
		assert.Equal(t, 400, httpErr.Status)

		_, err = repos.Users.Create(ctx, repository.CreateUserParams{
			Email:        "solo@tatooine.net",
			Username:     "othername",
			PasswordHash: "x",
			FirstName:    "Han",
			LastName:     "Solo",
		})
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, "USER_ALREADY_EXISTS", httpErr.Code)
	})

	t.Run("character homeworld round trip", func(t *testing.T) {
		tatooine, err := repos.Planets.Create(ctx, repository.PlanetParams{
			Name:    "Tatooine",
			Climate: strPtr("arid"),
			Terrain: strPtr("desert"),
		})
		require.NoError(t, err)

		luke, err := repos.Characters.Create(ctx, repository.CharacterParams{
			Name:        "Luke Skywalker",
			BirthYear:   strPtr("19BBY"),
			HomeworldID: &tatooine.ID,
		})
		require.NoError(t, err)
		require.NotNil(t, luke.Homeworld)
		assert.Equal(t, "Tatooine", luke.Homeworld.Name)

		projection := luke.Serialize()
		homeworld, ok := projection["homeworld"].(map[string]any)
		require.True(t, ok, "homeworld should be embedded")
		assert.Equal(t, "Tatooine", homeworld["name"])

		// A character without a homeworld projects explicit nulls.
		droid, err := repos.Characters.Create(ctx, repository.CharacterParams{Name: "R2-D2"})
		require.NoError(t, err)
		projection = droid.Serialize()
		assert.Nil(t, projection["homeworld"])
		assert.Nil(t, projection["homeworld_id"])

		// Tatooine has residents, so deleting it is rejected.
		err = repos.Planets.Delete(ctx, tatooine.ID)
		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, 400, httpErr.Status)

		residents, err := repos.Characters.ListByHomeworld(ctx, tatooine.ID)
		require.NoError(t, err)
		assert.Len(t, residents, 1)
	})

	t.Run("duplicate favorite pair", func(t *testing.T) {
		user := createUser(t, repos, "leia")
		vader, err := repos.Characters.Create(ctx, repository.CharacterParams{Name: "Darth Vader"})
		require.NoError(t, err)

		first, err := repos.Favorites.AddCharacter(ctx, user.ID, vader.ID)
		require.NoError(t, err)
		require.NotNil(t, first.Character)
		assert.Equal(t, "Darth Vader", first.Character.Name)

		_, err = repos.Favorites.AddCharacter(ctx, user.ID, vader.ID)
		require.Error(t, err)

		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, "FAVORITE_CHARACTER_ALREADY_EXISTS", httpErr.Code)
		assert.Equal(t, 400, httpErr.Status)

		favorites, err := repos.Favorites.ListCharactersByUser(ctx, user.ID)
		require.NoError(t, err)
		assert.Len(t, favorites, 1, "failed duplicate must not leave a row behind")

		// The same character favorited by a different user is a distinct pair.
		other := createUser(t, repos, "chewie")
		_, err = repos.Favorites.AddCharacter(ctx, other.ID, vader.ID)
		require.NoError(t, err)
	})

	t.Run("favorite target missing", func(t *testing.T) {
		user := createUser(t, repos, "lando")

		_, err := repos.Favorites.AddPlanet(ctx, user.ID, 999999)
		require.Error(t, err)

		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, 400, httpErr.Status)
	})

	t.Run("user delete cascades own favorites only", func(t *testing.T) {
		doomed := createUser(t, repos, "doomed")
		survivor := createUser(t, repos, "survivor")

		hoth, err := repos.Planets.Create(ctx, repository.PlanetParams{Name: "Hoth"})
		require.NoError(t, err)
		falcon, err := repos.Vehicles.Create(ctx, repository.VehicleParams{
			Name:        "Millennium Falcon",
			VehicleType: model.VehicleTypeStarship,
		})
		require.NoError(t, err)

		_, err = repos.Favorites.AddPlanet(ctx, doomed.ID, hoth.ID)
		require.NoError(t, err)
		_, err = repos.Favorites.AddVehicle(ctx, doomed.ID, falcon.ID)
		require.NoError(t, err)
		_, err = repos.Favorites.AddPlanet(ctx, survivor.ID, hoth.ID)
		require.NoError(t, err)

		post, err := repos.BlogPosts.Create(ctx, repository.CreateBlogPostParams{
			Title:    "Escape from Hoth",
			Content:  "It was cold.",
			Slug:     "escape-from-hoth",
			AuthorID: &doomed.ID,
		})
		require.NoError(t, err)

		require.NoError(t, repos.Users.Delete(ctx, doomed.ID))

		counts, err := repos.Favorites.CountsByUser(ctx, doomed.ID)
		require.NoError(t, err)
		assert.Zero(t, counts.Planets)
		assert.Zero(t, counts.Vehicles)

		survivorFavorites, err := repos.Favorites.ListPlanetsByUser(ctx, survivor.ID)
		require.NoError(t, err)
		assert.Len(t, survivorFavorites, 1, "other users' favorites must survive")

		// The post outlives its author with the reference cleared.
		orphaned, err := repos.BlogPosts.GetByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Nil(t, orphaned.AuthorID)
		assert.Nil(t, orphaned.Author)
		assert.Nil(t, orphaned.Serialize()["author"])
	})

	t.Run("entity delete cascades favorites", func(t *testing.T) {
		user := createUser(t, repos, "wedge")
		xwing, err := repos.Vehicles.Create(ctx, repository.VehicleParams{Name: "X-wing"})
		require.NoError(t, err)

		_, err = repos.Favorites.AddVehicle(ctx, user.ID, xwing.ID)
		require.NoError(t, err)

		require.NoError(t, repos.Vehicles.Delete(ctx, xwing.ID))

		favorites, err := repos.Favorites.ListVehiclesByUser(ctx, user.ID)
		require.NoError(t, err)
		assert.Empty(t, favorites)
	})

	t.Run("vehicle type check", func(t *testing.T) {
		speeder, err := repos.Vehicles.Create(ctx, repository.VehicleParams{Name: "T-16 Skyhopper"})
		require.NoError(t, err)
		assert.Equal(t, model.VehicleTypeVehicle, speeder.VehicleType)
	})

	t.Run("blog post lifecycle", func(t *testing.T) {
		author := createUser(t, repos, "obiwan")

		post, err := repos.BlogPosts.Create(ctx, repository.CreateBlogPostParams{
			Title:    "High Ground Tactics",
			Content:  "Don't try it.",
			Slug:     "high-ground-tactics",
			AuthorID: &author.ID,
			Tags:     strPtr("tactics,duels"),
		})
		require.NoError(t, err)
		require.NotNil(t, post.Author)
		assert.Equal(t, "obiwan", post.Author.Username)
		assert.False(t, post.IsPublished)
		assert.Nil(t, post.PublishedAt)

		_, err = repos.BlogPosts.Create(ctx, repository.CreateBlogPostParams{
			Title:   "Another",
			Content: "x",
			Slug:    "high-ground-tactics",
		})
		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, "BLOG_POST_ALREADY_EXISTS", httpErr.Code)

		published, err := repos.BlogPosts.Publish(ctx, post.ID)
		require.NoError(t, err)
		assert.True(t, published.IsPublished)
		require.NotNil(t, published.PublishedAt)

		require.NoError(t, repos.BlogPosts.IncrementViewCount(ctx, post.ID))
		require.NoError(t, repos.BlogPosts.IncrementViewCount(ctx, post.ID))

		bySlug, err := repos.BlogPosts.GetBySlug(ctx, "high-ground-tactics")
		require.NoError(t, err)
		assert.Equal(t, 2, bySlug.ViewCount)
		assert.Equal(t, []string{"tactics", "duels"}, bySlug.TagList())

		listed, err := repos.BlogPosts.ListPublished(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, listed)

		byAuthor, err := repos.BlogPosts.ListByAuthor(ctx, author.ID)
		require.NoError(t, err)
		assert.Len(t, byAuthor, 1)
	})

	t.Run("missing rows map to not found", func(t *testing.T) {
		var httpErr *errs.HTTPError

		_, err := repos.Users.GetByID(ctx, 999999)
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, 404, httpErr.Status)
		assert.Equal(t, "User not found", httpErr.Message)

		_, err = repos.BlogPosts.GetBySlug(ctx, "no-such-slug")
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, 404, httpErr.Status)

		err = repos.Favorites.RemoveCharacter(ctx, 999999, 999999)
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, 404, httpErr.Status)
	})
}
