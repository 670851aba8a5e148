package repository

import (
	"github.com/deppfellow/starwars-blog/internal/server"
)

// Repositories is a container for all repository instances, wired once at
// startup and handed to the collaborator layer.
type Repositories struct {
	Users      *UsersRepository
	Characters *CharactersRepository
	Planets    *PlanetsRepository
	Vehicles   *VehiclesRepository
	Favorites  *FavoritesRepository
	BlogPosts  *BlogPostsRepository
}

// NewRepositories constructs the repository container. Every repository
// shares the server's pool and logger.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Users:      NewUsersRepository(s),
		Characters: NewCharactersRepository(s),
		Planets:    NewPlanetsRepository(s),
		Vehicles:   NewVehiclesRepository(s),
		Favorites:  NewFavoritesRepository(s),
		BlogPosts:  NewBlogPostsRepository(s),
	}
}
