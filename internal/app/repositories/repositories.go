package repositories

import (
	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

// psql builds PostgreSQL statements with $n placeholders.
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository     *UserRepository
	GroupRepository    *GroupRepository
	PostRepository     *PostRepository
	FavoriteRepository *FavoriteRepository
}

// NewRepositories initializes all repositories
func NewRepositories(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:     NewUserRepository(pool),
		GroupRepository:    NewGroupRepository(pool),
		PostRepository:     NewPostRepository(pool),
		FavoriteRepository: NewFavoriteRepository(pool, pool),
	}
}
