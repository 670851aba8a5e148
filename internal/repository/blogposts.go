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

// blogPostWithAuthor joins the author so a single round trip yields the post
// plus the embedded author shape. The join is LEFT so posts whose author was
// deleted still load, with the author side all NULL.
const blogPostWithAuthor = `
	SELECT b.id, b.title, b.content, b.slug, b.author_id, b.is_published,
	       b.published_at, b.featured_image_url, b.excerpt, b.tags,
	       b.view_count, b.created_at, b.updated_at,
	       u.id, u.email, u.username, u.first_name, u.last_name, u.is_active,
	       u.created_at, u.updated_at
	FROM blog_posts b
	LEFT JOIN users u ON u.id = b.author_id`

// BlogPostsRepository performs database operations on blog posts.
type BlogPostsRepository struct {
	s *server.Server
}

// NewBlogPostsRepository constructs a BlogPostsRepository using the server's
// pool.
func NewBlogPostsRepository(s *server.Server) *BlogPostsRepository {
	return &BlogPostsRepository{s: s}
}

// CreateBlogPostParams carries the fields for a new post. Tags is the
// comma-joined form; IsPublished and ViewCount start at their defaults.
type CreateBlogPostParams struct {
	Title            string
	Content          string
	Slug             string
	AuthorID         *int64
	FeaturedImageURL *string
	Excerpt          *string
	Tags             *string
}

// UpdateBlogPostParams carries the mutable fields for an update. Publication
// state moves through Publish, not here.
type UpdateBlogPostParams struct {
	Title            string
	Content          string
	Slug             string
	FeaturedImageURL *string
	Excerpt          *string
	Tags             *string
}

func scanBlogPostRow(row pgx.Row) (*model.BlogPost, error) {
	var b model.BlogPost
	var uID *int64
	var uEmail, uUsername, uFirstName, uLastName *string
	var uIsActive *bool
	var uCreatedAt, uUpdatedAt *time.Time

	err := row.Scan(
		&b.ID, &b.Title, &b.Content, &b.Slug, &b.AuthorID, &b.IsPublished,
		&b.PublishedAt, &b.FeaturedImageURL, &b.Excerpt, &b.Tags,
		&b.ViewCount, &b.CreatedAt, &b.UpdatedAt,
		&uID, &uEmail, &uUsername, &uFirstName, &uLastName, &uIsActive,
		&uCreatedAt, &uUpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if uID != nil {
		b.Author = &model.User{
			ID:        *uID,
			Email:     *uEmail,
			Username:  *uUsername,
			FirstName: *uFirstName,
			LastName:  *uLastName,
			IsActive:  *uIsActive,
			CreatedAt: *uCreatedAt,
			UpdatedAt: uUpdatedAt,
		}
	}

	return &b, nil
}

// Create inserts a blog post and returns it with the author loaded.
func (r *BlogPostsRepository) Create(ctx context.Context, params CreateBlogPostParams) (*model.BlogPost, error) {
	query := `
		INSERT INTO blog_posts (title, content, slug, author_id, featured_image_url, excerpt, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	var id int64
	err := r.s.DB.Pool.QueryRow(ctx, query,
		params.Title, params.Content, params.Slug, params.AuthorID,
		params.FeaturedImageURL, params.Excerpt, params.Tags,
	).Scan(&id)
	if err != nil {
		return nil, sqlerr.HandleError(fmt.Errorf("table:blog_posts: %w", err))
	}

	return r.GetByID(ctx, id)
}

// GetByID fetches a post by primary key with its author loaded.
func (r *BlogPostsRepository) GetByID(ctx context.Context, id int64) (*model.BlogPost, error) {
	post, err := scanBlogPostRow(r.s.DB.Pool.QueryRow(ctx,
		blogPostWithAuthor+` WHERE b.id = $1`, id))
	if err != nil {
		return nil, sqlerr.HandleError(fmt.Errorf("table:blog_posts: %w", err))
	}
	return post, nil
}

// GetBySlug fetches a post by its unique slug with its author loaded.
func (r *BlogPostsRepository) GetBySlug(ctx context.Context, slug string) (*model.BlogPost, error) {
	post, err := scanBlogPostRow(r.s.DB.Pool.QueryRow(ctx,
		blogPostWithAuthor+` WHERE b.slug = $1`, slug))
	if err != nil {
		return nil, sqlerr.HandleError(fmt.Errorf("table:blog_posts: %w", err))
	}
	return post, nil
}

// List returns all posts, newest first.
func (r *BlogPostsRepository) List(ctx context.Context) ([]*model.BlogPost, error) {
	return r.list(ctx, blogPostWithAuthor+` ORDER BY b.created_at DESC, b.id DESC`)
}

// ListByAuthor returns all posts written by one author, newest first.
func (r *BlogPostsRepository) ListByAuthor(ctx context.Context, authorID int64) ([]*model.BlogPost, error) {
	return r.list(ctx,
		blogPostWithAuthor+` WHERE b.author_id = $1 ORDER BY b.created_at DESC, b.id DESC`,
		authorID)
}

// ListPublished returns published posts only, most recently published first.
func (r *BlogPostsRepository) ListPublished(ctx context.Context) ([]*model.BlogPost, error) {
	return r.list(ctx,
		blogPostWithAuthor+` WHERE b.is_published ORDER BY b.published_at DESC, b.id DESC`)
}

func (r *BlogPostsRepository) list(ctx context.Context, query string, args ...any) ([]*model.BlogPost, error) {
	rows, err := r.s.DB.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	defer rows.Close()

	var posts []*model.BlogPost
	for rows.Next() {
		post, err := scanBlogPostRow(rows)
		if err != nil {
			return nil, sqlerr.HandleError(err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return posts, nil
}

// Update rewrites the mutable fields of a post and refreshes updated_at.
func (r *BlogPostsRepository) Update(ctx context.Context, id int64, params UpdateBlogPostParams) (*model.BlogPost, error) {
	query := `
		UPDATE blog_posts
		SET title = $2, content = $3, slug = $4, featured_image_url = $5,
		    excerpt = $6, tags = $7, updated_at = now()
		WHERE id = $1`

	tag, err := r.s.DB.Pool.Exec(ctx, query,
		id, params.Title, params.Content, params.Slug,
		params.FeaturedImageURL, params.Excerpt, params.Tags,
	)
	if err != nil {
		return nil, sqlerr.HandleError(fmt.Errorf("table:blog_posts: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return nil, sqlerr.HandleError(fmt.Errorf("table:blog_posts: %w", pgx.ErrNoRows))
	}

	return r.GetByID(ctx, id)
}

// Publish marks a post published and stamps published_at. Publishing an
// already-published post refreshes neither flag nor timestamp.
func (r *BlogPostsRepository) Publish(ctx context.Context, id int64) (*model.BlogPost, error) {
	query := `
		UPDATE blog_posts
		SET is_published = TRUE, published_at = now(), updated_at = now()
		WHERE id = $1 AND NOT is_published`

	_, err := r.s.DB.Pool.Exec(ctx, query, id)
	if err != nil {
		return nil, sqlerr.HandleError(fmt.Errorf("table:blog_posts: %w", err))
	}

	// A no-op update means the post was already published or missing;
	// GetByID settles which.
	return r.GetByID(ctx, id)
}

// IncrementViewCount bumps a post's view counter atomically.
func (r *BlogPostsRepository) IncrementViewCount(ctx context.Context, id int64) error {
	query := `UPDATE blog_posts SET view_count = view_count + 1 WHERE id = $1`

	tag, err := r.s.DB.Pool.Exec(ctx, query, id)
	if err != nil {
		return sqlerr.HandleError(err)
	}
	if tag.RowsAffected() == 0 {
		return sqlerr.HandleError(fmt.Errorf("table:blog_posts: %w", pgx.ErrNoRows))
	}
	return nil
}

// Delete removes a post by primary key.
func (r *BlogPostsRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM blog_posts WHERE id = $1`

	tag, err := r.s.DB.Pool.Exec(ctx, query, id)
	if err != nil {
		return sqlerr.HandleError(err)
	}
	if tag.RowsAffected() == 0 {
		return sqlerr.HandleError(fmt.Errorf("table:blog_posts: %w", pgx.ErrNoRows))
	}
	return nil
}
