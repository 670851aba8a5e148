package model

import "time"

// BlogPost is a post about Star Wars content. AuthorID is nullable: posts
// survive the deletion of their author with the reference cleared.
type BlogPost struct {
	ID               int64      `json:"id"`
	Title            string     `json:"title"`
	Content          string     `json:"content"`
	Slug             string     `json:"slug"`
	AuthorID         *int64     `json:"author_id"`
	IsPublished      bool       `json:"is_published"`
	PublishedAt      *time.Time `json:"published_at"`
	FeaturedImageURL *string    `json:"featured_image_url"`
	Excerpt          *string    `json:"excerpt"`
	Tags             *string    `json:"-"`
	ViewCount        int        `json:"view_count"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at"`

	// Author is the loaded relation for AuthorID.
	Author *User `json:"author"`
}

// TagList exposes the comma-joined tags column as a sequence. Unset tags are
// an empty sequence, never nil.
func (b *BlogPost) TagList() []string {
	return splitTags(b.Tags)
}

// Serialize projects the post for transmission.
//
// The author is embedded in a reduced shape (username and display name only)
// rather than the full User projection, so post payloads cannot leak account
// fields.
func (b *BlogPost) Serialize() map[string]any {
	var author any
	if b.Author != nil {
		author = b.Author.serializeAuthor()
	}

	return map[string]any{
		"id":                 b.ID,
		"title":              b.Title,
		"content":            b.Content,
		"slug":               b.Slug,
		"author_id":          idOrNil(b.AuthorID),
		"author":             author,
		"is_published":       b.IsPublished,
		"published_at":       formatTimePtr(b.PublishedAt),
		"featured_image_url": strOrNil(b.FeaturedImageURL),
		"excerpt":            strOrNil(b.Excerpt),
		"tags":               b.TagList(),
		"view_count":         b.ViewCount,
		"created_at":         formatTime(b.CreatedAt),
		"updated_at":         formatTimePtr(b.UpdatedAt),
	}
}
