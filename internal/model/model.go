// Package model defines domain entities exchanged with the Inkwell API.
package model

import "time"

// TokenPair collects the issued access/refresh tokens.
type TokenPair struct {
	AccessToken  string `json:"access"`
	RefreshToken string `json:"refresh"`
}

// User is the account record the server returns on login and profile reads.
// It is replaced wholesale on login/refresh/profile update.
type User struct {
	ID       int64    `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	IsStaff  bool     `json:"is_staff"`
	Groups   []string `json:"groups"`
}

// ArticleStatus is the server-side publication state of an article.
type ArticleStatus string

const (
	StatusDraft     ArticleStatus = "draft"
	StatusPublished ArticleStatus = "published"
	StatusArchived  ArticleStatus = "archived"
)

// Article is a single blog post. The ID is server-assigned; the client
// never generates one.
type Article struct {
	ID              int64         `json:"id"`
	Title           string        `json:"title"`
	Content         string        `json:"content"`
	AuthorID        int64         `json:"author_id"`
	AuthorUsername  string        `json:"author_username"`
	PublicationDate time.Time     `json:"publication_date"`
	Tags            []string      `json:"tags"`
	Status          ArticleStatus `json:"status"`
	CommentCount    int           `json:"comment_count"`
}

// OwnedBy reports the author for ownership checks.
func (a *Article) OwnedBy() int64 { return a.AuthorID }

// CommentNode is one comment plus its nested replies. ReplyTo carries the
// server-side parent linkage; Replies is the client-side nesting used for
// rendering. Invariant: every node in Replies has ReplyTo equal to the
// parent's ID. Depth is unbounded.
type CommentNode struct {
	ID             int64          `json:"id"`
	Content        string         `json:"content"`
	AuthorID       int64          `json:"author_id"`
	AuthorUsername string         `json:"author_username"`
	CreatedAt      time.Time      `json:"created_at"`
	ReplyTo        *int64         `json:"reply_to"`
	Replies        []*CommentNode `json:"replies,omitempty"`
}

// OwnedBy reports the author for ownership checks.
func (c *CommentNode) OwnedBy() int64 { return c.AuthorID }

// ArticleList is one page of a paginated article listing.
type ArticleList struct {
	Results     []Article `json:"results"`
	Count       int       `json:"count"`
	TotalPages  int       `json:"total_pages"`
	CurrentPage int       `json:"current_page"`
}
