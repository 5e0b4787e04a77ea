package client

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/inkwell-cms/inkwell-go/internal/commenttree"
	"github.com/inkwell-cms/inkwell-go/internal/model"
)

// CommentsService covers comment creation and moderation endpoints.
type CommentsService struct {
	c *Client
}

// CommentInput is the create payload. A nil ReplyTo posts a top-level
// comment; otherwise the comment is a reply to that id.
type CommentInput struct {
	Content string `json:"content"`
	ReplyTo *int64 `json:"reply_to,omitempty"`
}

// Create posts a comment on an article.
func (s *CommentsService) Create(ctx context.Context, articleID int64, in CommentInput) (*model.CommentNode, error) {
	var out model.CommentNode
	if err := s.c.do(ctx, http.MethodPost, fmt.Sprintf("articles/%d/comments", articleID), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update replaces a comment's content.
func (s *CommentsService) Update(ctx context.Context, id int64, content string) (*model.CommentNode, error) {
	var out model.CommentNode
	in := map[string]string{"content": content}
	if err := s.c.do(ctx, http.MethodPut, fmt.Sprintf("comments/%d", id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a comment; the backend discards nested replies with it.
func (s *CommentsService) Delete(ctx context.Context, id int64) error {
	return s.c.do(ctx, http.MethodDelete, fmt.Sprintf("comments/%d", id), nil, nil, nil)
}

// Section binds one article's comment tree to the API: every mutation
// round-trips to the server, then reconciles the in-memory snapshot via
// the commenttree operations. A mutex serializes snapshot updates (the
// single-writer rule the pure reconciler requires), while Tree hands out
// the current immutable snapshot to any number of readers.
type Section struct {
	svc       *CommentsService
	articleID int64

	mu   sync.Mutex
	tree []*model.CommentNode
}

// Section returns a comment-section controller for the article.
func (s *CommentsService) Section(articleID int64) *Section {
	return &Section{svc: s, articleID: articleID}
}

// Load fetches the article's comment tree, replacing the snapshot.
func (s *Section) Load(ctx context.Context) error {
	nodes, err := s.svc.c.Articles.Comments(ctx, s.articleID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.tree = nodes
	s.mu.Unlock()
	return nil
}

// Tree returns the current snapshot. The snapshot is immutable; callers
// may hold it across later mutations without copying.
func (s *Section) Tree() []*model.CommentNode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree
}

// Add posts a comment and attaches the server's node to the snapshot:
// under its parent when the response carries a reply_to, at top level
// otherwise.
func (s *Section) Add(ctx context.Context, content string) (*model.CommentNode, error) {
	return s.post(ctx, CommentInput{Content: content})
}

// Reply posts a reply to parentID. If the parent vanished from the
// snapshot in the meantime (racing delete), the reply is not attached;
// the server's answer is still returned.
func (s *Section) Reply(ctx context.Context, parentID int64, content string) (*model.CommentNode, error) {
	return s.post(ctx, CommentInput{Content: content, ReplyTo: &parentID})
}

func (s *Section) post(ctx context.Context, in CommentInput) (*model.CommentNode, error) {
	node, err := s.svc.Create(ctx, s.articleID, in)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if node.ReplyTo != nil {
		s.tree = commenttree.InsertReply(s.tree, *node.ReplyTo, node)
	} else {
		s.tree = commenttree.InsertTopLevel(s.tree, node)
	}
	return node, nil
}

// Edit updates a comment and replaces it in place in the snapshot. A
// node already gone from the snapshot is left alone; absence is data, not
// an error.
func (s *Section) Edit(ctx context.Context, id int64, content string) (*model.CommentNode, error) {
	node, err := s.svc.Update(ctx, id, content)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tree = commenttree.FindAndUpdate(s.tree, id, func(old *model.CommentNode) *model.CommentNode {
		// keep the nested replies the server response does not echo back
		cp := *node
		cp.Replies = old.Replies
		return &cp
	})
	return node, nil
}

// Remove deletes a comment and detaches it, along with its whole reply
// subtree, from the snapshot.
func (s *Section) Remove(ctx context.Context, id int64) error {
	if err := s.svc.Delete(ctx, id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tree = commenttree.FindAndRemove(s.tree, id)
	return nil
}
