package client

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inkwell-cms/inkwell-go/internal/commenttree"
	"github.com/inkwell-cms/inkwell-go/internal/model"
)

// commentBackend serves one article's comment endpoints and assigns
// sequential ids to created comments.
type commentBackend struct {
	nextID  atomic.Int64
	initial []*model.CommentNode
	deleted atomic.Int64
}

func (b *commentBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/articles/42/comments/", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(b.initial)
	})
	mux.HandleFunc("POST /api/v1/articles/42/comments/", func(w http.ResponseWriter, r *http.Request) {
		var in CommentInput
		_ = json.NewDecoder(r.Body).Decode(&in)
		node := model.CommentNode{
			ID:      b.nextID.Add(1),
			Content: in.Content,
			ReplyTo: in.ReplyTo,
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(node)
	})
	mux.HandleFunc("PUT /api/v1/comments/{id}/", func(w http.ResponseWriter, r *http.Request) {
		var in map[string]string
		_ = json.NewDecoder(r.Body).Decode(&in)
		id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
		_ = json.NewEncoder(w).Encode(model.CommentNode{ID: id, Content: in["content"]})
	})
	mux.HandleFunc("DELETE /api/v1/comments/{id}/", func(w http.ResponseWriter, r *http.Request) {
		b.deleted.Add(1)
		w.WriteHeader(http.StatusNoContent)
	})
	return mux
}

func loadedSection(t *testing.T, initial []*model.CommentNode) (*Section, *commentBackend) {
	t.Helper()
	b := &commentBackend{initial: initial}
	b.nextID.Store(100)
	c, _ := newTestClient(t, b.handler())
	sec := c.Comments.Section(42)
	require.NoError(t, sec.Load(context.Background()))
	return sec, b
}

func seededThread() []*model.CommentNode {
	return []*model.CommentNode{
		{ID: 1, Content: "root", Replies: []*model.CommentNode{
			{ID: 2, Content: "child", Replies: []*model.CommentNode{
				{ID: 3, Content: "grandchild"},
			}},
		}},
		{ID: 4, Content: "second root"},
	}
}

func TestSection_LoadAndAdd(t *testing.T) {
	t.Parallel()

	sec, _ := loadedSection(t, seededThread())
	require.Equal(t, 4, commenttree.Count(sec.Tree()))

	node, err := sec.Add(context.Background(), "hello")
	require.NoError(t, err)
	require.Nil(t, node.ReplyTo)

	tree := sec.Tree()
	require.Len(t, tree, 3)
	require.Same(t, node, tree[2])
	require.Equal(t, "hello", tree[2].Content)
}

func TestSection_ReplyAttachesUnderParent(t *testing.T) {
	t.Parallel()

	sec, _ := loadedSection(t, seededThread())
	before := sec.Tree()

	node, err := sec.Reply(context.Background(), 2, "nested reply")
	require.NoError(t, err)
	require.NotNil(t, node.ReplyTo)

	after := sec.Tree()
	parent := commenttree.Find(after, 2)
	require.NotNil(t, parent)
	require.Len(t, parent.Replies, 2)
	require.Same(t, node, parent.Replies[1])

	// untouched branches keep their identity across the mutation
	require.Same(t, before[1], after[1])
	require.Same(t, before[0].Replies[0].Replies[0], after[0].Replies[0].Replies[0])
}

func TestSection_ReplyToVanishedParentIsDropped(t *testing.T) {
	t.Parallel()

	sec, _ := loadedSection(t, seededThread())

	node, err := sec.Reply(context.Background(), 999, "racing a delete")
	require.NoError(t, err)
	require.NotNil(t, node)
	require.Equal(t, 4, commenttree.Count(sec.Tree()))
	require.Nil(t, commenttree.Find(sec.Tree(), node.ID))
}

func TestSection_EditPreservesReplies(t *testing.T) {
	t.Parallel()

	sec, _ := loadedSection(t, seededThread())

	_, err := sec.Edit(context.Background(), 2, "child edited")
	require.NoError(t, err)

	tree := sec.Tree()
	edited := commenttree.Find(tree, 2)
	require.Equal(t, "child edited", edited.Content)
	require.Len(t, edited.Replies, 1)
	require.Equal(t, int64(3), edited.Replies[0].ID)
	require.Same(t, tree[1], sec.Tree()[1])
}

func TestSection_RemoveDetachesSubtree(t *testing.T) {
	t.Parallel()

	sec, b := loadedSection(t, seededThread())

	require.NoError(t, sec.Remove(context.Background(), 1))
	require.Equal(t, int64(1), b.deleted.Load())

	tree := sec.Tree()
	require.Len(t, tree, 1)
	require.Equal(t, int64(4), tree[0].ID)
	require.Nil(t, commenttree.Find(tree, 2))
	require.Nil(t, commenttree.Find(tree, 3))
}

func TestSection_SnapshotIsStableAcrossMutations(t *testing.T) {
	t.Parallel()

	sec, _ := loadedSection(t, seededThread())
	snapshot := sec.Tree()

	_, err := sec.Add(context.Background(), "later comment")
	require.NoError(t, err)
	require.NoError(t, sec.Remove(context.Background(), 4))

	// the earlier snapshot still reads as it did when taken
	require.Len(t, snapshot, 2)
	require.Equal(t, int64(4), snapshot[1].ID)
}
