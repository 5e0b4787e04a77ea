package commenttree

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inkwell-cms/inkwell-go/internal/model"
)

func node(id int64, content string, replies ...*model.CommentNode) *model.CommentNode {
	return &model.CommentNode{ID: id, Content: content, Replies: replies}
}

// fixture:
//
//	1
//	├── 3
//	└── 4
//	    └── 7
//	        ├── 9
//	        └── 10
//	2
//	└── 5
func fixture() []*model.CommentNode {
	return []*model.CommentNode{
		node(1, "first",
			node(3, "re: first"),
			node(4, "also re: first",
				node(7, "deep",
					node(9, "deeper"),
					node(10, "deeper still"),
				),
			),
		),
		node(2, "second",
			node(5, "re: second"),
		),
	}
}

func TestFindAndUpdate_DoesNotMutateOriginal(t *testing.T) {
	t.Parallel()

	tree := fixture()
	before := fixture()

	_ = FindAndUpdate(tree, 9, func(n *model.CommentNode) *model.CommentNode {
		cp := *n
		cp.Content = "edited"
		return &cp
	})

	require.Equal(t, before, tree)
}

func TestFindAndUpdate_RebuildsOnlyAncestorPath(t *testing.T) {
	t.Parallel()

	tree := fixture()
	got := FindAndUpdate(tree, 9, func(n *model.CommentNode) *model.CommentNode {
		cp := *n
		cp.Content = "edited"
		return &cp
	})

	// target replaced
	require.Equal(t, "edited", Find(got, 9).Content)
	require.Equal(t, "deeper", Find(tree, 9).Content)

	// path nodes are fresh copies
	require.NotSame(t, tree[0], got[0])
	require.NotSame(t, Find(tree, 4), Find(got, 4))
	require.NotSame(t, Find(tree, 7), Find(got, 7))

	// every sibling of every ancestor is reference-identical
	require.Same(t, tree[1], got[1])
	require.Same(t, Find(tree, 3), Find(got, 3))
	require.Same(t, Find(tree, 10), Find(got, 10))
	require.Same(t, Find(tree, 5), Find(got, 5))
}

func TestFindAndUpdate_MissingIDIsNoOp(t *testing.T) {
	t.Parallel()

	tree := fixture()
	called := false
	got := FindAndUpdate(tree, 999, func(n *model.CommentNode) *model.CommentNode {
		called = true
		return n
	})

	require.False(t, called)
	require.Equal(t, fixture(), got)
}

func TestFindAndRemove_RemovesSubtree(t *testing.T) {
	t.Parallel()

	tree := fixture()
	got := FindAndRemove(tree, 7)

	// node 7 and both of its replies are gone
	require.Nil(t, Find(got, 7))
	require.Nil(t, Find(got, 9))
	require.Nil(t, Find(got, 10))

	// sibling branch untouched, by reference
	require.Same(t, tree[1], got[1])
	require.Same(t, Find(tree, 3), Find(got, 3))

	// original still has the subtree
	require.NotNil(t, Find(tree, 7))
	require.Equal(t, 7, Count(tree))
	require.Equal(t, 4, Count(got))
}

func TestFindAndRemove_TopLevel(t *testing.T) {
	t.Parallel()

	tree := fixture()
	got := FindAndRemove(tree, 1)

	require.Len(t, got, 1)
	require.Same(t, tree[1], got[0])
	require.Nil(t, Find(got, 4))
}

func TestFindAndRemove_MissingIDIsNoOp(t *testing.T) {
	t.Parallel()

	tree := fixture()
	got := FindAndRemove(tree, 999)
	require.Equal(t, fixture(), got)
}

func TestInsertTopLevel_AppendsAtEnd(t *testing.T) {
	t.Parallel()

	tree := fixture()
	fresh := &model.CommentNode{ID: 42, Content: "hello"}
	got := InsertTopLevel(tree, fresh)

	require.Len(t, got, 3)
	require.Same(t, fresh, got[2])
	require.Len(t, tree, 2)
}

func TestInsertReply_AppendsUnderParent(t *testing.T) {
	t.Parallel()

	tree := fixture()
	parent := int64(7)
	fresh := &model.CommentNode{ID: 42, Content: "nice point", ReplyTo: &parent}
	got := InsertReply(tree, 7, fresh)

	replies := Find(got, 7).Replies
	require.Len(t, replies, 3)
	require.Same(t, fresh, replies[2])

	// no other node's replies changed
	require.Same(t, Find(tree, 3), Find(got, 3))
	require.Same(t, tree[1], got[1])
	require.Len(t, Find(tree, 7).Replies, 2)
}

func TestInsertReply_CreatesRepliesSlice(t *testing.T) {
	t.Parallel()

	tree := fixture()
	got := InsertReply(tree, 5, &model.CommentNode{ID: 42})
	require.Len(t, Find(got, 5).Replies, 1)
	require.Nil(t, Find(tree, 5).Replies)
}

func TestInsertReply_DeletedParentDropsReply(t *testing.T) {
	t.Parallel()

	tree := fixture()
	got := InsertReply(tree, 999, &model.CommentNode{ID: 42})

	require.Equal(t, fixture(), got)
	require.Nil(t, Find(got, 42))
}

func TestCount(t *testing.T) {
	t.Parallel()

	require.Equal(t, 7, Count(fixture()))
	require.Equal(t, 0, Count(nil))
}
