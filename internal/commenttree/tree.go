// Package commenttree holds pure functions over an immutable snapshot of a
// nested comment tree. Operations never mutate their input: ancestors on
// the path to a changed node are copied, everything off that path is
// shared by reference with the original snapshot. Callers own sequencing;
// they must apply each operation to the latest snapshot.
package commenttree

import "github.com/inkwell-cms/inkwell-go/internal/model"

// UpdateFunc maps an existing node to its replacement. It must not mutate
// the node it receives; return a modified copy instead.
type UpdateFunc func(*model.CommentNode) *model.CommentNode

// FindAndUpdate replaces the node with targetID by fn(node), rebuilding
// the ancestor path and sharing every untouched branch. A missing target
// is not an error: the original tree is returned unchanged (updates can
// race deletes).
func FindAndUpdate(tree []*model.CommentNode, targetID int64, fn UpdateFunc) []*model.CommentNode {
	out, _ := update(tree, targetID, fn)
	return out
}

func update(nodes []*model.CommentNode, targetID int64, fn UpdateFunc) ([]*model.CommentNode, bool) {
	for i, n := range nodes {
		if n.ID == targetID {
			out := make([]*model.CommentNode, len(nodes))
			copy(out, nodes)
			out[i] = fn(n)
			return out, true
		}
		if len(n.Replies) == 0 {
			continue
		}
		if replies, ok := update(n.Replies, targetID, fn); ok {
			out := make([]*model.CommentNode, len(nodes))
			copy(out, nodes)
			parent := *n
			parent.Replies = replies
			out[i] = &parent
			return out, true
		}
	}
	return nodes, false
}

// FindAndRemove drops the node with targetID, wherever it sits, together
// with its whole subtree. Siblings and their subtrees are preserved
// verbatim. A missing target returns the tree unchanged.
func FindAndRemove(tree []*model.CommentNode, targetID int64) []*model.CommentNode {
	out, _ := remove(tree, targetID)
	return out
}

func remove(nodes []*model.CommentNode, targetID int64) ([]*model.CommentNode, bool) {
	for i, n := range nodes {
		if n.ID == targetID {
			out := make([]*model.CommentNode, 0, len(nodes)-1)
			out = append(out, nodes[:i]...)
			out = append(out, nodes[i+1:]...)
			return out, true
		}
		if len(n.Replies) == 0 {
			continue
		}
		if replies, ok := remove(n.Replies, targetID); ok {
			out := make([]*model.CommentNode, len(nodes))
			copy(out, nodes)
			parent := *n
			parent.Replies = replies
			out[i] = &parent
			return out, true
		}
	}
	return nodes, false
}

// InsertReply appends newNode to the parent's replies, creating the slice
// when absent. Insertion order is preserved: the newest reply goes last.
// If the parent no longer exists the tree is returned unchanged and the
// reply is simply not visible.
func InsertReply(tree []*model.CommentNode, parentID int64, newNode *model.CommentNode) []*model.CommentNode {
	return FindAndUpdate(tree, parentID, func(parent *model.CommentNode) *model.CommentNode {
		cp := *parent
		replies := make([]*model.CommentNode, 0, len(parent.Replies)+1)
		replies = append(replies, parent.Replies...)
		replies = append(replies, newNode)
		cp.Replies = replies
		return &cp
	})
}

// InsertTopLevel appends newNode to the root list.
func InsertTopLevel(tree []*model.CommentNode, newNode *model.CommentNode) []*model.CommentNode {
	out := make([]*model.CommentNode, 0, len(tree)+1)
	out = append(out, tree...)
	out = append(out, newNode)
	return out
}

// Find returns the node with targetID at any depth, or nil.
func Find(tree []*model.CommentNode, targetID int64) *model.CommentNode {
	for _, n := range tree {
		if n.ID == targetID {
			return n
		}
		if found := Find(n.Replies, targetID); found != nil {
			return found
		}
	}
	return nil
}

// Count returns the total number of nodes in the tree, replies included.
func Count(tree []*model.CommentNode) int {
	total := 0
	for _, n := range tree {
		total += 1 + Count(n.Replies)
	}
	return total
}
