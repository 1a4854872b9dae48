package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-labs/blog_backend/internal/core/domain"
)

func flatComment(id string, parentID *string) domain.CommentWithAuthor {
	return domain.CommentWithAuthor{
		Comment: domain.Comment{CommentID: id, ParentID: parentID, Content: id},
	}
}

func TestBuildCommentTree_NestsReplies(t *testing.T) {
	rootA := "a"
	rootB := "b"
	reply := "a1"

	tree := domain.BuildCommentTree([]domain.CommentWithAuthor{
		flatComment(rootB, nil),
		flatComment(rootA, nil),
		flatComment(reply, &rootA),
		flatComment("a1x", &reply),
	})

	require.Len(t, tree, 2)
	// Input order is preserved at every level.
	assert.Equal(t, rootB, tree[0].CommentID)
	assert.Equal(t, rootA, tree[1].CommentID)
	require.Len(t, tree[1].Replies, 1)
	assert.Equal(t, reply, tree[1].Replies[0].CommentID)
	require.Len(t, tree[1].Replies[0].Replies, 1)
	assert.Equal(t, "a1x", tree[1].Replies[0].Replies[0].CommentID)
}

func TestBuildCommentTree_OrphanBecomesRoot(t *testing.T) {
	missing := "gone"

	tree := domain.BuildCommentTree([]domain.CommentWithAuthor{
		flatComment("orphan", &missing),
		flatComment("root", nil),
	})

	require.Len(t, tree, 2)
	assert.Equal(t, "orphan", tree[0].CommentID)
	assert.Equal(t, "root", tree[1].CommentID)
}

func TestBuildCommentTree_Empty(t *testing.T) {
	assert.Empty(t, domain.BuildCommentTree(nil))
}
