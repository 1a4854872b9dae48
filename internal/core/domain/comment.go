package domain

// Comment belongs to a blog and a user. ParentID links replies into a tree;
// storage stays flat and the tree is built on read.
type Comment struct {
	CommentID string
	Content   string
	BlogID    string
	UserID    string
	ParentID  *string
	IsEdited  bool
	Timestamps
}

// CommentWithAuthor is a comment decorated with display fields of its
// author, as returned by list queries.
type CommentWithAuthor struct {
	Comment
	AuthorUsername string
	AuthorAvatar   string
}

// CommentNode is a comment with its resolved replies.
type CommentNode struct {
	CommentWithAuthor
	Replies []*CommentNode
}

// BuildCommentTree assembles flat comments into reply trees keyed by parent
// ID. Input order is preserved within each level, so comments fetched
// newest-first produce newest-first trees. Comments whose parent is missing
// from the input are treated as roots rather than dropped.
func BuildCommentTree(comments []CommentWithAuthor) []*CommentNode {
	nodes := make(map[string]*CommentNode, len(comments))
	order := make([]*CommentNode, 0, len(comments))
	for i := range comments {
		n := &CommentNode{CommentWithAuthor: comments[i]}
		nodes[n.CommentID] = n
		order = append(order, n)
	}

	var roots []*CommentNode
	for _, n := range order {
		if n.ParentID != nil {
			if parent, ok := nodes[*n.ParentID]; ok {
				parent.Replies = append(parent.Replies, n)
				continue
			}
		}
		roots = append(roots, n)
	}
	return roots
}
