package domain

import "time"

// Like records that a user liked a blog. The (blog, user) pair is unique;
// toggling is the only mutation path.
type Like struct {
	LikeID    string
	BlogID    string
	UserID    string
	CreatedAt time.Time
}
