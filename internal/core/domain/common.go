package domain

import "time"

// Timestamps holds the creation/update times carried by every entity.
type Timestamps struct {
	CreatedAt time.Time
	UpdatedAt time.Time
}
