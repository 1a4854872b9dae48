package services

import "context"

// Mailer sends transactional email. Implementations must be safe for
// concurrent use; callers fire sends from goroutines.
type Mailer interface {
	SendVerificationEmail(ctx context.Context, to string, username string, token string) error
	SendPasswordResetEmail(ctx context.Context, to string, username string, token string) error
}

// ImageStore persists uploaded images and returns their public URL.
type ImageStore interface {
	UploadImage(ctx context.Context, key string, contentType string, body []byte) (string, error)
}
