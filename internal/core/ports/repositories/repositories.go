package repositories

// RepositoryProvider bundles one backend's repositories. Constructed once
// at startup by the store selector and injected into the services; nothing
// below the selector ever branches on backend kind.
type RepositoryProvider struct {
	UserRepo     UserRepositoryFacade
	BlogRepo     BlogRepositoryFacade
	CategoryRepo CategoryRepositoryFacade
	TagRepo      TagRepositoryFacade
	CommentRepo  CommentRepositoryFacade
	LikeRepo     LikeRepositoryFacade
}
