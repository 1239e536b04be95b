package constants

const (
	DataFormate = "2006-01-02 15:04:05"

	ServiceName = "Blog"

	IdentityKey = "id"

	RefreshCookieName = "jwt"

	RoleUser   = "User"
	RoleAuthor = "Author"
	RoleAdmin  = "Admin"

	DefaultAvatarPublicId = "blog/avatars/Profile_default"
	DefaultAvatarUrl      = "/blog/avatars/Profile_default.png"

	AvatarFolder = "blog/avatars"
	PostFolder   = "blog/posts"

	UsersPerPage    = 4
	PostsPerPage    = 4
	ParamPostsPage  = 6
	CommentsPerPage = 8

	TopAuthorsLimit  = 3
	TopLikedLimit    = 3
	HomeBannerTag    = "$home_banner&"
	HomeBigPostTag   = "$big_post&"
	YoutubeEmbedBase = "https://www.youtube.com/embed/"

	CommentRateLimit       = 10
	CommentRateLimitWindow = 60
)
