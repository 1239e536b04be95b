package cache

import "fmt"

const (
	TagsKey        = "blog:posts:tags"
	commentRateKey = "blog:ratelimit:comment:%d"
	userDeleteLock = "lock:user:delete:%d"
)

func CommentRateKey(userId int64) string    { return fmt.Sprintf(commentRateKey, userId) }
func UserDeleteLockKey(userId int64) string { return fmt.Sprintf(userDeleteLock, userId) }
