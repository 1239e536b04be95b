package service

import "blog.com/cmd/model"

// CreateCommentRequest ParentComment 为空表示顶层评论
type CreateCommentRequest struct {
	Text          string `json:"text" vd:"len($)>0"`
	Post          int64  `json:"post" vd:"$>0"`
	ParentComment int64  `json:"parentComment"`
}

type UpdateCommentRequest struct {
	Id            int64  `json:"id" vd:"$>0"`
	Text          string `json:"text" vd:"len($)>0"`
	Post          int64  `json:"post" vd:"$>0"`
	User          int64  `json:"user" vd:"$>0"`
	ParentComment int64  `json:"parentComment"`
}

type DeleteCommentRequest struct {
	Id int64 `json:"id" vd:"$>0"`
}

type CommentList struct {
	Comments      []*model.CommentInfo `json:"comments"`
	CommentsCount int64                `json:"commentsCount"`
}

type CommentPage struct {
	Comments              []*model.CommentInfo `json:"comments"`
	CommentsCount         int64                `json:"commentsCount"`
	ResultPerPage         int                  `json:"resultPerPage"`
	FilteredCommentsCount int64                `json:"filteredCommentsCount"`
}
