package service

import "blog.com/cmd/model"

type CreatePostRequest struct {
	Title    string   `json:"title" vd:"len($)>0"`
	Text     string   `json:"text" vd:"len($)>0"`
	Category int64    `json:"category" vd:"$>0"`
	Tags     []string `json:"tags" vd:"len($)>0"`
	User     int64    `json:"user"`
	ImageUrl string   `json:"imageUrl" vd:"len($)>0"`
}

// UpdatePostRequest ImageUrl 为空时保留原图
type UpdatePostRequest struct {
	Id       int64    `json:"id" vd:"$>0"`
	Title    string   `json:"title" vd:"len($)>0"`
	Text     string   `json:"text" vd:"len($)>0"`
	Category int64    `json:"category" vd:"$>0"`
	Tags     []string `json:"tags" vd:"len($)>0"`
	User     int64    `json:"user"`
	ImageUrl string   `json:"imageUrl"`
}

type DeletePostRequest struct {
	Id int64 `json:"id" vd:"$>0"`
}

type PostList struct {
	Posts      []*model.PostInfo `json:"posts"`
	PostsCount int64             `json:"postsCount"`
}

type PostPage struct {
	Posts              []*model.PostInfo `json:"posts"`
	PostsCount         int64             `json:"postsCount"`
	ResultPerPage      int               `json:"resultPerPage"`
	FilteredPostsCount int64             `json:"filteredPostsCount"`
}

type TagsResult struct {
	Tags  []string           `json:"tags"`
	Likes []*model.LikedPost `json:"likes"`
}

type SinglePost struct {
	Post     *model.PostInfo      `json:"post,omitempty"`
	Comments []*model.CommentInfo `json:"comments"`
}

type CreateCategoryRequest struct {
	Title          string `json:"title" vd:"len($)>0"`
	ParentCategory int64  `json:"parentCategory"`
}

type UpdateCategoryRequest struct {
	Id             int64  `json:"id" vd:"$>0"`
	Title          string `json:"title" vd:"len($)>0"`
	ParentCategory int64  `json:"parentCategory"`
}

type DeleteCategoryRequest struct {
	Id int64 `json:"id" vd:"$>0"`
}

type CategoryList struct {
	Categories []*model.Category `json:"categories"`
	Count      int64             `json:"count"`
}
