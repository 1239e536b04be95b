package main

import (
	"blog.com/cmd/api/handlers/auth"
	"blog.com/cmd/api/handlers/category"
	"blog.com/cmd/api/handlers/comment"
	"blog.com/cmd/api/handlers/health"
	"blog.com/cmd/api/handlers/post"
	"blog.com/cmd/api/handlers/user"
	"blog.com/cmd/api/handlers/video"
	"blog.com/cmd/api/router/authfunc"
	"blog.com/pkg/constants"
	"blog.com/pkg/middleware"
	"github.com/cloudwego/hertz/pkg/app/server"
)

func register(r *server.Hertz) {
	r.GET("/health", health.Check)

	authorOrAdmin := authfunc.RequireRoles(constants.RoleAuthor, constants.RoleAdmin)
	admin := authfunc.RequireRoles(constants.RoleAdmin)

	a := r.Group("/auth")
	{
		a.POST("", middleware.Sentinel(middleware.ResourceLogin), auth.Login)
		a.POST("/register", middleware.Sentinel(middleware.ResourceRegister), auth.Register)
		a.GET("/refresh", auth.Refresh)
		a.POST("/logout", auth.Logout)
	}

	u := r.Group("/users", authfunc.Auth()...)
	{
		u.GET("", user.GetUsers)
		u.GET("/all", user.GetAllUsers)
		u.PATCH("/password", user.UpdatePassword)
		u.PATCH("/avatar", user.UpdateAvatar)
		u.POST("", authorOrAdmin, user.CreateUser)
		u.PATCH("", authorOrAdmin, user.UpdateUser)
		u.DELETE("", middleware.Sentinel(middleware.ResourceDelete), user.DeleteUser)
	}

	p := r.Group("/posts")
	{
		p.GET("", post.GetPosts)
		p.GET("/all", post.GetAllPosts)
		pa := p.Group("", authfunc.Auth()...)
		pa.GET("/users", post.GetPostsByPopularUsers)
		pa.GET("/tags", post.GetTags)
		pa.GET("/:param", post.GetPostsByParam)
		pa.GET("/single/:param", post.GetSinglePost)
		pa.GET("/cats/:param", post.GetCategoriesPosts)
		pa.PATCH("/likes/:id", middleware.Sentinel(middleware.ResourceLike), post.LikePost)
		pa.POST("", authorOrAdmin, post.CreatePost)
		pa.PATCH("", authorOrAdmin, post.UpdatePost)
		pa.DELETE("", authorOrAdmin, post.DeletePost)
	}

	c := r.Group("/comments", authfunc.Auth()...)
	{
		c.GET("", comment.GetComments)
		c.GET("/all", comment.GetAllComments)
		c.POST("", middleware.Sentinel(middleware.ResourceComment), comment.CreateComment)
		c.PATCH("/like/:id", middleware.Sentinel(middleware.ResourceLike), comment.LikeComment)
		c.PATCH("", admin, comment.UpdateComment)
		c.DELETE("", comment.DeleteComment)
	}

	cat := r.Group("/categories")
	{
		cat.GET("", category.GetCategories)
		cat.GET("/:title", category.GetCategory)
		ca := cat.Group("", append(authfunc.Auth(), admin)...)
		ca.POST("", category.CreateCategory)
		ca.PATCH("", category.UpdateCategory)
		ca.DELETE("", category.DeleteCategory)
	}

	v := r.Group("/videos")
	{
		v.GET("", video.GetVideos)
		va := v.Group("", append(authfunc.Auth(), authorOrAdmin)...)
		va.GET("/:param", video.GetVideo)
		va.POST("", video.CreateVideo)
		va.PATCH("", video.UpdateVideo)
		va.DELETE("", video.DeleteVideo)
	}
}
