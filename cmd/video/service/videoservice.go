package service

import (
	"context"
	"strings"

	"blog.com/cmd/model"
	"blog.com/cmd/video/dal/db"
	"blog.com/pkg/constants"
	"blog.com/pkg/errno"
	"blog.com/pkg/utils"
	"github.com/pkg/errors"
)

type CreateVideoRequest struct {
	Title     string `json:"title" vd:"len($)>0"`
	YoutubeId string `json:"youtubeId" vd:"len($)>0"`
}

type UpdateVideoRequest struct {
	Id        int64  `json:"id" vd:"$>0"`
	Title     string `json:"title" vd:"len($)>0"`
	YoutubeId string `json:"youtubeId" vd:"len($)>0"`
}

type DeleteVideoRequest struct {
	Id int64 `json:"id" vd:"$>0"`
}

type VideoList struct {
	Videos      []*model.Video `json:"videos"`
	VideosCount int64          `json:"videosCount"`
}

type VideoService struct {
	ctx context.Context
}

func NewVideoService(ctx context.Context) *VideoService {
	return &VideoService{ctx: ctx}
}

// EmbedURL youtube 视频 id 对应的嵌入地址
func EmbedURL(youtubeId string) (string, error) {
	youtubeId = strings.TrimSpace(youtubeId)
	if youtubeId == "" || strings.ContainsAny(youtubeId, "/?&# ") {
		return "", errno.ParamErr.WithMessage("Invalid youtube id")
	}
	return constants.YoutubeEmbedBase + youtubeId, nil
}

func (s *VideoService) GetVideos(keyword string) (*VideoList, error) {
	videos, count, err := db.Videosearch(s.ctx, strings.TrimSpace(keyword))
	if err != nil {
		return nil, errors.WithMessage(err, "dao.Videosearch failed")
	}
	return &VideoList{Videos: videos, VideosCount: count}, nil
}

func (s *VideoService) GetVideo(videoId int64) (*model.Video, error) {
	return db.VisitVideo(s.ctx, videoId)
}

func (s *VideoService) CreateVideo(req *CreateVideoRequest) (*model.Video, error) {
	url, err := EmbedURL(req.YoutubeId)
	if err != nil {
		return nil, err
	}
	if err = db.CheckDuplicateTitle(s.ctx, req.Title, 0); err != nil {
		return nil, err
	}
	now := utils.Now()
	video := &model.Video{
		VideoId:   utils.GenerateID(),
		Title:     req.Title,
		VideoUrl:  url,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err = db.CreateVideo(s.ctx, video); err != nil {
		return nil, errors.WithMessage(err, "dao.CreateVideo failed")
	}
	return video, nil
}

func (s *VideoService) UpdateVideo(req *UpdateVideoRequest) (*model.Video, error) {
	url, err := EmbedURL(req.YoutubeId)
	if err != nil {
		return nil, err
	}
	video, err := db.FindVideo(s.ctx, req.Id)
	if err != nil {
		return nil, err
	}
	if err = db.CheckDuplicateTitle(s.ctx, req.Title, req.Id); err != nil {
		return nil, err
	}
	video.Title = req.Title
	video.VideoUrl = url
	video.UpdatedAt = utils.Now()
	if err = db.UpdateVideo(s.ctx, video); err != nil {
		return nil, errors.WithMessage(err, "dao.UpdateVideo failed")
	}
	return video, nil
}

func (s *VideoService) DeleteVideo(req *DeleteVideoRequest) (*model.Video, error) {
	video, err := db.FindVideo(s.ctx, req.Id)
	if err != nil {
		return nil, err
	}
	if err = db.DeleteVideo(s.ctx, video.VideoId); err != nil {
		return nil, errors.WithMessage(err, "dao.DeleteVideo failed")
	}
	return video, nil
}
