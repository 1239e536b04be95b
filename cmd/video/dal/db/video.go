package db

import (
	"context"

	"blog.com/cmd/model"
	"blog.com/pkg/errno"
	"blog.com/pkg/query"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

func CreateVideo(ctx context.Context, video *model.Video) error {
	if err := DB.WithContext(ctx).Create(video).Error; err != nil {
		return errors.Wrapf(err, "CreateVideo failed, title: %s", video.Title)
	}
	return nil
}

func FindVideo(ctx context.Context, videoId int64) (*model.Video, error) {
	var video model.Video
	if err := DB.WithContext(ctx).Where("video_id = ?", videoId).Take(&video).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errno.NotFoundErr.WithMessage("Video not found")
		}
		return nil, errors.Wrapf(err, "FindVideo failed, videoId: %d", videoId)
	}
	return &video, nil
}

// Videosearch 标题模糊匹配，按创建时间倒序；同时返回视频总数
func Videosearch(ctx context.Context, keyword string) ([]*model.Video, int64, error) {
	var count int64
	if err := DB.WithContext(ctx).Model(&model.Video{}).Count(&count).Error; err != nil {
		return nil, 0, errors.Wrap(err, "Videosearch count failed")
	}
	var videos []*model.Video
	if err := DB.WithContext(ctx).Scopes(query.Search("title", keyword)).
		Order("created_at DESC").
		Find(&videos).Error; err != nil {
		return nil, 0, errors.Wrap(err, "Videosearch failed")
	}
	return videos, count, nil
}

// VisitVideo 浏览数加一后返回最新数据
func VisitVideo(ctx context.Context, videoId int64) (*model.Video, error) {
	res := DB.WithContext(ctx).Model(&model.Video{}).Where("video_id = ?", videoId).
		UpdateColumn("views", gorm.Expr("views + ?", 1))
	if res.Error != nil {
		return nil, errors.Wrapf(res.Error, "VisitVideo failed, videoId: %d", videoId)
	}
	if res.RowsAffected == 0 {
		return nil, errno.NotFoundErr.WithMessage("Video not found")
	}
	return FindVideo(ctx, videoId)
}

func UpdateVideo(ctx context.Context, video *model.Video) error {
	if err := DB.WithContext(ctx).Model(&model.Video{VideoId: video.VideoId}).
		Select("title", "video_url", "updated_at").
		Updates(video).Error; err != nil {
		return errors.Wrapf(err, "UpdateVideo failed, videoId: %d", video.VideoId)
	}
	return nil
}

func DeleteVideo(ctx context.Context, videoId int64) error {
	if err := DB.WithContext(ctx).Where("video_id = ?", videoId).Delete(&model.Video{}).Error; err != nil {
		return errors.Wrapf(err, "DeleteVideo failed, videoId: %d", videoId)
	}
	return nil
}

// CheckDuplicateTitle 不区分大小写
func CheckDuplicateTitle(ctx context.Context, title string, excludeId int64) error {
	var count int64
	if err := DB.WithContext(ctx).Model(&model.Video{}).
		Where("LOWER(title) = LOWER(?) AND video_id <> ?", title, excludeId).
		Count(&count).Error; err != nil {
		return errors.Wrap(err, "check duplicate video title")
	}
	if count > 0 {
		return errno.DuplicateErr.WithMessage("Duplicate title")
	}
	return nil
}
