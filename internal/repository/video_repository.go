package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/d60-Lab/vidhub/internal/model"
)

// VideoRepository 视频记录的单行读写
type VideoRepository interface {
	Create(ctx context.Context, v *model.Video) error
	GetByID(ctx context.Context, id string) (*model.Video, error)
	Update(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) (bool, error)
	// IncrementViews 原子自增并返回新值
	IncrementViews(ctx context.Context, id string) (int64, error)
	// OwnerOf 返回视频作者；不存在时返回 ErrNotFound
	OwnerOf(ctx context.Context, id string) (string, error)
}

type videoRepository struct{ db *gorm.DB }

func NewVideoRepository(db *gorm.DB) VideoRepository { return &videoRepository{db: db} }

func (r *videoRepository) Create(ctx context.Context, v *model.Video) error {
	// is_published 默认 true，显式写入以免零值被数据库默认值覆盖
	return errors.Wrap(r.db.WithContext(ctx).Select("*").Create(v).Error, "create video")
}

func (r *videoRepository) GetByID(ctx context.Context, id string) (*model.Video, error) {
	var v model.Video
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&v).Error; err != nil {
		return nil, errors.Wrap(err, "get video")
	}
	return &v, nil
}

func (r *videoRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	res := r.db.WithContext(ctx).Model(&model.Video{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return errors.Wrap(res.Error, "update video")
	}
	if res.RowsAffected == 0 {
		return errors.Wrap(ErrNotFound, "update video")
	}
	return nil
}

func (r *videoRepository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Video{})
	if res.Error != nil {
		return false, errors.Wrap(res.Error, "delete video")
	}
	return res.RowsAffected > 0, nil
}

func (r *videoRepository) IncrementViews(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Video{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1))
	if res.Error != nil {
		return 0, errors.Wrap(res.Error, "increment views")
	}
	if res.RowsAffected == 0 {
		return 0, errors.Wrap(ErrNotFound, "increment views")
	}
	var views []int64
	if err := r.db.WithContext(ctx).Model(&model.Video{}).Where("id = ?", id).Limit(1).Pluck("views", &views).Error; err != nil {
		return 0, errors.Wrap(err, "read views")
	}
	if len(views) == 0 {
		return 0, errors.Wrap(ErrNotFound, "read views")
	}
	return views[0], nil
}

func (r *videoRepository) OwnerOf(ctx context.Context, id string) (string, error) {
	var owners []string
	if err := r.db.WithContext(ctx).Model(&model.Video{}).Where("id = ?", id).Limit(1).Pluck("owner_id", &owners).Error; err != nil {
		return "", errors.Wrap(err, "video owner")
	}
	if len(owners) == 0 {
		return "", errors.Wrap(ErrNotFound, "video owner")
	}
	return owners[0], nil
}
