package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/micropost/internal/model"
)

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	ListByOwner(ctx context.Context, ownerID uint) ([]*model.Post, error)
	// DeleteOwned 仅删除属于 ownerID 的帖子；帖子不存在或属主不符返回 false
	DeleteOwned(ctx context.Context, postID, ownerID uint) (bool, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository { return &postRepository{db: db} }

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	// 事务内落地，失败整体回滚
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(post).Error
	})
}

func (r *postRepository) ListByOwner(ctx context.Context, ownerID uint) ([]*model.Post, error) {
	res := make([]*model.Post, 0)
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("id").
		Find(&res).Error
	return res, err
}

func (r *postRepository) DeleteOwned(ctx context.Context, postID, ownerID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", postID, ownerID).
		Delete(&model.Post{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
