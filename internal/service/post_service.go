package service

import (
	"context"
	"errors"

	"github.com/d60-Lab/micropost/internal/cache"
	"github.com/d60-Lab/micropost/internal/model"
	"github.com/d60-Lab/micropost/internal/repository"
)

var ErrPostNotFound = errors.New("post not found")

// PostService 帖子读写；写路径成功后同步失效该用户的列表缓存
type PostService interface {
	Create(ctx context.Context, owner *model.User, text string) (*model.Post, error)
	List(ctx context.Context, owner *model.User) ([]*model.Post, error)
	Delete(ctx context.Context, owner *model.User, postID uint) error
}

type postService struct {
	postRepo repository.PostRepository
	cache    *cache.PostCache
}

func NewPostService(postRepo repository.PostRepository, cache *cache.PostCache) PostService {
	return &postService{postRepo: postRepo, cache: cache}
}

func (s *postService) Create(ctx context.Context, owner *model.User, text string) (*model.Post, error) {
	post := &model.Post{OwnerID: owner.ID, Text: text}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	if err := s.cache.Invalidate(ctx, owner.Email); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) List(ctx context.Context, owner *model.User) ([]*model.Post, error) {
	return s.cache.Read(ctx, owner.Email, func(ctx context.Context) ([]*model.Post, error) {
		return s.postRepo.ListByOwner(ctx, owner.ID)
	})
}

func (s *postService) Delete(ctx context.Context, owner *model.User, postID uint) error {
	ok, err := s.postRepo.DeleteOwned(ctx, postID, owner.ID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrPostNotFound
	}
	return s.cache.Invalidate(ctx, owner.Email)
}
