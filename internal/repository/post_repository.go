package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"minisocial/internal/model"
)

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(post *model.Post) error {
	if err := r.db.Create(post).Error; err != nil {
		return fmt.Errorf("create post failed: %w", err)
	}
	return nil
}

func (r *PostRepository) GetByID(id uint) (*model.Post, error) {
	var post model.Post
	if err := r.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query post by id failed: %w", err)
	}
	return &post, nil
}

func (r *PostRepository) ListByUserID(userID uint) ([]model.Post, error) {
	var posts []model.Post
	if err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("list posts failed: %w", err)
	}
	return posts, nil
}

func (r *PostRepository) UpdateContent(postID uint, content string) error {
	res := r.db.Model(&model.Post{}).Where("id = ?", postID).Update("content", content)
	if res.Error != nil {
		return fmt.Errorf("update post content failed: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("update post content failed: %w", gorm.ErrRecordNotFound)
	}
	return nil
}

// Delete removes the post and its like rows in one transaction, so a crash
// mid-delete cannot leave likes dangling on a missing post.
func (r *PostRepository) Delete(postID uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", postID).Delete(&model.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Post{}, postID).Error
	})
	if err != nil {
		return fmt.Errorf("delete post failed: %w", err)
	}
	return nil
}

// ToggleLike flips the caller's membership in the post's like list. Exactly
// one insert or one delete per call; the check and the write share a
// transaction so concurrent toggles cannot double-insert.
func (r *PostRepository) ToggleLike(postID, userID uint) (liked bool, err error) {
	err = r.db.Transaction(func(tx *gorm.DB) error {
		var existing model.Like
		findErr := tx.Where("post_id = ? AND user_id = ?", postID, userID).First(&existing).Error
		if findErr == nil {
			return tx.Delete(&existing).Error
		}
		if !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return findErr
		}
		liked = true
		return tx.Create(&model.Like{PostID: postID, UserID: userID}).Error
	})
	if err != nil {
		return false, fmt.Errorf("toggle like failed: %w", err)
	}
	return liked, nil
}

func (r *PostRepository) LikeUserIDs(postID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.Model(&model.Like{}).Where("post_id = ?", postID).Order("created_at ASC").Pluck("user_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("list post likes failed: %w", err)
	}
	return ids, nil
}
