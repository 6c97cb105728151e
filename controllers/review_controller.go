package controllers

import (
	"errors"
	"strconv"

	"github.com/mfranzen/GigSphere/config"
	"github.com/mfranzen/GigSphere/middleware"
	"github.com/mfranzen/GigSphere/models"
	"github.com/mfranzen/GigSphere/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var errDuplicateReview = errors.New("duplicate review")

// CreateReviewRequest represents the review creation body
type CreateReviewRequest struct {
	BusinessUserID uint   `json:"business_user_id" binding:"required"`
	Rating         int    `json:"rating" binding:"required"`
	Description    string `json:"description"`
}

func reviewResponse(review models.Review) gin.H {
	return gin.H{
		"id":               review.ID,
		"business_user_id": review.BusinessUserID,
		"reviewer_id":      review.ReviewerID,
		"rating":           review.Rating,
		"description":      review.Description,
		"created_at":       review.CreatedAt,
		"updated_at":       review.UpdatedAt,
	}
}

// CreateReview handles review creation by a customer. Duplicate detection
// scope is configurable: per reviewer+subject pair or per subject.
func CreateReview(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "User not found in context")
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Review creation failed - Invalid request format: %v", err)
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	if valid, msg := utils.ValidateRating(req.Rating); !valid {
		utils.BadRequest(c, "Invalid rating", msg)
		return
	}

	var subject models.User
	if err := config.DB.First(&subject, req.BusinessUserID).Error; err != nil {
		utils.LogError("Review subject not found: %v", err)
		utils.NotFound(c, "Business user not found")
		return
	}

	if !subject.IsBusiness() {
		utils.BadRequest(c, "Reviews can only be left for business users", nil)
		return
	}

	if subject.ID == user.ID {
		utils.BadRequest(c, "You cannot review yourself", nil)
		return
	}

	review := models.Review{
		BusinessUserID: subject.ID,
		ReviewerID:     user.ID,
		Rating:         req.Rating,
		Description:    req.Description,
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		dupQuery := tx.Model(&models.Review{}).Where("business_user_id = ?", subject.ID)
		if config.ReviewConflictScope() == config.ReviewScopePair {
			dupQuery = dupQuery.Where("reviewer_id = ?", user.ID)
		}
		var count int64
		if err := dupQuery.Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errDuplicateReview
		}
		return tx.Create(&review).Error
	})
	if errors.Is(err, errDuplicateReview) {
		utils.LogError("Duplicate review by user %d for business user %d", user.ID, subject.ID)
		utils.Conflict(c, "Review already exists", "You have already reviewed this business user.")
		return
	}
	if err != nil {
		utils.LogError("Failed to create review by user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to create review", nil)
		return
	}

	utils.LogInfo("Review %d created by user %d for business user %d", review.ID, user.ID, subject.ID)
	utils.Created(c, "Review created successfully", reviewResponse(review))
}

// GetReviews lists reviews with optional subject/author filters. Public.
func GetReviews(c *gin.Context) {
	pagination := utils.NewPagination(c)

	query := config.DB.Model(&models.Review{})
	if businessUserID, err := strconv.ParseUint(c.Query("business_user_id"), 10, 32); err == nil {
		query = query.Where("business_user_id = ?", uint(businessUserID))
	}
	if reviewerID, err := strconv.ParseUint(c.Query("reviewer_id"), 10, 32); err == nil {
		query = query.Where("reviewer_id = ?", uint(reviewerID))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count reviews: %v", err)
		utils.InternalServerError(c, "Failed to fetch reviews", nil)
		return
	}
	pagination.SetTotal(total)

	switch c.DefaultQuery("ordering", "-updated_at") {
	case "rating":
		query = query.Order("rating ASC")
	case "-rating":
		query = query.Order("rating DESC")
	case "updated_at":
		query = query.Order("updated_at ASC")
	default:
		query = query.Order("updated_at DESC")
	}

	var reviews []models.Review
	if err := query.Limit(pagination.Limit).Offset(pagination.Offset).Find(&reviews).Error; err != nil {
		utils.LogError("Failed to fetch reviews: %v", err)
		utils.InternalServerError(c, "Failed to fetch reviews", nil)
		return
	}

	items := make([]gin.H, 0, len(reviews))
	for _, r := range reviews {
		items = append(items, reviewResponse(r))
	}

	utils.SuccessWithPagination(c, "Reviews retrieved successfully", items, total, pagination.Page, pagination.Limit)
}

// loadAuthoredReview fetches a review and enforces the author-only rule
func loadAuthoredReview(c *gin.Context, authorID uint) (*models.Review, bool) {
	reviewID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid review ID", nil)
		return nil, false
	}

	var review models.Review
	if err := config.DB.First(&review, reviewID).Error; err != nil {
		utils.LogError("Review not found: %v", err)
		utils.NotFound(c, "Review not found")
		return nil, false
	}

	if review.ReviewerID != authorID {
		utils.LogError("User %d attempted to modify review %d by user %d", authorID, review.ID, review.ReviewerID)
		utils.Forbidden(c, "You are not the author of this review")
		return nil, false
	}

	return &review, true
}

// UpdateReviewRequest carries the editable review fields
type UpdateReviewRequest struct {
	Rating      *int    `json:"rating"`
	Description *string `json:"description"`
}

// UpdateReview handles author-only review edits
func UpdateReview(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "User not found in context")
		return
	}

	review, ok := loadAuthoredReview(c, user.ID)
	if !ok {
		return
	}

	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	if req.Rating != nil {
		if valid, msg := utils.ValidateRating(*req.Rating); !valid {
			utils.BadRequest(c, "Invalid rating", msg)
			return
		}
		review.Rating = *req.Rating
	}
	if req.Description != nil {
		review.Description = *req.Description
	}

	if err := config.DB.Save(review).Error; err != nil {
		utils.LogError("Failed to update review %d: %v", review.ID, err)
		utils.InternalServerError(c, "Failed to update review", nil)
		return
	}

	utils.LogInfo("Review %d updated by user %d", review.ID, user.ID)
	utils.Success(c, "Review updated successfully", reviewResponse(*review))
}

// DeleteReview handles author-only review deletion
func DeleteReview(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "User not found in context")
		return
	}

	review, ok := loadAuthoredReview(c, user.ID)
	if !ok {
		return
	}

	if err := config.DB.Delete(review).Error; err != nil {
		utils.LogError("Failed to delete review %d: %v", review.ID, err)
		utils.InternalServerError(c, "Failed to delete review", nil)
		return
	}

	utils.LogInfo("Review %d deleted by user %d", review.ID, user.ID)
	utils.Success(c, "Review deleted successfully", nil)
}
