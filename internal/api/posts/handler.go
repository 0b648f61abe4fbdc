package postsapi

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"time"

	"creatorhub/database"
	"creatorhub/internal/domain/access"
	domainerrors "creatorhub/internal/domain/errors"
	"creatorhub/internal/domain/posts"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func mustUserID(c *gin.Context) (string, bool) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userID, true
}

// POST /posts
func CreatePost(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var input struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
		Body        string `json:"body"`
		Visibility  string `json:"visibility"`
		MinTierRank int    `json:"min_tier_rank"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Visibility == "" {
		input.Visibility = string(posts.VisibilityPublic)
	}
	visibility, err := posts.ParseVisibility(input.Visibility)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.MinTierRank < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "min_tier_rank must not be negative"})
		return
	}

	post := posts.Post{
		CreatorID:   userID,
		Title:       input.Title,
		Description: input.Description,
		Body:        input.Body,
		Visibility:  visibility,
		MinTierRank: input.MinTierRank,
	}
	if err := database.DB.Create(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	c.JSON(http.StatusCreated, post)
}

// GET /posts -> the calling creator's posts, newest first
func ListMyPosts(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var list []posts.Post
	err := creatorPostsQuery(database.DB, userID).
		Preload("Files").
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load posts"})
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /posts/:id
//
// The body is gated by the access verdict. A denied viewer still gets
// the teaser fields plus the reason, so the caller can render a
// subscribe prompt.
func GetPost(c *gin.Context) {
	postID := c.Param("id")
	if _, err := uuid.Parse(postID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}
	viewerID := c.GetString("user_id") // "" = anonymous

	var post posts.Post
	if err := database.DB.Preload("Files").First(&post, "id = ?", postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	verdict, err := access.CheckAccess(database.DB, viewerID, post)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check access"})
		return
	}

	if !verdict.Allowed {
		c.JSON(http.StatusOK, gin.H{
			"id":            post.ID,
			"creator_id":    post.CreatorID,
			"title":         post.Title,
			"description":   post.Description,
			"visibility":    post.Visibility,
			"min_tier_rank": post.MinTierRank,
			"access":        verdict,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":            post.ID,
		"creator_id":    post.CreatorID,
		"title":         post.Title,
		"description":   post.Description,
		"body":          post.Body,
		"visibility":    post.Visibility,
		"min_tier_rank": post.MinTierRank,
		"files":         post.Files,
		"access":        verdict,
	})
}

// GET /posts/:id/access -> just the verdict
func CheckPostAccess(c *gin.Context) {
	postID := c.Param("id")
	if _, err := uuid.Parse(postID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}
	viewerID := c.GetString("user_id")

	verdict, err := access.CheckPostAccess(database.DB, viewerID, postID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check access"})
		return
	}
	c.JSON(http.StatusOK, verdict)
}

// PUT /posts/:id
func UpdatePost(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	postID := c.Param("id")
	if _, err := uuid.Parse(postID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	post, ok := mustOwnPost(c, postID, userID)
	if !ok {
		return
	}

	var input struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Body        *string `json:"body"`
		Visibility  *string `json:"visibility"`
		MinTierRank *int    `json:"min_tier_rank"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if input.Title != nil {
		if *input.Title == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title must not be empty"})
			return
		}
		updates["title"] = *input.Title
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Body != nil {
		updates["body"] = *input.Body
	}
	if input.Visibility != nil {
		visibility, err := posts.ParseVisibility(*input.Visibility)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		updates["visibility"] = visibility
	}
	if input.MinTierRank != nil {
		if *input.MinTierRank < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "min_tier_rank must not be negative"})
			return
		}
		updates["min_tier_rank"] = *input.MinTierRank
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	if err := database.DB.Model(&posts.Post{}).Where("id = ?", post.ID).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post updated"})
}

// DELETE /posts/:id
func DeletePost(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	postID := c.Param("id")
	if _, err := uuid.Parse(postID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	post, ok := mustOwnPost(c, postID, userID)
	if !ok {
		return
	}

	if err := database.DB.Delete(&posts.Post{}, "id = ?", post.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

// POST /posts/:id/files
//
// Records file metadata only; byte transfer is outside this service.
func AddFile(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	postID := c.Param("id")
	if _, err := uuid.Parse(postID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	post, ok := mustOwnPost(c, postID, userID)
	if !ok {
		return
	}

	var input struct {
		FileName string `json:"file_name" binding:"required"`
		FileSize int64  `json:"file_size" binding:"required"`
		MimeType string `json:"mime_type"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := posts.ValidateFile(input.FileName, input.FileSize); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	file := posts.FileAsset{
		PostID:      post.ID,
		FileName:    input.FileName,
		FileSize:    input.FileSize,
		MimeType:    input.MimeType,
		StoragePath: fmt.Sprintf("protected/%s/%d-%s-%s", post.ID, time.Now().Unix(), randomSuffix(), input.FileName),
		UploadedBy:  userID,
	}
	if err := database.DB.Create(&file).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record file"})
		return
	}

	c.JSON(http.StatusCreated, file)
}

// GET /files/:id/download
//
// Returns a short-lived download token when the owning post's access
// rule allows the viewer. The allowed path also appends the audit
// record (best-effort, inside CheckFileAccess).
func DownloadFile(c *gin.Context) {
	fileID := c.Param("id")
	if _, err := uuid.Parse(fileID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file ID"})
		return
	}
	viewerID := c.GetString("user_id")

	verdict, file, err := access.CheckFileAccess(database.DB, viewerID, fileID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check access"})
		return
	}

	if !verdict.Allowed {
		status := http.StatusForbidden
		if verdict.Reason == access.ReasonUnauthenticated {
			status = http.StatusUnauthorized
		}
		c.JSON(status, gin.H{"error": "Download not allowed", "access": verdict})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"file_id":        file.ID,
		"file_name":      file.FileName,
		"download_token": randomSuffix(),
		"expires_in":     3600,
	})
}

func mustOwnPost(c *gin.Context, postID, userID string) (*posts.Post, bool) {
	var post posts.Post
	if err := database.DB.First(&post, "id = ?", postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return nil, false
	}
	if post.CreatorID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the owning creator can modify a post"})
		return nil, false
	}
	return &post, true
}

func randomSuffix() string {
	bytes := make([]byte, 16)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}
