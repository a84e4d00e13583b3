package handlers

import (
	"time"

	"geugeu/internal/models"
)

// Response schemas shared by the handlers. Internal numeric IDs never
// appear here; resources are addressed by their public codes only.

type UserResponse struct {
	Code            string    `json:"code"`
	Email           string    `json:"email"`
	Nickname        string    `json:"nickname"`
	IsAdmin         bool      `json:"is_admin"`
	ProfileImageURL string    `json:"profile_image_url"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func newUserResponse(u *models.User) UserResponse {
	return UserResponse{
		Code:            u.Code,
		Email:           u.Email,
		Nickname:        u.Nickname,
		IsAdmin:         u.IsAdmin,
		ProfileImageURL: u.ProfileImageURL,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

type ImageResponse struct {
	Code string `json:"code"`
	URL  string `json:"url"`
}

func newImageResponses(images []models.Image) []ImageResponse {
	out := make([]ImageResponse, 0, len(images))
	for _, img := range images {
		out = append(out, ImageResponse{Code: img.Code, URL: img.URL})
	}
	return out
}

type PostResponse struct {
	Code      string          `json:"code"`
	Title     string          `json:"title"`
	Content   string          `json:"content"`
	Author    UserResponse    `json:"author"`
	Images    []ImageResponse `json:"images"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func newPostResponse(p *models.Post) PostResponse {
	return PostResponse{
		Code:      p.Code,
		Title:     p.Title,
		Content:   p.Content,
		Author:    newUserResponse(&p.Author),
		Images:    newImageResponses(p.Images),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

type PostListResponse struct {
	Count int64          `json:"count"`
	Items []PostResponse `json:"items"`
}

type DrawingResponse struct {
	Code      string          `json:"code"`
	PostCode  string          `json:"post_code"`
	Content   string          `json:"content"`
	Author    UserResponse    `json:"author"`
	Images    []ImageResponse `json:"images"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func newDrawingResponse(d *models.Drawing) DrawingResponse {
	return DrawingResponse{
		Code:      d.Code,
		PostCode:  d.Post.Code,
		Content:   d.Content,
		Author:    newUserResponse(&d.Author),
		Images:    newImageResponses(d.Images),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type DrawingListResponse struct {
	Count int64             `json:"count"`
	Items []DrawingResponse `json:"items"`
}

type CommentResponse struct {
	Code      string       `json:"code"`
	Content   string       `json:"content"`
	Author    UserResponse `json:"author"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func newCommentResponse(cm *models.Comment) CommentResponse {
	return CommentResponse{
		Code:      cm.Code,
		Content:   cm.Content,
		Author:    newUserResponse(&cm.Author),
		CreatedAt: cm.CreatedAt,
		UpdatedAt: cm.UpdatedAt,
	}
}

type CommentListResponse struct {
	Count int               `json:"count"`
	Items []CommentResponse `json:"items"`
}

type InterestResponse struct {
	User      UserResponse `json:"user"`
	Post      PostResponse `json:"post"`
	CreatedAt time.Time    `json:"created_at"`
}

type InterestListResponse struct {
	Count        int64              `json:"count"`
	Items        []InterestResponse `json:"items"`
	IsInterested *bool              `json:"is_interested,omitempty"`
}

func newInterestListResponse(items []models.Interest, count int64, isInterested *bool) InterestListResponse {
	out := InterestListResponse{
		Count:        count,
		Items:        make([]InterestResponse, 0, len(items)),
		IsInterested: isInterested,
	}
	for i := range items {
		out.Items = append(out.Items, InterestResponse{
			User:      newUserResponse(&items[i].User),
			Post:      newPostResponse(&items[i].Post),
			CreatedAt: items[i].CreatedAt,
		})
	}
	return out
}
