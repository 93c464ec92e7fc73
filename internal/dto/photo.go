package dto

import "nomad-nest/internal/models"

type PhotoResponse struct {
	PhotoID    string `json:"photo_id"`
	EntryID    string `json:"entry_id"`
	PhotoURL   string `json:"photo_url"`
	UserID     string `json:"user_id"`
	UploadedAt string `json:"uploaded_at"`
}

type PhotosResponse struct {
	Photos []PhotoResponse `json:"photos"`
	Count  int             `json:"count"`
}

type AttachPhotosResponse struct {
	Message   string   `json:"message"`
	PhotoURLs []string `json:"photo_urls"`
	Warnings  []string `json:"warnings,omitempty"`
}

type DeletePhotosResponse struct {
	Message    string   `json:"message"`
	DeletedIDs []string `json:"deleted_ids"`
	Errors     []string `json:"errors,omitempty"`
	Count      int      `json:"count"`
}

func NewPhotosResponse(photos []*models.Photo) PhotosResponse {
	resp := PhotosResponse{Photos: make([]PhotoResponse, 0, len(photos))}
	for _, photo := range photos {
		resp.Photos = append(resp.Photos, PhotoResponse{
			PhotoID:    photo.ID,
			EntryID:    photo.EntryID,
			PhotoURL:   photo.URL,
			UserID:     photo.UserID,
			UploadedAt: formatTime(photo.UploadedAt),
		})
	}
	resp.Count = len(resp.Photos)
	return resp
}
