package models

type CardState string

const (
	CardPending CardState = "pending"
	CardFilled  CardState = "filled"
	CardFailed  CardState = "failed"
)

const (
	StatusGenerating = "Generating..."
	StatusFailed     = "Failed"
)

type ShareStatus string

const (
	ShareIdle      ShareStatus = "idle"
	ShareUploading ShareStatus = "uploading"
	ShareReady     ShareStatus = "ready"
)

// ShareView is the share control of a card.
type ShareView struct {
	Status  ShareStatus `json:"status"`
	Message string      `json:"message,omitempty"`
	Title   string      `json:"title,omitempty"`
	Text    string      `json:"text,omitempty"`
	URL     string      `json:"url,omitempty"`
}

// GalleryCard is the projection of one batch slot.
type GalleryCard struct {
	Index        int       `json:"index"`
	State        CardState `json:"state"`
	AspectRatio  string    `json:"aspect_ratio"`
	StatusText   string    `json:"status_text,omitempty"`
	Spinner      bool      `json:"spinner"`
	ImageURL     string    `json:"image_url,omitempty"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	DownloadURL  string    `json:"download_url,omitempty"`
	Share        ShareView `json:"share"`
}
