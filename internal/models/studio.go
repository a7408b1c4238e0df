package models

// Controls mirrors the input controls of the page.
type Controls struct {
	InputText              string `json:"input_text"`
	Placeholder            string `json:"placeholder"`
	InputDisabled          bool   `json:"input_disabled"`
	GeneratePromptDisabled bool   `json:"generate_prompt_disabled"`
	GenerateImagesDisabled bool   `json:"generate_images_disabled"`
	AspectRatioDisabled    bool   `json:"aspect_ratio_disabled"`
	ImageCountDisabled     bool   `json:"image_count_disabled"`
}

type Banner struct {
	Visible bool   `json:"visible"`
	Message string `json:"message,omitempty"`
}

type Preview struct {
	Open        bool   `json:"open"`
	CardIndex   int    `json:"card_index"`
	ImageURL    string `json:"image_url,omitempty"`
	AspectRatio string `json:"aspect_ratio,omitempty"`
}

// StudioSnapshot is a read-only copy of the whole UI state.
type StudioSnapshot struct {
	Controls Controls           `json:"controls"`
	Banner   Banner             `json:"banner"`
	Alert    string             `json:"alert,omitempty"`
	Preview  Preview            `json:"preview"`
	BatchID  string             `json:"batch_id,omitempty"`
	Request  *GenerationRequest `json:"request,omitempty"`
	Cards    []GalleryCard      `json:"cards"`
}

// ShareOutcome tells the caller how a tap-to-share was carried out.
type ShareOutcome struct {
	Method string `json:"method"`
	Title  string `json:"title"`
	Text   string `json:"text"`
	URL    string `json:"url"`
	Alert  string `json:"alert,omitempty"`
}

const (
	ShareMethodNative    = "native"
	ShareMethodClipboard = "clipboard"
)
