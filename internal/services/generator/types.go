package generator

// hyperbolicRequest is the JSON body of one image generation call.
type hyperbolicRequest struct {
	Prompt    string `json:"prompt"`
	ModelName string `json:"model_name"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

type hyperbolicResponse struct {
	Images []hyperbolicImage `json:"images"`
}

type hyperbolicImage struct {
	Index      int    `json:"index"`
	Image      string `json:"image"`
	RandomSeed int64  `json:"random_seed"`
}
