package measurement

import "FashionistAI/internal/entity"

type AnalyzeRequest struct {
	FrontImageBase64 string  `json:"front_image_base64" validate:"required"`
	SideImageBase64  string  `json:"side_image_base64,omitempty"`
	HeightCm         float64 `json:"height_cm" validate:"required,gt=0"`
}

type AnalyzeResponse struct {
	Data  entity.AnalysisResult `json:"data,omitempty"`
	Error string                `json:"error,omitempty"`
}

// StreamFrame is one message on the live analysis websocket.
type StreamFrame struct {
	FrameBase64 string  `json:"frame_base64"`
	HeightCm    float64 `json:"height_cm"`
}

type StreamResult struct {
	Data  *entity.AnalysisResult `json:"data,omitempty"`
	Error string                 `json:"error,omitempty"`
}
