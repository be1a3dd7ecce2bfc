package dto

// GenerateRequest 随机生成请求，过滤条件与列表查询一致
type GenerateRequest struct {
	Industry   string `json:"industry,omitempty"`
	Type       string `json:"type,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
	Duration   string `json:"duration,omitempty"`
	Search     string `json:"search,omitempty"`
}

// GenerateResponse 随机生成响应
type GenerateResponse struct {
	Idea            *IdeaResponse   `json:"idea"`
	GenerationsLeft GenerationCount `json:"generationsLeft"`
}
