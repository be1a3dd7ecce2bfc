package dto

// IdeaFilter 点子查询过滤条件，零值字段不参与过滤
type IdeaFilter struct {
	Industry   string `form:"industry"`
	Type       string `form:"type"`
	Difficulty string `form:"difficulty"`
	Duration   string `form:"duration"`
	Search     string `form:"search"`
}

// CreateIdeaRequest 创建点子请求
type CreateIdeaRequest struct {
	Title           string   `json:"title" binding:"required,max=200"`
	Description     string   `json:"description,omitempty" binding:"omitempty,max=5000"`
	Industry        string   `json:"industry" binding:"required,max=50"`
	Type            string   `json:"type" binding:"required,max=50"`
	Difficulty      string   `json:"difficulty,omitempty" binding:"omitempty,oneof=Beginner Intermediate Advanced Expert"`
	Duration        string   `json:"duration,omitempty" binding:"omitempty,oneof=Short-term Medium Long-term"`
	Roles           []string `json:"roles,omitempty" binding:"omitempty,dive,max=100"`
	Technologies    []string `json:"technologies,omitempty" binding:"omitempty,dive,max=100"`
	SimilarProjects []string `json:"similarProjects,omitempty" binding:"omitempty,dive,max=500"`
}

// IdeaResponse 点子响应，数组字段始终解码为列表
type IdeaResponse struct {
	ID              int64    `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Industry        string   `json:"industry"`
	Type            string   `json:"type"`
	Difficulty      string   `json:"difficulty,omitempty"`
	Duration        string   `json:"duration,omitempty"`
	Roles           []string `json:"roles"`
	Technologies    []string `json:"technologies"`
	SimilarProjects []string `json:"similarProjects"`
}
