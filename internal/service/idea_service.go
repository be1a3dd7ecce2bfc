package service

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/ideastone/ideastone_go_server/config"
	"github.com/ideastone/ideastone_go_server/internal/model"
	"github.com/ideastone/ideastone_go_server/internal/model/dto"
	"github.com/ideastone/ideastone_go_server/internal/repository"
)

var (
	ErrMissingRequired    = errors.New("Title, industry, and type are required")
	ErrMissingDescription = errors.New("Description is required")
)

// IdeaService 点子目录服务。数组字段写入前统一 JSON 编码，读出时解码，
// 历史脏数据解码失败降级为空列表，不向调用方抛错。
type IdeaService struct {
	ideaRepo *repository.IdeaRepository
	cfg      *config.Config
}

func NewIdeaService(ideaRepo *repository.IdeaRepository, cfg *config.Config) *IdeaService {
	return &IdeaService{
		ideaRepo: ideaRepo,
		cfg:      cfg,
	}
}

// List 按过滤条件查询，所有条件 AND 组合，search 忽略大小写
func (s *IdeaService) List(filter *dto.IdeaFilter) ([]dto.IdeaResponse, error) {
	ideas, err := s.ideaRepo.List(filter, s.cfg.Ideas.SearchDescription)
	if err != nil {
		return nil, err
	}

	result := make([]dto.IdeaResponse, 0, len(ideas))
	for i := range ideas {
		result = append(result, *toIdeaResponse(&ideas[i]))
	}
	return result, nil
}

// Create 创建点子。title/industry/type 必填，strict_validation 开启时
// description 也必填；数组字段缺省为空列表，落库前重新编码保证格式合法。
func (s *IdeaService) Create(req *dto.CreateIdeaRequest) (*dto.IdeaResponse, error) {
	if strings.TrimSpace(req.Title) == "" ||
		strings.TrimSpace(req.Industry) == "" ||
		strings.TrimSpace(req.Type) == "" {
		return nil, ErrMissingRequired
	}
	if s.cfg.Ideas.StrictValidation && strings.TrimSpace(req.Description) == "" {
		return nil, ErrMissingDescription
	}

	idea := &model.Idea{
		Title:           req.Title,
		Description:     req.Description,
		Industry:        req.Industry,
		Type:            req.Type,
		Difficulty:      req.Difficulty,
		Duration:        req.Duration,
		Roles:           encodeList(req.Roles),
		Technologies:    encodeList(req.Technologies),
		SimilarProjects: encodeList(req.SimilarProjects),
	}

	if err := s.ideaRepo.Create(idea); err != nil {
		return nil, err
	}

	return toIdeaResponse(idea), nil
}

func toIdeaResponse(idea *model.Idea) *dto.IdeaResponse {
	return &dto.IdeaResponse{
		ID:              idea.ID,
		Title:           idea.Title,
		Description:     idea.Description,
		Industry:        idea.Industry,
		Type:            idea.Type,
		Difficulty:      idea.Difficulty,
		Duration:        idea.Duration,
		Roles:           decodeList(idea.Roles),
		Technologies:    decodeList(idea.Technologies),
		SimilarProjects: decodeList(idea.SimilarProjects),
	}
}

// decodeList 解码 JSON 文本列表，空串或格式损坏一律降级为空列表
func decodeList(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return []string{}
	}
	if items == nil {
		return []string{}
	}
	return items
}

func encodeList(items []string) string {
	if items == nil {
		items = []string{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "[]"
	}
	return string(data)
}
