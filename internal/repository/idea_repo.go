package repository

import (
	"strings"

	"gorm.io/gorm"

	"github.com/ideastone/ideastone_go_server/internal/model"
	"github.com/ideastone/ideastone_go_server/internal/model/dto"
)

type IdeaRepository struct {
	db *gorm.DB
}

func NewIdeaRepository(db *gorm.DB) *IdeaRepository {
	return &IdeaRepository{db: db}
}

func (r *IdeaRepository) Create(idea *model.Idea) error {
	return r.db.Create(idea).Error
}

func (r *IdeaRepository) GetByID(id int64) (*model.Idea, error) {
	var idea model.Idea
	err := r.db.Where("id = ?", id).First(&idea).Error
	if err != nil {
		return nil, err
	}
	return &idea, nil
}

// List 按过滤条件查询，未提供的条件不参与过滤，按 id 倒序（最新在前）。
// searchDescription 控制 search 是否同时匹配 description。
func (r *IdeaRepository) List(filter *dto.IdeaFilter, searchDescription bool) ([]model.Idea, error) {
	query := r.db.Model(&model.Idea{})

	if filter.Industry != "" {
		query = query.Where("industry = ?", filter.Industry)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Difficulty != "" {
		query = query.Where("difficulty = ?", filter.Difficulty)
	}
	if filter.Duration != "" {
		query = query.Where("duration = ?", filter.Duration)
	}
	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		if searchDescription {
			query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
		} else {
			query = query.Where("LOWER(title) LIKE ?", like)
		}
	}

	var ideas []model.Idea
	err := query.Order("id DESC").Find(&ideas).Error
	return ideas, err
}

func (r *IdeaRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Idea{}).Count(&count).Error
	return count, err
}
