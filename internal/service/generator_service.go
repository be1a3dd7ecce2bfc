package service

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/ideastone/ideastone_go_server/internal/model/dto"
)

var ErrNoMatchingIdeas = errors.New("no ideas match the filters")

// GeneratorService 随机选择器。只负责从过滤后的候选集里等概率抽一条，
// 不碰权益账本，扣减由调用方在选中后执行。
type GeneratorService struct {
	ideaService *IdeaService
	rng         *rand.Rand
	mu          sync.Mutex // rand.Rand 非并发安全
}

func NewGeneratorService(ideaService *IdeaService) *GeneratorService {
	return &GeneratorService{
		ideaService: ideaService,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Pick 从匹配过滤条件的点子中等概率随机选一条，无匹配返回 ErrNoMatchingIdeas
func (s *GeneratorService) Pick(filter *dto.IdeaFilter) (*dto.IdeaResponse, error) {
	ideas, err := s.ideaService.List(filter)
	if err != nil {
		return nil, err
	}
	if len(ideas) == 0 {
		return nil, ErrNoMatchingIdeas
	}

	s.mu.Lock()
	i := s.rng.Intn(len(ideas))
	s.mu.Unlock()

	return &ideas[i], nil
}
