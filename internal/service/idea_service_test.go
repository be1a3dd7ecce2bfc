package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ideastone/ideastone_go_server/config"
	"github.com/ideastone/ideastone_go_server/internal/model"
	"github.com/ideastone/ideastone_go_server/internal/model/dto"
	"github.com/ideastone/ideastone_go_server/internal/repository"
	"github.com/ideastone/ideastone_go_server/internal/testutil"
)

func setupIdeaService(t *testing.T, ideasCfg config.IdeasConfig) (*IdeaService, *gorm.DB, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	ideaRepo := repository.NewIdeaRepository(db)

	cfg := &config.Config{
		Ideas: ideasCfg,
	}

	svc := NewIdeaService(ideaRepo, cfg)

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}

	return svc, db, cleanup
}

func TestIdeaService_Create_Success(t *testing.T) {
	svc, db, cleanup := setupIdeaService(t, config.IdeasConfig{})
	defer cleanup()

	req := &dto.CreateIdeaRequest{
		Title:        "Barangay Health Records",
		Description:  "Digitize patient records for rural health units",
		Industry:     "Healthcare",
		Type:         "Web App",
		Difficulty:   model.DifficultyIntermediate,
		Duration:     model.DurationMedium,
		Roles:        []string{"Frontend", "Backend"},
		Technologies: []string{"React", "Go"},
	}

	resp, err := svc.Create(req)
	require.NoError(t, err)
	assert.NotZero(t, resp.ID)
	assert.Equal(t, []string{"Frontend", "Backend"}, resp.Roles)
	assert.Equal(t, []string{"React", "Go"}, resp.Technologies)
	assert.Equal(t, []string{}, resp.SimilarProjects)

	// 落库的数组字段是合法 JSON 文本
	var stored model.Idea
	require.NoError(t, db.First(&stored, resp.ID).Error)
	assert.JSONEq(t, `["Frontend","Backend"]`, stored.Roles)
	assert.Equal(t, "[]", stored.SimilarProjects)
}

func TestIdeaService_Create_MissingRequired(t *testing.T) {
	svc, _, cleanup := setupIdeaService(t, config.IdeasConfig{})
	defer cleanup()

	cases := []dto.CreateIdeaRequest{
		{Industry: "Education", Type: "Web App"},
		{Title: "   ", Industry: "Education", Type: "Web App"},
		{Title: "Title", Type: "Web App"},
		{Title: "Title", Industry: "Education"},
	}

	for _, req := range cases {
		_, err := svc.Create(&req)
		assert.ErrorIs(t, err, ErrMissingRequired)
	}
}

func TestIdeaService_Create_StrictValidation(t *testing.T) {
	svc, _, cleanup := setupIdeaService(t, config.IdeasConfig{StrictValidation: true})
	defer cleanup()

	req := &dto.CreateIdeaRequest{
		Title:    "No Description",
		Industry: "Education",
		Type:     "Web App",
	}

	_, err := svc.Create(req)
	assert.ErrorIs(t, err, ErrMissingDescription)

	req.Description = "Now it has one"
	_, err = svc.Create(req)
	assert.NoError(t, err)
}

func TestIdeaService_Create_DescriptionOptionalByDefault(t *testing.T) {
	svc, _, cleanup := setupIdeaService(t, config.IdeasConfig{})
	defer cleanup()

	req := &dto.CreateIdeaRequest{
		Title:    "No Description",
		Industry: "Education",
		Type:     "Web App",
	}

	resp, err := svc.Create(req)
	require.NoError(t, err)
	assert.Empty(t, resp.Description)
}

func TestIdeaService_List_Filters(t *testing.T) {
	svc, db, cleanup := setupIdeaService(t, config.IdeasConfig{})
	defer cleanup()

	testutil.TestIdea(t, db,
		testutil.WithTitle("Clinic Queue System"),
		testutil.WithIndustry("Healthcare"),
		testutil.WithDifficulty(model.DifficultyAdvanced))
	testutil.TestIdea(t, db,
		testutil.WithTitle("LMS for Senior High"),
		testutil.WithIndustry("Education"))
	testutil.TestIdea(t, db,
		testutil.WithTitle("Pharmacy Inventory"),
		testutil.WithIndustry("Healthcare"),
		testutil.WithType("Mobile App"))

	// 单条件
	ideas, err := svc.List(&dto.IdeaFilter{Industry: "Healthcare"})
	require.NoError(t, err)
	assert.Len(t, ideas, 2)

	// AND 组合
	ideas, err = svc.List(&dto.IdeaFilter{Industry: "Healthcare", Type: "Mobile App"})
	require.NoError(t, err)
	require.Len(t, ideas, 1)
	assert.Equal(t, "Pharmacy Inventory", ideas[0].Title)

	// 无匹配返回空列表而不是 nil
	ideas, err = svc.List(&dto.IdeaFilter{Industry: "Agriculture"})
	require.NoError(t, err)
	assert.NotNil(t, ideas)
	assert.Len(t, ideas, 0)
}

func TestIdeaService_List_SearchCaseInsensitive(t *testing.T) {
	svc, db, cleanup := setupIdeaService(t, config.IdeasConfig{})
	defer cleanup()

	testutil.TestIdea(t, db, testutil.WithTitle("Smart Irrigation Controller"))
	testutil.TestIdea(t, db, testutil.WithTitle("Campus Lost and Found"))

	ideas, err := svc.List(&dto.IdeaFilter{Search: "IRRIGATION"})
	require.NoError(t, err)
	require.Len(t, ideas, 1)
	assert.Equal(t, "Smart Irrigation Controller", ideas[0].Title)
}

func TestIdeaService_List_SearchDescription(t *testing.T) {
	svc, db, cleanup := setupIdeaService(t, config.IdeasConfig{SearchDescription: true})
	defer cleanup()

	// 默认 description 含 "capstone"，标题不含
	testutil.TestIdea(t, db, testutil.WithTitle("Plain Title"))

	ideas, err := svc.List(&dto.IdeaFilter{Search: "capstone"})
	require.NoError(t, err)
	assert.Len(t, ideas, 1)
}

func TestIdeaService_List_CorruptedArrayDegrades(t *testing.T) {
	svc, db, cleanup := setupIdeaService(t, config.IdeasConfig{})
	defer cleanup()

	testutil.TestIdea(t, db, testutil.WithRawRoles(`{"oops": not json`))

	ideas, err := svc.List(&dto.IdeaFilter{})
	require.NoError(t, err)
	require.Len(t, ideas, 1)
	// 脏数据降级为空列表，不报错
	assert.Equal(t, []string{}, ideas[0].Roles)
}

func TestDecodeList(t *testing.T) {
	assert.Equal(t, []string{}, decodeList(""))
	assert.Equal(t, []string{}, decodeList("[]"))
	assert.Equal(t, []string{}, decodeList("null"))
	assert.Equal(t, []string{}, decodeList("not json at all"))
	assert.Equal(t, []string{"a", "b"}, decodeList(`["a","b"]`))
}

func TestEncodeList(t *testing.T) {
	assert.Equal(t, "[]", encodeList(nil))
	assert.Equal(t, "[]", encodeList([]string{}))
	assert.Equal(t, `["x"]`, encodeList([]string{"x"}))
}
