package knowledge_test

import (
	"strings"
	"testing"
	"time"

	"github.com/rpggio/workbench/internal/domain/knowledge"
	"github.com/stretchr/testify/require"
)

func article(id, code, title, category string, tags []string, content string, views int) knowledge.Article {
	return knowledge.Article{
		ID:          id,
		ProjectCode: code,
		ProjectName: "Project " + code,
		Title:       title,
		Content:     content,
		Category:    category,
		Tags:        tags,
		CreatedDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		LastUpdated: time.Date(2024, 2, 3, 10, 0, 0, 0, time.UTC),
		Author:      "Morgan Chen",
		ViewCount:   views,
	}
}

func newIndex() *knowledge.Service {
	return knowledge.NewService([]knowledge.Article{
		article("KB0001", "ALPHA", "Session handling in the gateway", "Architecture", []string{"gateway"}, "Tokens are issued via OAuth flows.", 120),
		article("KB0002", "ALPHA", "Resolving OAuth 2.0 Token Refresh Failures", "Troubleshooting", []string{"auth", "token"}, "Refresh tokens expire.", 300),
		article("KB0003", "NEXUS", "Rate limits", "Troubleshooting", []string{"oauth-client"}, "Throttling rules.", 80),
		article("KB0004", "NEXUS", "Deploying with Helm", "Deployment", []string{"kubernetes"}, strings.Repeat("a", 250), 450),
		article("KB0005", "VAULT", "Nothing relevant", "How-To", []string{"etl"}, "Pipelines.", 300),
	}, nil)
}

func TestSearch_TitleMatchRanksFirst(t *testing.T) {
	svc := newIndex()

	res, err := svc.Search(knowledge.SearchRequest{Query: "oauth"})
	require.NoError(t, err)
	require.Equal(t, "oauth", res.Query)
	require.Equal(t, 3, res.TotalResults)

	require.Equal(t, "KB0002", res.Articles[0].ID)
	require.Equal(t, 10, res.Articles[0].Score)
	require.Equal(t, "KB0003", res.Articles[1].ID)
	require.Equal(t, 5, res.Articles[1].Score)
	require.Equal(t, "KB0001", res.Articles[2].ID)
	require.Equal(t, 1, res.Articles[2].Score)
}

func TestSearch_FiltersAndEmptyResults(t *testing.T) {
	svc := newIndex()

	res, err := svc.Search(knowledge.SearchRequest{Query: "OAUTH", ProjectCode: "alpha", Category: "troubleshooting"})
	require.NoError(t, err)
	require.Len(t, res.Articles, 1)
	require.Equal(t, "KB0002", res.Articles[0].ID)

	res, err = svc.Search(knowledge.SearchRequest{Query: "quantum"})
	require.NoError(t, err)
	require.NotNil(t, res.Articles)
	require.Zero(t, res.TotalResults)

	_, err = svc.Search(knowledge.SearchRequest{Query: "  "})
	require.ErrorIs(t, err, knowledge.ErrEmptyQuery)
}

func TestSearch_StableTies(t *testing.T) {
	svc := newIndex()

	res, err := svc.Search(knowledge.SearchRequest{Query: "s"})
	require.NoError(t, err)
	for i := 1; i < len(res.Articles); i++ {
		prev, cur := res.Articles[i-1], res.Articles[i]
		require.GreaterOrEqual(t, prev.Score, cur.Score)
		if prev.Score == cur.Score {
			require.Less(t, prev.ID, cur.ID)
		}
	}
}

func TestSearch_Preview(t *testing.T) {
	svc := newIndex()

	res, err := svc.Search(knowledge.SearchRequest{Query: "helm"})
	require.NoError(t, err)
	require.Len(t, res.Articles, 1)
	require.Equal(t, strings.Repeat("a", 200)+"...", res.Articles[0].Preview)

	res, err = svc.Search(knowledge.SearchRequest{Query: "refresh"})
	require.NoError(t, err)
	require.Equal(t, "Refresh tokens expire.", res.Articles[0].Preview)
}

func TestScore_Monotonic(t *testing.T) {
	title := article("T", "ALPHA", "Cache tuning", "How-To", nil, "nothing", 0)
	tag := article("G", "ALPHA", "Other", "How-To", []string{"cache"}, "nothing", 0)
	content := article("C", "ALPHA", "Other", "How-To", nil, "the cache layer", 0)

	require.Greater(t, knowledge.Score(title, "cache"), knowledge.Score(content, "cache"))
	require.Greater(t, knowledge.Score(tag, "cache"), knowledge.Score(content, "cache"))
	require.Equal(t, 16, knowledge.Score(article("A", "ALPHA", "cache", "x", []string{"cache"}, "cache", 0), "cache"))
}

func TestGet(t *testing.T) {
	svc := newIndex()

	a, err := svc.Get("kb0004")
	require.NoError(t, err)
	require.Equal(t, "Deploying with Helm", a.Title)

	_, err = svc.Get("KB9999")
	require.ErrorIs(t, err, knowledge.ErrArticleNotFound)
	require.Contains(t, err.Error(), "'KB9999'")
}

func TestListings(t *testing.T) {
	svc := newIndex()

	byProject := svc.ListByProject("nexus")
	require.Equal(t, 2, byProject.TotalCount)
	require.Equal(t, "KB0003", byProject.Articles[0].ID)
	require.Equal(t, "2024-02-03", byProject.Articles[0].LastUpdated)

	byCategory := svc.ListByCategory("Troubleshooting", "")
	require.Equal(t, 2, byCategory.TotalCount)

	scoped := svc.ListByCategory("troubleshooting", "NEXUS")
	require.Equal(t, 1, scoped.TotalCount)
	require.Equal(t, "KB0003", scoped.Articles[0].ID)

	none := svc.ListByProject("ORBIT")
	require.NotNil(t, none.Articles)
	require.Zero(t, none.TotalCount)
}

func TestPopular(t *testing.T) {
	svc := newIndex()

	top := svc.Popular(0)
	require.Equal(t, 5, top.TotalCount)
	require.Equal(t, "KB0004", top.Articles[0].ID)
	require.Equal(t, "KB0002", top.Articles[1].ID)
	require.Equal(t, "KB0005", top.Articles[2].ID)

	require.Equal(t, 2, svc.Popular(2).TotalCount)
	require.Equal(t, 5, svc.Popular(50).TotalCount)
}

func TestPopular_CapsAtTen(t *testing.T) {
	var articles []knowledge.Article
	for i := range 15 {
		articles = append(articles, article(string(rune('A'+i)), "ALPHA", "t", "c", nil, "x", i))
	}
	svc := knowledge.NewService(articles, nil)

	require.Equal(t, 10, svc.Popular(12).TotalCount)
	require.Equal(t, 5, svc.Popular(-3).TotalCount)
	require.Equal(t, 14, svc.Popular(10).Articles[0].ViewCount)
}

func TestCategories(t *testing.T) {
	list := newIndex().Categories()
	require.Equal(t, 4, list.TotalCount)
	require.Equal(t, knowledge.CategoryCount{Category: "Architecture", ArticleCount: 1}, list.Categories[0])
	require.Equal(t, knowledge.CategoryCount{Category: "Troubleshooting", ArticleCount: 2}, list.Categories[1])
}
