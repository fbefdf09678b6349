package knowledge

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

const (
	titleWeight   = 10
	tagWeight     = 5
	contentWeight = 1

	previewLength = 200

	// DefaultPopularCount is used when Popular is called without a count.
	DefaultPopularCount = 5
	// MaxPopularCount caps Popular.
	MaxPopularCount = 10
)

// Service searches and lists a fixed set of articles.
type Service struct {
	articles []Article
	logger   *slog.Logger
}

// NewService creates an index over articles, keeping their order.
func NewService(articles []Article, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{articles: slices.Clone(articles), logger: logger}
}

// SearchRequest defines the inputs for Search. Empty filters match all.
type SearchRequest struct {
	Query       string
	ProjectCode string
	Category    string
}

// Search ranks articles by where query occurs: title, then tags, then
// content. Equal scores keep collection order.
func (s *Service) Search(req SearchRequest) (*SearchResult, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	needle := strings.ToLower(query)

	hits := []SearchHit{}
	for _, a := range s.articles {
		if !matchesFilter(a.ProjectCode, req.ProjectCode) || !matchesFilter(a.Category, req.Category) {
			continue
		}
		score := Score(a, needle)
		if score == 0 {
			continue
		}
		hits = append(hits, SearchHit{
			ID:          a.ID,
			Title:       a.Title,
			ProjectCode: a.ProjectCode,
			ProjectName: a.ProjectName,
			Category:    a.Category,
			Tags:        slices.Clone(a.Tags),
			Author:      a.Author,
			ViewCount:   a.ViewCount,
			Score:       score,
			Preview:     preview(a.Content),
		})
	}
	slices.SortStableFunc(hits, func(x, y SearchHit) int { return cmp.Compare(y.Score, x.Score) })

	s.logger.Debug("knowledge search", "query", query, "results", len(hits))
	return &SearchResult{Articles: hits, TotalResults: len(hits), Query: query}, nil
}

// Score weighs a lower-cased needle against one article.
func Score(a Article, needle string) int {
	score := 0
	if strings.Contains(strings.ToLower(a.Title), needle) {
		score += titleWeight
	}
	if slices.ContainsFunc(a.Tags, func(tag string) bool {
		return strings.Contains(strings.ToLower(tag), needle)
	}) {
		score += tagWeight
	}
	if strings.Contains(strings.ToLower(a.Content), needle) {
		score += contentWeight
	}
	return score
}

// Get returns the article with id, ignoring case.
func (s *Service) Get(id string) (*Article, error) {
	id = strings.TrimSpace(id)
	for _, a := range s.articles {
		if strings.EqualFold(a.ID, id) {
			article := a
			article.Tags = slices.Clone(a.Tags)
			return &article, nil
		}
	}
	return nil, fmt.Errorf("%w: '%s'", ErrArticleNotFound, id)
}

// ListByProject lists a project's articles in collection order.
func (s *Service) ListByProject(projectCode string) *ProjectListing {
	articles := []ArticleSummary{}
	for _, a := range s.articles {
		if strings.EqualFold(a.ProjectCode, strings.TrimSpace(projectCode)) {
			articles = append(articles, summarize(a))
		}
	}
	return &ProjectListing{
		ProjectCode: projectCode,
		Articles:    articles,
		TotalCount:  len(articles),
	}
}

// ListByCategory lists a category's articles, optionally within a project.
func (s *Service) ListByCategory(category, projectCode string) *CategoryListing {
	articles := []ArticleSummary{}
	for _, a := range s.articles {
		if !strings.EqualFold(a.Category, strings.TrimSpace(category)) {
			continue
		}
		if !matchesFilter(a.ProjectCode, projectCode) {
			continue
		}
		articles = append(articles, summarize(a))
	}
	return &CategoryListing{
		Category:    category,
		ProjectCode: projectCode,
		Articles:    articles,
		TotalCount:  len(articles),
	}
}

// Popular returns the most-viewed articles. count <= 0 means
// DefaultPopularCount; anything above MaxPopularCount is capped.
func (s *Service) Popular(count int) *PopularListing {
	n := count
	if n <= 0 {
		n = DefaultPopularCount
	}
	n = min(n, MaxPopularCount, len(s.articles))

	ranked := slices.Clone(s.articles)
	slices.SortStableFunc(ranked, func(x, y Article) int { return cmp.Compare(y.ViewCount, x.ViewCount) })

	articles := make([]ArticleSummary, 0, n)
	for _, a := range ranked[:n] {
		articles = append(articles, summarize(a))
	}
	return &PopularListing{Articles: articles, TotalCount: len(articles)}
}

// Categories lists the distinct categories in first-seen order.
func (s *Service) Categories() *CategoryList {
	categories := []CategoryCount{}
	for _, a := range s.articles {
		i := slices.IndexFunc(categories, func(c CategoryCount) bool { return strings.EqualFold(c.Category, a.Category) })
		if i < 0 {
			categories = append(categories, CategoryCount{Category: a.Category})
			i = len(categories) - 1
		}
		categories[i].ArticleCount++
	}
	return &CategoryList{Categories: categories, TotalCount: len(categories)}
}

func matchesFilter(value, filter string) bool {
	filter = strings.TrimSpace(filter)
	return filter == "" || strings.EqualFold(value, filter)
}

func summarize(a Article) ArticleSummary {
	return ArticleSummary{
		ID:          a.ID,
		Title:       a.Title,
		ProjectCode: a.ProjectCode,
		ProjectName: a.ProjectName,
		Category:    a.Category,
		Tags:        slices.Clone(a.Tags),
		Author:      a.Author,
		ViewCount:   a.ViewCount,
		LastUpdated: a.LastUpdated.Format("2006-01-02"),
	}
}

// preview truncates content to previewLength characters, marking the cut.
func preview(content string) string {
	runes := []rune(content)
	if len(runes) <= previewLength {
		return content
	}
	return string(runes[:previewLength]) + "..."
}
