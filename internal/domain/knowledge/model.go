package knowledge

import "time"

// Article is an immutable knowledge-base entry.
type Article struct {
	ID          string    `json:"id"`
	ProjectCode string    `json:"projectCode"`
	ProjectName string    `json:"projectName"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Category    string    `json:"category"`
	Tags        []string  `json:"tags"`
	CreatedDate time.Time `json:"createdDate"`
	LastUpdated time.Time `json:"lastUpdated"`
	Author      string    `json:"author"`
	ViewCount   int       `json:"viewCount"`
}

// SearchHit is a ranked search result with a content preview.
type SearchHit struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	ProjectCode string   `json:"projectCode"`
	ProjectName string   `json:"projectName"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	Author      string   `json:"author"`
	ViewCount   int      `json:"viewCount"`
	Score       int      `json:"score"`
	Preview     string   `json:"preview"`
}

// SearchResult is the ranked hit list for one query.
type SearchResult struct {
	Articles     []SearchHit `json:"articles"`
	TotalResults int         `json:"totalResults"`
	Query        string      `json:"query"`
}

// ArticleSummary is the listing form of an article.
type ArticleSummary struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	ProjectCode string   `json:"projectCode"`
	ProjectName string   `json:"projectName"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	Author      string   `json:"author"`
	ViewCount   int      `json:"viewCount"`
	LastUpdated string   `json:"lastUpdated"`
}

// ProjectListing lists one project's articles.
type ProjectListing struct {
	ProjectCode string           `json:"projectCode"`
	Articles    []ArticleSummary `json:"articles"`
	TotalCount  int              `json:"totalCount"`
}

// CategoryListing lists one category's articles.
type CategoryListing struct {
	Category    string           `json:"category"`
	ProjectCode string           `json:"projectCode,omitempty"`
	Articles    []ArticleSummary `json:"articles"`
	TotalCount  int              `json:"totalCount"`
}

// PopularListing is the most-viewed articles.
type PopularListing struct {
	Articles   []ArticleSummary `json:"articles"`
	TotalCount int              `json:"totalCount"`
}

// CategoryCount is one category and how many articles it holds.
type CategoryCount struct {
	Category     string `json:"category"`
	ArticleCount int    `json:"articleCount"`
}

// CategoryList is the result of Categories.
type CategoryList struct {
	Categories []CategoryCount `json:"categories"`
	TotalCount int             `json:"totalCount"`
}
