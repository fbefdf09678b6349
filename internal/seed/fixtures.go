package seed

import (
	"embed"
	"fmt"
	"time"

	"github.com/rpggio/workbench/internal/domain/knowledge"
	"github.com/rpggio/workbench/internal/domain/security"
	"gopkg.in/yaml.v3"
)

//go:embed fixtures/*.yaml
var fixtures embed.FS

type articleFixture struct {
	ID       string   `yaml:"id"`
	Project  string   `yaml:"project"`
	Title    string   `yaml:"title"`
	Category string   `yaml:"category"`
	Tags     []string `yaml:"tags"`
	Author   string   `yaml:"author"`
	Created  int      `yaml:"created"`
	Updated  int      `yaml:"updated"`
	Content  string   `yaml:"content"`
}

type issueFixture struct {
	ID             string `yaml:"id"`
	Project        string `yaml:"project"`
	Title          string `yaml:"title"`
	Severity       string `yaml:"severity"`
	Status         string `yaml:"status"`
	Reported       int    `yaml:"reported"`
	Resolved       *int   `yaml:"resolved"`
	ReportedBy     string `yaml:"reportedBy"`
	AssignedTo     string `yaml:"assignedTo"`
	Component      string `yaml:"component"`
	Description    string `yaml:"description"`
	Recommendation string `yaml:"recommendation"`
}

func loadFixture(name string, out any) error {
	raw, err := fixtures.ReadFile("fixtures/" + name)
	if err != nil {
		return fmt.Errorf("read fixture %s: %w", name, err)
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parse fixture %s: %w", name, err)
	}
	return nil
}

// Articles loads the knowledge base fixtures. View counts are drawn from
// the PRNG.
func (g *Generator) Articles() ([]knowledge.Article, error) {
	var doc struct {
		Articles []articleFixture `yaml:"articles"`
	}
	if err := loadFixture("articles.yaml", &doc); err != nil {
		return nil, err
	}

	rng := newSource(viewsSeed)
	articles := make([]knowledge.Article, 0, len(doc.Articles))
	for _, f := range doc.Articles {
		p, ok := g.byCode[f.Project]
		if !ok {
			return nil, fmt.Errorf("article %s: unknown project %q", f.ID, f.Project)
		}
		articles = append(articles, knowledge.Article{
			ID:          f.ID,
			ProjectCode: p.Code,
			ProjectName: p.Name,
			Title:       f.Title,
			Content:     f.Content,
			Category:    f.Category,
			Tags:        f.Tags,
			CreatedDate: g.offset(f.Created),
			LastUpdated: g.offset(f.Updated),
			Author:      f.Author,
			ViewCount:   50 + rng.IntN(451),
		})
	}
	return articles, nil
}

// Issues loads the security finding fixtures.
func (g *Generator) Issues() ([]security.Issue, error) {
	var doc struct {
		Issues []issueFixture `yaml:"issues"`
	}
	if err := loadFixture("issues.yaml", &doc); err != nil {
		return nil, err
	}

	issues := make([]security.Issue, 0, len(doc.Issues))
	for _, f := range doc.Issues {
		p, ok := g.byCode[f.Project]
		if !ok {
			return nil, fmt.Errorf("issue %s: unknown project %q", f.ID, f.Project)
		}
		severity, ok := security.ParseSeverity(f.Severity)
		if !ok {
			return nil, fmt.Errorf("issue %s: unknown severity %q", f.ID, f.Severity)
		}
		status, ok := security.ParseStatus(f.Status)
		if !ok {
			return nil, fmt.Errorf("issue %s: unknown status %q", f.ID, f.Status)
		}

		issue := security.Issue{
			ID:                f.ID,
			ProjectCode:       p.Code,
			ProjectName:       p.Name,
			Title:             f.Title,
			Description:       f.Description,
			Severity:          severity,
			Status:            status,
			ReportedDate:      g.offset(f.Reported),
			ReportedBy:        f.ReportedBy,
			AssignedTo:        f.AssignedTo,
			AffectedComponent: f.Component,
			Recommendation:    f.Recommendation,
		}
		if f.Resolved != nil {
			resolved := g.offset(*f.Resolved)
			issue.ResolvedDate = &resolved
		}
		issues = append(issues, issue)
	}
	return issues, nil
}

func (g *Generator) offset(days int) time.Time {
	return g.reference.AddDate(0, 0, days)
}
