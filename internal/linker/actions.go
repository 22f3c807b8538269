// Package linker holds the CLI actions for building the link database,
// suggesting links and weaving them into posts.
package linker

import (
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/dtnitsch/blog-linker/internal/common"
	"github.com/dtnitsch/blog-linker/models"
	"github.com/dtnitsch/blog-linker/pkg/analytics"
	"github.com/dtnitsch/blog-linker/pkg/db"
	"github.com/dtnitsch/blog-linker/pkg/help"
	"github.com/dtnitsch/blog-linker/pkg/linkdb"
	"github.com/dtnitsch/blog-linker/pkg/mapreduce"
	"github.com/dtnitsch/blog-linker/pkg/relevance"
	"github.com/dtnitsch/blog-linker/pkg/storage"
	"github.com/dtnitsch/blog-linker/pkg/weaver"
	"github.com/urfave/cli/v2"
)

// BuildSummary is the data block of the build command.
type BuildSummary struct {
	CorpusDir  string               `yaml:"corpus_dir"`
	Articles   int                  `yaml:"articles"`
	Keywords   int                  `yaml:"keywords"`
	Categories map[string]int       `yaml:"categories"`
	Skipped    []linkdb.SkippedFile `yaml:"skipped,omitempty"`
	SavedTo    string               `yaml:"saved_to,omitempty"`
}

// SuggestOutput is the data block of the suggest command.
type SuggestOutput struct {
	Current     models.CurrentArticle   `yaml:"current"`
	Suggestions []models.LinkSuggestion `yaml:"suggestions"`
	Recorded    bool                    `yaml:"recorded,omitempty"`
}

// StatsOutput is the data block of the stats command.
type StatsOutput struct {
	Articles   int                    `yaml:"articles"`
	TopTerms   []mapreduce.TermCount  `yaml:"top_terms"`
	Categories map[string]int         `yaml:"categories"`
	Languages  map[string]int         `yaml:"languages,omitempty"`
	WordCounts map[string]interface{} `yaml:"word_counts,omitempty"`
}

// session bundles what every linking command needs.
type session struct {
	cfg    models.LinkerConfig
	logger *slog.Logger
}

func newSession(c *cli.Context) (*session, error) {
	logger := common.NewLogger(c)
	cfg, err := common.LoadConfig(c)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &session{cfg: cfg, logger: logger}, nil
}

// build scans the corpus, or loads the sqlite snapshot when --from-db is set.
func (s *session) build(c *cli.Context) (*linkdb.LinkDatabase, []linkdb.SkippedFile, error) {
	if c.Bool("from-db") {
		database, err := db.Open(s.cfg.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open database: %w", err)
		}
		defer database.Close()

		ldb, err := database.LoadDatabase(s.cfg.Categories)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load snapshot: %w", err)
		}
		s.logger.Debug("link database loaded from snapshot", "path", database.Path(), "articles", ldb.Articles.Len())
		return ldb, nil, nil
	}

	builder, err := common.NewBuilder(c, s.cfg, s.logger)
	if err != nil {
		return nil, nil, err
	}
	ldb := builder.Build()
	return ldb, builder.Skipped(), nil
}

func categoryCounts(ldb *linkdb.LinkDatabase) map[string]int {
	counts := make(map[string]int)
	for _, name := range ldb.CategoryNames() {
		counts[name] = ldb.Categories[name].Len()
	}
	return counts
}

func currentFromFlags(c *cli.Context) models.CurrentArticle {
	return models.CurrentArticle{
		Title:    c.String("title"),
		Keywords: common.SplitList(c.String("keywords")),
		Slug:     c.String("slug"),
	}
}

func targetCount(c *cli.Context, cfg models.LinkerConfig) int {
	if c.IsSet("count") {
		return c.Int("count")
	}
	return cfg.TargetCount
}

func usageError(c *cli.Context, command, message string, actions ...string) error {
	_ = common.WriteYAML(c.App.Writer, models.NewErrorResponse(command, "usage_error", message, actions...))
	return cli.Exit("", 1)
}

// BuildAction scans the corpus and prints a summary. --save writes the
// snapshot to sqlite.
func BuildAction(c *cli.Context) error {
	s, err := newSession(c)
	if err != nil {
		return err
	}

	builder, err := common.NewBuilder(c, s.cfg, s.logger)
	if err != nil {
		return err
	}
	ldb := builder.Build()

	summary := BuildSummary{
		CorpusDir:  s.cfg.CorpusDir,
		Articles:   ldb.Articles.Len(),
		Keywords:   len(ldb.KeywordKeys()),
		Categories: categoryCounts(ldb),
		Skipped:    builder.Skipped(),
	}

	resp := models.Response{Command: "build"}
	if ldb.Articles.Len() == 0 {
		resp.Warnings = append(resp.Warnings, fmt.Sprintf("no articles found in %s", s.cfg.CorpusDir))
	}

	if c.Bool("save") {
		database, err := db.Open(s.cfg.DBPath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer database.Close()

		if err := database.SaveDatabase(ldb); err != nil {
			return fmt.Errorf("failed to save snapshot: %w", err)
		}
		summary.SavedTo = database.Path()
		s.logger.Info("snapshot saved", "path", database.Path(), "articles", ldb.Articles.Len())
	}

	resp.Data = summary
	return common.WriteYAML(c.App.Writer, resp)
}

// SuggestAction prints link suggestions for the described article.
func SuggestAction(c *cli.Context) error {
	s, err := newSession(c)
	if err != nil {
		return err
	}

	current := currentFromFlags(c)
	if current.Title == "" {
		return usageError(c, "suggest", "--title is required",
			`blog-linker suggest --title "My new post" --keywords "ai automation,chatbot"`)
	}
	if c.Bool("record") && current.Slug == "" {
		return usageError(c, "suggest", "--record needs --slug to identify the source post")
	}

	ldb, _, err := s.build(c)
	if err != nil {
		return err
	}

	engine := relevance.NewEngineFromConfig(ldb, s.cfg, relevance.WithLogger(s.logger))
	out := SuggestOutput{
		Current:     current,
		Suggestions: engine.GenerateInternalLinks(current, targetCount(c, s.cfg)),
	}

	if c.Bool("record") {
		if err := recordLinks(s.cfg.DBPath, current.Slug, out.Suggestions); err != nil {
			return err
		}
		out.Recorded = true
	}

	resp := models.Response{Command: "suggest", Data: out}
	if current.Slug != "" && !ldb.Articles.Has(current.Slug) {
		resp.Warnings = append(resp.Warnings,
			fmt.Sprintf("slug %s is not in the corpus; treated as a new article", current.Slug))
	}
	if len(out.Suggestions) == 0 {
		resp.Warnings = append(resp.Warnings, "no related articles found")
	}
	return common.WriteYAML(c.App.Writer, resp)
}

func recordLinks(dbPath, source string, suggestions []models.LinkSuggestion) error {
	database, err := db.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	if err := database.RecordLinks(source, suggestions); err != nil {
		return fmt.Errorf("failed to record links: %w", err)
	}
	return nil
}

// WeaveAction inserts suggested links into an HTML file and writes the
// result to --output, or stdout.
func WeaveAction(c *cli.Context) error {
	s, err := newSession(c)
	if err != nil {
		return err
	}

	current := currentFromFlags(c)
	if current.Title == "" {
		return usageError(c, "weave", "--title is required",
			`blog-linker weave --input draft.html --output post.html --title "My new post"`)
	}

	store := &storage.Storage{}
	var content []byte
	if input := c.String("input"); input == "" || input == "-" {
		content, err = io.ReadAll(c.App.Reader)
	} else if !store.HasFile(input) {
		return usageError(c, "weave", fmt.Sprintf("input file %s not found", input))
	} else {
		content, err = store.ReadFile(input)
	}
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	ldb, _, err := s.build(c)
	if err != nil {
		return err
	}

	engine := relevance.NewEngineFromConfig(ldb, s.cfg, relevance.WithLogger(s.logger))
	links := engine.GenerateInternalLinks(current, targetCount(c, s.cfg))
	woven := weaver.New(s.cfg).InsertInternalLinks(string(content), links)

	if c.Bool("record") && current.Slug != "" {
		if err := recordLinks(s.cfg.DBPath, current.Slug, links); err != nil {
			return err
		}
	}

	s.logger.Info("links woven", "title", current.Title, "links", len(links))

	if output := c.String("output"); output != "" {
		return store.SaveFile(output, []byte(woven))
	}
	_, err = io.WriteString(c.App.Writer, woven)
	return err
}

// StatsAction prints corpus-wide term and category statistics.
func StatsAction(c *cli.Context) error {
	s, err := newSession(c)
	if err != nil {
		return err
	}

	ldb, _, err := s.build(c)
	if err != nil {
		return err
	}

	return common.WriteYAML(c.App.Writer, models.Response{
		Command: "stats",
		Data:    CorpusStats(ldb, c.Int("top")),
	})
}

// CorpusStats aggregates per-article term frequencies into the top n terms
// and summarizes categories, languages and word counts.
func CorpusStats(ldb *linkdb.LinkDatabase, n int) StatsOutput {
	a := &analytics.Analytics{}
	articles := ldb.Articles.Items()

	intermediate := make([]map[string]int, 0, len(articles))
	languages := make(map[string]int)
	var words []int
	for _, article := range articles {
		intermediate = append(intermediate, mapreduce.Map(article, a))
		if article.Language != "" {
			languages[article.Language]++
		}
		if article.WordCount > 0 {
			words = append(words, article.WordCount)
		}
	}

	out := StatsOutput{
		Articles:   len(articles),
		TopTerms:   mapreduce.TopTerms(mapreduce.Reduce(intermediate), n),
		Categories: categoryCounts(ldb),
	}
	if len(languages) > 0 {
		out.Languages = languages
	}
	if len(words) > 0 {
		sort.Ints(words)
		total := 0
		for _, w := range words {
			total += w
		}
		out.WordCounts = map[string]interface{}{
			"min":    words[0],
			"max":    words[len(words)-1],
			"median": words[len(words)/2],
			"total":  total,
		}
	}
	return out
}

// QuickstartAction prints the usage cheat sheet.
func QuickstartAction(c *cli.Context) error {
	_, err := io.WriteString(c.App.Writer, help.QuickstartYAML)
	return err
}
