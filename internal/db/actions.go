package db

import (
	"fmt"

	"github.com/dtnitsch/blog-linker/internal/common"
	"github.com/dtnitsch/blog-linker/models"
	dbpkg "github.com/dtnitsch/blog-linker/pkg/db"
	"github.com/urfave/cli/v2"
)

// Report is the data block of the report command.
type Report struct {
	Database   string                 `yaml:"database"`
	Articles   int                    `yaml:"articles"`
	Categories map[string]int         `yaml:"categories"`
	Inbound    []dbpkg.InboundCount   `yaml:"inbound"`
	Orphans    []string               `yaml:"orphans"`
	Summary    map[string]interface{} `yaml:"summary"`
}

// ReportAction prints inbound link counts and orphan articles from the
// saved snapshot.
func ReportAction(c *cli.Context) error {
	logger := common.NewLogger(c)
	cfg, err := common.LoadConfig(c)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	database, err := dbpkg.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	inbound, err := database.InboundCounts()
	if err != nil {
		return err
	}
	orphans, err := database.OrphanArticles()
	if err != nil {
		return err
	}
	categories, err := database.CategoryCounts()
	if err != nil {
		return err
	}

	if len(inbound) == 0 {
		logger.Warn("snapshot is empty", "path", database.Path())
		return common.WriteYAML(c.App.Writer, models.NewErrorResponse("report", "empty_snapshot",
			fmt.Sprintf("no articles stored in %s", database.Path()),
			"blog-linker build --save"))
	}

	totalLinks := 0
	for _, ic := range inbound {
		totalLinks += ic.Count
	}

	report := Report{
		Database:   database.Path(),
		Articles:   len(inbound),
		Categories: categories,
		Inbound:    inbound,
		Orphans:    orphans,
		Summary: map[string]interface{}{
			"recorded_links": totalLinks,
			"orphan_count":   len(orphans),
		},
	}

	resp := models.Response{Command: "report", Data: report}
	if len(orphans) > 0 {
		resp.Warnings = append(resp.Warnings,
			fmt.Sprintf("%d articles have no recorded inbound links", len(orphans)))
	}
	return common.WriteYAML(c.App.Writer, resp)
}
