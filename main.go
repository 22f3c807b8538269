package main

import (
	"fmt"
	"os"

	"github.com/dtnitsch/blog-linker/internal/db"
	"github.com/dtnitsch/blog-linker/internal/linker"
	"github.com/dtnitsch/blog-linker/models"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	sourceFlags := []cli.Flag{
		&cli.BoolFlag{
			Name:  "from-db",
			Usage: "Load the link database from the saved sqlite snapshot instead of scanning the corpus",
		},
	}
	articleFlags := []cli.Flag{
		&cli.StringFlag{
			Name:  "title",
			Usage: "Title of the article being linked",
		},
		&cli.StringFlag{
			Name:  "keywords",
			Usage: "Comma-separated keywords of the article",
		},
		&cli.StringFlag{
			Name:  "slug",
			Usage: "Slug of the article; excluded from suggestions",
		},
		&cli.IntFlag{
			Name:  "count",
			Usage: "Maximum number of links (default: target_count from config)",
		},
		&cli.BoolFlag{
			Name:  "record",
			Usage: "Record the suggested links in the sqlite database",
		},
	}

	return &cli.App{
		Name:  "blog-linker",
		Usage: "Recommend and insert internal links for a static blog",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "Path to the YAML config file",
				Value:   models.DefaultConfigPath,
				EnvVars: []string{"BLOG_LINKER_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "corpus",
				Usage:   "Directory of published article HTML files",
				EnvVars: []string{"BLOG_LINKER_CORPUS"},
			},
			&cli.StringFlag{
				Name:  "db",
				Usage: "Path to the sqlite database",
			},
			&cli.StringFlag{
				Name:  "cache-dir",
				Usage: "Directory for cached article metadata (disabled when empty)",
			},
			&cli.BoolFlag{
				Name:  "no-signals",
				Usage: "Skip word count, excerpt and language detection",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Only log errors",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Log debug output",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "build",
				Usage:  "Scan the corpus and summarize the link database",
				Action: linker.BuildAction,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "save",
						Usage: "Write the snapshot to the sqlite database",
					},
				},
			},
			{
				Name:   "suggest",
				Usage:  "Print internal link suggestions for an article",
				Action: linker.SuggestAction,
				Flags:  append(append([]cli.Flag{}, articleFlags...), sourceFlags...),
			},
			{
				Name:   "weave",
				Usage:  "Insert internal links into an HTML file",
				Action: linker.WeaveAction,
				Flags: append(append([]cli.Flag{
					&cli.StringFlag{
						Name:  "input",
						Usage: "HTML file to read (stdin when empty or -)",
					},
					&cli.StringFlag{
						Name:  "output",
						Usage: "File to write (stdout when empty)",
					},
				}, articleFlags...), sourceFlags...),
			},
			{
				Name:   "stats",
				Usage:  "Corpus top terms and category sizes",
				Action: linker.StatsAction,
				Flags: append([]cli.Flag{
					&cli.IntFlag{
						Name:  "top",
						Usage: "Number of top terms",
						Value: 25,
					},
				}, sourceFlags...),
			},
			{
				Name:   "report",
				Usage:  "Inbound link counts and orphan articles from the sqlite database",
				Action: db.ReportAction,
			},
			{
				Name:   "quickstart",
				Usage:  "Print a YAML cheat sheet",
				Action: linker.QuickstartAction,
			},
		},
	}
}
