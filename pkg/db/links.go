package db

import (
	"fmt"

	"github.com/dtnitsch/blog-linker/models"
)

// InboundCount is the number of recorded links pointing at an article.
type InboundCount struct {
	Slug  string `yaml:"slug"`
	Title string `yaml:"title"`
	Count int    `yaml:"count"`
}

// RecordLinks stores the suggestions placed into source. Re-recording the
// same pair updates its relevance and anchor text.
func (db *DB) RecordLinks(source string, suggestions []models.LinkSuggestion) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, s := range suggestions {
		_, err := tx.Exec(`
			INSERT INTO links (source_slug, target_slug, relevance, anchor_text)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(source_slug, target_slug) DO UPDATE SET
				relevance = excluded.relevance,
				anchor_text = excluded.anchor_text,
				created_at = CURRENT_TIMESTAMP
		`, source, s.Slug, s.Relevance, s.AnchorText)
		if err != nil {
			return fmt.Errorf("failed to record link %s -> %s: %w", source, s.Slug, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit links: %w", err)
	}
	return nil
}

// InboundCounts returns inbound link counts for every stored article,
// most-linked first.
func (db *DB) InboundCounts() ([]InboundCount, error) {
	rows, err := db.Query(`
		SELECT a.slug, a.title, COUNT(l.link_id) AS inbound
		FROM articles a
		LEFT JOIN links l ON l.target_slug = a.slug
		GROUP BY a.slug
		ORDER BY inbound DESC, a.position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to count inbound links: %w", err)
	}
	defer rows.Close()

	var counts []InboundCount
	for rows.Next() {
		var c InboundCount
		if err := rows.Scan(&c.Slug, &c.Title, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan inbound count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// OrphanArticles returns the slugs of stored articles no recorded link targets.
func (db *DB) OrphanArticles() ([]string, error) {
	rows, err := db.Query(`
		SELECT a.slug
		FROM articles a
		WHERE NOT EXISTS (SELECT 1 FROM links l WHERE l.target_slug = a.slug)
		ORDER BY a.position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list orphan articles: %w", err)
	}
	defer rows.Close()

	var slugs []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("failed to scan orphan slug: %w", err)
		}
		slugs = append(slugs, s)
	}
	return slugs, rows.Err()
}
