package db

import (
	"database/sql"
	"fmt"

	"github.com/dtnitsch/blog-linker/models"
	"github.com/dtnitsch/blog-linker/pkg/linkdb"
)

// SaveDatabase replaces the stored snapshot with the contents of ldb.
// Recorded links are kept.
func (db *DB) SaveDatabase(ldb *linkdb.LinkDatabase) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // no-op after Commit

	if _, err := tx.Exec("DELETE FROM articles"); err != nil {
		return fmt.Errorf("failed to clear articles: %w", err)
	}

	for i, a := range ldb.Articles.Items() {
		if err := insertArticle(tx, i, a); err != nil {
			return err
		}
	}

	for _, c := range ldb.CategoryNames() {
		for _, a := range ldb.InCategory(c) {
			if _, err := tx.Exec(`
				INSERT INTO article_categories (slug, category) VALUES (?, ?)
			`, a.Slug, c); err != nil {
				return fmt.Errorf("failed to insert category %q for %s: %w", c, a.Slug, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return nil
}

func insertArticle(tx *sql.Tx, position int, a *models.Article) error {
	_, err := tx.Exec(`
		INSERT INTO articles (slug, position, title, description, filename, url, dist_url,
			main_heading, language, word_count, excerpt)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, a.Slug, position, a.Title, a.Description, a.Filename, a.URL, a.DistURL,
		a.MainHeading, a.Language, a.WordCount, a.Excerpt)
	if err != nil {
		return fmt.Errorf("failed to insert article %s: %w", a.Slug, err)
	}

	for i, kw := range a.Keywords {
		if _, err := tx.Exec(`
			INSERT INTO article_keywords (slug, position, keyword) VALUES (?, ?, ?)
		`, a.Slug, i, kw); err != nil {
			return fmt.Errorf("failed to insert keyword for %s: %w", a.Slug, err)
		}
	}
	return nil
}

// ListArticles returns the stored articles in build order.
func (db *DB) ListArticles() ([]*models.Article, error) {
	rows, err := db.Query(`
		SELECT slug, title, COALESCE(description, ''), filename, url, COALESCE(dist_url, ''),
			COALESCE(main_heading, ''), COALESCE(language, ''), word_count, COALESCE(excerpt, '')
		FROM articles
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	defer rows.Close()

	var articles []*models.Article
	bySlug := make(map[string]*models.Article)
	for rows.Next() {
		a := &models.Article{Keywords: []string{}}
		if err := rows.Scan(&a.Slug, &a.Title, &a.Description, &a.Filename, &a.URL, &a.DistURL,
			&a.MainHeading, &a.Language, &a.WordCount, &a.Excerpt); err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		articles = append(articles, a)
		bySlug[a.Slug] = a
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating articles: %w", err)
	}

	kwRows, err := db.Query("SELECT slug, keyword FROM article_keywords ORDER BY slug, position")
	if err != nil {
		return nil, fmt.Errorf("failed to list keywords: %w", err)
	}
	defer kwRows.Close()

	for kwRows.Next() {
		var slug, kw string
		if err := kwRows.Scan(&slug, &kw); err != nil {
			return nil, fmt.Errorf("failed to scan keyword: %w", err)
		}
		if a, ok := bySlug[slug]; ok {
			a.Keywords = append(a.Keywords, kw)
		}
	}
	if err := kwRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating keywords: %w", err)
	}

	return articles, nil
}

// LoadDatabase rebuilds a LinkDatabase from the stored articles. Category
// membership is recomputed against categories.
func (db *DB) LoadDatabase(categories []string) (*linkdb.LinkDatabase, error) {
	articles, err := db.ListArticles()
	if err != nil {
		return nil, err
	}
	ldb := linkdb.New(categories)
	for _, a := range articles {
		ldb.Update(a)
	}
	return ldb, nil
}

// CategoryCounts returns the stored number of articles per category.
func (db *DB) CategoryCounts() (map[string]int, error) {
	rows, err := db.Query("SELECT category, COUNT(*) FROM article_categories GROUP BY category")
	if err != nil {
		return nil, fmt.Errorf("failed to count categories: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var c string
		var n int
		if err := rows.Scan(&c, &n); err != nil {
			return nil, fmt.Errorf("failed to scan category count: %w", err)
		}
		counts[c] = n
	}
	return counts, rows.Err()
}
