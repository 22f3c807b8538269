package db

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;
PRAGMA temp_store = MEMORY;

-- Articles: one row per corpus file, replaced on every snapshot
CREATE TABLE IF NOT EXISTS articles (
    slug TEXT PRIMARY KEY,
    position INTEGER NOT NULL,
    title TEXT NOT NULL,
    description TEXT,
    filename TEXT NOT NULL,
    url TEXT NOT NULL,
    dist_url TEXT,
    main_heading TEXT,
    language TEXT,
    word_count INTEGER DEFAULT 0,
    excerpt TEXT,
    indexed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_articles_position ON articles(position);

-- Keywords in declared order
CREATE TABLE IF NOT EXISTS article_keywords (
    slug TEXT NOT NULL,
    position INTEGER NOT NULL,
    keyword TEXT NOT NULL,
    PRIMARY KEY (slug, position),
    FOREIGN KEY (slug) REFERENCES articles(slug) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_article_keywords_keyword ON article_keywords(keyword);

-- Category membership as computed at build time
CREATE TABLE IF NOT EXISTS article_categories (
    slug TEXT NOT NULL,
    category TEXT NOT NULL,
    PRIMARY KEY (slug, category),
    FOREIGN KEY (slug) REFERENCES articles(slug) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_article_categories_category ON article_categories(category);

-- Links placed into generated posts. Targets are not foreign keys so that
-- history survives a rebuild that drops an article.
CREATE TABLE IF NOT EXISTS links (
    link_id INTEGER PRIMARY KEY AUTOINCREMENT,
    source_slug TEXT NOT NULL,
    target_slug TEXT NOT NULL,
    relevance REAL NOT NULL,
    anchor_text TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (source_slug, target_slug)
);

CREATE INDEX IF NOT EXISTS idx_links_target ON links(target_slug);
`
