package help

const QuickstartYAML = `# blog-linker Quick Start

corpus:
  layout: "blog/blog-<slug>-YYYY-MM-DD.html (prefix and dir configurable)"
  metadata: "<title>, <meta name=description>, <meta name=keywords>, h1.blog-title"

commands:
  build: |
    blog-linker build
    blog-linker build --save            # write sqlite snapshot to db_path

  suggest: |
    blog-linker suggest --title "WhatsApp for clinics" --keywords "whatsapp automation,healthcare"
    blog-linker suggest --title "..." --slug whatsapp-clinics --record
    blog-linker suggest --title "..." --from-db   # use the saved snapshot

  weave: |
    blog-linker weave --input draft.html --output blog/blog-new-post.html \
      --title "WhatsApp for clinics" --keywords "whatsapp automation" --slug new-post

  stats: |
    blog-linker stats --top 25

  report: |
    blog-linker report                  # inbound link counts + orphan articles

config:
  file: "blog-linker.yaml (or --config, or BLOG_LINKER_CONFIG)"
  corpus_override: "--corpus or BLOG_LINKER_CORPUS"
  keys:
    - corpus_dir
    - brand_suffix
    - slug_prefix
    - heading_selector
    - url_prefix
    - base_url
    - categories
    - fallback_categories
    - fallback_limit
    - target_count
    - prose_selector
    - conclusion_heading
    - cache_dir
    - cache_ttl
    - db_path
    - languages

relevance:
  - "0.1 per shared word + 0.3 * title Jaccard + 0.2 per keyword found, capped at 1.0"
  - "Candidates: exact keyword, fuzzy keyword, category, title similarity, keyword pairs"
  - "No candidates: up to 5 articles from the fallback categories"

weaving_order:
  - "First paragraph of each .prose block: 'See also' note"
  - "List items over 50 characters: '(context: link)'"
  - "Plain paragraphs over 100 characters: link at the middle word"
  - "Remaining links: Related Articles block before the Conclusion heading"

output:
  - "build/suggest/stats/report print YAML to stdout"
  - "weave prints HTML to stdout unless --output is given"
  - "Logs are JSON on stderr (--quiet, --verbose)"
`
