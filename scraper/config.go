package scraper

// ListConfig defines how to walk a paginated listing page and pull one
// summary per item.
type ListConfig struct {
	ItemSelector       string `yaml:"item_selector" json:"item_selector"`
	TitleLinkSelector  string `yaml:"title_link_selector" json:"title_link_selector"`
	MinorSelector      string `yaml:"minor_selector" json:"minor_selector"`
	AuthorSelector     string `yaml:"author_selector" json:"author_selector"`
	TimeSelector       string `yaml:"time_selector" json:"time_selector"`
	PaginationSelector string `yaml:"pagination_selector" json:"pagination_selector"`
	MaxPages           int    `yaml:"max_pages" json:"max_pages"` // 0 means no limit
}

// ThreadConfig defines how to pull posts out of a single thread page.
type ThreadConfig struct {
	PostSelector    string `yaml:"post_selector" json:"post_selector"`
	AuthorSelector  string `yaml:"author_selector" json:"author_selector"`
	MessageSelector string `yaml:"message_selector" json:"message_selector"`
	TimeSelector    string `yaml:"time_selector" json:"time_selector"`
}

// ArticleConfig defines how to extract a numbered article page.
type ArticleConfig struct {
	ContainerSelector string `yaml:"container_selector" json:"container_selector"`
	TitleSelector     string `yaml:"title_selector" json:"title_selector"`
	BlockSelector     string `yaml:"block_selector" json:"block_selector"`
	ImageSelector     string `yaml:"image_selector" json:"image_selector"`
	// SkipNestedCode drops a code block already covered by its enclosing pre
	SkipNestedCode    bool   `yaml:"skip_nested_code" json:"skip_nested_code"`
}

// DefaultListConfig returns selectors for a XenForo thread listing.
func DefaultListConfig() ListConfig {
	return ListConfig{
		ItemSelector:       "div.structItem-cell.structItem-cell--main",
		TitleLinkSelector:  "div.structItem-title a",
		MinorSelector:      "div.structItem-minor",
		AuthorSelector:     "a.username",
		TimeSelector:       "time",
		PaginationSelector: "a.pageNav-jump.pageNav-jump--next",
		MaxPages:           3,
	}
}

// DefaultThreadConfig returns selectors for a XenForo thread page.
func DefaultThreadConfig() ThreadConfig {
	return ThreadConfig{
		PostSelector:    "article.message",
		AuthorSelector:  "a.username",
		MessageSelector: "div.bbWrapper",
		TimeSelector:    "time.u-dt",
	}
}

// DefaultArticleConfig returns selectors for the numbered article pages.
func DefaultArticleConfig() ArticleConfig {
	return ArticleConfig{
		ContainerSelector: "div.article",
		TitleSelector:     "h1",
		BlockSelector:     "p, pre, code",
		ImageSelector:     "img",
	}
}

// WithDefaults fills any empty selector from DefaultListConfig. MaxPages is
// left untouched since zero is meaningful.
func (c ListConfig) WithDefaults() ListConfig {
	d := DefaultListConfig()
	fill(&c.ItemSelector, d.ItemSelector)
	fill(&c.TitleLinkSelector, d.TitleLinkSelector)
	fill(&c.MinorSelector, d.MinorSelector)
	fill(&c.AuthorSelector, d.AuthorSelector)
	fill(&c.TimeSelector, d.TimeSelector)
	fill(&c.PaginationSelector, d.PaginationSelector)
	return c
}

// WithDefaults fills any empty selector from DefaultThreadConfig.
func (c ThreadConfig) WithDefaults() ThreadConfig {
	d := DefaultThreadConfig()
	fill(&c.PostSelector, d.PostSelector)
	fill(&c.AuthorSelector, d.AuthorSelector)
	fill(&c.MessageSelector, d.MessageSelector)
	fill(&c.TimeSelector, d.TimeSelector)
	return c
}

// WithDefaults fills any empty selector from DefaultArticleConfig.
func (c ArticleConfig) WithDefaults() ArticleConfig {
	d := DefaultArticleConfig()
	fill(&c.ContainerSelector, d.ContainerSelector)
	fill(&c.TitleSelector, d.TitleSelector)
	fill(&c.BlockSelector, d.BlockSelector)
	fill(&c.ImageSelector, d.ImageSelector)
	return c
}

func fill(dst *string, def string) {
	if *dst == "" {
		*dst = def
	}
}
