package models

// ArticleSource identifies the outlet an article came from
type ArticleSource struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// Article is a news article as returned by the news provider. The service
// passes these through unmodified, so timestamps stay provider-formatted
// strings.
type Article struct {
	Source      ArticleSource `json:"source"`
	Author      string        `json:"author,omitempty"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	URL         string        `json:"url"`
	URLToImage  string        `json:"urlToImage,omitempty"`
	PublishedAt string        `json:"publishedAt"`
	Content     string        `json:"content,omitempty"`
}
