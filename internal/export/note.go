package export

import (
	"bytes"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lepinkainen/bookfinder/internal/book"
)

// Frontmatter is YAML frontmatter written with sorted keys so repeated
// exports produce identical files.
type Frontmatter struct {
	fields map[string]any
}

// NewFrontmatter returns an empty Frontmatter.
func NewFrontmatter() *Frontmatter {
	return &Frontmatter{fields: make(map[string]any)}
}

// Set stores value under key. Empty strings and nil are skipped.
func (f *Frontmatter) Set(key string, value any) {
	switch v := value.(type) {
	case nil:
		return
	case string:
		if v == "" {
			return
		}
	}
	f.fields[key] = value
}

// Get returns the value stored under key.
func (f *Frontmatter) Get(key string) (any, bool) {
	v, ok := f.fields[key]
	return v, ok
}

// MarshalYAML emits a mapping in key order with tags in flow style.
func (f *Frontmatter) MarshalYAML() (any, error) {
	keys := make([]string, 0, len(f.fields))
	for k := range f.fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, key := range keys {
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(f.fields[key]); err != nil {
			return nil, err
		}
		if key == "tags" {
			valueNode.Style = yaml.FlowStyle
		}
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: key}, valueNode)
	}
	return node, nil
}

// Note is a markdown document with frontmatter.
type Note struct {
	Frontmatter *Frontmatter
	Body        string
}

// Build renders the note.
func (n *Note) Build() ([]byte, error) {
	var buf bytes.Buffer

	if n.Frontmatter != nil && len(n.Frontmatter.fields) > 0 {
		fm, err := yaml.Marshal(n.Frontmatter)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal frontmatter: %w", err)
		}
		buf.WriteString("---\n")
		buf.Write(fm)
		buf.WriteString("---\n\n")
	}

	buf.WriteString(strings.TrimSpace(n.Body))
	buf.WriteString("\n")
	return buf.Bytes(), nil
}

// BookNote builds the note for a favorite. cover is the path relative to
// the note, or empty when no cover was saved.
func BookNote(b book.Book, cover, exported string) *Note {
	fm := NewFrontmatter()
	fm.Set("title", b.Title)
	fm.Set("author", b.Author)
	fm.Set("genre", b.Genre)
	fm.Set("year", b.Year)
	fm.Set("publisher", b.Publisher)
	fm.Set("language", b.Language)
	fm.Set("google_books_id", b.ID)
	if b.ISBN != book.NoISBN {
		fm.Set("isbn", b.ISBN)
	}
	if b.Pages > 0 {
		fm.Set("pages", b.Pages)
	}
	if b.Rating > 0 {
		fm.Set("rating", b.Rating)
	}
	if b.Price > 0 {
		fm.Set("price", b.Price)
	}
	fm.Set("cover", cover)
	fm.Set("exported", exported)
	fm.Set("tags", bookTags(b))

	var body strings.Builder
	fmt.Fprintf(&body, "# %s\n\n", b.Title)
	if cover != "" {
		fmt.Fprintf(&body, "![](%s)\n\n", cover)
	}
	fmt.Fprintf(&body, "**Author:** %s\n", b.Author)
	fmt.Fprintf(&body, "**Rating:** %s\n", b.RatingLabel())
	fmt.Fprintf(&body, "**Price:** %s\n\n", b.PriceLabel())
	body.WriteString(b.Description)

	return &Note{Frontmatter: fm, Body: body.String()}
}

var (
	tagWhitespace = regexp.MustCompile(`\s+`)
	tagHyphens    = regexp.MustCompile(`-+`)
)

// normalizeTag turns "Science & Fiction" into "Science-and-Fiction".
func normalizeTag(tag string) string {
	tag = strings.TrimPrefix(strings.TrimSpace(tag), "#")
	tag = strings.ReplaceAll(tag, "&", "and")
	tag = strings.ReplaceAll(tag, "#", "")
	tag = tagWhitespace.ReplaceAllString(tag, "-")
	tag = tagHyphens.ReplaceAllString(tag, "-")
	return strings.Trim(tag, "-")
}

func bookTags(b book.Book) []string {
	tags := []string{"bookfinder/favorite"}
	if b.Genre != book.Uncategorized {
		if genre := normalizeTag(b.Genre); genre != "" {
			tags = append(tags, "genre/"+genre)
		}
	}
	if b.Year != "" && b.Year != book.UnknownYear {
		tags = append(tags, "year/"+b.Year)
	}
	return tags
}
