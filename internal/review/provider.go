package review

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Document is a raw review source before rendering: parsed front matter plus
// the markdown body.
type Document struct {
	Title      string
	CoverImage string
	Body       string
}

// Provider resolves a slug to a review document. The second return value is
// false when no document exists for the slug; errors are reserved for real
// read failures.
type Provider interface {
	Load(slug string) (Document, bool, error)
}

// DirProvider reads companion markdown files from a directory, one
// "<slug>.md" per review.
type DirProvider struct {
	Dir string
}

func (p DirProvider) Load(slug string) (Document, bool, error) {
	if !validSlug(slug) {
		return Document{}, false, nil
	}

	raw, err := os.ReadFile(filepath.Join(p.Dir, slug+".md"))
	if errors.Is(err, os.ErrNotExist) {
		return Document{}, false, nil
	}
	if err != nil {
		return Document{}, false, err
	}

	return parseDocument(slug, string(raw)), true, nil
}

// validSlug rejects anything that could escape the reviews directory.
func validSlug(slug string) bool {
	if slug == "" || slug == "." || slug == ".." {
		return false
	}
	return !strings.ContainsAny(slug, "/\\")
}

// quoteStripper removes every single and double quote from a front matter
// value, not just a surrounding pair.
var quoteStripper = strings.NewReplacer(`'`, "", `"`, "")

// parseDocument splits an optional leading front matter block of "key: value"
// lines delimited by "---" from the markdown body. Recognized keys are title
// and coverImage; all quote characters are stripped from values. The title
// falls back to the slug with hyphens as spaces, title-cased.
func parseDocument(slug, content string) Document {
	doc := Document{
		Title: titleFromSlug(slug),
		Body:  content,
	}

	lines := strings.Split(content, "\n")
	if len(lines) == 0 || strings.TrimRight(lines[0], "\r") != "---" {
		return doc
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], "\r") == "---" {
			end = i
			break
		}
	}
	if end < 0 {
		return doc
	}

	for _, line := range lines[1:end] {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = quoteStripper.Replace(strings.TrimSpace(value))

		switch strings.TrimSpace(key) {
		case "title":
			if value != "" {
				doc.Title = value
			}
		case "coverImage":
			doc.CoverImage = value
		}
	}

	doc.Body = strings.Join(lines[end+1:], "\n")
	return doc
}

func titleFromSlug(slug string) string {
	words := strings.Split(strings.ReplaceAll(slug, "-", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
