package news

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"github.com/abelbrown/scroll/internal/content"
)

const maxBodyLen = 500

// convertFeedItem maps a parsed feed entry to a news item.
func convertFeedItem(fi *gofeed.Item, src Source, fetchTime time.Time) content.Item {
	published := fetchTime
	if fi.PublishedParsed != nil {
		published = *fi.PublishedParsed
	} else if fi.UpdatedParsed != nil {
		published = *fi.UpdatedParsed
	}

	html := fi.Description
	if html == "" {
		html = fi.Content
	}

	item := content.Item{
		ID:          generateID(fi),
		Kind:        content.KindNews,
		Title:       strings.TrimSpace(fi.Title),
		Body:        truncate(plainText(html), maxBodyLen),
		Image:       imageFor(fi),
		URL:         fi.Link,
		Source:      src.Name,
		PublishedAt: published,
		IsBreaking:  true,
	}
	if len(fi.Categories) > 0 {
		item.Category = fi.Categories[0]
	}
	if item.Source == "" && fi.Author != nil {
		item.Source = fi.Author.Name
	}
	return item
}

// imageFor picks the first image from the entry's image, enclosures, media
// extensions, then any <img> in its HTML.
func imageFor(fi *gofeed.Item) string {
	if fi.Image != nil && fi.Image.URL != "" {
		return fi.Image.URL
	}
	for _, enc := range fi.Enclosures {
		if enc != nil && strings.HasPrefix(enc.Type, "image/") && enc.URL != "" {
			return enc.URL
		}
	}
	if media, ok := fi.Extensions["media"]; ok {
		for _, name := range []string{"content", "thumbnail"} {
			for _, ext := range media[name] {
				if u := ext.Attrs["url"]; u != "" {
					return u
				}
			}
		}
	}
	for _, html := range []string{fi.Description, fi.Content} {
		if u := firstImage(html); u != "" {
			return u
		}
	}
	return ""
}

func parseHTML(html string) *goquery.Document {
	if !strings.Contains(html, "<") {
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}
	return doc
}

func firstImage(html string) string {
	doc := parseHTML(html)
	if doc == nil {
		return ""
	}
	src, _ := doc.Find("img[src]").First().Attr("src")
	return strings.TrimSpace(src)
}

// plainText strips markup and collapses whitespace.
func plainText(html string) string {
	text := html
	if doc := parseHTML(html); doc != nil {
		text = doc.Text()
	}
	return strings.Join(strings.Fields(text), " ")
}

// generateID derives a stable ID from the GUID, the link, or the title.
func generateID(fi *gofeed.Item) string {
	if fi.GUID != "" {
		return hashString(fi.GUID)
	}
	if fi.Link != "" {
		return hashString(fi.Link)
	}
	key := fi.Title
	if fi.PublishedParsed != nil {
		key += fi.PublishedParsed.String()
	}
	return hashString(key)
}

func hashString(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:8])
}

// truncate shortens s to maxLen runes, ending in "..." when cut.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
