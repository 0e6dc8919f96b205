package service

import (
	"encoding/json"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	log "github.com/sirupsen/logrus"

	"seo_audit_engine/internal/domain/models"
	"seo_audit_engine/internal/pkg/errors"
)

const bodyTextCap = 15000

var wordRe = regexp.MustCompile(`\b\w+\b`)

func countWords(text string) int {
	return len(wordRe.FindAllString(text, -1))
}

// Parser extracts every audit-relevant fact from raw markup into a
// ParsedPage. It is tolerant of malformed HTML: missing elements yield empty
// fields and unparsable JSON-LD blocks are dropped.
type Parser struct {
	log *log.Logger
}

func NewParser(logger *log.Logger) *Parser {
	return &Parser{log: logger}
}

// Parse builds the read-only document model the analyzers consume. baseURL
// is used to resolve relative references and to partition links.
func (p *Parser) Parse(htmlContent string, baseURL string) (*models.ParsedPage, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, errors.Wrap(err, `failed to parse html`)
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		base = nil
	}

	page := &models.ParsedPage{
		OpenGraph:   map[string]string{},
		TwitterCard: map[string]string{},
	}

	if lang, ok := doc.Find("html").Attr("lang"); ok {
		page.Language = lang
	}

	page.Title = strings.TrimSpace(doc.Find("title").First().Text())

	doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		name := strings.ToLower(s.AttrOr("name", ""))
		prop := strings.ToLower(s.AttrOr("property", ""))
		content := s.AttrOr("content", "")

		if charset, ok := s.Attr("charset"); ok {
			page.Charset = charset
		}
		switch name {
		case "description":
			page.MetaDescription = content
		case "robots":
			page.MetaRobots = content
		case "viewport":
			page.Viewport = content
		}
		if strings.HasPrefix(prop, "og:") {
			page.OpenGraph[prop] = content
		}
		if strings.HasPrefix(name, "twitter:") {
			page.TwitterCard[name] = content
		}
	})

	if href, ok := doc.Find(`link[rel="canonical"]`).Attr("href"); ok {
		page.Canonical = href
	}

	doc.Find(`link[rel="alternate"]`).Each(func(_ int, s *goquery.Selection) {
		if lang, ok := s.Attr("hreflang"); ok {
			page.Hreflang = append(page.Hreflang, models.Hreflang{
				Lang: lang,
				Href: s.AttrOr("href", ""),
			})
		}
	})

	for level := 1; level <= 6; level++ {
		tag := "h" + string(rune('0'+level))
		doc.Find(tag).Each(func(_ int, s *goquery.Selection) {
			text := strings.TrimSpace(s.Text())
			if text != "" {
				page.Headings[level-1] = append(page.Headings[level-1], text)
			}
		})
	}

	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		page.Images = append(page.Images, models.Image{
			Src:           resolveRef(base, s.AttrOr("src", "")),
			Alt:           s.AttrOr("alt", ""),
			Width:         s.AttrOr("width", ""),
			Height:        s.AttrOr("height", ""),
			Loading:       s.AttrOr("loading", ""),
			FetchPriority: s.AttrOr("fetchpriority", ""),
			Decoding:      s.AttrOr("decoding", ""),
		})
	})

	if base != nil {
		doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
			href := s.AttrOr("href", "")
			if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "javascript:") {
				return
			}
			resolved, err := base.Parse(href)
			if err != nil {
				return
			}
			text := strings.TrimSpace(s.Text())
			if len(text) > 100 {
				text = text[:100]
			}
			rel := s.AttrOr("rel", "")
			link := models.Link{
				Href:     resolved.String(),
				Text:     text,
				Rel:      rel,
				NoFollow: strings.Contains(rel, "nofollow"),
			}
			if resolved.Host == base.Host {
				page.InternalLinks = append(page.InternalLinks, link)
			} else {
				page.ExternalLinks = append(page.ExternalLinks, link)
			}
		})
	}

	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		scriptType := s.AttrOr("type", "")
		if scriptType == "application/ld+json" {
			return
		}
		src, ok := s.Attr("src")
		if !ok {
			return
		}
		_, hasAsync := s.Attr("async")
		_, hasDefer := s.Attr("defer")
		page.Scripts = append(page.Scripts, models.Script{
			Src:   resolveRef(base, src),
			Async: hasAsync,
			Defer: hasDefer,
			Type:  scriptType,
		})
	})

	doc.Find(`link[rel="stylesheet"]`).Each(func(_ int, s *goquery.Selection) {
		if href, ok := s.Attr("href"); ok && href != "" {
			page.Stylesheets = append(page.Stylesheets, resolveRef(base, href))
		}
	})

	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		var block models.SchemaBlock
		if err := json.Unmarshal([]byte(s.Text()), &block); err != nil {
			p.log.WithError(err).Debug(`dropping malformed json-ld block`)
			return
		}
		page.Schemas = append(page.Schemas, block)
	})

	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text != "" {
			page.Paragraphs = append(page.Paragraphs, text)
		}
	})

	page.Lists.Unordered = doc.Find("ul").Length()
	page.Lists.Ordered = doc.Find("ol").Length()

	doc.Find("video").Each(func(_ int, s *goquery.Selection) {
		page.Videos = append(page.Videos, s.AttrOr("src", "video"))
	})
	doc.Find("iframe[src]").Each(func(_ int, s *goquery.Selection) {
		src := strings.ToLower(s.AttrOr("src", ""))
		if strings.Contains(src, "youtube") || strings.Contains(src, "vimeo") {
			page.Videos = append(page.Videos, s.AttrOr("src", ""))
		}
	})

	bodyText := visibleText(htmlContent)
	page.WordCount = countWords(bodyText)
	if len(bodyText) > bodyTextCap {
		bodyText = bodyText[:bodyTextCap]
	}
	page.BodyText = bodyText

	return page, nil
}

// visibleText strips non-content elements and normalizes whitespace. A
// second parse keeps the extraction pass untouched by the removals.
func visibleText(htmlContent string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return ""
	}
	doc.Find("script, style, nav, footer, header, noscript").Remove()
	return strings.Join(strings.Fields(doc.Text()), " ")
}

func resolveRef(base *url.URL, ref string) string {
	if base == nil || ref == "" {
		return ref
	}
	resolved, err := base.Parse(ref)
	if err != nil {
		return ref
	}
	return resolved.String()
}
