package analyzers

import (
	"context"
	"fmt"
	"strings"

	"seo_audit_engine/internal/domain/models"
)

var legacyImageExts = map[string]bool{
	"jpg": true, "jpeg": true, "png": true, "gif": true, "bmp": true,
}

var webFontHosts = []string{"fonts.googleapis", "typekit", "use.fontawesome"}

var cdnHeaders = []string{"cf-ray", "x-cache", "x-cdn", "x-served-by", "x-amz-cf-id"}

// Performance estimates load behaviour from the static document: blocking
// scripts, stylesheet count, DOM size, image payloads and CDN headers.
type Performance struct{}

func NewPerformance() *Performance {
	return &Performance{}
}

func (a *Performance) Name() string {
	return "performance"
}

func (a *Performance) Analyze(_ context.Context, page *models.ParsedPage, fetch *models.FetchResult) models.CategoryResult {
	l := NewLedger(a.Name())

	blocking := renderBlockingScripts(page.Scripts)
	if len(blocking) > 3 {
		l.Record("perf-blocking-scripts", models.SeverityHigh, "Many render-blocking scripts",
			fmt.Sprintf("%d scripts without async/defer.", len(blocking)),
			"Add async or defer to non-critical scripts.",
			"Delays Largest Contentful Paint", minInt(15, len(blocking)*3))
	} else if len(blocking) > 0 {
		l.Record("perf-some-blocking", models.SeverityMedium, "Render-blocking scripts found",
			fmt.Sprintf("%d scripts block rendering.", len(blocking)),
			"Add async or defer attributes.",
			"Slows initial page load", minInt(9, len(blocking)*3))
	}

	if len(page.Stylesheets) > 5 {
		l.Record("perf-many-css", models.SeverityMedium, "Many external stylesheets",
			fmt.Sprintf("%d external CSS files.", len(page.Stylesheets)),
			"Combine stylesheets or use critical CSS inlining.",
			"Increases render-blocking time", 5)
	}

	headingsCount := len(page.HeadingTexts())
	domEstimate := len(page.Images) + len(page.InternalLinks) + len(page.ExternalLinks) +
		headingsCount + len(page.Scripts)
	if domEstimate > 800 {
		l.Record("perf-large-dom", models.SeverityMedium, "Large DOM size detected",
			fmt.Sprintf("Estimated %d+ elements. Large DOMs slow INP.", domEstimate),
			"Simplify page structure. Target under 800 key elements.",
			"Poor Interaction to Next Paint (INP)", 8)
	}

	if len(page.Images) > 0 {
		legacy := legacyFormatCount(page.Images)
		pct := float64(legacy) / float64(len(page.Images)) * 100
		if pct > 50 {
			l.Record("perf-old-image-formats", models.SeverityMedium, "Legacy image formats",
				fmt.Sprintf("%d/%d images use JPEG/PNG.", legacy, len(page.Images)),
				"Convert to WebP or AVIF for 30-50% smaller files.",
				"Slower page load", 8)
		}
	}

	for _, sheet := range page.Stylesheets {
		lowered := strings.ToLower(sheet)
		found := false
		for _, host := range webFontHosts {
			if strings.Contains(lowered, host) {
				found = true
				break
			}
		}
		if found {
			l.Record("perf-web-fonts", models.SeverityLow, "External web fonts detected",
				"Web fonts add latency.",
				"Use font-display: swap and preload critical fonts.",
				"Flash of invisible text", 2)
			break
		}
	}

	noDimensions := imagesWithoutDimensions(page.Images)
	if len(noDimensions) > 5 {
		l.Record("perf-no-img-dimensions", models.SeverityHigh, "Images without dimensions",
			fmt.Sprintf("%d images missing width/height.", len(noDimensions)),
			"Add width and height attributes to all images.",
			"#1 cause of CLS (Cumulative Layout Shift)", minInt(12, len(noDimensions)*2))
	} else if len(noDimensions) > 0 {
		l.Record("perf-some-no-dimensions", models.SeverityMedium, "Some images lack dimensions",
			fmt.Sprintf("%d images without width/height.", len(noDimensions)),
			"Add explicit dimensions to prevent layout shifts.",
			"Contributes to CLS", minInt(6, len(noDimensions)*2))
	}

	headers := lowerKeys(fetch.Headers)
	hasCDN := false
	for _, h := range cdnHeaders {
		if _, ok := headers[h]; ok {
			hasCDN = true
			break
		}
	}
	if !hasCDN {
		l.Record("perf-no-cdn", models.SeverityLow, "No CDN detected",
			"No CDN headers found.",
			"Use a CDN (Cloudflare, CloudFront, Fastly) for faster delivery.",
			"Slower load times for distant users", 3)
	}

	return models.CategoryResult{
		Name:    a.Name(),
		Label:   "Performance",
		Score:   l.Score(),
		Weight:  0.10,
		Issues:  l.Issues(),
		Summary: fmt.Sprintf("Performance score: %d/100.", l.Score()),
	}
}

func renderBlockingScripts(scripts []models.Script) []models.Script {
	var blocking []models.Script
	for _, s := range scripts {
		if !s.Async && !s.Defer {
			blocking = append(blocking, s)
		}
	}
	return blocking
}

func legacyFormatCount(images []models.Image) int {
	count := 0
	for _, img := range images {
		src := strings.ToLower(img.Src)
		ext := ""
		if i := strings.LastIndex(src, "."); i >= 0 {
			ext = src[i+1:]
		}
		if legacyImageExts[ext] {
			count++
		}
	}
	return count
}

func imagesWithoutDimensions(images []models.Image) []models.Image {
	var missing []models.Image
	for _, img := range images {
		if img.Width == "" || img.Height == "" {
			missing = append(missing, img)
		}
	}
	return missing
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
