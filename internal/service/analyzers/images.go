package analyzers

import (
	"context"
	"fmt"
	"math"

	"seo_audit_engine/internal/domain/models"
)

// Images checks alt-text coverage, formats, dimensions, lazy loading and
// hero-image priority.
type Images struct{}

func NewImages() *Images {
	return &Images{}
}

func (a *Images) Name() string {
	return "images"
}

func (a *Images) Analyze(_ context.Context, page *models.ParsedPage, _ *models.FetchResult) models.CategoryResult {
	images := page.Images
	if len(images) == 0 {
		return models.CategoryResult{
			Name:    a.Name(),
			Label:   "Image Optimization",
			Score:   100,
			Weight:  0.05,
			Issues:  []models.Issue{},
			Summary: "No images found on page. Score: 100/100.",
		}
	}

	l := NewLedger(a.Name())

	noAlt := 0
	for _, img := range images {
		if img.Alt == "" {
			noAlt++
		}
	}
	if noAlt > 3 {
		l.Record("img-no-alt-many", models.SeverityHigh, "Many images without alt text",
			fmt.Sprintf("%d/%d images missing alt text.", noAlt, len(images)),
			"Add descriptive alt text to all non-decorative images.",
			"Accessibility + image search ranking", minInt(20, noAlt*4))
	} else if noAlt > 0 {
		l.Record("img-no-alt-some", models.SeverityMedium, "Some images without alt text",
			fmt.Sprintf("%d images missing alt text.", noAlt),
			"Add alt text describing each image.",
			"Accessibility issue", minInt(12, noAlt*4))
	}

	for _, img := range images {
		if img.Alt != "" && len(img.Alt) < 10 {
			l.Record("img-short-alt", models.SeverityLow, "Very short alt text",
				fmt.Sprintf("Alt text '%s' is too brief.", img.Alt),
				"Use 10-125 character descriptive alt text.",
				"Weak image SEO signal", 5)
			break
		}
	}

	legacy := legacyFormatCount(images)
	ratio := float64(legacy) / float64(len(images))
	if ratio > 0.5 {
		l.Record("img-old-formats", models.SeverityMedium, "Legacy image formats",
			fmt.Sprintf("%d/%d images use JPEG/PNG.", legacy, len(images)),
			"Convert to WebP or AVIF for better compression.",
			"Slower page load", minInt(10, int(math.Round(ratio*10))))
	}

	noDims := imagesWithoutDimensions(images)
	if len(noDims) > 5 {
		l.Record("img-no-dims-many", models.SeverityHigh, "Images without dimensions",
			fmt.Sprintf("%d images missing width/height.", len(noDims)),
			"Add width and height attributes.",
			"Causes Cumulative Layout Shift", minInt(15, len(noDims)*2))
	} else if len(noDims) > 0 {
		l.Record("img-no-dims-some", models.SeverityMedium, "Some images lack dimensions",
			fmt.Sprintf("%d images without dimensions.", len(noDims)),
			"Add width/height to prevent layout shifts.",
			"Contributes to CLS", minInt(6, len(noDims)*2))
	}

	// Below-fold heuristic: everything after the first image.
	nonLazy := 0
	for _, img := range images[1:] {
		if img.Loading != "lazy" {
			nonLazy++
		}
	}
	if nonLazy > 3 {
		l.Record("img-no-lazy", models.SeverityMedium, "Images not lazy loaded",
			fmt.Sprintf("%d below-fold images without loading='lazy'.", nonLazy),
			"Add loading='lazy' to images below the fold.",
			"Wasted bandwidth on initial load", minInt(10, int(math.Round(float64(nonLazy)/2))))
	}

	hero := images[0]
	if hero.FetchPriority != "high" && hero.Loading != "lazy" {
		l.Record("img-hero-no-priority", models.SeverityLow, "Hero image not prioritized",
			"First image doesn't have fetchpriority='high'.",
			"Add fetchpriority='high' to the hero/LCP image.",
			"Slower LCP", 3)
	}
	if hero.Loading == "lazy" {
		l.Record("img-hero-lazy", models.SeverityHigh, "Hero image is lazy loaded",
			"The first image has loading='lazy' which delays LCP.",
			"Remove loading='lazy' from the hero image.",
			"Directly harms Largest Contentful Paint", 10)
	}

	return models.CategoryResult{
		Name:    a.Name(),
		Label:   "Image Optimization",
		Score:   l.Score(),
		Weight:  0.05,
		Issues:  l.Issues(),
		Summary: fmt.Sprintf("Image score: %d/100. %d images analyzed.", l.Score(), len(images)),
	}
}
