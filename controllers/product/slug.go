package productcontroller

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/Ambrose2002/the-gem-shop/models"
	"gorm.io/gorm"
)

var slugCleaner = regexp.MustCompile(`[^a-z0-9]+`)

func baseSlugFromTitle(title string) string {
	slug := slugCleaner.ReplaceAllString(strings.ToLower(strings.TrimSpace(title)), "-")
	return strings.Trim(slug, "-")
}

// ensureUniqueSlug suffixes -2, -3, ... until the slug is free.
func ensureUniqueSlug(db *gorm.DB, base string) string {
	if base == "" {
		base = "product"
	}

	var existing []models.Product
	if err := db.Unscoped().Select("slug").Where("slug LIKE ?", base+"%").Find(&existing).Error; err != nil {
		return base
	}
	taken := make(map[string]bool, len(existing))
	for _, p := range existing {
		taken[p.Slug] = true
	}
	if !taken[base] {
		return base
	}
	for i := 2; i < 200; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		if !taken[candidate] {
			return candidate
		}
	}
	return fmt.Sprintf("%s-%d", base, time.Now().Unix())
}
