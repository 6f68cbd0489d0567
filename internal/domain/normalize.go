package domain

import (
	"log/slog"
	"strings"
	"time"
)

// servingDateLayouts are the formats LINQ Connect has been observed to use
// for ServingDate. Tried in order.
var servingDateLayouts = []string{
	"2006-01-02",
	"1/2/2006",
	time.RFC3339,
}

// Normalize converts a raw feed into the per-weekday, per-category structure
// the dashboard renders. It is a pure function of its input: identical feeds
// produce identical output regardless of fetch time or locale.
//
// Sessions are processed in feed order; when several sessions map to the
// same weekday (the 7-day forward window overlaps across refreshes), the
// last one fully replaces any earlier entry for that key. Sessions with no
// categories contribute no entry, and sessions whose ServingDate does not
// parse are skipped and logged rather than aborting the whole feed. The
// second return value is the number of sessions skipped that way.
func Normalize(feed RawMenuFeed, logger *slog.Logger) (WeekMenu, int) {
	menu := make(WeekMenu, len(feed))
	skipped := 0

	for _, session := range feed {
		day, ok := weekdayName(session.ServingDate)
		if !ok {
			skipped++
			logger.Warn("skipping session with unparseable serving date",
				"serving_date", session.ServingDate,
			)
			continue
		}

		if len(session.MenuCategories) == 0 {
			// Treated identically to "weekday absent": drop any entry a
			// prior session created, since the later session wins wholesale.
			delete(menu, day)
			continue
		}

		categories := make([]Category, 0, len(session.MenuCategories))
		for _, cat := range session.MenuCategories {
			items := make([]string, 0, len(cat.MenuItems))
			for _, item := range cat.MenuItems {
				items = append(items, item.Name)
			}
			categories = append(categories, Category{Name: cat.Name, Items: items})
		}
		menu[day] = categories
	}

	return menu, skipped
}

// weekdayName derives the locale-independent English long weekday name from
// a serving date string. Returns false if no known layout matches.
func weekdayName(servingDate string) (string, bool) {
	servingDate = strings.TrimSpace(servingDate)
	if servingDate == "" {
		return "", false
	}
	for _, layout := range servingDateLayouts {
		if d, err := time.Parse(layout, servingDate); err == nil {
			return d.Weekday().String(), true
		}
	}
	return "", false
}
