// Command menucheck inspects a LINQ Connect weekly menu feed and reports
// integrity problems before they reach the dashboard: unparseable serving
// dates, malformed categories, and weekday collisions where a later session
// replaces an earlier one.
//
// The feed comes from a local JSON fixture or a live fetch:
//
//	go run ./cmd/menucheck -feed testdata/week.json
//	go run ./cmd/menucheck -identifier FSA766 -base-url https://linqconnect.com
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/familyhub/family-hub/internal/adapter/linq"
	"github.com/familyhub/family-hub/internal/domain"
	"github.com/familyhub/family-hub/internal/observability"
)

var dateLayouts = []string{"2006-01-02", "1/2/2006", time.RFC3339}

// phase tracks pass/fail for one check.
type phase struct {
	name   string
	errors []string
	notes  []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) notef(format string, args ...any) {
	p.notes = append(p.notes, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	feedPath := flag.String("feed", "", "path to a JSON fixture holding the session array")
	identifier := flag.String("identifier", "", "organization identifier for a live fetch")
	baseURL := flag.String("base-url", "https://linqconnect.com", "menu provider base URL for a live fetch")
	timeout := flag.Duration("timeout", 10*time.Second, "live fetch timeout")
	flag.Parse()

	if *feedPath == "" && *identifier == "" {
		flag.Usage()
		os.Exit(1)
	}

	feed, err := loadFeed(*feedPath, *identifier, *baseURL, *timeout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load feed: %v\n", err)
		os.Exit(1)
	}

	if code := run(feed); code != 0 {
		os.Exit(code)
	}
}

func loadFeed(path, identifier, baseURL string, timeout time.Duration) (domain.RawMenuFeed, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		var feed domain.RawMenuFeed
		if err := json.Unmarshal(data, &feed); err != nil {
			return nil, err
		}
		return feed, nil
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	client := linq.NewClient(baseURL, timeout, observability.NewMetricsForTesting(), logger)

	ctx, cancel := context.WithTimeout(context.Background(), timeout+5*time.Second)
	defer cancel()
	return client.GetWeeklyMenu(ctx, identifier)
}

func run(feed domain.RawMenuFeed) int {
	fmt.Println("=== Menu Feed Integrity Check ===")
	fmt.Println()

	phases := []*phase{
		checkSessionDates(feed),
		checkCategoryShape(feed),
		checkWeekdayResolution(feed),
	}

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-40s %s\n", p.name, status)
	}

	menu, skipped := domain.Normalize(feed, slog.New(slog.NewTextHandler(io.Discard, nil)))
	fmt.Println()
	fmt.Printf("Sessions: %d total, %d skipped, %d weekday(s) populated\n", len(feed), skipped, len(menu))
	printSummary(menu)

	for _, p := range phases {
		if len(p.notes) > 0 {
			fmt.Printf("\n--- %s notes ---\n", p.name)
			for _, n := range p.notes {
				fmt.Printf("  %s\n", n)
			}
		}
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll checks passed.")
		return 0
	}
	fmt.Println("\nCheck FAILED.")
	return 1
}

// checkSessionDates verifies every serving date parses with one of the
// layouts the normalizer accepts.
func checkSessionDates(feed domain.RawMenuFeed) *phase {
	p := &phase{name: "Phase 1: Serving Dates"}
	for i, session := range feed {
		if _, ok := parseDate(session.ServingDate); !ok {
			p.errorf("session %d: unparseable serving date %q", i, session.ServingDate)
		}
	}
	return p
}

func checkCategoryShape(feed domain.RawMenuFeed) *phase {
	p := &phase{name: "Phase 2: Category Shape"}
	for i, session := range feed {
		if len(session.MenuCategories) == 0 {
			p.notef("session %d (%s): no categories, clears its weekday", i, session.ServingDate)
			continue
		}
		for j, cat := range session.MenuCategories {
			if cat.Name == "" {
				p.errorf("session %d category %d: empty category name", i, j)
			}
			for k, item := range cat.MenuItems {
				if item.Name == "" {
					p.errorf("session %d category %q item %d: empty item name", i, cat.Name, k)
				}
			}
		}
	}
	return p
}

// checkWeekdayResolution maps sessions to weekdays and reports collisions
// where a later session overwrites an earlier one wholesale.
func checkWeekdayResolution(feed domain.RawMenuFeed) *phase {
	p := &phase{name: "Phase 3: Weekday Resolution"}

	byDay := map[string][]int{}
	resolved := 0
	for i, session := range feed {
		d, ok := parseDate(session.ServingDate)
		if !ok {
			continue
		}
		day := d.Weekday().String()
		byDay[day] = append(byDay[day], i)
		resolved++
	}

	if len(feed) > 0 && resolved == 0 {
		p.errorf("no session resolved to a weekday (%d sessions in feed)", len(feed))
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)
	for _, day := range days {
		if sessions := byDay[day]; len(sessions) > 1 {
			p.notef("%s: sessions %v collide, only the last survives", day, sessions)
		}
	}
	return p
}

func parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, raw); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

func printSummary(menu domain.WeekMenu) {
	days := make([]string, 0, len(menu))
	for day := range menu {
		days = append(days, day)
	}
	sort.Strings(days)
	for _, day := range days {
		items := 0
		for _, cat := range menu[day] {
			items += len(cat.Items)
		}
		fmt.Printf("  %-10s %d categories, %d items\n", day, len(menu[day]), items)
	}
}
