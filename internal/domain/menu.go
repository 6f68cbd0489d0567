package domain

import "time"

// MenuItem is a single dish within a category, as named by the provider.
type MenuItem struct {
	Name string `json:"Name"`
}

// MenuCategory is a named grouping of menu items within a serving day,
// e.g. "Entree" or "Side". Item order is feed-defined and preserved.
type MenuCategory struct {
	Name      string     `json:"Name"`
	MenuItems []MenuItem `json:"MenuItems"`
}

// MenuSession is one day's worth of raw menu data as returned by LINQ Connect.
type MenuSession struct {
	ServingDate    string         `json:"ServingDate"`
	MenuCategories []MenuCategory `json:"MenuCategories"`
}

// RawMenuFeed is the provider-shaped sequence of menu sessions. A feed with
// zero sessions is valid and means no menu is published for the range.
type RawMenuFeed []MenuSession

// TenantLocation is the provider-internal identifier pair resolved from an
// organization identifier. Both fields must be non-empty before the feed
// endpoint may be called.
type TenantLocation struct {
	DistrictID string
	BuildingID string
}

// Valid reports whether both tenant identifiers are present.
func (t TenantLocation) Valid() bool {
	return t.DistrictID != "" && t.BuildingID != ""
}

// DateRange is the inclusive calendar window requested from the feed endpoint.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// WeekRange returns the 7-day forward window starting today, per the domain
// clock. The end always falls strictly after the start.
func WeekRange() DateRange {
	today := clock.Now()
	return DateRange{Start: today, End: today.AddDate(0, 0, 7)}
}

// StartDate formats the range start as YYYY-MM-DD.
func (r DateRange) StartDate() string {
	return r.Start.Format("2006-01-02")
}

// EndDate formats the range end as YYYY-MM-DD.
func (r DateRange) EndDate() string {
	return r.End.Format("2006-01-02")
}

// Category is the normalized form of a MenuCategory: a name and its item
// names, both in provider order.
type Category struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

// WeekMenu maps English long weekday names ("Monday".."Sunday") to that
// day's categories. A missing key means no menu is available for that day,
// which is distinct from a present-but-empty day.
type WeekMenu map[string][]Category
