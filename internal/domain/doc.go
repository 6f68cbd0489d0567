// Package domain models the family dashboard's data: the LINQ Connect school
// lunch menu feed and its normalized weekly form, the Open-Meteo weather
// report, and the household schedule and checklist records.
//
// # Menu Data Source
//
// Lunch menus come from LINQ Connect, the portal used by the school district.
// There is no published API; the service talks to the same internal endpoints
// the LINQ mobile apps use, in two steps:
//
//  1. GET /api/getMenuLayout?identifier=<org> resolves the stable,
//     human-chosen organization identifier (e.g. "FSA766") into the
//     provider-internal tenant pair the feed endpoint requires:
//     familyMenuId.districtId and familyMenuId.buildingId. Both must be
//     present and non-empty; the pair is never cached, every fetch cycle
//     re-resolves it.
//  2. GET /api/FamilyMenu?buildingId=&districtId=&startDate=&endDate=
//     returns the feed for the date range. Dates are YYYY-MM-DD; the
//     service always requests a 7-day forward window from today, so
//     consecutive refreshes produce overlapping data.
//
// # Feed Conventions
//
// The feed is a FamilyMenuSessions array, one session per serving day:
//
//	{ "ServingDate": ..., "MenuCategories": [ { "Name": "Entree",
//	  "MenuItems": [ { "Name": "Pizza" } ] } ] }
//
// ServingDate arrives either as ISO "2006-01-02" or the provider's US form
// "1/2/2006". Category and item order is feed-defined and meaningful; it is
// preserved through normalization. Sessions with zero categories, and
// categories with zero items, occur in real data and are valid.
//
// Because the 7-day window overlaps across refreshes, two sessions in one
// feed can map to the same weekday. The later session fully replaces the
// earlier one (last-write-wins, no merge). A session whose ServingDate does
// not parse is skipped and logged; a partial menu beats no menu.
//
// # Weather Codes
//
// Weather conditions use WMO interpretation codes as served by Open-Meteo:
// 51-67 rain, 71-77 snow, anything above 2 cloudy, otherwise clear. The
// clothing advice thresholds (40/60/75 °F) are a household convention, not
// a meteorological one.
package domain
