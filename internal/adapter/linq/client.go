// Package linq talks to the LINQ Connect menu provider's internal API, the
// same endpoints the provider's mobile apps use.
package linq

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/familyhub/family-hub/internal/domain"
	"github.com/familyhub/family-hub/internal/observability"
)

// Client resolves an organization identifier to its tenant pair and fetches
// the weekly lunch menu feed. Stateless: every call hits the provider.
type Client struct {
	baseURL    string
	httpClient *http.Client
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a LINQ Connect client.
func NewClient(baseURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: metrics,
		logger:  logger,
	}
}

// ResolveTenant translates the stable organization identifier into the
// provider-internal district/building pair via the layout-lookup endpoint.
// No retries; the result is never cached.
func (c *Client) ResolveTenant(ctx context.Context, identifier string) (domain.TenantLocation, error) {
	params := url.Values{"identifier": {identifier}}

	var layout layoutResponse
	if err := c.doGet(ctx, "resolve", "/api/getMenuLayout?"+params.Encode(), &layout); err != nil {
		return domain.TenantLocation{}, err
	}

	tenant := domain.TenantLocation{
		DistrictID: string(layout.FamilyMenuID.DistrictID),
		BuildingID: string(layout.FamilyMenuID.BuildingID),
	}
	if !tenant.Valid() {
		c.metrics.MenuFetches.WithLabelValues("resolve", "malformed").Inc()
		return domain.TenantLocation{}, fmt.Errorf("layout response for %q lacks districtId/buildingId: %w",
			identifier, domain.ErrMalformedResponse)
	}

	c.metrics.MenuFetches.WithLabelValues("resolve", "success").Inc()
	return tenant, nil
}

// FetchWeekMenu retrieves the raw feed for the tenant and date range. A
// success response with zero sessions is valid and means no menu is
// published for the range.
func (c *Client) FetchWeekMenu(ctx context.Context, tenant domain.TenantLocation, r domain.DateRange) (domain.RawMenuFeed, error) {
	params := url.Values{
		"buildingId": {tenant.BuildingID},
		"districtId": {tenant.DistrictID},
		"startDate":  {r.StartDate()},
		"endDate":    {r.EndDate()},
	}

	var feed feedResponse
	if err := c.doGet(ctx, "feed", "/api/FamilyMenu?"+params.Encode(), &feed); err != nil {
		return nil, err
	}

	c.metrics.MenuFetches.WithLabelValues("feed", "success").Inc()
	if feed.FamilyMenuSessions == nil {
		return domain.RawMenuFeed{}, nil
	}
	return feed.FamilyMenuSessions, nil
}

// GetWeeklyMenu is the only operation the boundary uses: resolve the tenant,
// then fetch the 7-day forward window from today, short-circuiting on the
// first failure.
func (c *Client) GetWeeklyMenu(ctx context.Context, identifier string) (domain.RawMenuFeed, error) {
	tenant, err := c.ResolveTenant(ctx, identifier)
	if err != nil {
		return nil, err
	}
	return c.FetchWeekMenu(ctx, tenant, domain.WeekRange())
}

// doGet performs one provider call and decodes the body into out.
func (c *Client) doGet(ctx context.Context, stage, pathAndQuery string, out any) error {
	start := time.Now()
	defer func() {
		c.metrics.MenuFetchDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+pathAndQuery, nil)
	if err != nil {
		return fmt.Errorf("create %s request: %w", stage, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.MenuFetches.WithLabelValues(stage, "upstream_error").Inc()
		return fmt.Errorf("%s request: %v: %w", stage, err, domain.ErrUpstreamUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.metrics.MenuFetches.WithLabelValues(stage, "upstream_error").Inc()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s request: status %d: %s: %w", stage, resp.StatusCode, body, domain.ErrUpstreamUnavailable)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.metrics.MenuFetches.WithLabelValues(stage, "malformed").Inc()
		return fmt.Errorf("decode %s response: %v: %w", stage, err, domain.ErrMalformedResponse)
	}

	c.logger.Debug("provider call completed", "stage", stage, "duration", time.Since(start))
	return nil
}

// LINQ Connect API response types.

type layoutResponse struct {
	FamilyMenuID familyMenuID `json:"familyMenuId"`
}

type familyMenuID struct {
	DistrictID ident `json:"districtId"`
	BuildingID ident `json:"buildingId"`
}

// ident tolerates the provider sending tenant identifiers as either JSON
// strings or numbers.
type ident string

func (i *ident) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*i = ident(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*i = ident(n.String())
	return nil
}

type feedResponse struct {
	FamilyMenuSessions domain.RawMenuFeed `json:"FamilyMenuSessions"`
}
