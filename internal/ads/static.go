package ads

import (
	"context"
	"time"

	"github.com/radianthq/venueops/internal/models"
)

// StaticClient serves fixed report data. It backs tests and deployments that
// have no ads integration configured; with the zero value every report is
// empty and the currency unknown.
type StaticClient struct {
	Currency     string
	CampaignRows []RawRow
	AdGroupRows  []RawRow

	// Err, when set, is returned by every call, simulating an unreachable
	// or misconfigured platform.
	Err error
}

// AccountCurrency returns the configured currency.
func (c *StaticClient) AccountCurrency(ctx context.Context) (string, error) {
	if c.Err != nil {
		return "", c.Err
	}
	return c.Currency, nil
}

// CampaignReport returns the configured campaign rows within the range.
func (c *StaticClient) CampaignReport(ctx context.Context, from, to time.Time) ([]RawRow, error) {
	if c.Err != nil {
		return nil, c.Err
	}
	return filterRange(c.CampaignRows, from, to), nil
}

// AdGroupReport returns the configured ad-group rows within the range.
func (c *StaticClient) AdGroupReport(ctx context.Context, from, to time.Time) ([]RawRow, error) {
	if c.Err != nil {
		return nil, c.Err
	}
	return filterRange(c.AdGroupRows, from, to), nil
}

func filterRange(rows []RawRow, from, to time.Time) []RawRow {
	from, to = models.Day(from), models.Day(to)
	out := make([]RawRow, 0, len(rows))
	for _, r := range rows {
		d, err := time.Parse(models.DateFormat, r.Date)
		if err != nil {
			continue
		}
		if d.Before(from) || d.After(to) {
			continue
		}
		out = append(out, r)
	}
	return out
}
