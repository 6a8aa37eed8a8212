package ads

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestStaticClientZeroValue(t *testing.T) {
	ctx := context.Background()
	c := &StaticClient{}

	cur, err := c.AccountCurrency(ctx)
	require.NoError(t, err)
	assert.Empty(t, cur)

	rows, err := c.CampaignReport(ctx, day("2026-01-01"), day("2026-01-31"))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestStaticClientFiltersRange(t *testing.T) {
	ctx := context.Background()
	c := &StaticClient{
		CampaignRows: []RawRow{
			{Campaign: "Brand", Date: "2025-12-31"},
			{Campaign: "Brand", Date: "2026-01-01"},
			{Campaign: "Brand", Date: "2026-01-31"},
			{Campaign: "Brand", Date: "2026-02-01"},
			{Campaign: "Brand", Date: "bogus"},
		},
	}

	rows, err := c.CampaignReport(ctx, day("2026-01-01"), day("2026-01-31"))
	require.NoError(t, err)
	require.Len(t, rows, 2, "range bounds are inclusive, unparseable dates drop")
	assert.Equal(t, "2026-01-01", rows[0].Date)
	assert.Equal(t, "2026-01-31", rows[1].Date)
}

func TestStaticClientErrPropagates(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	c := &StaticClient{Err: boom}

	_, err := c.AccountCurrency(ctx)
	assert.ErrorIs(t, err, boom)
	_, err = c.CampaignReport(ctx, day("2026-01-01"), day("2026-01-31"))
	assert.ErrorIs(t, err, boom)
	_, err = c.AdGroupReport(ctx, day("2026-01-01"), day("2026-01-31"))
	assert.ErrorIs(t, err, boom)
}
