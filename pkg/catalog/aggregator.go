package catalog

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Branch name that is always listed first within a product group
const headOfficeName = "casa matriz"

// Aggregate groups branch offers by product and flags offers without stock.
//
// Group order follows the first appearance of each product in the input.
// The first record of a product supplies the display name and image; later
// records with divergent values do not overwrite them. Within a group the
// head-office branch is sorted first and every other branch keeps its input
// order.
func Aggregate(records []SearchRecord) ([]ProductGroup, []StockAlert) {
	groups := make([]ProductGroup, 0, len(records))
	alerts := make([]StockAlert, 0)
	index := make(map[uint]int, len(records))

	for _, record := range records {
		i, seen := index[record.ProductID]
		if !seen {
			index[record.ProductID] = len(groups)
			groups = append(groups, ProductGroup{
				ProductID:   record.ProductID,
				ProductName: record.ProductName,
				ImageURL:    record.ImageURL,
				Branches:    []SearchRecord{record},
				MinPriceCLP: record.PriceCLP,
			})
		} else {
			group := &groups[i]
			group.Branches = append(group.Branches, record)
			if record.PriceCLP < group.MinPriceCLP {
				group.MinPriceCLP = record.PriceCLP
			}
		}

		if record.StockAvailable == 0 {
			alerts = append(alerts, StockAlert{
				ProductID:   record.ProductID,
				ProductName: record.ProductName,
				BranchID:    record.BranchID,
				BranchName:  record.BranchName,
				Message:     fmt.Sprintf("¡Atención! en la sucursal \"%s\" está sin stock", record.BranchName),
			})
		}
	}

	for i := range groups {
		sortHeadOfficeFirst(groups[i].Branches)
	}

	return groups, alerts
}

// sortHeadOfficeFirst moves head-office offers to the front while keeping
// every other offer in its original position. The comparator only knows
// "head office before anything else", so a stable sort is required to keep
// the remaining order deterministic.
func sortHeadOfficeFirst(branches []SearchRecord) {
	sort.SliceStable(branches, func(a, b int) bool {
		return isHeadOffice(branches[a]) && !isHeadOffice(branches[b])
	})
}

func isHeadOffice(r SearchRecord) bool {
	return strings.EqualFold(strings.TrimSpace(r.BranchName), headOfficeName)
}

// MinPriceUSD converts a group's lowest price using the given CLP per USD
// rate, rounded to two decimals. Returns false when no rate is available.
func MinPriceUSD(group ProductGroup, rate *float64) (float64, bool) {
	if rate == nil || *rate <= 0 {
		return 0, false
	}
	usd := float64(group.MinPriceCLP) / *rate
	return math.Round(usd*100) / 100, true
}
