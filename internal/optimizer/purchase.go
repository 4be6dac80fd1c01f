package optimizer

import (
	"rotablekit/internal/catalog"
	"rotablekit/internal/horizon"
)

// maxKitsPerPurchaseClass mirrors validator.MaxKitsPerClass, the external
// API's per-order per-class cap (§6). Duplicated rather than imported:
// internal/validator already depends on internal/optimizer, and importing
// back would cycle.
const maxKitsPerPurchaseClass = 42000

// decidePurchases implements the purchase sub-policy shared by both
// optimizer strategies (§4.6), one class at a time:
//
//  1. stock_at_eta = hub_inventory + scheduled_arrivals_by_eta - demand_before_eta
//  2. if stock_at_eta < 0: buy |stock_at_eta| * 1.3 (an urgent shortfall, bought
//     with a safety margin)
//  3. else if stock_at_eta < 0.5 * demand_in_next_48h_after_eta: top up to that
//  4. else if hub_inventory < demand_over_remaining_horizon: top up to that
//  5. clamp by hub.storage_capacity - projected_hub_inventory_at_eta, then by
//     the API's per-order cap
//
// Grounded on _examples/original_source/backend/solution/strategies/genetic/purchases.py's
// compute_purchase_genes_simple, generalized from its single shared eta to
// the per-class eta spec.md §4.6 calls for.
func decidePurchases(cat *catalog.Catalog, horiz *horizon.View, hour int) catalog.ClassVector {
	var purchases catalog.ClassVector

	hub, ok := cat.Hub()
	if !ok {
		return purchases
	}

	for _, c := range catalog.AllClasses() {
		eta := horiz.ETA(hour, c)

		stockAtETA := horiz.StockAtETA(hub.Code, eta).Get(c)
		demandBeforeETA := horiz.DemandInWindow(hub.Code, c, hour, eta)
		stockAtETA -= demandBeforeETA

		buy := 0
		switch {
		case stockAtETA < 0:
			buy = int(float64(-stockAtETA) * 1.3)
		default:
			next48 := horiz.DemandInWindow(hub.Code, c, eta, eta+48)
			threshold := next48 / 2
			if stockAtETA < threshold {
				buy = threshold - stockAtETA
			} else {
				hubInventory := horiz.StockAtETA(hub.Code, hour).Get(c)
				remaining := horiz.DemandInWindow(hub.Code, c, hour, horiz.GameHorizonHours())
				if hubInventory < remaining {
					buy = remaining - hubInventory
				}
			}
		}
		if buy <= 0 {
			continue
		}

		headroom := hub.StorageCapacity.Get(c) - stockAtETA
		if buy > headroom {
			buy = headroom
		}
		if buy > maxKitsPerPurchaseClass {
			buy = maxKitsPerPurchaseClass
		}
		if buy < 0 {
			buy = 0
		}
		purchases = purchases.Set(c, buy)
	}

	return purchases
}
