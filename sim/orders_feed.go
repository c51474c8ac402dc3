// Order feed loading. The data-preparation pipeline emits a JSON document
// keyed "{flow}_{direction}_M{month}"; each value is the month's order list
// with day-relative hours. Loading converts those into absolute simulated
// hours (base = (day-1)*24) and returns Order structs ready for admission.

package sim

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// FeedOrder is one record as produced by the pipeline.
type FeedOrder struct {
	OrderID      int       `json:"order_id"`
	Month        int       `json:"month"`
	Day          int       `json:"day"` // 1-based day of month
	Category     Flow      `json:"category"`
	Direction    Direction `json:"direction"`
	Pallets      int       `json:"pallets"`
	Region       Region    `json:"region,omitempty"`        // outbound only
	CreationHour float64   `json:"creation_hour,omitempty"` // outbound only, relative to day start, may be negative
	TimeslotHour int       `json:"timeslot_hour"`
}

// OrderFeed is the full document, keyed "{flow}_{direction}_M{month}".
type OrderFeed map[string][]FeedOrder

// FeedKey builds the lookup key for one (flow, direction, month) bucket.
// The pipeline zero-pads the month, so March is "M03", not "M3".
func FeedKey(flow Flow, dir Direction, month int) string {
	return fmt.Sprintf("%s_%s_M%02d", flow, dir, month)
}

// LoadOrderFeed reads and decodes a feed document from disk.
func LoadOrderFeed(path string) (OrderFeed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading order feed: %w", err)
	}
	var feed OrderFeed
	if err := json.Unmarshal(data, &feed); err != nil {
		return nil, fmt.Errorf("decoding order feed %s: %w", path, err)
	}
	return feed, nil
}

// OrdersForMonth collects every bucket for the given month across all four
// teams and converts the records to absolute hours. The result is sorted by
// order id so the admission sequence never depends on map iteration.
func (f OrderFeed) OrdersForMonth(month int) ([]*Order, error) {
	var orders []*Order
	for _, flow := range Flows {
		for _, dir := range Directions {
			for _, rec := range f[FeedKey(flow, dir, month)] {
				o, err := rec.toOrder()
				if err != nil {
					return nil, err
				}
				orders = append(orders, o)
			}
		}
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID < orders[j].ID })
	return orders, nil
}

func (r FeedOrder) toOrder() (*Order, error) {
	if r.Pallets <= 0 {
		return nil, fmt.Errorf("order %d: pallet count %d must be positive", r.OrderID, r.Pallets)
	}
	if r.Day < 1 {
		return nil, fmt.Errorf("order %d: day %d must be >= 1", r.OrderID, r.Day)
	}
	if r.Category != FlowFG && r.Category != FlowRP {
		return nil, fmt.Errorf("order %d: unknown flow %q", r.OrderID, r.Category)
	}
	if r.Direction != Inbound && r.Direction != Outbound {
		return nil, fmt.Errorf("order %d: unknown direction %q", r.OrderID, r.Direction)
	}
	if r.Direction == Outbound {
		switch r.Region {
		case RegionG2SameDay, RegionG2NextDay, RegionROWNxtDay:
		default:
			return nil, fmt.Errorf("order %d: unknown region %q", r.OrderID, r.Region)
		}
	}
	base := float64(r.Day-1) * 24
	o := &Order{
		ID:            r.OrderID,
		Flow:          r.Category,
		Direction:     r.Direction,
		Pallets:       r.Pallets,
		Region:        r.Region,
		ScheduledSlot: (r.Day-1)*24 + r.TimeslotHour,
		ActualSlot:    -1,
		OnTime:        true,
	}
	if r.Direction == Outbound {
		o.CreationTime = base + r.CreationHour
	} else {
		o.CreationTime = float64(o.ScheduledSlot)
	}
	return o, nil
}
