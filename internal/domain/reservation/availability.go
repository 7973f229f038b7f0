package reservation

// AvailableStock is total stock minus the quantity held by live reservations,
// never below zero. A negative difference only happens when the catalog was
// lowered by hand below what is already held.
func AvailableStock(totalStock, held int) int {
	available := totalStock - held
	if available < 0 {
		return 0
	}
	return available
}

// CanReserve is the check performed under the target's stock lock.
func CanReserve(totalStock, held, requested int) (available int, ok bool) {
	available = AvailableStock(totalStock, held)
	return available, requested <= available
}

// MergeLineItems sums quantities per target, keeping first-seen order.
func MergeLineItems(items []LineItem) []LineItem {
	index := make(map[Target]int, len(items))
	merged := make([]LineItem, 0, len(items))
	for _, item := range items {
		if i, ok := index[item.Target]; ok {
			merged[i].Quantity += item.Quantity
			continue
		}
		index[item.Target] = len(merged)
		merged = append(merged, item)
	}
	return merged
}
