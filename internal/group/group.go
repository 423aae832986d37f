// Package group partitions normalized records by their source address.
package group

import "logsentry/internal/types"

// ByAddress builds the grouped view the detectors consume. Addresses are
// compared by exact string equality (no IPv6 normalization, no DNS), records
// keep their input order within each group, and nothing is dropped or
// duplicated.
func ByAddress(records []*types.LogRecord) *types.GroupedLogs {
	groups := types.NewGroupedLogs()
	for _, rec := range records {
		groups.Add(rec)
	}
	return groups
}
