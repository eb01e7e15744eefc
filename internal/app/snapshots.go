package app

import (
	"context"

	"github.com/campusconnect/campus-api/internal/domain/workflow"
	"github.com/campusconnect/campus-api/internal/ports"
)

// filterSnapshots relays item snapshots from in, narrowing each delivery to
// the items keep accepts. Terminal error snapshots pass through unchanged and
// close the returned channel, preserving the watch contract.
func filterSnapshots(ctx context.Context, in <-chan ports.ItemSnapshot, keep func(workflow.Item) bool) <-chan ports.ItemSnapshot {
	out := make(chan ports.ItemSnapshot, cap(in))
	go func() {
		defer close(out)
		for snap := range in {
			if snap.Err == nil {
				kept := make([]workflow.Item, 0, len(snap.Items))
				for _, item := range snap.Items {
					if keep(item) {
						kept = append(kept, item)
					}
				}
				snap = ports.ItemSnapshot{Items: kept}
			}
			select {
			case out <- snap:
			case <-ctx.Done():
				return
			}
			if snap.Err != nil {
				return
			}
		}
	}()
	return out
}

// filterItems narrows a listed item slice to the items keep accepts.
func filterItems(items []workflow.Item, keep func(workflow.Item) bool) []workflow.Item {
	kept := make([]workflow.Item, 0, len(items))
	for _, item := range items {
		if keep(item) {
			kept = append(kept, item)
		}
	}
	return kept
}
