// Package reconcile implements the generic diff step shared by all three
// resource kinds: match desired records against remote records by natural
// key, classify each desired record as unchanged/create/update, and collect
// remote records nothing declared ("unknown" — reported, never mutated).
package reconcile

// Action classifies a desired record against its remote counterpart.
type Action int

const (
	Unchanged Action = iota
	Create
	Update
)

func (a Action) String() string {
	switch a {
	case Create:
		return "create"
	case Update:
		return "update"
	default:
		return "unchanged"
	}
}

// Item pairs a desired record with its matched remote record, if any.
// Remote is nil exactly when Action is Create.
type Item[D, R any] struct {
	Desired D
	Remote  *R
	Action  Action
}

// Plan is the outcome of matching one resource kind. Items preserve desired
// order; Unknown preserves remote order.
type Plan[D, R any] struct {
	Items   []Item[D, R]
	Unknown []R
}

// Counts returns how many items the plan would create and update.
func (p *Plan[D, R]) Counts() (created, updated int) {
	for _, item := range p.Items {
		switch item.Action {
		case Create:
			created++
		case Update:
			updated++
		}
	}
	return
}

// Dirty reports whether the plan contains any create or update.
func (p *Plan[D, R]) Dirty() bool {
	c, u := p.Counts()
	return c+u > 0
}

// Build matches desired against remote records. desiredKey and remoteKey
// produce the natural key on each side; equal decides whether a matched pair
// is already in sync. ignore, when non-nil, excludes a remote record from the
// unknown list (system-reserved records that are never ours to report).
func Build[D, R any](
	desired []D,
	remote []R,
	desiredKey func(D) string,
	remoteKey func(R) string,
	equal func(D, *R) bool,
	ignore func(R) bool,
) Plan[D, R] {
	wanted := make(map[string]int, len(desired))
	for i, d := range desired {
		wanted[desiredKey(d)] = i
	}

	matched := make(map[string]*R, len(remote))
	var plan Plan[D, R]
	for i := range remote {
		key := remoteKey(remote[i])
		if _, ok := wanted[key]; ok {
			matched[key] = &remote[i]
		} else if ignore == nil || !ignore(remote[i]) {
			plan.Unknown = append(plan.Unknown, remote[i])
		}
	}

	for _, d := range desired {
		item := Item[D, R]{Desired: d, Remote: matched[desiredKey(d)]}
		switch {
		case item.Remote == nil:
			item.Action = Create
		case !equal(d, item.Remote):
			item.Action = Update
		}
		plan.Items = append(plan.Items, item)
	}
	return plan
}
