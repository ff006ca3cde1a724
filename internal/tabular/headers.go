package tabular

import (
	"sort"
	"strings"
)

// ResolveHeaders maps logical column keys to physical column indexes by
// matching each requested header text against the sheet's header row.
// Matching is case-insensitive on trimmed strings, scanning left to right;
// the first matching column wins for a key. A second column matching an
// already-assigned key is a duplicate-column error, and a key with no
// matching column is a missing-column error.
//
// source appears in error messages only (typically the workbook path). The
// want map holds logicalKey → expected header text as configured; expected
// text is normalized here, so callers pass configuration values through
// unchanged.
func ResolveHeaders(source string, header []Cell, want map[string]string) (map[string]int, error) {
	resolved := make(map[string]int, len(want))

	keys := make([]string, 0, len(want))
	for key := range want {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for index, cell := range header {
		if cell.Kind != KindString {
			continue
		}
		text := strings.ToLower(strings.TrimSpace(cell.Str))
		for _, key := range keys {
			if text != strings.ToLower(strings.TrimSpace(want[key])) {
				continue
			}
			if _, taken := resolved[key]; taken {
				return nil, &HeaderError{
					Source: source,
					Kind:   HeaderDuplicate,
					Key:    key,
					Header: text,
				}
			}
			resolved[key] = index
			break
		}
	}

	for _, key := range keys {
		if _, ok := resolved[key]; !ok {
			return nil, &HeaderError{Source: source, Kind: HeaderMissing, Key: key}
		}
	}
	return resolved, nil
}
