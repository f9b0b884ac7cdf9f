package telemetry

// LatestFor resolves the authoritative reading for one station out of an
// unordered feed.
//
// The feed may contain many readings per station, duplicates, and readings
// for stations nobody tracks. A station may also report under more than one
// feed identifier, so every id in ids counts as a match.
//
// Among the matches the reading with the greatest timestamp wins. Readings
// without a parseable timestamp sort as the zero time, so a timestamped
// reading always beats an untimestamped one. On identical timestamps the
// first-encountered reading wins; the feed preserves input order for
// same-instant duplicates, which makes this deterministic.
//
// The second return value is false when nothing matched. That is a normal
// state, not an error.
func LatestFor(readings []Reading, ids ...string) (Reading, bool) {
	var best Reading
	found := false

	for _, r := range readings {
		if !matches(r.StationID, ids) {
			continue
		}
		if !found || r.Time.After(best.Time) {
			best = r
			found = true
		}
	}

	return best, found
}

func matches(id string, ids []string) bool {
	for _, x := range ids {
		if id == x {
			return true
		}
	}
	return false
}

// FilterStation returns the readings that belong to any of the given feed
// identifiers, preserving feed order.
func FilterStation(readings []Reading, ids ...string) []Reading {
	var out []Reading
	for _, r := range readings {
		if matches(r.StationID, ids) {
			out = append(out, r)
		}
	}
	return out
}

// Latest returns the most recent reading from any station.
func Latest(readings []Reading) (Reading, bool) {
	var best Reading
	found := false

	for _, r := range readings {
		if !found || r.Time.After(best.Time) {
			best = r
			found = true
		}
	}

	return best, found
}
