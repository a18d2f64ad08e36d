package services

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/btcbarkeep/ainareports/pkg/models"
)

// unitSearchLimit caps building-scoped unit search results. The page shows at
// most five matches with no further pagination.
const unitSearchLimit = 5

// sortContractorsByTier orders contractors for display: paid tier first, then
// descending event count, stable so ties keep input order.
func sortContractorsByTier(contractors []*models.Contractor) {
	sort.SliceStable(contractors, func(i, j int) bool {
		iPaid := contractors[i].Tier == models.TierPaid
		jPaid := contractors[j].Tier == models.TierPaid
		if iPaid != jPaid {
			return iPaid
		}
		return contractors[i].EventCount > contractors[j].EventCount
	})
}

// sortPropertyManagersByTier applies the same policy as contractors, ranked
// by units under management.
func sortPropertyManagersByTier(managers []*models.PropertyManager) {
	sort.SliceStable(managers, func(i, j int) bool {
		iPaid := managers[i].Tier == models.TierPaid
		jPaid := managers[j].Tier == models.TierPaid
		if iPaid != jPaid {
			return iPaid
		}
		return managers[i].UnitCount > managers[j].UnitCount
	})
}

// searchUnits filters a building's units by a free-text query. An empty query
// returns the first five units in natural order. A unit matches on unit
// number substring, floor equality or substring, or owner name bounded by
// word boundaries on both sides. The boundary rule exists so a numeric query
// like "201" doesn't match inside an unrelated year like "2012"; it applies
// to owner names for every query, numeric or not, matching upstream behavior.
func searchUnits(units []*models.Unit, query string) []*models.Unit {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return capUnits(units, unitSearchLimit)
	}

	ownerPattern := ownerNameRegexp(query)
	var matched []*models.Unit
	for _, u := range units {
		if len(matched) == unitSearchLimit {
			break
		}
		if unitMatches(u, query, ownerPattern) {
			matched = append(matched, u)
		}
	}
	return matched
}

func unitMatches(u *models.Unit, query string, ownerPattern *regexp.Regexp) bool {
	if strings.Contains(strings.ToLower(u.UnitNumber), query) {
		return true
	}
	floor := strings.ToLower(strconv.Itoa(u.Floor))
	if floor == query || strings.Contains(floor, query) {
		return true
	}
	if ownerPattern != nil && ownerPattern.MatchString(strings.ToLower(u.OwnerName)) {
		return true
	}
	return false
}

// ownerNameRegexp compiles the word-boundary pattern for owner-name matching:
// the query bounded on both sides by start/end of string, whitespace, or
// punctuation.
func ownerNameRegexp(query string) *regexp.Regexp {
	pattern, err := regexp.Compile(`(^|[\s\p{P}])` + regexp.QuoteMeta(query) + `($|[\s\p{P}])`)
	if err != nil {
		return nil
	}
	return pattern
}

func capUnits(units []*models.Unit, limit int) []*models.Unit {
	if len(units) <= limit {
		return units
	}
	return units[:limit]
}

// unitNumberToken returns the first query word containing a digit. Such a
// token is treated as a candidate unit number and used to narrow unit
// results.
func unitNumberToken(words []string) string {
	for _, word := range words {
		if strings.ContainsAny(word, "0123456789") {
			return word
		}
	}
	return ""
}
