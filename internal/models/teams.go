package models

import "strings"

// teamAliases maps every known spelling of a club to its canonical
// short key: full franchise names as rendered by the stats site, the
// legacy two-letter codes used by the schedule API (OB for Doosan,
// HT for KIA, and so on), and the keys themselves.
var teamAliases = map[string]string{
	// Canonical keys map to themselves.
	"LG":  "LG",
	"KT":  "KT",
	"SSG": "SSG",
	"NC":  "NC",
	"두산":  "두산",
	"KIA": "KIA",
	"롯데":  "롯데",
	"삼성":  "삼성",
	"한화":  "한화",
	"키움":  "키움",

	// Full franchise names.
	"LG 트윈스":   "LG",
	"KT 위즈":    "KT",
	"SSG 랜더스":  "SSG",
	"NC 다이노스":  "NC",
	"두산 베어스":   "두산",
	"KIA 타이거즈": "KIA",
	"롯데 자이언츠":  "롯데",
	"삼성 라이온즈":  "삼성",
	"한화 이글스":   "한화",
	"키움 히어로즈":  "키움",

	// Legacy codes from the schedule API.
	"SS": "삼성",
	"OB": "두산",
	"HT": "KIA",
	"LT": "롯데",
	"HH": "한화",
	"WO": "키움",
	"SK": "SSG",
}

// TeamKey normalizes a raw team name to its canonical short key.
// Unknown names are returned trimmed but otherwise unchanged so that
// an unmapped spelling surfaces visibly in the output document instead
// of crashing the pipeline.
func TeamKey(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if key, ok := teamAliases[trimmed]; ok {
		return key
	}
	return trimmed
}

// KnownTeam reports whether key is one of the canonical club keys.
func KnownTeam(key string) bool {
	mapped, ok := teamAliases[key]
	return ok && mapped == key
}
