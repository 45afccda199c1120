package datasource

import (
	"strings"
	"unicode"
)

// teamCodes maps canonical franchise names to their stable three-letter codes
var teamCodes = buildTeamCodeMap()

// TeamCode returns the stable short code for a team name.
// Unknown names fall back to their initials, or the first three letters of a single word.
func TeamCode(name string) string {
	trimmed := strings.Join(strings.Fields(name), " ")
	if trimmed == "" {
		return ""
	}

	upper := strings.ToUpper(trimmed)
	if code, ok := teamCodes[upper]; ok {
		return code
	}
	for _, code := range teamCodes {
		if code == upper {
			return code
		}
	}

	words := strings.Fields(upper)
	if len(words) == 1 {
		letters := []rune(words[0])
		if len(letters) > 3 {
			letters = letters[:3]
		}
		return string(letters)
	}

	var b strings.Builder
	for _, w := range words {
		for _, r := range w {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				b.WriteRune(r)
				break
			}
		}
	}
	return b.String()
}

func buildTeamCodeMap() map[string]string {
	return map[string]string{
		// Eastern Conference
		"BOSTON CELTICS":      "BOS",
		"BROOKLYN NETS":       "BKN",
		"NEW YORK KNICKS":     "NYK",
		"PHILADELPHIA 76ERS":  "PHI",
		"TORONTO RAPTORS":     "TOR",
		"CHICAGO BULLS":       "CHI",
		"CLEVELAND CAVALIERS": "CLE",
		"DETROIT PISTONS":     "DET",
		"INDIANA PACERS":      "IND",
		"MILWAUKEE BUCKS":     "MIL",
		"ATLANTA HAWKS":       "ATL",
		"CHARLOTTE HORNETS":   "CHA",
		"MIAMI HEAT":          "MIA",
		"ORLANDO MAGIC":       "ORL",
		"WASHINGTON WIZARDS":  "WAS",
		// Western Conference
		"DENVER NUGGETS":         "DEN",
		"MINNESOTA TIMBERWOLVES": "MIN",
		"OKLAHOMA CITY THUNDER":  "OKC",
		"PORTLAND TRAIL BLAZERS": "POR",
		"UTAH JAZZ":              "UTA",
		"GOLDEN STATE WARRIORS":  "GSW",
		"LA CLIPPERS":            "LAC",
		"LOS ANGELES CLIPPERS":   "LAC",
		"LOS ANGELES LAKERS":     "LAL",
		"PHOENIX SUNS":           "PHX",
		"SACRAMENTO KINGS":       "SAC",
		"DALLAS MAVERICKS":       "DAL",
		"HOUSTON ROCKETS":        "HOU",
		"MEMPHIS GRIZZLIES":      "MEM",
		"NEW ORLEANS PELICANS":   "NOP",
		"SAN ANTONIO SPURS":      "SAS",
	}
}
