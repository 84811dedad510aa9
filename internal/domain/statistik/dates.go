package statistik

import "time"

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"02/01/2006",
	"02-01-2006",
}

// ParseDate accepts the date spellings spreadsheet uploads realistically
// carry. Rows whose dates fail to parse are simply left out of the
// aggregates that need them.
func ParseDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
