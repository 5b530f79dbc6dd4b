// Package draws turns a lottery drawing history in CSV form into frequency
// statistics and a most-frequent-numbers prediction.
//
// Expected CSV shape: a header line (ignored) followed by rows of
//
//	gameName, month, day, year, num1, num2, num3, num4, bonus
//
// Rows with fewer fields are skipped; extra trailing fields are ignored.
package draws

import (
	"fmt"
	"strings"
	"time"
)

// MinColumns is the number of fields every accepted row must carry.
const MinColumns = 9

// MainNumbersPerRow is the count of main numbers read from each row.
const MainNumbersPerRow = 4

// DrawingRow is one accepted CSV line.
type DrawingRow struct {
	GameName    string
	Month       Number
	Day         Number
	Year        Number
	MainNumbers [MainNumbersPerRow]Number
	Bonus       Number
}

// Timestamp returns the calendar date of the row. ok is false when any date
// part is invalid. Out-of-range parts roll over the way time.Date does.
func (r DrawingRow) Timestamp() (t time.Time, ok bool) {
	if !r.Month.Valid || !r.Day.Valid || !r.Year.Valid {
		return time.Time{}, false
	}
	return time.Date(r.Year.Value, time.Month(r.Month.Value), r.Day.Value, 0, 0, 0, 0, time.UTC), true
}

// DateString formats the row date as MM/DD/YYYY using the parts as written.
func (r DrawingRow) DateString() string {
	return fmt.Sprintf("%02d/%02d/%d", r.Month.Value, r.Day.Value, r.Year.Value)
}

// GameDataset aggregates every accepted row of one CSV input.
type GameDataset struct {
	GameName     string
	LatestDate   string
	MainNumbers  []Number
	BonusNumbers []Number
	// Rows counts accepted rows; Skipped counts non-blank data lines
	// rejected for having too few fields.
	Rows    int
	Skipped int
}

// Empty reports whether no row was accepted.
func (d GameDataset) Empty() bool { return d.Rows == 0 }

// ParseRow splits a line on commas and parses it. ok is false when the line
// has fewer than requiredColumns fields.
func ParseRow(line string, requiredColumns int) (row DrawingRow, ok bool) {
	if requiredColumns < MinColumns {
		requiredColumns = MinColumns
	}
	cols := strings.Split(line, ",")
	if len(cols) < requiredColumns {
		return DrawingRow{}, false
	}
	row.GameName = strings.TrimSpace(cols[0])
	row.Month = parseLeadingInt(cols[1])
	row.Day = parseLeadingInt(cols[2])
	row.Year = parseLeadingInt(cols[3])
	for i := 0; i < MainNumbersPerRow; i++ {
		row.MainNumbers[i] = ParseNumber(cols[4+i])
	}
	row.Bonus = ParseNumber(cols[8])
	return row, true
}

// ParseDataset parses raw CSV text. The first line is always treated as a
// header. Input with no accepted rows yields an empty dataset, never an error.
func ParseDataset(csvText string, requiredColumns int) GameDataset {
	var ds GameDataset
	lines := strings.Split(csvText, "\n")
	if len(lines) < 2 {
		return ds
	}

	var latest time.Time
	haveLatest := false
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		row, ok := ParseRow(line, requiredColumns)
		if !ok {
			ds.Skipped++
			continue
		}
		if ds.Rows == 0 {
			ds.GameName = row.GameName
		}
		ds.Rows++

		if ts, ok := row.Timestamp(); ok && (!haveLatest || ts.After(latest)) {
			latest = ts
			haveLatest = true
			ds.LatestDate = row.DateString()
		}

		ds.MainNumbers = append(ds.MainNumbers, row.MainNumbers[:]...)
		ds.BonusNumbers = append(ds.BonusNumbers, row.Bonus)
	}
	return ds
}
