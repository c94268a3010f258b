// Package clock converts a time of day into Berlin Clock lamp states.
//
// The clock shows a seconds lamp on top followed by four rows:
// five-hour and one-hour rows of red lamps, an eleven lamp five-minute
// row with red quarter markers, and a one-minute row of yellow lamps.
package clock

import "strings"

// Quarter markers in the five-minute row.
var quarterLamps = [...]int{2, 5, 8}

// Display holds the lamp states for one conversion.
type Display struct {
	Seconds     Color `json:"seconds"`
	FiveHours   Row   `json:"five_hours"`
	OneHour     Row   `json:"one_hour"`
	FiveMinutes Row   `json:"five_minutes"`
	OneMinute   Row   `json:"one_minute"`
}

// EncodeHourRows returns the five-hour and one-hour rows for hours.
func EncodeHourRows(hours int) (fiveHours, oneHour Row) {
	fiveHours = newRow(FiveHourLamps, hours/5, Red)
	oneHour = newRow(OneHourLamps, hours%5, Red)
	return fiveHours, oneHour
}

// EncodeMinuteRows returns the five-minute and one-minute rows for minutes.
func EncodeMinuteRows(minutes int) (fiveMinutes, oneMinute Row) {
	fiveMinutes = newRow(FiveMinuteLamps, minutes/5, Yellow)
	for _, i := range quarterLamps {
		if fiveMinutes[i].Lit() {
			fiveMinutes[i] = Red
		}
	}
	oneMinute = newRow(OneMinuteLamps, minutes%5, Yellow)
	return fiveMinutes, oneMinute
}

// EncodeSecondLamp returns Yellow on even seconds and Off on odd ones.
func EncodeSecondLamp(seconds int) Color {
	if seconds%2 == 0 {
		return Yellow
	}
	return Off
}

// Encode builds the display for a validated time.
func Encode(t Time) Display {
	fiveHours, oneHour := EncodeHourRows(t.Hours)
	fiveMinutes, oneMinute := EncodeMinuteRows(t.Minutes)
	return Display{
		Seconds:     EncodeSecondLamp(t.Seconds),
		FiveHours:   fiveHours,
		OneHour:     oneHour,
		FiveMinutes: fiveMinutes,
		OneMinute:   oneMinute,
	}
}

// Convert parses an "hh:mm:ss" string and returns its textual display.
func Convert(s string) (string, error) {
	t, err := Parse(s)
	if err != nil {
		return "", err
	}
	return Encode(t).String(), nil
}

// Rows returns all rows top to bottom, the seconds lamp as a one lamp row.
func (d Display) Rows() []Row {
	return []Row{
		{d.Seconds},
		d.FiveHours,
		d.OneHour,
		d.FiveMinutes,
		d.OneMinute,
	}
}

// Lines returns the textual form of each row.
func (d Display) Lines() []string {
	rows := d.Rows()
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = r.String()
	}
	return lines
}

// String renders the display as newline-separated rows.
func (d Display) String() string {
	return strings.Join(d.Lines(), "\n")
}
