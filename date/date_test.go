package date

import (
	"encoding/json"
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestParse(t *testing.T) {
	testCases := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{in: "2024-02-15", want: New(2024, time.February, 15)},
		{in: "2024-2-5", want: New(2024, time.February, 5)},
		{in: "15/02/2024", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Parse(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestQuarter(t *testing.T) {
	for m, want := range map[time.Month]int{
		time.January: 1, time.March: 1, time.April: 2, time.June: 2,
		time.July: 3, time.September: 3, time.October: 4, time.December: 4,
	} {
		if got := New(2024, m, 10).Quarter(); got != want {
			t.Errorf("New(2024, %v, 10).Quarter() = %d, want %d", m, got, want)
		}
	}
}

func TestAddMonth(t *testing.T) {
	testCases := []struct {
		in   Date
		n    int
		want Date
	}{
		{New(2024, time.March, 31), -1, New(2024, time.February, 29)},
		{New(2023, time.March, 31), -1, New(2023, time.February, 28)},
		{New(2024, time.January, 15), -12, New(2023, time.January, 15)},
		{New(2024, time.November, 30), 3, New(2025, time.February, 28)},
	}
	for _, tc := range testCases {
		if got := tc.in.AddMonth(tc.n); got != tc.want {
			t.Errorf("%v.AddMonth(%d) = %v, want %v", tc.in, tc.n, got, tc.want)
		}
	}
}

func TestDaysUntil(t *testing.T) {
	a := New(2024, time.February, 15)
	b := New(2024, time.May, 15)
	if got := a.DaysUntil(b); got != 90 {
		t.Errorf("DaysUntil() = %d, want 90", got)
	}
	if got := b.DaysUntil(a); got != -90 {
		t.Errorf("DaysUntil() = %d, want -90", got)
	}
}

func TestJSON(t *testing.T) {
	d := New(2024, time.February, 5)
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `"2024-02-05"` {
		t.Errorf("Marshal() = %s, want %q", data, "2024-02-05")
	}
	var got Date
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got != d {
		t.Errorf("Unmarshal() = %v, want %v", got, d)
	}
}
