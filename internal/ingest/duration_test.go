package ingest

import "testing"

// TestDurationFormatters проверяет согласованность ISO и человекочитаемого
// форматтеров: оба распознают один набор записей и сходятся по часам и минутам.
func TestDurationFormatters(t *testing.T) {
	cases := []struct {
		input     string
		wantISO   string
		wantHuman string
	}{
		{"1:30:00", "PT1H30M0S", "1h 30m"},
		{"45:00", "PT45M0S", "45m"},
		{"90 minutes", "PT1H30M", "1h 30m"},
		{"2 hours", "PT2H", "2h"},
		{"1h30m", "PT1H30M", "1h 30m"},
		{"1h 05m", "PT1H5M", "1h 5m"},
		{"120 min", "PT2H", "2h"},
		{"3 hr", "PT3H", "3h"},
		{"2:05:30", "PT2H5M30S", "2h 5m"},
		{"0:30", "PT30S", "30s"},
		{"", "PT0S", ""},
		{"Not specified", "PT0S", ""},
		{"garbage", "PT0S", ""},
	}

	for _, tc := range cases {
		if got := ISODuration(tc.input); got != tc.wantISO {
			t.Errorf("ISODuration(%q) = %q, ожидался %q", tc.input, got, tc.wantISO)
		}
		if got := HumanDuration(tc.input); got != tc.wantHuman {
			t.Errorf("HumanDuration(%q) = %q, ожидался %q", tc.input, got, tc.wantHuman)
		}
	}
}

// TestDurationMinuteCarry проверяет перенос минут в часы в обоих форматтерах.
func TestDurationMinuteCarry(t *testing.T) {
	// 150 минут = 2 часа 30 минут в обеих формах
	if got := ISODuration("150 minutes"); got != "PT2H30M" {
		t.Errorf("ISODuration(150 minutes) = %q, ожидался %q", got, "PT2H30M")
	}
	if got := HumanDuration("150 minutes"); got != "2h 30m" {
		t.Errorf("HumanDuration(150 minutes) = %q, ожидался %q", got, "2h 30m")
	}
}
