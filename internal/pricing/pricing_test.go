package pricing

import "testing"

func TestResolve(t *testing.T) {
	cases := []struct {
		name   string
		base   float64
		factor float64
		want   float64
	}{
		{"whole multiple", 100.00, 1.5, 150.00},
		{"truncating product", 99.99, 1.333, 133.29}, // 133.28667 rounds up
		{"discount factor", 250.00, 0.8, 200.00},
		{"fractional base", 149.99, 1.25, 187.49}, // 187.4875 rounds half away
		{"tie rounds away from zero", 1.25, 1.1, 1.38},
		{"small amounts keep cents", 0.10, 0.5, 0.05},
		{"zero base", 0, 1.7, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Resolve(tc.base, tc.factor); got != tc.want {
				t.Errorf("Resolve(%v, %v) = %v, want %v", tc.base, tc.factor, got, tc.want)
			}
		})
	}
}
