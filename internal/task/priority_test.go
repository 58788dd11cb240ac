package task

import "testing"

func TestParsePriority(t *testing.T) {
	tests := []struct {
		in      string
		want    Priority
		wantErr bool
	}{
		{"Low", Low, false},
		{"medium", Medium, false},
		{" HIGH ", High, false},
		{"", 0, true},
		{"urgent", 0, true},
	}
	for _, tt := range tests {
		got, err := ParsePriority(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePriority(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePriority(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNormalizePriority(t *testing.T) {
	tests := map[string]Priority{
		"low":    Low,
		"High":   High,
		"":       Medium,
		"urgent": Medium,
	}
	for in, want := range tests {
		if got := NormalizePriority(in); got != want {
			t.Errorf("NormalizePriority(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestPriorityString(t *testing.T) {
	if Low.String() != "Low" || Medium.String() != "Medium" || High.String() != "High" {
		t.Error("unexpected priority names")
	}
	if Priority(9).Valid() {
		t.Error("Priority(9) should be invalid")
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-02-28")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.String() != "2026-02-28" {
		t.Errorf("got %q", d.String())
	}

	for _, bad := range []string{"2026-02-30", "28-02-2026", "tomorrow", ""} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("ParseDate(%q) should fail", bad)
		}
	}
}
