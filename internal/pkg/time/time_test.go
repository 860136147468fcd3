package time_test

import (
	"encoding/json"
	"testing"
	"time"

	timex "github.com/ferdiebergado/devlink/internal/pkg/time"
)

func TestDuration_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{"minutes", `"15m"`, 15 * time.Minute, false},
		{"compound", `"1h30s"`, time.Hour + 30*time.Second, false},
		{"not a string", `15`, 0, true},
		{"invalid unit", `"5 parsecs"`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var d timex.Duration
			err := json.Unmarshal([]byte(tt.input), &d)
			if (err != nil) != tt.wantErr {
				t.Fatalf("json.Unmarshal(%s) = %v, wantErr: %v", tt.input, err, tt.wantErr)
			}

			if d.Duration != tt.want {
				t.Errorf("d.Duration = %v, want: %v", d.Duration, tt.want)
			}
		})
	}
}

func TestDuration_MarshalJSON(t *testing.T) {
	t.Parallel()

	d := timex.Duration{Duration: 90 * time.Second}
	got, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("json.Marshal(%v) = %v", d, err)
	}

	if want := `"1m30s"`; string(got) != want {
		t.Errorf("json.Marshal(%v) = %s, want: %s", d, got, want)
	}
}
