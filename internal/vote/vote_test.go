package vote

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCount(t *testing.T) {
	tests := []struct {
		name  string
		votes []Vote
		want  Tally
	}{
		{
			name:  "empty",
			votes: nil,
			want:  Tally{},
		},
		{
			name: "single",
			votes: []Vote{
				{VoterID: "v1", Color: Red},
			},
			want: Tally{Red: 1},
		},
		{
			name: "duplicate voters are counted",
			votes: []Vote{
				{VoterID: "v1", Color: Red},
				{VoterID: "v1", Color: Red},
				{VoterID: "v2", Color: Green},
			},
			want: Tally{Red: 2, Green: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Count(tt.votes)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Count() mismatch (-want +got):\n%s", diff)
			}

			if _, exists := got[Blue]; exists {
				t.Errorf("Color with no votes should be absent : %v", got)
			}
		})
	}
}

func TestTally_Winner(t *testing.T) {
	tests := []struct {
		name   string
		tally  Tally
		want   string
		wantOK bool
	}{
		{
			name:   "no votes",
			tally:  Tally{},
			want:   "",
			wantOK: false,
		},
		{
			name:   "single color",
			tally:  Tally{Red: 1},
			want:   Red,
			wantOK: true,
		},
		{
			name:   "clear winner",
			tally:  Tally{Red: 1, Green: 2},
			want:   Green,
			wantOK: true,
		},
		{
			name:   "tie goes to canonical order",
			tally:  Tally{Red: 1, Green: 1},
			want:   Red,
			wantOK: true,
		},
		{
			name:   "tie without red",
			tally:  Tally{Blue: 3, Green: 3},
			want:   Green,
			wantOK: true,
		},
		{
			name:   "three way tie",
			tally:  Tally{Blue: 2, Green: 2, Red: 2},
			want:   Red,
			wantOK: true,
		},
		{
			name:   "unknown colors after canonical",
			tally:  Tally{"Amber": 4, Blue: 4},
			want:   Blue,
			wantOK: true,
		},
		{
			name:   "unknown colors by name",
			tally:  Tally{"Violet": 4, "Amber": 4},
			want:   "Amber",
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.tally.Winner()
			if ok != tt.wantOK {
				t.Fatalf("Got ok %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("Got %v, want %v", got, tt.want)
			}
			if ok && tt.tally[got] != tt.tally.Maximum() {
				t.Errorf("Winner count %d is not the maximum %d", tt.tally[got],
					tt.tally.Maximum())
			}
		})
	}
}

func TestTally_String(t *testing.T) {
	tests := []struct {
		tally Tally
		want  string
	}{
		{Tally{}, "{}"},
		{Tally{Red: 1}, `{"Red": 1}`},
		{Tally{Red: 1, Green: 2}, `{"Green": 2, "Red": 1}`},
		{Tally{Red: 1, Green: 2, Blue: 10}, `{"Blue": 10, "Green": 2, "Red": 1}`},
	}

	for _, tt := range tests {
		if got := tt.tally.String(); got != tt.want {
			t.Errorf("Got %v, want %v", got, tt.want)
		}
	}
}

func TestTally_Totals(t *testing.T) {
	tally := Tally{Red: 3, Green: 5, Blue: 1}

	if got := tally.Maximum(); got != 5 {
		t.Errorf("Got maximum %d, want %d", got, 5)
	}

	if got := tally.Total(); got != 9 {
		t.Errorf("Got total %d, want %d", got, 9)
	}

	c := tally.Copy()
	c[Red] = 100
	if tally[Red] != 3 {
		t.Errorf("Copy shares storage with original")
	}
}

func TestValidateColor(t *testing.T) {
	tests := []struct {
		color   string
		wantErr bool
	}{
		{Red, false},
		{Green, false},
		{Blue, false},
		{"red", true},
		{"GREEN", true},
		{" Blue", true},
		{"Purple", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateColor(tt.color)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateColor(%q) error = %v, wantErr %v", tt.color, err, tt.wantErr)
		}
	}
}
