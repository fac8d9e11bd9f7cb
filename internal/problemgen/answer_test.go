package problemgen

import "testing"

func TestParseAnswer(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"12", 12, false},
		{"  12 ", 12, false},
		{"007", 7, false},
		{"-4", -4, false},
		{"", 0, true},
		{"   ", 0, true},
		{"12a", 0, true},
		{"1 2", 0, true},
		{"3.0", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseAnswer(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseAnswer(%q) err = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseAnswer(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestCheckAnswer(t *testing.T) {
	if !CheckAnswer("12", 12) {
		t.Error("expected 12 to be correct")
	}
	if CheckAnswer("17", 12) {
		t.Error("expected 17 to be wrong")
	}
	if CheckAnswer("twelve", 12) {
		t.Error("expected malformed input to be wrong")
	}
}
