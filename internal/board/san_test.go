package board

import (
	"strings"
	"testing"
)

func TestSANCastlingSuffix(t *testing.T) {
	tests := []struct {
		fen  string
		move string
		want string
	}{
		{"4k3/8/8/8/8/8/8/4K2R w K - 0 1", "e1g1", "O-O"},
		{"5k2/8/8/8/8/8/8/4K2R w K - 0 1", "e1g1", "O-O+"},
		{"3k4/8/8/8/8/8/8/R3K3 w Q - 0 1", "e1c1", "O-O-O+"},
		{"4rkr1/4p1p1/8/8/8/8/8/4K2R w K - 0 1", "e1g1", "O-O#"},
	}

	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			s := mustParse(t, tc.fen)
			m, err := ParseMove(s, tc.move)
			if err != nil {
				t.Fatalf("ParseMove(%s): %v", tc.move, err)
			}
			if got := m.SAN(s); got != tc.want {
				t.Errorf("SAN(%s) = %s, want %s", tc.move, got, tc.want)
			}

			parsed, err := ParseSAN(s, tc.want)
			if err != nil || parsed != m {
				t.Errorf("ParseSAN(%s) = %v, %v; want %v", tc.want, parsed, err, m)
			}
		})
	}
}

func TestMovesToSAN(t *testing.T) {
	s := NewState()
	play(t, s, "e2e4", "e7e5", "g1f3", "b8c6", "f1c4", "g8f6", "e1g1")

	got := strings.Join(MovesToSAN(NewState(), s.History()), " ")
	if want := "e4 e5 Nf3 Nc6 Bc4 Nf6 O-O"; got != want {
		t.Errorf("MovesToSAN = %s, want %s", got, want)
	}
	if len(MovesToSAN(s, nil)) != 0 {
		t.Error("empty line should give no SAN")
	}
}
