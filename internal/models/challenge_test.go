package models

import "testing"

func TestChallenge_Validate(t *testing.T) {
	tests := []struct {
		name      string
		challenge Challenge
		wantErr   bool
	}{
		{
			name:      "valid annual",
			challenge: Challenge{Title: "Read 24 books", Kind: ChallengeAnnual, Year: 2026, Target: 24},
		},
		{
			name:      "valid monthly",
			challenge: Challenge{Title: "No sugar", Kind: ChallengeMonthly, Year: 2026, Month: 3, Target: 31},
		},
		{
			name:      "annual with month",
			challenge: Challenge{Title: "Run", Kind: ChallengeAnnual, Year: 2026, Month: 2, Target: 10},
			wantErr:   true,
		},
		{
			name:      "monthly without month",
			challenge: Challenge{Title: "Run", Kind: ChallengeMonthly, Year: 2026, Target: 10},
			wantErr:   true,
		},
		{
			name:      "zero target",
			challenge: Challenge{Title: "Run", Kind: ChallengeAnnual, Year: 2026},
			wantErr:   true,
		},
		{
			name:      "empty title",
			challenge: Challenge{Kind: ChallengeAnnual, Year: 2026, Target: 1},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.challenge.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Challenge.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestChallenge_Period(t *testing.T) {
	monthly := Challenge{Kind: ChallengeMonthly, Year: 2026, Month: 3}
	if got := monthly.Period(); got != "2026-03" {
		t.Errorf("Period() = %q, want %q", got, "2026-03")
	}
	annual := Challenge{Kind: ChallengeAnnual, Year: 2026}
	if got := annual.Period(); got != "2026" {
		t.Errorf("Period() = %q, want %q", got, "2026")
	}
}
