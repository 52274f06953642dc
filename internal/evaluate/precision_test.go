// Olistrec - Hybrid Product Recommendations for Marketplace Orders
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/olistrec

package evaluate

import (
	"math"
	"testing"

	"github.com/tomtom215/olistrec/internal/recommend"
)

func TestPrecisionAtK(t *testing.T) {
	tests := []struct {
		name        string
		recommended []string
		actual      []string
		k           int
		want        float64
		wantHits    int
	}{
		{"one of three", []string{"p1", "p2", "p3"}, []string{"p2", "p4"}, 3, 1.0 / 3.0, 1},
		{"all hit", []string{"p1", "p2"}, []string{"p2", "p1", "p9"}, 2, 1, 2},
		{"empty recommended", nil, []string{"p1"}, 5, 0, 0},
		{"empty actual", []string{"p1"}, nil, 5, 0, 0},
		{"fewer recommendations than k", []string{"p1", "p2"}, []string{"p1"}, 5, 0.5, 1},
		{"only first k count", []string{"p1", "p2", "p3"}, []string{"p3"}, 2, 0, 0},
		{"duplicate actual counts once", []string{"p1", "p2"}, []string{"p1", "p1", "p1"}, 2, 0.5, 1},
		{"zero k", []string{"p1"}, []string{"p1"}, 0, 0, 0},
		{"negative k", []string{"p1"}, []string{"p1"}, -2, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PrecisionAtK(tt.recommended, tt.actual, tt.k); !almostEqual(got, tt.want) {
				t.Errorf("PrecisionAtK() = %v, want %v", got, tt.want)
			}
			if got := Hits(tt.recommended, tt.actual, tt.k); got != tt.wantHits {
				t.Errorf("Hits() = %d, want %d", got, tt.wantHits)
			}
		})
	}
}

func TestPrecisionAtK_Bounds(t *testing.T) {
	recs := []string{"a", "b", "c", "d", "e"}
	actual := []string{"c", "e", "x"}
	for k := 1; k <= 7; k++ {
		p := PrecisionAtK(recs, actual, k)
		if p < 0 || p > 1 {
			t.Errorf("PrecisionAtK(k=%d) = %v, outside [0, 1]", k, p)
		}
	}
}

func TestSplitByPosition(t *testing.T) {
	records := make([]recommend.Purchase, 20)
	for i := range records {
		records[i] = buy("c", "SP", string(rune('a'+i)), day(2018, 1, i+1))
	}

	tests := []struct {
		ratio     float64
		wantTrain int
		wantErr   bool
	}{
		{0.85, 17, false},
		{0.5, 10, false},
		{0, 0, false},
		{1, 20, false},
		{-0.1, 0, true},
		{1.5, 0, true},
		{math.NaN(), 0, true},
	}

	for _, tt := range tests {
		s, err := SplitByPosition(records, tt.ratio)
		if (err != nil) != tt.wantErr {
			t.Errorf("SplitByPosition(%v) error = %v, wantErr %v", tt.ratio, err, tt.wantErr)
			continue
		}
		if tt.wantErr {
			continue
		}
		if len(s.Train) != tt.wantTrain || len(s.Train)+len(s.Test) != len(records) {
			t.Errorf("SplitByPosition(%v) = %d/%d, want %d train", tt.ratio, len(s.Train), len(s.Test), tt.wantTrain)
		}
		if len(s.Test) > 0 && s.Test[0].ProductID != records[tt.wantTrain].ProductID {
			t.Errorf("SplitByPosition(%v) test starts at %q", tt.ratio, s.Test[0].ProductID)
		}
	}
}

func TestSplitByPosition_TrainAppendDoesNotClobberTest(t *testing.T) {
	records := []recommend.Purchase{
		buy("a", "SP", "p1", day(2018, 1, 1)),
		buy("b", "SP", "p2", day(2018, 1, 2)),
	}
	s, err := SplitByPosition(records, 0.5)
	if err != nil {
		t.Fatalf("SplitByPosition() error = %v", err)
	}
	s.Train = append(s.Train, buy("z", "SP", "pz", day(2018, 1, 3)))
	if s.Test[0].ProductID != "p2" {
		t.Errorf("append to Train overwrote Test: %q", s.Test[0].ProductID)
	}
}
