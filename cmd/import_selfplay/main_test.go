package main

import (
	"strings"
	"testing"

	"github.com/freeeve/quiet-conquest/pkg/conquest"
)

func TestConvertRecord(t *testing.T) {
	w, err := conquest.GenerateMap(5)
	if err != nil {
		t.Fatalf("generate map: %v", err)
	}
	rec := &jsonMatchRecord{
		Seed:       5,
		Winner:     "alpha",
		Turns:      80,
		Digest:     conquest.DigestString(w),
		FinalState: conquest.EncodeCFEN(w),
		Players: []jsonPlayerEntry{
			{Player: "alpha", Strategy: "hard", Systems: 12, Ships: 140, OrdersSent: 210},
			{Player: "beta", Strategy: "medium", Systems: 2, Ships: 15, OrdersSent: 160},
		},
	}

	m, err := convertRecord(rec, "selfplay-001")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if m.ID == "" {
		t.Error("expected a generated match id")
	}
	if m.Label != "selfplay-001" {
		t.Errorf("expected label selfplay-001, got %s", m.Label)
	}
	if m.Seed != 5 || m.Winner != "alpha" || m.Turns != 80 {
		t.Errorf("unexpected match fields: seed=%d winner=%s turns=%d", m.Seed, m.Winner, m.Turns)
	}
	if m.Digest != rec.Digest {
		t.Errorf("expected digest %s, got %s", rec.Digest, m.Digest)
	}
	if m.FinalState != rec.FinalState {
		t.Errorf("expected canonical state to match input, got %s", m.FinalState)
	}
	if m.FinishedAt == nil {
		t.Error("expected finished_at to be set")
	}
	if len(m.Players) != 2 {
		t.Fatalf("expected 2 players, got %d", len(m.Players))
	}
	if m.Players[0].Strategy != "hard" || m.Players[1].Strategy != "medium" {
		t.Errorf("unexpected strategies: %s, %s", m.Players[0].Strategy, m.Players[1].Strategy)
	}
}

func TestConvertRecord_KeepsRecordedID(t *testing.T) {
	w, err := conquest.GenerateMap(5)
	if err != nil {
		t.Fatalf("generate map: %v", err)
	}
	const id = "3f1b9f62-6a0e-4e7b-9c3d-52a7c21f08aa"
	rec := &jsonMatchRecord{MatchID: id, FinalState: conquest.EncodeCFEN(w)}

	m, err := convertRecord(rec, "x")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if m.ID != id {
		t.Errorf("expected recorded id to survive, got %s", m.ID)
	}
}

func TestConvertRecord_ComputesMissingDigest(t *testing.T) {
	w, err := conquest.GenerateMap(7)
	if err != nil {
		t.Fatalf("generate map: %v", err)
	}
	rec := &jsonMatchRecord{FinalState: conquest.EncodeCFEN(w)}

	m, err := convertRecord(rec, "x")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if m.Digest != conquest.DigestString(w) {
		t.Errorf("expected computed digest %s, got %s", conquest.DigestString(w), m.Digest)
	}
}

func TestConvertRecord_RejectsBadInput(t *testing.T) {
	w, err := conquest.GenerateMap(5)
	if err != nil {
		t.Fatalf("generate map: %v", err)
	}
	cfen := conquest.EncodeCFEN(w)

	cases := []struct {
		name string
		rec  jsonMatchRecord
		want string
	}{
		{"bad state", jsonMatchRecord{FinalState: "not-a-position"}, "decode final state"},
		{"digest mismatch", jsonMatchRecord{FinalState: cfen, Digest: strings.Repeat("0", 64)}, "digest mismatch"},
		{"bad winner", jsonMatchRecord{FinalState: cfen, Winner: "gamma"}, "unknown winner"},
		{"negative turns", jsonMatchRecord{FinalState: cfen, Turns: -1}, "negative turn count"},
		{"bad match id", jsonMatchRecord{FinalState: cfen, MatchID: "match-from-pipeline"}, "not a UUID"},
		{"bad player", jsonMatchRecord{FinalState: cfen, Players: []jsonPlayerEntry{{Player: "gamma"}}}, "unknown player"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := convertRecord(&tc.rec, "x")
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}
