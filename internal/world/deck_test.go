package world

import "testing"

func testDeck() (*Deck, DeckConfig) {
	cfg := DeckConfig{
		Speed:            2,
		StoppingDistance: 0.5,
		Stations:         map[string][2]float64{"engine": {10, 0}, "hull": {0, 10}},
		Quarters:         [2]float64{0, 0},
	}
	return NewDeck(cfg), cfg
}

func TestWalkerReachesStation(t *testing.T) {
	deck, cfg := testDeck()
	w := NewWalker(deck, cfg)

	w.MoveTo(1, Engine)
	if w.Arrived(1) {
		t.Fatal("arrived before moving")
	}
	steps := 0
	for !w.Arrived(1) {
		w.Step(1)
		steps++
		if steps > 10 {
			t.Fatalf("not arrived after %d steps, at %+v", steps, w.PositionOf(1))
		}
	}
	// 10 units at 2/s with a 0.5 stopping distance.
	if steps != 5 {
		t.Fatalf("arrived after %d steps, want 5", steps)
	}
	if got := w.PositionOf(1); got.Dist(deck.Station(Engine)) > cfg.StoppingDistance {
		t.Fatalf("position %+v not at station", got)
	}
}

func TestWalkerRecallAndForget(t *testing.T) {
	deck, cfg := testDeck()
	w := NewWalker(deck, cfg)
	w.MoveTo(2, Hull)
	for i := 0; i < 10; i++ {
		w.Step(1)
	}
	w.Recall(2)
	if w.Arrived(2) {
		t.Fatal("recalled unit reported at quarters immediately")
	}
	for i := 0; i < 10; i++ {
		w.Step(1)
	}
	if !w.Arrived(2) || w.PositionOf(2) != deck.Quarters {
		t.Fatalf("unit not back in quarters: %+v", w.PositionOf(2))
	}

	w.MoveTo(2, Engine)
	w.Step(1)
	w.Forget(2)
	if got := w.PositionOf(2); got != deck.Quarters {
		t.Fatalf("forgotten unit should restart at quarters, got %+v", got)
	}
}

func TestDeckUnknownStation(t *testing.T) {
	deck, _ := testDeck()
	if got := deck.Station(SubsystemCount); got != deck.Quarters {
		t.Fatalf("Station(unknown) = %+v, want quarters", got)
	}
}
