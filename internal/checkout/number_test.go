package checkout

import (
	"fmt"
	"testing"
	"time"
)

// fakeSequence mimics the durable per-day counter in memory.
type fakeSequence struct {
	counters map[string]int
	fail     bool
}

func (f *fakeSequence) Next(day string) (int, error) {
	if f.fail {
		return 0, fmt.Errorf("storage unavailable")
	}
	if f.counters == nil {
		f.counters = make(map[string]int)
	}
	f.counters[day]++
	return f.counters[day], nil
}

func minterAt(seq SequenceSource, at time.Time) *NumberMinter {
	m := NewNumberMinter(seq)
	m.now = func() time.Time { return at }
	return m
}

func TestMintSequentialSameDay(t *testing.T) {
	seq := &fakeSequence{}
	m := minterAt(seq, time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC))

	first := m.Mint()
	second := m.Mint()

	if first != "20240115001" {
		t.Errorf("Expected 20240115001, got %s", first)
	}
	if second != "20240115002" {
		t.Errorf("Expected 20240115002, got %s", second)
	}
}

func TestMintResetsOnNewDay(t *testing.T) {
	seq := &fakeSequence{}

	m := minterAt(seq, time.Date(2024, 1, 15, 23, 59, 0, 0, time.UTC))
	m.Mint()
	m.Mint()

	m = minterAt(seq, time.Date(2024, 1, 16, 0, 1, 0, 0, time.UTC))
	number := m.Mint()
	if number != "20240116001" {
		t.Errorf("Expected sequence reset to 001 on a new day, got %s", number)
	}
}

func TestMintFallsBackToTimestamp(t *testing.T) {
	seq := &fakeSequence{fail: true}
	m := minterAt(seq, time.Date(2024, 1, 15, 10, 30, 45, 0, time.UTC))

	number := m.Mint()
	if number != "20240115103045" {
		t.Errorf("Expected timestamp fallback 20240115103045, got %s", number)
	}
	if len(number) != 14 {
		t.Errorf("Fallback numbers must be 14 digits, got %d", len(number))
	}
}

func TestMintSequenceOverflowKeepsPrefix(t *testing.T) {
	seq := &fakeSequence{counters: map[string]int{"20240115": 999}}
	m := minterAt(seq, time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC))

	number := m.Mint()
	if number != "202401151000" {
		t.Errorf("Expected 202401151000 past the 3-digit range, got %s", number)
	}
}
