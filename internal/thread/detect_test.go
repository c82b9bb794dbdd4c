package thread

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCandidate(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"slash numbering", "1/5 So here's what happened at the standup today", true},
		{"bracketed numbering", "Some thoughts on caching (2/4)", true},
		{"leading ordinal", "3. The third point is the most important", true},
		{"thread emoji", "🧵 Everything I know about BGP", true},
		{"emoji prefixed numbering", "🧵 1/12 let's go", true},
		{"english marker", "Continued from my last post...", true},
		{"japanese marker", "前回の続きです", true},
		{"korean marker", "그리고 한 가지 더", true},
		{"spanish marker", "Además, hay otro problema", true},
		{"plain post", "just setting up my account", false},
		{"empty", "", false},
		{"fraction-like but not position", "got 7/10 on the quiz honestly fine", true}, // permissive by design
		{"date is not numbering", "see you on 12.25 everyone", false},
		{"decimal number", "inflation hit 3.5 today", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCandidate(tt.content))
		})
	}
}

func TestParsePosition(t *testing.T) {
	tests := []struct {
		name    string
		content string
		pos     int
		total   int
		ok      bool
	}{
		{"leading n/m", "2/5 more context below", 2, 5, true},
		{"trailing n/m", "and that's why it broke 3/7", 3, 7, true},
		{"parenthesized", "closing thoughts (4/4)", 4, 4, true},
		{"emoji prefix", "🧵 1/9 a thread about threads", 1, 9, true},
		{"leading ordinal no total", "2. second point", 2, 0, true},
		{"position beyond total", "9/3 nonsense", 0, 0, false},
		{"zero position", "0/4 nope", 0, 0, false},
		{"no numbering", "nothing to see here", 0, 0, false},
		{"huge numbers rejected", "1234/5678 not a thread", 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, total, ok := ParsePosition(tt.content)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.pos, pos)
			assert.Equal(t, tt.total, total)
		})
	}
}

func TestHasContinuityMarker(t *testing.T) {
	assert.True(t, HasContinuityMarker("CONTINUED below"))
	assert.True(t, HasContinuityMarker("続きはこちら"))
	assert.False(t, HasContinuityMarker("lunch was good"))
}
