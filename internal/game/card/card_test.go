package card

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	c, err := Parse("C-7")
	require.NoError(t, err)
	assert.Equal(t, byte('C'), c.Suit())
	assert.Equal(t, uint8(7), c.Rank())
	assert.Equal(t, "C-7", c.Key())

	for _, bad := range []string{"", "C7", "E-1", "a-1", "A-10", "A-x", "A--", " A-1", "A_1"} {
		t.Run(bad, func(t *testing.T) {
			_, err := Parse(bad)
			assert.ErrorIs(t, err, ErrInvalidFormat)
		})
	}
}

func TestCatalog(t *testing.T) {
	cards := Catalog()
	require.Len(t, cards, CatalogSize)

	seen := make(map[Card]bool, len(cards))
	for _, c := range cards {
		assert.False(t, seen[c], "duplicate card %s", c)
		seen[c] = true

		back, err := Parse(c.Key())
		require.NoError(t, err)
		assert.Equal(t, c, back)
	}
	assert.Equal(t, "A-0", cards[0].Key())
	assert.Equal(t, "D-9", cards[len(cards)-1].Key())
}

func TestSpecialSubsets(t *testing.T) {
	var wild, draw, extra int
	for _, c := range Catalog() {
		if IsWild(c) {
			wild++
		}
		if IsDrawEffect(c) {
			draw++
			assert.True(t, IsWild(c), "%s draws but is not wild", c)
		}
		if IsExtraTurn(c) {
			extra++
			assert.False(t, IsDrawEffect(c))
		}
	}
	assert.Equal(t, 8, wild)
	assert.Equal(t, 4, draw)
	assert.Equal(t, 4, extra)
}

func TestPlayable(t *testing.T) {
	ptr := func(key string) *Card {
		c := MustParse(key)
		return &c
	}

	tests := []struct {
		name      string
		center    *Card
		candidate string
		expected  bool
	}{
		{name: "wild center accepts anything", center: ptr("A-9"), candidate: "B-3", expected: true},
		{name: "eight in center accepts anything", center: ptr("D-8"), candidate: "C-1", expected: true},
		{name: "wild candidate", center: ptr("A-3"), candidate: "B-8", expected: true},
		{name: "draw wild candidate", center: ptr("A-3"), candidate: "C-9", expected: true},
		{name: "no match", center: ptr("A-3"), candidate: "B-5", expected: false},
		{name: "suit match", center: ptr("A-3"), candidate: "A-5", expected: true},
		{name: "rank match", center: ptr("A-3"), candidate: "D-3", expected: true},
		{name: "no center", center: nil, candidate: "B-5", expected: true},
		{name: "extra turn card follows normal rules", center: ptr("A-3"), candidate: "B-7", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Playable(tt.center, MustParse(tt.candidate)))
		})
	}
}

func TestCardJSON(t *testing.T) {
	payload := struct {
		Card  Card  `json:"card"`
		Empty *Card `json:"empty"`
	}{Card: MustParse("B-4")}

	data, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"card":"B-4","empty":null}`, string(data))

	var back struct {
		Card Card `json:"card"`
	}
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, payload.Card, back.Card)

	assert.Error(t, json.Unmarshal([]byte(`{"card":"Z-4"}`), &back))
}
