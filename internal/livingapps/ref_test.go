package livingapps

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractRecordID(t *testing.T) {
	tests := []struct {
		name   string
		ref    string
		wantID string
		wantOK bool
	}{
		{
			name:   "full_url",
			ref:    "https://my.living-apps.de/rest/apps/6980ab411df14e26ef90fad2/records/0123456789abcdef01234567",
			wantID: "0123456789abcdef01234567",
			wantOK: true,
		},
		{name: "empty", ref: ""},
		{
			name: "too_short",
			ref:  "https://my.living-apps.de/rest/apps/x/records/" + strings.Repeat("a", 23),
		},
		{name: "bare_id", ref: "0123456789abcdef01234567", wantID: "0123456789abcdef01234567", wantOK: true},
		{name: "upper_case", ref: "prefix/ABCDEF0123456789ABCDEF01", wantID: "ABCDEF0123456789ABCDEF01", wantOK: true},
		{name: "trailing_slash", ref: "apps/x/records/0123456789abcdef01234567/"},
		{name: "non_hex_tail", ref: "apps/x/records/0123456789abcdef0123456z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := ExtractRecordID(tt.ref)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestRecordURLRoundTrip(t *testing.T) {
	ids := []string{
		"0123456789abcdef01234567",
		"6980ab417ea92a137dca8cf8",
		strings.Repeat("f", 24),
	}
	for _, id := range ids {
		url := RecordURL(testBase, "6980ab411df14e26ef90fad2", id)
		got, ok := ExtractRecordID(url)
		assert.True(t, ok, url)
		assert.Equal(t, id, got)
	}

	assert.Equal(t,
		"https://my.living-apps.de/rest/apps/a/records/b",
		RecordURL("https://my.living-apps.de/rest/", "a", "b"),
	)
}

func TestRefEncodeDecode(t *testing.T) {
	ref := Ref{AppID: "6980ab411df14e26ef90fad2", RecordID: "0123456789abcdef01234567"}

	decoded, ok := DecodeRef(ref.Encode(testBase))
	assert.True(t, ok)
	assert.Equal(t, ref, decoded)

	decoded, ok = DecodeRef("0123456789abcdef01234567")
	assert.True(t, ok)
	assert.Equal(t, Ref{RecordID: "0123456789abcdef01234567"}, decoded)

	_, ok = DecodeRef("not a reference")
	assert.False(t, ok)
}

const testBase = "https://my.living-apps.de/rest"

func TestToHabitLogDecodesHabitRef(t *testing.T) {
	id := "0123456789abcdef01234567"

	log := toHabitLog("l1", habitLogFields{
		HabitID:   "https://my.living-apps.de/rest/apps/6980ab411df14e26ef90fad2/records/" + id,
		Date:      "2026-02-05",
		Completed: true,
	})
	assert.Equal(t, id, log.HabitID)
	assert.Equal(t, "l1", log.ID)
	assert.True(t, log.Completed)

	assert.Equal(t, id, toHabitLog("l2", habitLogFields{HabitID: id}).HabitID)
	assert.Empty(t, toHabitLog("l3", habitLogFields{HabitID: "not a ref"}).HabitID)
}
