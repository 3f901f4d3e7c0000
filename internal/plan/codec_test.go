package plan

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/roach88/tagmerge/internal/ir"
)

// recordComparer compares embedded records structurally.
var recordComparer = cmp.Comparer(func(a, b *ir.Object) bool {
	if a == nil || b == nil {
		return a == b
	}
	return ir.Equal(a, b)
})

func samplePlan() *Plan {
	return &Plan{
		Keys:   []string{"id"},
		Policy: RightWins,
		Entries: []Entry{
			{
				Type:      Matched,
				Left:      ir.ObjectOf(ir.O("id", ir.Int(1)), ir.O("v", ir.String("a"))),
				Right:     ir.ObjectOf(ir.O("id", ir.Int(1)), ir.O("v", ir.String("b"))),
				Conflicts: []string{"v"},
			},
			{Type: LeftOnly, Left: ir.ObjectOf(ir.O("id", ir.Int(2))), Conflicts: []string{}},
			{Type: RightOnly, Right: ir.ObjectOf(ir.O("id", ir.Int(3))), Conflicts: []string{}},
		},
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	p := samplePlan()

	text, err := Encode(p)
	require.NoError(t, err)

	decoded, err := Decode(text)
	require.NoError(t, err)

	want := samplePlan()
	want.Version = ir.PlanVersion
	want.ID, err = ComputeID(want)
	require.NoError(t, err)

	if diff := cmp.Diff(want, decoded, recordComparer); diff != "" {
		t.Errorf("decoded plan mismatch (-want +got):\n%s", diff)
	}

	again, err := Encode(decoded)
	require.NoError(t, err)
	assert.Equal(t, string(text), string(again), "encoding must be stable")
}

func TestEncodeFormat(t *testing.T) {
	p := &Plan{
		Keys:    []string{"id"},
		Entries: []Entry{{Type: LeftOnly, Left: ir.ObjectOf(ir.O("id", ir.Int(1))), Conflicts: []string{}}},
	}
	text, err := Encode(p)
	require.NoError(t, err)

	id, err := ComputeID(p)
	require.NoError(t, err)

	want := `{
  "version": "1",
  "id": "` + id + `",
  "keys": [
    "id"
  ],
  "policy": "right_wins",
  "entries": [
    {
      "type": "left_only",
      "left": {
        "id": 1
      },
      "right": null,
      "conflicts": []
    }
  ]
}`
	assert.Equal(t, want, string(text))
	assert.False(t, strings.HasSuffix(string(text), "\n"))
}

func TestEncodeRecomputesID(t *testing.T) {
	p := samplePlan()
	p.ID = "stale"

	text, err := Encode(p)
	require.NoError(t, err)
	assert.NotContains(t, string(text), "stale")

	_, err = Decode(text)
	require.NoError(t, err)
}

func TestEncodeRejectsInvalidPlan(t *testing.T) {
	p := samplePlan()
	p.Keys = nil

	_, err := Encode(p)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindMalformedPlan))
}

func TestComputeID(t *testing.T) {
	a, err := ComputeID(samplePlan())
	require.NoError(t, err)

	parsed, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(5), parsed.Version())

	b, err := ComputeID(samplePlan())
	require.NoError(t, err)
	assert.Equal(t, a, b, "identical content yields identical ids")

	withVersion := samplePlan()
	withVersion.Version = ir.PlanVersion
	withVersion.ID = "ignored"
	c, err := ComputeID(withVersion)
	require.NoError(t, err)
	assert.Equal(t, a, c, "version and id do not contribute")

	leftWins := samplePlan()
	leftWins.Policy = LeftWins
	d, err := ComputeID(leftWins)
	require.NoError(t, err)
	assert.NotEqual(t, a, d)

	unset := samplePlan()
	unset.Policy = ""
	e, err := ComputeID(unset)
	require.NoError(t, err)
	assert.Equal(t, a, e, "an unset policy hashes as the default")
}

func TestDecodeMinimalPlan(t *testing.T) {
	p, err := Decode([]byte(`{"keys": ["id"], "entries": [{"type": "right_only", "right": {"id": 1}}]}`))
	require.NoError(t, err)

	assert.Equal(t, "", p.ID)
	assert.Equal(t, Policy(""), p.Policy)
	assert.Equal(t, RightWins, p.EffectivePolicy())
	require.Len(t, p.Entries, 1)
	assert.Nil(t, p.Entries[0].Left)
	assert.Equal(t, []string{}, p.Entries[0].Conflicts)
}

func TestDecodeIgnoresUnknownMembers(t *testing.T) {
	_, err := Decode([]byte(`{"keys": ["id"], "entries": [{"type": "left_only", "left": {}, "note": "x"}], "generator": "hand"}`))
	require.NoError(t, err)
}

func TestDecodeDuplicateRecordMembers(t *testing.T) {
	p, err := Decode([]byte(`{"keys": ["id"], "entries": [{"type": "left_only", "left": {"id": 1, "x": 1, "x": 2}}]}`))
	require.NoError(t, err)

	require.Len(t, p.Entries, 1)
	assert.Equal(t, []string{"id", "x"}, p.Entries[0].Left.Keys())
	x, _ := p.Entries[0].Left.Get("x")
	assert.Equal(t, ir.Number("2"), x)
}

func TestDecodeHugeExponentRecords(t *testing.T) {
	p := &Plan{
		Keys: []string{"id"},
		Entries: []Entry{
			{Type: LeftOnly, Left: ir.ObjectOf(ir.O("id", ir.Number("1e1000001"))), Conflicts: []string{}},
			{Type: RightOnly, Right: ir.ObjectOf(ir.O("id", ir.Number("1e-999999"))), Conflicts: []string{}},
		},
	}
	text, err := Encode(p)
	require.NoError(t, err)

	got, err := Decode(text)
	require.NoError(t, err)
	if diff := cmp.Diff(p.Entries, got.Entries, recordComparer); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeConcurrent(t *testing.T) {
	text, err := Encode(samplePlan())
	require.NoError(t, err)

	var g errgroup.Group
	for range 16 {
		g.Go(func() error {
			_, err := Decode(text)
			return err
		})
	}
	require.NoError(t, g.Wait())
}

func BenchmarkDecode(b *testing.B) {
	p := &Plan{Keys: []string{"id"}, Policy: RightWins}
	for i := range 2000 {
		rec := ir.ObjectOf(ir.O("id", ir.Int(int64(i))), ir.O("v", ir.String("x")))
		p.Entries = append(p.Entries, Entry{Type: LeftOnly, Left: rec, Conflicts: []string{}})
	}
	text, err := Encode(p)
	require.NoError(b, err)

	b.ResetTimer()
	for range b.N {
		if _, err := Decode(text); err != nil {
			b.Fatal(err)
		}
	}
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantMsg string
	}{
		{"empty", ``, "not valid JSON"},
		{"truncated", `{"keys": ["id"], "entries": [`, "not valid JSON"},
		{"invalid utf-8", "{\"keys\": [\"id\"], \"entries\": [{\"type\": \"left_only\", \"left\": {\"id\": \"\xff\"}}]}", "not valid JSON"},
		{"trailing data", `{"keys": ["id"], "entries": []} {}`, "not valid JSON"},
		{"array root", `[]`, "schema"},
		{"keys not strings", `{"keys": [1], "entries": []}`, "schema"},
		{"empty keys", `{"keys": [], "entries": []}`, "schema"},
		{"empty key name", `{"keys": [""], "entries": []}`, "schema"},
		{"missing keys", `{"entries": []}`, "keys"},
		{"missing entries", `{"keys": ["id"]}`, "entries"},
		{"entries not array", `{"keys": ["id"], "entries": {}}`, "schema"},
		{"unknown entry type", `{"keys": ["id"], "entries": [{"type": "both"}]}`, "schema"},
		{"record not object", `{"keys": ["id"], "entries": [{"type": "left_only", "left": [1]}]}`, "schema"},
		{"unknown policy", `{"keys": ["id"], "policy": "newest", "entries": []}`, "schema"},
		{"unsupported version", `{"version": "2", "keys": ["id"], "entries": []}`, "schema"},
		{"matched missing side", `{"keys": ["id"], "entries": [{"type": "matched", "left": {"id": 1}, "right": null}]}`, "matched entry requires"},
		{"left_only with right", `{"keys": ["id"], "entries": [{"type": "left_only", "left": {}, "right": {}}]}`, "left_only entry requires"},
		{"conflicts on unmatched", `{"keys": ["id"], "entries": [{"type": "right_only", "right": {"v": 1}, "conflicts": ["v"]}]}`, "cannot record conflicts"},
		{"conflict not shared", `{"keys": ["id"], "entries": [{"type": "matched", "left": {"v": 1}, "right": {}, "conflicts": ["v"]}]}`, "not present in both"},
		{"id mismatch", `{"id": "6ba7b811-9dad-51d1-80b4-00c04fd430c8", "keys": ["id"], "entries": []}`, "does not match content"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Decode([]byte(tt.text))
			require.Error(t, err)
			assert.Nil(t, p)
			assert.True(t, IsKind(err, KindMalformedPlan), "got %v", err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestDecodeDetectsTampering(t *testing.T) {
	text, err := Encode(samplePlan())
	require.NoError(t, err)

	tampered := strings.Replace(string(text), `"v": "b"`, `"v": "c"`, 1)
	require.NotEqual(t, string(text), tampered)

	_, err = Decode([]byte(tampered))
	require.Error(t, err)
	assert.True(t, IsKind(err, KindMalformedPlan))
	assert.Contains(t, err.Error(), "does not match content")
}
