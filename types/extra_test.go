package types

import (
	"encoding/json"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type message struct {
	ID      int     `json:"id"`
	Content *string `json:"content,omitempty"`
}

func TestUnmarshalWithExtra_KeepsUnknownMembersInOrder(t *testing.T) {
	t.Parallel()
	var m message
	extra, err := UnmarshalWithExtra([]byte(`{"zeta":1,"id":7,"alpha":{"x":[1,2]},"content":"hi","mid":null}`), &m, "id", "content")
	require.NoError(t, err)

	assert.Equal(t, 7, m.ID)
	require.NotNil(t, m.Content)
	assert.Equal(t, "hi", *m.Content)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, extra.Keys())

	raw, ok := extra.Get("alpha")
	require.True(t, ok)
	assert.JSONEq(t, `{"x":[1,2]}`, string(raw))

	var zeta int
	require.NoError(t, extra.Decode("zeta", &zeta))
	assert.Equal(t, 1, zeta)
	assert.Error(t, extra.Decode("missing", &zeta))
}

func TestMarshalWithExtra_MergesBag(t *testing.T) {
	t.Parallel()
	var extra Extra
	require.NoError(t, extra.Set("thread_id", 12))
	require.NoError(t, extra.Set("id", 99))
	require.NoError(t, extra.Set("tags", []string{"a"}))

	out, err := MarshalWithExtra(message{ID: 1}, extra)
	require.NoError(t, err)
	assert.Equal(t, `{"id":1,"thread_id":12,"tags":["a"]}`, string(out), "declared fields win and keep their position")
}

func TestMarshalWithExtra_EmptyBag(t *testing.T) {
	t.Parallel()
	out, err := MarshalWithExtra(message{ID: 3}, Extra{})
	require.NoError(t, err)
	assert.Equal(t, `{"id":3}`, string(out))
}

func TestExtra_SetKeepsPositionAndDelete(t *testing.T) {
	t.Parallel()
	var extra Extra
	require.NoError(t, extra.Set("a", 1))
	require.NoError(t, extra.Set("b", 2))
	require.NoError(t, extra.Set("a", 3))
	assert.Equal(t, []string{"a", "b"}, extra.Keys())

	extra.Delete("a")
	extra.Delete("nope")
	assert.Equal(t, []string{"b"}, extra.Keys())
	assert.Equal(t, 1, extra.Len())
}

func TestUnmarshalWithExtra_RejectsNonObjects(t *testing.T) {
	t.Parallel()
	var v []int
	_, err := UnmarshalWithExtra([]byte(`[1,2]`), &v)
	assert.Error(t, err)

	var m message
	extra, err := UnmarshalWithExtra([]byte(`null`), &m)
	require.NoError(t, err)
	assert.Equal(t, 0, extra.Len())
}

func TestPtrAndResponse(t *testing.T) {
	t.Parallel()
	p := Ptr(25)
	assert.Equal(t, 25, *p)

	r := Response[*message]{StatusCode: 200, Content: []byte(`{"id":1}`)}
	require.NoError(t, json.Unmarshal(r.Content, &r.Parsed))
	assert.Equal(t, 1, r.Parsed.ID)
}

type task struct {
	ID   int    `json:"id"`
	Kind string `json:"kind"`

	AdditionalProperties Extra `json:"-"`
}

func (m task) MarshalJSON() ([]byte, error) {
	type plain task
	return MarshalWithExtra(plain(m), m.AdditionalProperties)
}

func (m *task) UnmarshalJSON(data []byte) error {
	type plain task
	var p plain
	extra, err := UnmarshalWithExtra(data, &p, "id", "kind")
	if err != nil {
		return err
	}
	*m = task(p)
	m.AdditionalProperties = extra
	return nil
}

func TestModelRoundTrip_KnownAndUnknownMembers(t *testing.T) {
	t.Parallel()
	var m task
	require.NotPanics(t, func() {
		require.NoError(t, json.Unmarshal([]byte(`{"id":1,"priority":3,"kind":"call","done_at":null}`), &m))
	})
	assert.Equal(t, 1, m.ID)
	assert.Equal(t, "call", m.Kind)
	assert.Equal(t, []string{"priority", "done_at"}, m.AdditionalProperties.Keys())

	out, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `{"id":1,"kind":"call","priority":3,"done_at":null}`, string(out))
}

func TestFile_JSON(t *testing.T) {
	t.Parallel()
	out, err := json.Marshal(struct {
		Avatar *File `json:"avatar"`
	}{Avatar: &File{Name: "a.png"}})
	require.NoError(t, err)
	assert.Equal(t, `{"avatar":null}`, string(out))

	var in struct {
		Avatar File `json:"avatar"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"avatar":"bytes"}`), &in))
	require.NotNil(t, in.Avatar.Content)
	data, err := io.ReadAll(in.Avatar.Content)
	require.NoError(t, err)
	assert.Equal(t, "bytes", string(data))
}
