package models

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestRichContentFrom(t *testing.T) {
	t.Run("blocks", func(t *testing.T) {
		c := RichContentFrom(gjson.Parse(`[{"type":"paragraph","children":[{"type":"text","text":"hi","bold":true}]}]`))
		require.Len(t, c.Blocks, 1)
		assert.Nil(t, c.Text)
		assert.Equal(t, BlockParagraph, c.Blocks[0].Type)
		require.Len(t, c.Blocks[0].Children, 1)
		assert.True(t, c.Blocks[0].Children[0].Bold)
	})

	t.Run("empty array stays blocks", func(t *testing.T) {
		c := RichContentFrom(gjson.Parse(`[]`))
		assert.NotNil(t, c.Blocks)
		assert.False(t, c.IsZero())
	})

	t.Run("legacy string", func(t *testing.T) {
		c := RichContentFrom(gjson.Parse(`"**Title**"`))
		require.NotNil(t, c.Text)
		assert.Equal(t, "**Title**", *c.Text)
	})

	t.Run("other values pass through", func(t *testing.T) {
		for _, raw := range []string{`42`, `{"root":{"type":"doc"}}`, `[1,2]`, `true`} {
			c := RichContentFrom(gjson.Parse(raw))
			assert.False(t, c.IsZero(), raw)
			assert.Nil(t, c.Blocks, raw)
			assert.Nil(t, c.Text, raw)
			assert.JSONEq(t, raw, string(c.Raw), raw)
		}
	})

	t.Run("null is absent", func(t *testing.T) {
		assert.True(t, RichContentFrom(gjson.Parse(`null`)).IsZero())
	})

	t.Run("missing is absent", func(t *testing.T) {
		assert.True(t, RichContentFrom(gjson.Get(`{}`, "body")).IsZero())
	})
}

func TestRichContent_JSON(t *testing.T) {
	out, err := json.Marshal(struct {
		A RichContent `json:"a"`
		B RichContent `json:"b"`
		C RichContent `json:"c"`
		D RichContent `json:"d"`
	}{
		A: TextContent("x"),
		B: RichContent{Blocks: []Block{{Type: BlockText, Text: "y"}}},
		D: RichContent{Raw: json.RawMessage(`{"k":1}`)},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"x","b":[{"type":"text","text":"y"}],"c":null,"d":{"k":1}}`, string(out))

	var back struct {
		A RichContent `json:"a"`
		B RichContent `json:"b"`
		C RichContent `json:"c"`
		D RichContent `json:"d"`
	}
	require.NoError(t, json.Unmarshal(out, &back))
	require.NotNil(t, back.A.Text)
	assert.Equal(t, "x", *back.A.Text)
	require.Len(t, back.B.Blocks, 1)
	assert.True(t, back.C.IsZero())
	assert.JSONEq(t, `{"k":1}`, string(back.D.Raw))
}
