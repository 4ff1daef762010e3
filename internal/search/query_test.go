package search

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestSearchBodyShape(t *testing.T) {
	raw, err := json.Marshal(searchBody("jas"))
	require.NoError(t, err, "query body must marshal")

	body := string(raw)

	t.Log("fuzzy multi-field clause")
	{
		multiMatch := gjson.Get(body, "query.bool.should.0.multi_match")
		require.True(t, multiMatch.Exists(), "first should clause must be a multi_match")

		assert.Equal(t, "jas", multiMatch.Get("query").String())
		assert.Equal(t, "AUTO", multiMatch.Get("fuzziness").String(), "fuzziness must auto-scale with term length")
		assert.Equal(t, int64(1), multiMatch.Get("prefix_length").Int(), "first character must be anchored")

		fields := multiMatch.Get("fields").Array()
		require.Len(t, fields, 3)
		assert.Equal(t, "first_name", fields[0].String())
		assert.Equal(t, "last_name", fields[1].String())
		assert.Equal(t, "email", fields[2].String())
	}

	t.Log("infix wildcard clause")
	{
		wildcard := gjson.Get(body, "query.bool.should.1.wildcard.first_name")
		require.True(t, wildcard.Exists(), "second should clause must be a wildcard on first_name")

		assert.Equal(t, "*jas*", wildcard.Get("value").String())
		assert.True(t, wildcard.Get("case_insensitive").Bool())
	}

	t.Log("clauses combine with OR semantics")
	{
		assert.Equal(t, int64(1), gjson.Get(body, "query.bool.minimum_should_match").Int())
	}
}
