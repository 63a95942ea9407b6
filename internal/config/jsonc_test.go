package config

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeJSONCStripsCommentsAndTrailingCommas(t *testing.T) {
	input := `
{
  // crf is the x264 quality
  "crf": "13",
  "model_list": "tiny,base", /* smallest first */
  "nested": {
    "vad": true,
  },
}
`

	normalized, err := normalizeJSONC(input)
	require.NoError(t, err)
	require.NotContains(t, normalized, "//")
	require.NotContains(t, normalized, "/*")
	require.Len(t, normalized, len(input))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(normalized), &decoded))
	require.Equal(t, "13", decoded["crf"])
	require.Equal(t, "tiny,base", decoded["model_list"])
	require.Equal(t, map[string]any{"vad": true}, decoded["nested"])
}

func TestNormalizeJSONCKeepsCommentMarkersInsideStrings(t *testing.T) {
	normalized, err := normalizeJSONC(`{"chatgpt_api":"http://127.0.0.1:8000/v1 /* proxy */",}`)
	require.NoError(t, err)
	require.Contains(t, normalized, "http://127.0.0.1:8000/v1 /* proxy */")
}

func TestNormalizeJSONCRejectsUnterminatedBlockComment(t *testing.T) {
	_, err := normalizeJSONC(`{"lang": "en" /* open`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unterminated block comment")
}

func TestEnsureSingleJSONValueRejectsTrailingDocument(t *testing.T) {
	decoder := json.NewDecoder(strings.NewReader(`{"crf":13}{"crf":14}`))
	var payload map[string]any
	require.NoError(t, decoder.Decode(&payload))
	require.ErrorContains(t, ensureSingleJSONValue(decoder), "multiple JSON values")
}

func TestOffsetToLineColClampsPastEnd(t *testing.T) {
	content := "{\n  \"crf\": x\n}"

	line, col := offsetToLineCol(content, 1)
	require.Equal(t, 1, line)
	require.Equal(t, 1, col)

	line, col = offsetToLineCol(content, 5)
	require.Equal(t, 2, line)
	require.Equal(t, 3, col)

	line, col = offsetToLineCol(content, 500)
	require.Equal(t, 3, line)
	require.Equal(t, 1, col)
}

func TestDecodeObjectTreatsBlankContentAsEmpty(t *testing.T) {
	payload, err := decodeObject(" \n\t ")
	require.NoError(t, err)
	require.Empty(t, payload)
}

func TestDecodeObjectKeepsRawValues(t *testing.T) {
	payload, err := decodeObject(`{"crf": "13", "vad": true, /* note */ "list": [1,2],}`)
	require.NoError(t, err)
	require.JSONEq(t, `"13"`, string(payload["crf"]))
	require.JSONEq(t, `true`, string(payload["vad"]))
	require.JSONEq(t, `[1,2]`, string(payload["list"]))
}

func TestDecodeObjectRejectsNonObjectDocuments(t *testing.T) {
	_, err := decodeObject(`null`)
	require.ErrorContains(t, err, "must be an object")

	_, err = decodeObject(`["crf"]`)
	require.Error(t, err)

	_, err = decodeObject(`{"crf": 13} {"crf": 14}`)
	require.ErrorContains(t, err, "multiple JSON values")
}

func TestDecodeObjectReportsLocation(t *testing.T) {
	_, err := decodeObject("{\n  \"crf\": 13\n  \"vad\": true\n}")
	require.Error(t, err)
	require.Contains(t, err.Error(), "line 3")
}

func TestNormalizeJSONCDropsCommaBeforeCommentedClose(t *testing.T) {
	payload, err := decodeObject("{\"lang\": \"en\", // last\n}")
	require.NoError(t, err)
	require.JSONEq(t, `"en"`, string(payload["lang"]))

	normalized, err := normalizeJSONC(`{"list": ["a,]", "b",]}`)
	require.NoError(t, err)
	require.Equal(t, `{"list": ["a,]", "b" ]}`, normalized)
}
