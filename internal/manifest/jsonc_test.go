package manifest

import (
	"encoding/json"
	"testing"
)

func TestStripComments(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "line comment",
			in:   "{\"a\": 1} // trailing\n",
			want: "{\"a\": 1}             \n",
		},
		{
			name: "block comment",
			in:   "{/* gone */\"a\": 1}",
			want: "{           \"a\": 1}",
		},
		{
			name: "block comment spanning lines keeps newlines",
			in:   "{/* one\ntwo */\"a\": 1}",
			want: "{      \n      \"a\": 1}",
		},
		{
			name: "double slash inside string preserved",
			in:   `{"url": "https://example.com//path"}`,
			want: `{"url": "https://example.com//path"}`,
		},
		{
			name: "block opener inside string preserved",
			in:   `{"glob": "src/*.go"}`,
			want: `{"glob": "src/*.go"}`,
		},
		{
			name: "escaped quote does not end string",
			in:   `{"a": "say \"hi\" // not a comment"}`,
			want: `{"a": "say \"hi\" // not a comment"}`,
		},
		{
			name: "comment after string value",
			in:   "{\"a\": \"b//c\"} // real comment",
			want: "{\"a\": \"b//c\"}                 ",
		},
		{
			name: "no comments unchanged",
			in:   `{"a": [1, 2, 3]}`,
			want: `{"a": [1, 2, 3]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(StripComments([]byte(tt.in)))
			if got != tt.want {
				t.Errorf("StripComments(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// Stripping replaces comment bytes with spaces, so offsets into the stripped
// text must line up with the original file.
func TestStripComments_PreservesLength(t *testing.T) {
	in := "{\n  // comment\n  \"a\": /* inline */ 1\n}\n"
	got := StripComments([]byte(in))
	if len(got) != len(in) {
		t.Errorf("stripped length = %d, want %d", len(got), len(in))
	}
}

// Round-trip property: strip then parse must leave string values containing
// comment markers intact while removing actual comments.
func TestStripComments_RoundTrip(t *testing.T) {
	in := `{
	  // leading comment
	  "url": "https://github.com/acme/tool.git",
	  "glob": "/*every*/file",
	  /* block
	     comment */
	  "note": "a // b"
	}`

	var got map[string]string
	if err := json.Unmarshal(StripComments([]byte(in)), &got); err != nil {
		t.Fatalf("unmarshal stripped JSON: %v", err)
	}

	want := map[string]string{
		"url":  "https://github.com/acme/tool.git",
		"glob": "/*every*/file",
		"note": "a // b",
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("field %q = %q, want %q", k, got[k], v)
		}
	}
	if len(got) != len(want) {
		t.Errorf("field count = %d, want %d", len(got), len(want))
	}
}
