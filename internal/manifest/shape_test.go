package manifest

import "testing"

func TestParseShape(t *testing.T) {
	cases := []struct {
		in   string
		want shapeLit
	}{
		{"Object", shapeLit{Name: "Object"}},
		{"*Node", shapeLit{Pointer: true, Name: "Node"}},
		{"?*Node", shapeLit{Optional: true, Pointer: true, Name: "Node"}},
		{"*const Node", shapeLit{Pointer: true, ReadOnly: true, Name: "Node"}},
		{"?*const Node", shapeLit{Optional: true, Pointer: true, ReadOnly: true, Name: "Node"}},
		{"?Node", shapeLit{Optional: true, Name: "Node"}},
		{"const Node", shapeLit{ReadOnly: true, Name: "Node"}},
		{"  *Node  ", shapeLit{Pointer: true, Name: "Node"}},
	}
	for _, tc := range cases {
		got, err := parseShape(tc.in)
		if err != nil {
			t.Fatalf("parseShape(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("parseShape(%q): expected %+v, got %+v", tc.in, tc.want, got)
		}
	}
}

func TestParseShapeErrors(t *testing.T) {
	cases := []string{
		"",
		"   ",
		"?",
		"*",
		"?*",
		"const",
		"*const",
		"?*const",
		"*node",
		"*Node Extra",
		"**Node",
		"*?Node",
	}
	for _, in := range cases {
		if _, err := parseShape(in); err == nil {
			t.Fatalf("parseShape(%q): expected an error", in)
		}
	}
}
