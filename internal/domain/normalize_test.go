package domain

import "testing"

func TestNormalizeText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "trim spaces", input: "  porcini  ", want: "porcini"},
		{name: "lowercase", input: "Boletus Edulis", want: "boletus edulis"},
		{name: "collapse spaces", input: "fly   agaric", want: "fly agaric"},
		{name: "newlines and tabs", input: "200g\tchanterelles\n1 onion", want: "200g chanterelles 1 onion"},
		{name: "diacritics preserved", input: "Cèpe", want: "cèpe"},
		{name: "hyphens preserved", input: "Hen-of-the-woods", want: "hen-of-the-woods"},
		{name: "apostrophes preserved", input: "Jew's ear", want: "jew's ear"},
		{name: "empty string", input: "", want: ""},
		{name: "only whitespace", input: " \t\n ", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := NormalizeText(tt.input); got != tt.want {
				t.Errorf("NormalizeText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestContainsPhrase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		text   string
		phrase string
		want   bool
	}{
		{name: "exact word", text: "300g chanterelle, butter", phrase: "Chanterelle", want: true},
		{name: "multi word across newline", text: "fresh Fly\nAgaric (do not eat)", phrase: "fly agaric", want: true},
		{name: "prefix of longer word", text: "ceps and onions", phrase: "cep", want: false},
		{name: "suffix of longer word", text: "supermorel", phrase: "morel", want: false},
		{name: "second occurrence matches", text: "morels, one morel", phrase: "morel", want: true},
		{name: "punctuation boundary", text: "(porcini)", phrase: "porcini", want: true},
		{name: "at start", text: "Porcini risotto", phrase: "porcini", want: true},
		{name: "missing", text: "potatoes, cream", phrase: "porcini", want: false},
		{name: "empty phrase", text: "anything", phrase: "  ", want: false},
		{name: "non-latin", text: "белый гриб и лук", phrase: "Белый гриб", want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ContainsPhrase(tt.text, tt.phrase); got != tt.want {
				t.Errorf("ContainsPhrase(%q, %q) = %v, want %v", tt.text, tt.phrase, got, tt.want)
			}
		})
	}
}
