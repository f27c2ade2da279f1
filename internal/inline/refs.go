package inline

// Ref is one image or link reference found in text. Start and End are byte
// offsets of the full `![alt](url)` or `[text](url)` markup.
type Ref struct {
	Text  string
	URL   string
	Start int
	End   int
}

// ExtractImages returns every `![alt](url)` reference, left to right.
func ExtractImages(text string) []Ref {
	var refs []Ref
	for i := 0; i+1 < len(text); {
		if text[i] != '!' || text[i+1] != '[' {
			i++
			continue
		}
		ref, ok := matchRef(text, i+1)
		if !ok {
			i++
			continue
		}
		ref.Start = i
		refs = append(refs, ref)
		i = ref.End
	}
	return refs
}

// ExtractLinks returns every `[text](url)` reference that is not preceded by
// '!', left to right.
func ExtractLinks(text string) []Ref {
	var refs []Ref
	for i := 0; i < len(text); {
		if text[i] != '[' || (i > 0 && text[i-1] == '!') {
			i++
			continue
		}
		ref, ok := matchRef(text, i)
		if !ok {
			i++
			continue
		}
		refs = append(refs, ref)
		i = ref.End
	}
	return refs
}

// matchRef matches `[text](url)` starting at the '[' at open. text may not
// contain brackets and url may not contain parentheses.
func matchRef(s string, open int) (Ref, bool) {
	j := open + 1
	for j < len(s) && s[j] != '[' && s[j] != ']' {
		j++
	}
	if j+1 >= len(s) || s[j] != ']' || s[j+1] != '(' {
		return Ref{}, false
	}
	k := j + 2
	for k < len(s) && s[k] != '(' && s[k] != ')' {
		k++
	}
	if k >= len(s) || s[k] != ')' {
		return Ref{}, false
	}
	return Ref{
		Text:  s[open+1 : j],
		URL:   s[j+2 : k],
		Start: open,
		End:   k + 1,
	}, true
}

// SplitImages replaces image references inside Plain spans with Image spans.
func SplitImages(spans []Span) []Span {
	return splitRefs(spans, ExtractImages, ImageSpan)
}

// SplitLinks replaces link references inside Plain spans with Link spans.
func SplitLinks(spans []Span) []Span {
	return splitRefs(spans, ExtractLinks, LinkSpan)
}

// splitRefs emits Plain(prefix) before every match, even when the prefix is
// empty, and a trailing Plain span only when text remains after the last match.
func splitRefs(spans []Span, extract func(string) []Ref, build func(text, url string) Span) []Span {
	out := make([]Span, 0, len(spans))
	for _, s := range spans {
		if s.Kind != Plain {
			out = append(out, s)
			continue
		}
		refs := extract(s.Text)
		if len(refs) == 0 {
			out = append(out, s)
			continue
		}
		pos := 0
		for _, ref := range refs {
			out = append(out, PlainSpan(s.Text[pos:ref.Start]), build(ref.Text, ref.URL))
			pos = ref.End
		}
		if rest := s.Text[pos:]; rest != "" {
			out = append(out, PlainSpan(rest))
		}
	}
	return out
}
