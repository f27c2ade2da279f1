package inline

// delimiterStages run before image and link extraction, in this order.
var delimiterStages = []struct {
	delim string
	kind  Kind
}{
	{"**", Bold},
	{"_", Italic},
	{"`", Code},
}

// Tokenize converts text into spans. The only failure is an
// *UnmatchedDelimiterError.
func Tokenize(text string) ([]Span, error) {
	spans := []Span{PlainSpan(text)}
	for _, stage := range delimiterStages {
		var err error
		spans, err = SplitDelimiter(spans, stage.delim, stage.kind)
		if err != nil {
			return nil, err
		}
	}
	spans = SplitImages(spans)
	return SplitLinks(spans), nil
}
