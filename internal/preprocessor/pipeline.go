package preprocessor

// Pipeline turns raw file text into statements: a coarse comment strip
// followed by context-aware tokenizing.
type Pipeline struct {
	commentStripper CommentStripper
	tokenizer       Tokenizer
}

// NewPipeline creates a new preprocessing pipeline.
func NewPipeline() *Pipeline {
	return &Pipeline{
		commentStripper: NewCommentStripper(),
		tokenizer:       NewTokenizer(),
	}
}

// Process strips comments from sql and splits the result into statements.
//
// The strip pass is blind to string literals, so a literal containing "--"
// loses the rest of its line before the tokenizer sees it. Line numbers in a
// returned MalformedCommentError refer to the stripped text, which keeps the
// original line count except where a block comment spanned lines.
func (p *Pipeline) Process(sql string) ([]string, error) {
	stripped := p.commentStripper.Strip(sql)
	return p.tokenizer.Tokenize(stripped)
}
