package assistant

import (
	"html/template"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// TokenKind tags a Token.
type TokenKind int

const (
	Text TokenKind = iota
	Bold
	InlineCode
	CodeBlock
)

func (k TokenKind) String() string {
	switch k {
	case Bold:
		return "bold"
	case InlineCode:
		return "inline_code"
	case CodeBlock:
		return "code_block"
	default:
		return "text"
	}
}

// Token is one span of a model reply. Language is set only for code
// blocks and may be empty.
type Token struct {
	Kind     TokenKind `json:"kind"`
	Text     string    `json:"text"`
	Language string    `json:"language,omitempty"`
}

// Tokenize splits a reply into plain text, **bold**, `inline code` and
// fenced code blocks. A fence is three backticks, an optional language
// word and a newline; it runs to the next three backticks. Bold and inline
// code do not span lines. Markers without a partner are kept as text.
func Tokenize(s string) []Token {
	var toks []Token
	var text strings.Builder
	flush := func() {
		if text.Len() > 0 {
			toks = append(toks, Token{Kind: Text, Text: text.String()})
			text.Reset()
		}
	}

	for i := 0; i < len(s); {
		rest := s[i:]
		switch {
		case strings.HasPrefix(rest, "```"):
			if tok, n, ok := fence(rest); ok {
				flush()
				toks = append(toks, tok)
				i += n
				continue
			}
		case strings.HasPrefix(rest, "**"):
			if end := closing(rest[2:], "**"); end > 0 {
				flush()
				toks = append(toks, Token{Kind: Bold, Text: rest[2 : 2+end]})
				i += 2 + end + 2
				continue
			}
		case rest[0] == '`':
			if end := closing(rest[1:], "`"); end > 0 {
				flush()
				toks = append(toks, Token{Kind: InlineCode, Text: rest[1 : 1+end]})
				i += 1 + end + 1
				continue
			}
		}
		text.WriteByte(s[i])
		i++
	}
	flush()
	return toks
}

// closing returns the offset of marker in s, or -1 when a newline or the
// end of s comes first.
func closing(s, marker string) int {
	line := s
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		line = s[:nl]
	}
	return strings.Index(line, marker)
}

// fence parses a code block at the start of s and returns it with the
// number of bytes consumed.
func fence(s string) (Token, int, bool) {
	body := s[3:]
	nl := strings.IndexByte(body, '\n')
	if nl < 0 {
		return Token{}, 0, false
	}
	lang := body[:nl]
	if !isWord(lang) {
		return Token{}, 0, false
	}
	code := body[nl+1:]
	end := strings.Index(code, "```")
	if end < 0 {
		return Token{}, 0, false
	}
	tok := Token{
		Kind:     CodeBlock,
		Text:     strings.TrimSuffix(code[:end], "\n"),
		Language: lang,
	}
	return tok, 3 + nl + 1 + end + 3, true
}

func isWord(s string) bool {
	for _, r := range s {
		if !(r == '_' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			return false
		}
	}
	return true
}

// RenderTokens renders tokens as HTML. Text is escaped with line breaks
// kept; code blocks are highlighted when their language is known.
func RenderTokens(toks []Token) template.HTML {
	var b strings.Builder
	for _, t := range toks {
		switch t.Kind {
		case Bold:
			b.WriteString("<strong>")
			b.WriteString(template.HTMLEscapeString(t.Text))
			b.WriteString("</strong>")
		case InlineCode:
			b.WriteString("<code>")
			b.WriteString(template.HTMLEscapeString(t.Text))
			b.WriteString("</code>")
		case CodeBlock:
			b.WriteString(renderCode(t))
		default:
			b.WriteString(strings.ReplaceAll(template.HTMLEscapeString(t.Text), "\n", "<br>"))
		}
	}
	return template.HTML(b.String())
}

// Render tokenizes and renders s.
func Render(s string) template.HTML {
	return RenderTokens(Tokenize(s))
}

var codeFormatter = chromahtml.New(chromahtml.WithClasses(false))

func renderCode(t Token) string {
	plain := `<pre><code class="language-` + template.HTMLEscapeString(t.Language) + `">` +
		template.HTMLEscapeString(t.Text) + `</code></pre>`

	lexer := lexers.Get(t.Language)
	if t.Language == "" || lexer == nil {
		return plain
	}
	it, err := chroma.Coalesce(lexer).Tokenise(nil, t.Text)
	if err != nil {
		return plain
	}
	var b strings.Builder
	if err := codeFormatter.Format(&b, styles.Get("github"), it); err != nil {
		return plain
	}
	return b.String()
}
