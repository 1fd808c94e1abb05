package css

import (
	"io"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// token is lexer token with absolute byte offset into source. Lexer returns
// every byte of the input as part of some token, so offsets are running sums.
type token struct {
	tt   css.TokenType
	data string
	pos  int
}

func (t token) end() int {
	return t.pos + len(t.data)
}

func (t token) span() Span {
	return Span{t.pos, t.end()}
}

func (t token) trivia() bool {
	return t.tt == css.WhitespaceToken || t.tt == css.CommentToken
}

func (t token) delim(s string) bool {
	return t.tt == css.DelimToken && t.data == s
}

func (t token) ident() bool {
	return t.tt == css.IdentToken || t.tt == css.CustomPropertyNameToken
}

// tokenize lexes text located at base offset of the stylesheet source.
func (s *Stylesheet) tokenize(text string, base int) ([]token, error) {
	l := css.NewLexer(parse.NewInputString(text))

	var (
		toks []token
		pos  int
	)
	for {
		tt, data := l.Next()
		if tt == css.ErrorToken {
			if err := l.Err(); err != nil && err != io.EOF {
				return nil, s.errorAt(Span{base + pos, base + pos + 1}, "unable to tokenize", err)
			}
			if pos < len(text) {
				return nil, s.errorAt(Span{base + pos, base + pos + 1}, "unexpected character", nil)
			}
			return toks, nil
		}
		toks = append(toks, token{tt: tt, data: string(data), pos: base + pos})
		pos += len(data)
	}
}

// byteOrderMark may lead the source. It is not part of the stylesheet.
const byteOrderMark = "\ufeff"

// blankByteOrderMark replaces leading byte order mark with spaces keeping
// byte offsets intact.
func blankByteOrderMark(src string) string {
	if !strings.HasPrefix(src, byteOrderMark) {
		return src
	}
	return strings.Repeat(" ", len(byteOrderMark)) + src[len(byteOrderMark):]
}

// StripByteOrderMark removes leading byte order mark, if any.
func StripByteOrderMark(src string) string {
	return strings.TrimPrefix(src, byteOrderMark)
}

// blankLineComments replaces "//" comments with spaces keeping byte offsets
// intact. Strings, block comments and url() are left alone.
func blankLineComments(src string) string {
	if !strings.Contains(src, "//") {
		return src
	}

	b := []byte(src)
	for i := 0; i < len(b); i++ {
		switch c := b[i]; {
		case c == '\\':
			i++
		case c == '"' || c == '\'':
			for i++; i < len(b) && b[i] != c && b[i] != '\n'; i++ {
				if b[i] == '\\' {
					i++
				}
			}
		case c == '/' && i+1 < len(b) && b[i+1] == '*':
			end := strings.Index(src[i+2:], "*/")
			if end < 0 {
				return string(b)
			}
			i += end + 3
		case c == '/' && i+1 < len(b) && b[i+1] == '/':
			for ; i < len(b) && b[i] != '\n'; i++ {
				if b[i] != '\r' {
					b[i] = ' '
				}
			}
		case (c == 'u' || c == 'U') && (i == 0 || !isNameByte(b[i-1])) && len(src)-i >= 4 && strings.EqualFold(src[i:i+4], "url("):
			end := strings.IndexByte(src[i:], ')')
			if end < 0 {
				return string(b)
			}
			i += end
		}
	}
	return string(b)
}

func isNameByte(c byte) bool {
	return c == '-' || c == '_' || c >= 0x80 ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

// matchClosing returns index of the token closing the group opened at toks[open].
// Function tokens are closed by right parenthesis.
func matchClosing(toks []token, open int) int {
	depth := 0
	for i := open; i < len(toks); i++ {
		switch toks[i].tt {
		case css.LeftParenthesisToken, css.FunctionToken, css.LeftBracketToken, css.LeftBraceToken:
			depth++
		case css.RightParenthesisToken, css.RightBracketToken, css.RightBraceToken:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// interpolation reports whether "#{" starts at toks[i].
func interpolation(toks []token, i int) bool {
	return toks[i].delim("#") && i+1 < len(toks) && toks[i+1].tt == css.LeftBraceToken
}
