package tokenizer

import (
	"strings"

	"github.com/shapestone/shape-core/pkg/tokenizer"
)

// NewStartLineTokenizer creates a tokenizer for HTTP/1.1 request and status lines.
// Matchers, in priority order:
// 1. CRLF (line endings)
// 2. SP (word separator)
// 3. HTTP version string
// 4. Word (method, request-target, status code, reason words)
//
// Whitespace is significant, so the default whitespace skipper is not used.
func NewStartLineTokenizer() tokenizer.Tokenizer {
	return tokenizer.NewTokenizerWithoutWhitespace(
		CRLFMatcher(),
		SPMatcher(),
		VersionMatcher(),
		WordMatcher(),
	)
}

// StartLine tokenizes a request or status line and returns its words.
// At most n words are returned; the last one holds the rest of the line
// verbatim, so a reason phrase keeps its inner spaces.
func StartLine(line string, n int) []string {
	tok := NewStartLineTokenizer()
	tok.Initialize(line)
	tokens, _ := tok.Tokenize()

	var words []string
	var cur strings.Builder
	for _, t := range tokens {
		switch {
		case t.Kind() == TokenCRLF:
			// ignored
		case t.Kind() == TokenSP && len(words) < n-1:
			words = append(words, cur.String())
			cur.Reset()
		default:
			cur.WriteString(t.ValueString())
		}
	}
	return append(words, cur.String())
}

// FieldLine splits "name: value" into its name and value. The value has
// surrounding whitespace removed. ok is false if there is no colon or the
// name is empty.
func FieldLine(line string) (name, value string, ok bool) {
	stream := tokenizer.NewStream(line)

	nameTok := FieldNameMatcher()(stream)
	if nameTok == nil {
		return "", "", false
	}
	if tokenizer.StringMatcherFunc(TokenFieldColon, ":")(stream) == nil {
		return "", "", false
	}
	if valueTok := FieldValueMatcher()(stream); valueTok != nil {
		value = strings.Trim(valueTok.ValueString(), " \t")
	}
	return nameTok.ValueString(), value, true
}

// CRLFMatcher matches \r\n or bare \n.
func CRLFMatcher() tokenizer.Matcher {
	return func(stream tokenizer.Stream) *tokenizer.Token {
		r, ok := stream.PeekChar()
		if !ok {
			return nil
		}

		if r == '\r' {
			value := []rune{'\r'}
			stream.NextChar()
			if r2, ok := stream.PeekChar(); ok && r2 == '\n' {
				stream.NextChar()
				value = append(value, '\n')
			}
			return tokenizer.NewToken(TokenCRLF, value)
		}
		if r == '\n' {
			stream.NextChar()
			return tokenizer.NewToken(TokenCRLF, []rune{'\n'})
		}
		return nil
	}
}

// SPMatcher matches a single space character.
func SPMatcher() tokenizer.Matcher {
	return func(stream tokenizer.Stream) *tokenizer.Token {
		if r, ok := stream.PeekChar(); ok && r == ' ' {
			stream.NextChar()
			return tokenizer.NewToken(TokenSP, []rune{' '})
		}
		return nil
	}
}

// VersionMatcher matches "HTTP/" followed by digits and dots.
func VersionMatcher() tokenizer.Matcher {
	return func(stream tokenizer.Stream) *tokenizer.Token {
		var value []rune
		for _, expected := range "HTTP/" {
			r, ok := stream.PeekChar()
			if !ok || r != expected {
				return nil
			}
			stream.NextChar()
			value = append(value, r)
		}

		for {
			r, ok := stream.PeekChar()
			if !ok || !((r >= '0' && r <= '9') || r == '.') {
				break
			}
			stream.NextChar()
			value = append(value, r)
		}
		return tokenizer.NewToken(TokenVersion, value)
	}
}

// WordMatcher matches a run of characters up to SP, CR, LF or end of stream.
// Colons are part of a word so absolute-form targets stay whole.
func WordMatcher() tokenizer.Matcher {
	return runMatcher(TokenWord, func(r rune) bool {
		return r == ' ' || r == '\r' || r == '\n'
	})
}

// FieldNameMatcher matches a field name: everything up to the colon.
func FieldNameMatcher() tokenizer.Matcher {
	return runMatcher(TokenFieldName, func(r rune) bool {
		return r == ':' || r == '\r' || r == '\n'
	})
}

// FieldValueMatcher matches everything up to the line ending, colons included.
func FieldValueMatcher() tokenizer.Matcher {
	return runMatcher(TokenFieldValue, func(r rune) bool {
		return r == '\r' || r == '\n'
	})
}

// runMatcher builds a matcher for a non-empty run of runes ending before stop.
func runMatcher(kind string, stop func(rune) bool) tokenizer.Matcher {
	return func(stream tokenizer.Stream) *tokenizer.Token {
		var value []rune
		for {
			r, ok := stream.PeekChar()
			if !ok || stop(r) {
				break
			}
			stream.NextChar()
			value = append(value, r)
		}
		if len(value) == 0 {
			return nil
		}
		return tokenizer.NewToken(kind, value)
	}
}
