package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumen/token"
)

func scanAll(t *testing.T, source string) []token.Token {
	t.Helper()
	s := New(source)
	var tokens []token.Token
	for {
		tok := s.Next()
		tokens = append(tokens, tok)
		if tok.TokenType == token.EOF {
			break
		}
	}
	return tokens
}

func kinds(tokens []token.Token) []token.TokenType {
	out := make([]token.TokenType, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.TokenType
	}
	return out
}

func TestOperators(t *testing.T) {
	tokens := scanAll(t, "==/=*+>-<!=<=>=!")
	assert.Equal(t, []token.TokenType{
		token.EQUAL_EQUAL, token.DIV, token.ASSIGN, token.MULT, token.ADD,
		token.LARGER, token.SUB, token.LESS, token.NOT_EQUAL, token.LESS_EQUAL,
		token.LARGER_EQUAL, token.BANG, token.EOF,
	}, kinds(tokens))
}

func TestPunctuation(t *testing.T) {
	tokens := scanAll(t, "(){};,.")
	assert.Equal(t, []token.TokenType{
		token.LPA, token.RPA, token.LCUR, token.RCUR, token.SEMICOLON, token.COMMA, token.DOT, token.EOF,
	}, kinds(tokens))
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	tokens := scanAll(t, "var x = foo and bar")
	assert.Equal(t, []token.TokenType{
		token.VAR, token.IDENTIFIER, token.ASSIGN, token.IDENTIFIER, token.AND, token.IDENTIFIER, token.EOF,
	}, kinds(tokens))
}

func TestNumberLiterals(t *testing.T) {
	tokens := scanAll(t, "1 2.5 10")
	require.Len(t, tokens, 4)
	assert.Equal(t, "1", tokens[0].Lexeme)
	assert.Equal(t, "2.5", tokens[1].Lexeme)
	assert.Equal(t, "10", tokens[2].Lexeme)
}

func TestStringLiteral(t *testing.T) {
	tokens := scanAll(t, `"hello there"`)
	require.Len(t, tokens, 2)
	assert.Equal(t, token.STRING, tokens[0].TokenType)
	assert.Equal(t, `"hello there"`, tokens[0].Lexeme)
}

func TestUnterminatedStringProducesErrorToken(t *testing.T) {
	tokens := scanAll(t, `"unterminated`)
	require.Len(t, tokens, 2)
	assert.Equal(t, token.ERROR, tokens[0].TokenType)
	assert.Equal(t, "unterminated string", tokens[0].Lexeme)
}

func TestUnexpectedCharacterProducesErrorToken(t *testing.T) {
	tokens := scanAll(t, "@")
	require.Len(t, tokens, 2)
	assert.Equal(t, token.ERROR, tokens[0].TokenType)
	assert.Equal(t, "@", tokens[0].Lexeme)
}

func TestCommentsAreSkipped(t *testing.T) {
	tokens := scanAll(t, "1 // trailing comment\n2")
	require.Len(t, tokens, 3)
	assert.Equal(t, "1", tokens[0].Lexeme)
	assert.Equal(t, "2", tokens[1].Lexeme)
}

func TestLineTracking(t *testing.T) {
	tokens := scanAll(t, "1\n2\n3")
	require.Len(t, tokens, 4)
	assert.Equal(t, 1, tokens[0].Line)
	assert.Equal(t, 2, tokens[1].Line)
	assert.Equal(t, 3, tokens[2].Line)
}

func TestScannerIsNonRestartableAtEOF(t *testing.T) {
	s := New("1")
	first := s.Next()
	require.Equal(t, "1", first.Lexeme)
	for i := 0; i < 3; i++ {
		tok := s.Next()
		assert.Equal(t, token.EOF, tok.TokenType)
	}
}
