package token

import "testing"

func TestCreate(t *testing.T) {
	tests := []struct {
		name      string
		tokenType TokenType
		lexeme    string
		want      Token
	}{
		{
			name:      "create ASSIGN token",
			tokenType: ASSIGN,
			lexeme:    "=",
			want:      Token{TokenType: ASSIGN, Lexeme: "=", Line: 1, Column: 3},
		},
		{
			name:      "create IDENTIFIER token",
			tokenType: IDENTIFIER,
			lexeme:    "myVar",
			want:      Token{TokenType: IDENTIFIER, Lexeme: "myVar", Line: 1, Column: 3},
		},
		{
			name:      "create NUMBER token",
			tokenType: NUMBER,
			lexeme:    "42",
			want:      Token{TokenType: NUMBER, Lexeme: "42", Line: 1, Column: 3},
		},
		{
			name:      "create MULT token",
			tokenType: MULT,
			lexeme:    "*",
			want:      Token{TokenType: MULT, Lexeme: "*", Line: 1, Column: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Create(tt.tokenType, tt.lexeme, 1, 3)
			if got != tt.want {
				t.Errorf("Create() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKeyWordsCoverSpecKeywords(t *testing.T) {
	want := []string{"and", "class", "else", "false", "for", "fun", "if", "nil", "or", "print", "return", "super", "this", "true", "var", "while"}
	for _, kw := range want {
		if _, ok := KeyWords[kw]; !ok {
			t.Errorf("KeyWords missing entry for %q", kw)
		}
	}
}
