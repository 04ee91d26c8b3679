package console

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// splitArgs splits a command line on whitespace. Single or double quotes
// group words, so `title="Jantar de gala"` is one argument.
func splitArgs(line string) ([]string, error) {
	var (
		args    []string
		cur     strings.Builder
		quote   rune
		inToken bool
	)
	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
				continue
			}
			cur.WriteRune(r)
		case r == '"' || r == '\'':
			quote = r
			inToken = true
		case r == ' ' || r == '\t':
			if inToken {
				args = append(args, cur.String())
				cur.Reset()
				inToken = false
			}
		default:
			cur.WriteRune(r)
			inToken = true
		}
	}
	if quote != 0 {
		return nil, errors.New("aspas não fechadas")
	}
	if inToken {
		args = append(args, cur.String())
	}
	return args, nil
}

// keyValues parses key=value arguments. Keys are case-insensitive and must
// be one of allowed.
func keyValues(args []string, allowed ...string) (map[string]string, error) {
	out := make(map[string]string, len(args))
	for _, a := range args {
		key, value, ok := strings.Cut(a, "=")
		if !ok {
			return nil, fmt.Errorf("argumento %q deve ter a forma chave=valor", a)
		}
		key = strings.ToLower(strings.TrimSpace(key))
		if !slices.Contains(allowed, key) {
			return nil, fmt.Errorf("campo desconhecido %q (use: %s)", key, strings.Join(allowed, ", "))
		}
		out[key] = value
	}
	return out, nil
}
