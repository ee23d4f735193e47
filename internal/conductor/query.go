package conductor

import "strings"

type queryParam struct {
	key   string
	value string
}

// query keeps parameters in insertion order. Values are not escaped, the
// server receives them as typed apart from the space substitution in Send.
type query []queryParam

func (q *query) add(key, value string) {
	*q = append(*q, queryParam{key: key, value: value})
}

func (q query) encode() string {
	if len(q) == 0 {
		return ""
	}
	parts := make([]string, len(q))
	for i, p := range q {
		parts[i] = p.key + "=" + p.value
	}
	return "?" + strings.Join(parts, "&")
}
