package payload

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"msg string", `{"code":0,"msg":"商品A 昨日销量:5\n近7天销量汇总:120"}`, "商品A 昨日销量:5\n近7天销量汇总:120"},
		{"msg number", `{"msg": 42}`, "42"},
		{"msg object", `{"msg": {"a": 1}}`, `{"a": 1}`},
		{"msg null", `{"msg": null}`, ""},
		{"object without msg", `{"data":"x"}`, `{"data":"x"}`},
		{"json array", `["msg"]`, `["msg"]`},
		{"plain text", "商品A 昨日销量:5", "商品A 昨日销量:5"},
		{"malformed json", `{"msg": "unterminated`, `{"msg": "unterminated`},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractMessage(tt.body))
		})
	}
}
