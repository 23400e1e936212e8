package classifier

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/voice-ledger/internal/command"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		intent command.Intent
		amount *float64
	}{
		{
			name:   "bare object",
			raw:    `{"intent":"SET_VALUE","category":"income","amount":25000,"confidence":0.95}`,
			intent: command.SetValue,
			amount: command.Float(25000),
		},
		{
			name:   "code fence",
			raw:    "```json\n{\"intent\":\"ADD_VALUE\",\"category\":\"expense\",\"amount\":300}\n```",
			intent: command.AddValue,
			amount: command.Float(300),
		},
		{
			name:   "surrounding commentary",
			raw:    "Here you go: {\"intent\":\"QUERY_ONLY\",\"category\":\"other\",\"amount\":null,\"response\":\"Looks {fine}.\"} Hope that helps!",
			intent: command.QueryOnly,
		},
		{
			name:   "amount as string",
			raw:    `{"intent":"add_value","category":"Expense","amount":"₹10,000"}`,
			intent: command.AddValue,
			amount: command.Float(10000),
		},
		{
			name:   "negative amount keeps magnitude",
			raw:    `{"intent":"SUBTRACT_VALUE","category":"expense","amount":-200}`,
			intent: command.SubtractValue,
			amount: command.Float(200),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := ParseCommand(tt.raw)
			require.NoError(t, err)

			assert.Equal(t, tt.intent, cmd.Intent)
			assert.Equal(t, tt.amount, cmd.Amount)
		})
	}
}

func TestParseCommand_LoanTerms(t *testing.T) {
	cmd, err := ParseCommand(`{"intent":"SIMULATE_LOAN","category":"loan","amount":500000,"rate":"8.5","tenure_months":36,"currency":"null"}`)
	require.NoError(t, err)

	require.NotNil(t, cmd.Rate)
	assert.Equal(t, 8.5, *cmd.Rate)
	require.NotNil(t, cmd.TenureMonths)
	assert.Equal(t, 36, *cmd.TenureMonths)
	assert.Nil(t, cmd.Currency)
}

func TestParseCommand_Failures(t *testing.T) {
	for name, raw := range map[string]string{
		"no object":        "I cannot help with that.",
		"unbalanced":       `{"intent":"ADD_VALUE"`,
		"unknown intent":   `{"intent":"MULTIPLY","category":"income"}`,
		"unknown category": `{"intent":"ADD_VALUE","category":"rent"}`,
		"bad confidence":   `{"intent":"ADD_VALUE","category":"income","confidence":7}`,
		"bad amount":       `{"intent":"ADD_VALUE","category":"income","amount":"lots"}`,
		"invalid json":     `{"intent": ADD_VALUE}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseCommand(raw)
			assert.Error(t, err)
		})
	}
}

func TestExtractObject_IgnoresBracesInStrings(t *testing.T) {
	got, err := extractObject(`noise {"a":"}{","b":{"c":1}} trailing {"x":2}`)
	require.NoError(t, err)
	assert.Equal(t, `{"a":"}{","b":{"c":1}}`, got)
}

func TestExtractObject_SkipsUnclosedBrace(t *testing.T) {
	got, err := extractObject(`Sure {here you go: {"intent":"QUERY_ONLY","category":"other"}`)
	require.NoError(t, err)
	assert.Equal(t, `{"intent":"QUERY_ONLY","category":"other"}`, got)
}

func TestStripFences(t *testing.T) {
	for name, tt := range map[string]struct{ raw, want string }{
		"json fence":     {"```json\n{\"a\":1}\n```", `{"a":1}`},
		"bare fence":     {"```\n{\"a\":1}\n```", `{"a":1}`},
		"single line":    {"```json {\"a\":1}```", `{"a":1}`},
		"prose around":   {"Here it is:\n```JSON\n{\"a\":1}\n```\nDone.", "Here it is:\n{\"a\":1}\nDone."},
		"backticks kept": {"```json\n{\"response\":\"use ```code``` here\"}\n```", `{"response":"use ` + "```code```" + ` here"}`},
	} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripFences(tt.raw))
		})
	}
}

func TestParseCommand_KeepsBackticksInResponse(t *testing.T) {
	cmd, err := ParseCommand("```json\n{\"intent\":\"QUERY_ONLY\",\"category\":\"other\",\"response\":\"type ```help```\"}\n```")
	require.NoError(t, err)
	assert.Equal(t, "type ```help```", cmd.Response)
}

func TestBuildCommandPrompt(t *testing.T) {
	fc := &FinancialContext{
		Income:      40000,
		Expenses:    12000,
		SavingsRate: 70,
		HealthScore: 81,
		Recent: []RecentTransaction{
			{Kind: "expense", Amount: 1, Category: "a"},
			{Kind: "expense", Amount: 2, Category: "b"},
			{Kind: "expense", Amount: 3, Category: "c"},
			{Kind: "expense", Amount: 4, Category: "d"},
			{Kind: "expense", Amount: 5, Category: "e"},
			{Kind: "expense", Amount: 6, Category: "f"},
		},
	}

	prompt := BuildCommandPrompt("spent 300", fc)
	assert.Contains(t, prompt, "Income: 40000.00")
	assert.Contains(t, prompt, "Health Score: 81")
	assert.Contains(t, prompt, `"category":"e"`)
	assert.NotContains(t, prompt, `"category":"f"`)
	assert.True(t, strings.HasSuffix(prompt, "Respond with ONLY the JSON."))

	assert.NotContains(t, BuildCommandPrompt("spent 300", nil), "CURRENT FINANCIAL CONTEXT")
}
