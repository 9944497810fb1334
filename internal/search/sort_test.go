package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talent-search/internal/query"
)

func TestPathRegistry_Resolve(t *testing.T) {
	reg := mustPathRegistry("c", map[string]string{
		"user":         "u",
		"user.partner": "p",
		"nationality":  "nat",
	})

	tests := []struct {
		name   string
		fields []string
		dir    SortDirection
		want   []query.Order
	}{
		{
			name:   "no fields still get the id tiebreak",
			fields: nil,
			dir:    SortAsc,
			want:   []query.Order{{Col: "c.id"}},
		},
		{
			name:   "base entity attribute",
			fields: []string{"candidateNumber"},
			dir:    SortAsc,
			want:   []query.Order{{Col: "c.candidate_number"}, {Col: "c.id"}},
		},
		{
			name:   "single join segment",
			fields: []string{"user.email"},
			dir:    SortDesc,
			want:   []query.Order{{Col: "u.email", Desc: true}, {Col: "c.id"}},
		},
		{
			name:   "longest prefix wins over shorter one",
			fields: []string{"user.partner.name"},
			dir:    SortAsc,
			want:   []query.Order{{Col: "p.name"}, {Col: "c.id"}},
		},
		{
			name:   "multiple fields keep request order",
			fields: []string{"nationality.name", "dob"},
			dir:    SortDesc,
			want: []query.Order{
				{Col: "nat.name", Desc: true},
				{Col: "c.dob", Desc: true},
				{Col: "c.id"},
			},
		},
		{
			name:   "camelCase attribute maps to snake_case column",
			fields: []string{"nextStepDueDate"},
			dir:    SortAsc,
			want:   []query.Order{{Col: "c.next_step_due_date"}, {Col: "c.id"}},
		},
		{
			name:   "empty field names are skipped",
			fields: []string{"", "dob"},
			dir:    SortAsc,
			want:   []query.Order{{Col: "c.dob"}, {Col: "c.id"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, reg.Resolve(tt.fields, tt.dir))
		})
	}
}

func TestPathRegistry_TiebreakIsAlwaysAscending(t *testing.T) {
	reg := mustPathRegistry("j", nil)
	orders := reg.Resolve([]string{"name"}, SortDesc)
	require.Len(t, orders, 2)
	assert.True(t, orders[0].Desc)
	assert.Equal(t, query.Order{Col: "j.id", Desc: false}, orders[1])
}

func TestNewPathRegistry_Validation(t *testing.T) {
	_, err := NewPathRegistry("", nil)
	assert.Error(t, err)

	_, err = NewPathRegistry("c", map[string]string{"user": ""})
	assert.Error(t, err)

	_, err = NewPathRegistry("c", map[string]string{"bad prefix": "u"})
	assert.Error(t, err)

	reg, err := NewPathRegistry("c", map[string]string{"user": "u"})
	require.NoError(t, err)
	assert.NotNil(t, reg)
}

func TestSnakeCase(t *testing.T) {
	assert.Equal(t, "name", snakeCase("name"))
	assert.Equal(t, "next_step_due_date", snakeCase("nextStepDueDate"))
	assert.Equal(t, "dob", snakeCase("dob"))
}
