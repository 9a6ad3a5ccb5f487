package models

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

func parse(t *testing.T, model interface{}) *schema.Schema {
	t.Helper()
	s, err := schema.Parse(model, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)
	return s
}

func TestDecimalColumns(t *testing.T) {
	cases := []struct {
		model interface{}
		field string
	}{
		{&Apartment{}, "Area"},
		{&Deposit{}, "Amount"},
		{&Obligation{}, "Amount"},
		{&BuildingExpense{}, "Amount"},
	}
	for _, tc := range cases {
		s := parse(t, tc.model)
		field := s.LookUpField(tc.field)
		require.NotNil(t, field, "%s.%s", s.Name, tc.field)
		assert.Equal(t, schema.DataType("numeric(12,2)"), field.DataType, "%s.%s", s.Name, tc.field)
	}
}

func TestHardDeleteRestrictedByForeignKeys(t *testing.T) {
	cases := []struct {
		model    interface{}
		relation string
		column   string
	}{
		{&Floor{}, "Apartments", "floor_id"},
		{&Apartment{}, "Deposits", "apartment_id"},
		{&Apartment{}, "Obligations", "apartment_id"},
	}
	for _, tc := range cases {
		s := parse(t, tc.model)
		rel, ok := s.Relationships.Relations[tc.relation]
		require.True(t, ok, "%s.%s", s.Name, tc.relation)

		constraint := rel.ParseConstraint()
		require.NotNil(t, constraint)
		assert.Equal(t, "RESTRICT", constraint.OnDelete)
		assert.Equal(t, tc.column, constraint.ForeignKeys[0].DBName)
	}
}
