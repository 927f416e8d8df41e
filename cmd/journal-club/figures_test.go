package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePages(t *testing.T) {
	tests := []struct {
		spec string
		want []int
	}{
		{"1", []int{1}},
		{"1,3,2", []int{1, 2, 3}},
		{"5-7", []int{5, 6, 7}},
		{"1, 3, 5-7", []int{1, 3, 5, 6, 7}},
		{"2-2", []int{2}},
		{"3,3,3", []int{3}},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := parsePages(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePagesRejectsInvalid(t *testing.T) {
	for _, spec := range []string{"7-5", "0", "a", "", "1-", "-3", "1,x"} {
		t.Run(spec, func(t *testing.T) {
			_, err := parsePages(spec)
			assert.Error(t, err)
		})
	}
}
