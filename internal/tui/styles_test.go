package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vvka-141/pgcreation/pkg/creation"
)

func TestStyler_PlainLeavesTextUntouched(t *testing.T) {
	s := NewStyler(ModePlain)

	assert.False(t, s.Enabled())
	assert.Equal(t, "users", s.Name("users"))
	assert.Equal(t, "Objects", s.Title("Objects"))
	assert.Equal(t, "boom", s.Error("boom"))
	assert.Equal(t, "table", s.Kind(creation.KindTable))
	assert.Equal(t, "->", s.Arrow())
}

func TestStyler_StyledKeepsText(t *testing.T) {
	s := NewStyler(ModeStyled)

	assert.True(t, s.Enabled())
	assert.Contains(t, s.Name("users"), "users")
	assert.Contains(t, s.Kind(creation.KindFunction), "function")
	assert.Contains(t, s.Arrow(), SymbolArrowRight)
}

func TestKindColors_CoverEveryKind(t *testing.T) {
	for k := creation.KindTable; k <= creation.KindAlter; k++ {
		_, ok := kindColors[k]
		assert.True(t, ok, "no color for %s", k)
	}
}
