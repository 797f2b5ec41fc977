package validation

import (
	"testing"

	"github.com/findyourpeers/peers/internal/app/models"
	"github.com/findyourpeers/peers/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringValidation(t *testing.T) {
	assert.False(t, NewStringValidation("   ").Validate())
	assert.True(t, NewStringValidation("  Chess club ").Validate())
	assert.Equal(t, "Chess club", NewStringValidation("  Chess club ").Value)
	assert.False(t, NewStringValidation("abcdef").WithMaxLength(5).Validate())
	assert.True(t, NewStringValidation("ñandú").WithMaxLength(5).Validate())
}

func TestIsBlank(t *testing.T) {
	assert.True(t, IsBlank(""))
	assert.True(t, IsBlank(" \n\t "))
	assert.False(t, IsBlank(" hi "))
}

func TestResolveCategory(t *testing.T) {
	c, err := ResolveCategory("")
	require.NoError(t, err)
	assert.Equal(t, models.CategoryStudy, c)

	c, err = ResolveCategory("EVENT")
	require.NoError(t, err)
	assert.Equal(t, models.CategoryEvent, c)

	_, err = ResolveCategory("party")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCategory)
}

func TestOptionalCategory(t *testing.T) {
	c, err := OptionalCategory(" ")
	require.NoError(t, err)
	assert.Equal(t, models.Category(""), c)

	c, err = OptionalCategory("club")
	require.NoError(t, err)
	assert.Equal(t, models.CategoryClub, c)
}
