package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSubjectCanonical(t *testing.T) {
	assert.Equal(t, "Matemática", NormalizeSubject("matemática"))
	assert.Equal(t, "Matemática", NormalizeSubject("  MATEMÁTICA  "))
	assert.Equal(t, "Álgebra Linear", NormalizeSubject("álgebra linear"))
}

func TestNormalizeSubjectUnknownTitleCased(t *testing.T) {
	assert.Equal(t, "Artes Visuais", NormalizeSubject("artes visuais"))
	assert.Equal(t, "", NormalizeSubject("   "))
}

func TestValidators(t *testing.T) {
	assert.True(t, ValidSubject("Português"))
	assert.False(t, ValidSubject("português")) // validation happens post-normalization
	assert.True(t, ValidDifficulty("medium"))
	assert.False(t, ValidDifficulty("impossible"))
	assert.True(t, ValidEducationLevel("vestibular"))
	assert.False(t, ValidEducationLevel("mestrado"))
}

func TestTopics(t *testing.T) {
	assert.Contains(t, Topics("matemática"), "Geometria")
	assert.Nil(t, Topics("Artes Visuais"))
}
