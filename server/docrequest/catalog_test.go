package docrequest

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMenuListsAllDocuments(t *testing.T) {
	menu := Catalog{}.Menu()
	for choice := 1; choice <= DocumentTypeCount; choice++ {
		name, ok := Catalog{}.DocumentName(choice)
		require.True(t, ok)
		assert.Contains(t, menu, fmt.Sprintf("%d. %s", choice, name))
	}
	assert.Contains(t, menu, "reply with the number (1-16)")
}

func TestDocumentName(t *testing.T) {
	name, ok := Catalog{}.DocumentName(6)
	require.True(t, ok)
	assert.Equal(t, "Relieving Letter", name)

	_, ok = Catalog{}.DocumentName(0)
	assert.False(t, ok)
	_, ok = Catalog{}.DocumentName(17)
	assert.False(t, ok)
}

func TestValidateChoice(t *testing.T) {
	catalog := Catalog{}

	choice, name, ok := catalog.ValidateChoice(" 7 ")
	require.True(t, ok)
	assert.Equal(t, 7, choice)
	assert.Equal(t, "Salary Slips", name)

	choice, name, ok = catalog.ValidateChoice("experience certificate")
	require.True(t, ok)
	assert.Equal(t, 2, choice)
	assert.Equal(t, "Experience Certificate", name)

	_, _, ok = catalog.ValidateChoice("42")
	assert.False(t, ok)

	_, _, ok = catalog.ValidateChoice("time machine")
	assert.False(t, ok)

	_, _, ok = catalog.ValidateChoice("")
	assert.False(t, ok)
}

func TestDetailsPromptVariesByDocument(t *testing.T) {
	catalog := Catalog{}

	experience := catalog.DetailsPrompt("Experience Certificate")
	assert.Contains(t, experience, "You selected Experience Certificate")
	assert.Contains(t, experience, "Date of joining")

	visa := catalog.DetailsPrompt("Visa Support Letter")
	assert.Contains(t, visa, "Destination country")
	assert.Contains(t, visa, "Type of visa")

	generic := catalog.DetailsPrompt("Some Unknown Paper")
	assert.Contains(t, generic, "Any additional requirements")

	// Every catalog document has a prompt naming the document.
	for choice := 1; choice <= DocumentTypeCount; choice++ {
		name, _ := catalog.DocumentName(choice)
		prompt := catalog.DetailsPrompt(name)
		assert.True(t, strings.HasPrefix(prompt, "You selected "+name), "prompt for %q", name)
	}
}

func TestSpecificGuidance(t *testing.T) {
	catalog := Catalog{}

	guidance, ok := catalog.SpecificGuidance("How do I get an experience letter?")
	require.True(t, ok)
	assert.Contains(t, guidance, "Experience Certificate")
	assert.Contains(t, guidance, "selecting option 2")

	guidance, ok = catalog.SpecificGuidance("I need my salary slip for a loan")
	require.True(t, ok)
	assert.Contains(t, guidance, "Salary Slips")

	_, ok = catalog.SpecificGuidance("I need a document")
	assert.False(t, ok)
}
