package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextRejectsGarbage(t *testing.T) {
	_, err := Text([]byte("this is not a PDF document"))
	assert.Error(t, err)
}

func TestTextRejectsEmpty(t *testing.T) {
	_, err := Text(nil)
	assert.Error(t, err)
}
