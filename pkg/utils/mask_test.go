package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskAddress(t *testing.T) {
	masked := MaskAddress("0x5b5d51203a0f9079f8aeb098a6523a13f298c060")
	assert.Equal(t, "0x5b5d5120…c060", masked)

	assert.Equal(t, "0xshort", MaskAddress("0xshort"))
	assert.Equal(t, "", MaskAddress(""))
}
