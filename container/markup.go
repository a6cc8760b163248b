package container

import (
	"bytes"
)

var xmlDeclaration = []byte("<?xml")

// modelW9980 appears in the markup of routers that use [CompressedVariantB].
var modelW9980 = []byte("W9980")

// IsMarkup reports whether `buf` looks like a configuration document rather
// than a container.
func IsMarkup(buf []byte) bool {
	return bytes.HasPrefix(buf, xmlDeclaration)
}

// VariantForMarkup picks the container variant the router that produced
// `markup` expects.
func VariantForMarkup(markup []byte) Variant {
	if bytes.Contains(markup, modelW9980) {
		return CompressedVariantB
	}
	return CompressedVariantA
}

// ReplaceTrailingNUL turns the NUL terminator at the end of decoded markup into
// a line feed, in place. Markup not ending in NUL is returned unchanged.
func ReplaceTrailingNUL(markup []byte) []byte {
	if len(markup) > 0 && markup[len(markup)-1] == 0 {
		markup[len(markup)-1] = '\n'
	}
	return markup
}
