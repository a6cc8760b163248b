package container

import (
	"bytes"
	_ "embed"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/dargueta/tpconf/errors"
	"github.com/gocarina/gocsv"
)

// Variant identifies one of the container sub-formats. They differ in whether
// the markup is compressed and where the digest sits relative to compression.
type Variant int

const (
	// Plain containers hold digest ++ markup, uncompressed.
	Plain Variant = iota + 1
	// CompressedVariantA containers hold digest ++ compressed markup, the
	// digest covering the compressed stream. Seen on W9970-style routers.
	CompressedVariantA
	// CompressedVariantB containers hold compress(digest ++ markup), the
	// digest covering the markup. Seen on W9980-style routers.
	CompressedVariantB
)

// VariantProfile describes how a variant is laid out once decrypted.
type VariantProfile struct {
	Variant Variant
	Slug    string
	Name    string
	// MarkerOffset is where Marker is found in the decrypted container.
	MarkerOffset int
	Marker       []byte
	Compressed   bool
	// DigestEmbedded is true when the digest is part of the compressed data
	// rather than a prefix in front of it.
	DigestEmbedded bool
}

type variantRow struct {
	ID             int    `csv:"id"`
	Slug           string `csv:"slug"`
	Name           string `csv:"name"`
	MarkerOffset   int    `csv:"marker_offset"`
	Marker         string `csv:"marker"`
	Compressed     bool   `csv:"compressed"`
	DigestEmbedded bool   `csv:"digest_embedded"`
}

//go:embed variants.csv
var variantsRawCSV string
var variantProfiles map[Variant]VariantProfile

// detectionOrder lists variants in the order markers are checked.
var detectionOrder []Variant

// Profile returns the layout description of the variant. It panics for values
// that aren't one of the defined variants.
func (v Variant) Profile() VariantProfile {
	profile, ok := variantProfiles[v]
	if !ok {
		panic(fmt.Sprintf("undefined container variant %d", int(v)))
	}
	return profile
}

func (v Variant) String() string {
	profile, ok := variantProfiles[v]
	if !ok {
		return fmt.Sprintf("Variant(%d)", int(v))
	}
	return profile.Slug
}

// IsValid reports whether `v` is one of the defined variants.
func (v Variant) IsValid() bool {
	_, ok := variantProfiles[v]
	return ok
}

// ParseVariant looks up a variant by its slug, e.g. "w9970".
func ParseVariant(slug string) (Variant, error) {
	for variant, profile := range variantProfiles {
		if strings.EqualFold(profile.Slug, slug) {
			return variant, nil
		}
	}

	slugs := make([]string, 0, len(detectionOrder))
	for _, variant := range detectionOrder {
		slugs = append(slugs, variant.String())
	}
	msg := fmt.Sprintf(
		"no container variant named %q (expected one of %s)",
		slug,
		strings.Join(slugs, ", "),
	)
	return 0, errors.ErrInvalidArgument.WithMessage(msg)
}

// DetectVariant inspects the marker bytes of a decrypted container.
//
// The marker of a compressed variant is the first byte of the markup, the
// first flag word (zero, since an XML declaration never starts with a match)
// and the rest of "<?xml".
func DetectVariant(decrypted []byte) (Variant, bool) {
	for _, variant := range detectionOrder {
		profile := variantProfiles[variant]
		end := profile.MarkerOffset + len(profile.Marker)
		if end > len(decrypted) {
			continue
		}
		if bytes.Equal(decrypted[profile.MarkerOffset:end], profile.Marker) {
			return variant, true
		}
	}
	return 0, false
}

func init() {
	var rows []variantRow
	if err := gocsv.UnmarshalString(variantsRawCSV, &rows); err != nil {
		panic(fmt.Errorf("failed to decode variant table: %w", err))
	}

	variantProfiles = make(map[Variant]VariantProfile, len(rows))
	detectionOrder = make([]Variant, 0, len(rows))

	for i, row := range rows {
		variant := Variant(row.ID)
		if _, exists := variantProfiles[variant]; exists {
			panic(fmt.Errorf("duplicate definition for variant %d on row %d", row.ID, i+1))
		}

		marker, err := hex.DecodeString(row.Marker)
		if err != nil {
			panic(fmt.Errorf("bad marker for variant %q on row %d: %w", row.Slug, i+1, err))
		}

		variantProfiles[variant] = VariantProfile{
			Variant:        variant,
			Slug:           row.Slug,
			Name:           row.Name,
			MarkerOffset:   row.MarkerOffset,
			Marker:         marker,
			Compressed:     row.Compressed,
			DigestEmbedded: row.DigestEmbedded,
		}
		detectionOrder = append(detectionOrder, variant)
	}

	sort.Slice(detectionOrder, func(i, j int) bool {
		return detectionOrder[i] < detectionOrder[j]
	})
}
