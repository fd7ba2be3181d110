package parcel

import (
	"fmt"
	"strings"

	"trackmate/internal/pkg/errs"
)

// Type is the declared kind of a parcel, which drives pricing.
type Type int

const (
	UnknownType Type = iota
	Document
	NonDocument
)

func getTypeStrings() map[Type]string {
	//nolint:exhaustive // UnknownType is not a wire value
	return map[Type]string{
		Document:    "Document",
		NonDocument: "Non-Document",
	}
}

// ParseType accepts the wire names "Document" and "Non-Document" in any case,
// with or without the hyphen.
func ParseType(s string) (Type, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "") {
	case "document":
		return Document, nil
	case "nondocument":
		return NonDocument, nil
	}
	return UnknownType, errs.NewValueIsInvalidErrorWithCause("parcelType", fmt.Errorf("%q is not a parcel type", s))
}

func (t Type) Validate() error {
	if _, ok := getTypeStrings()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("parcelType", fmt.Errorf("%d is not a valid parcel type", t))
	}
	return nil
}

func (t Type) String() string {
	if s, ok := getTypeStrings()[t]; ok {
		return s
	}
	return "Unknown"
}
