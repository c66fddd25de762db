package pptx

import "fmt"

// MissingRelationshipError is returned when a part lacks a relationship the
// inheritance chain cannot be built without.
type MissingRelationshipError struct {
	Part string
	Type string
}

func (e *MissingRelationshipError) Error() string {
	return fmt.Sprintf("part %s has no %s relationship", e.Part, e.Type)
}

// MissingThemeError is returned when slide master does not reference a theme.
type MissingThemeError struct {
	Part string
}

func (e *MissingThemeError) Error() string {
	return fmt.Sprintf("slide master %s has no theme", e.Part)
}
