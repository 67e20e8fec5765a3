// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "encoding/json"

// PlaceholderType is the value kind declared by a template placeholder.
type PlaceholderType string

const (
	PlaceholderString  PlaceholderType = "string"
	PlaceholderNumber  PlaceholderType = "number"
	PlaceholderEnum    PlaceholderType = "enum"
	PlaceholderDate    PlaceholderType = "date"
	PlaceholderBoolean PlaceholderType = "boolean"
)

// ProviderPlaceholder is the reserved placeholder name whose value can be
// supplied implicitly by the selected provider.
const ProviderPlaceholder = "PROVIDER"

// Placeholder is one named field of a template.
//
// Name is unique within a template. Values lists the permitted literals and is
// required when Type is [PlaceholderEnum]. Offset is a day offset and only
// meaningful for [PlaceholderDate]. Hidden fields are not rendered and are
// exempt from required-field checks.
type Placeholder struct {
	Name        string          `json:"name" yaml:"name"`
	Type        PlaceholderType `json:"type,omitempty" yaml:"type,omitempty"`
	Values      []string        `json:"values,omitempty" yaml:"values,omitempty"`
	Optional    bool            `json:"optional,omitempty" yaml:"optional,omitempty"`
	Offset      int             `json:"offset,omitempty" yaml:"offset,omitempty"`
	Hidden      bool            `json:"hidden,omitempty" yaml:"hidden,omitempty"`
	Label       string          `json:"label,omitempty" yaml:"label,omitempty"`
	Description string          `json:"description,omitempty" yaml:"description,omitempty"`
}

// EffectiveType returns the declared type, falling back to enum when values
// are present and to string otherwise. Unknown types are treated as string.
func (p Placeholder) EffectiveType() PlaceholderType {
	switch p.Type {
	case PlaceholderString, PlaceholderNumber, PlaceholderEnum, PlaceholderDate, PlaceholderBoolean:
		return p.Type
	case "":
		if len(p.Values) > 0 {
			return PlaceholderEnum
		}
	}
	return PlaceholderString
}

// Clone returns a deep copy of p, so the copy's Values can be modified
// without touching the original.
func (p Placeholder) Clone() Placeholder {
	c := p
	if p.Values != nil {
		c.Values = append([]string(nil), p.Values...)
	}
	return c
}

// UnmarshalJSON decodes a placeholder and normalizes its type with
// [Placeholder.EffectiveType].
func (p *Placeholder) UnmarshalJSON(b []byte) error {
	type rawPlaceholder Placeholder
	var raw rawPlaceholder
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	*p = Placeholder(raw)
	p.Type = p.EffectiveType()
	return nil
}
