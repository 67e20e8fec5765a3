// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package form turns a template's placeholder schema into an editable form.
//
// It covers four steps of the form pipeline:
//   - schema model: [ResolvePlaceholder] and [DeriveInitialValue] derive the
//     effective placeholder variants and their default values;
//   - value store: [ValueStore] holds the current values and per-field errors;
//   - layout: [ResolveLayout] arranges fields into groups of rows;
//   - context: [ToContext] encodes the values into the generator payload.
//
// Everything here is pure data transformation. Validation rules live in the
// validators package and plug into [ValueStore.Validate].
package form
