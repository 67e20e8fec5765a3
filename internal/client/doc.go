// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive client application runtime.
//
// It wires the local storage, the document service adapter, the client
// services and the token refresh worker into a single process lifecycle
// and hands control to the terminal UI.
package client
