// Copyright 2026 The Ledgerline Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command tree framework for the portal
// binary: command dispatch with typo suggestions, structured help
// output, flag parsing via pflag, exit-code plumbing, and the shared
// application context (configuration, API gateway, session) that
// command handlers build on.
package cli
