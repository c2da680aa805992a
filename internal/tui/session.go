// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SecOps Lab

package tui

import (
	"sync"

	"github.com/secopslab/secwatch/models"
)

// session holds the authenticated identity for the current console run.
type session struct {
	username string
	role     models.Role
}

var (
	sessionMu      sync.Mutex
	currentSession session
)

func setSession(username string, role models.Role) {
	sessionMu.Lock()
	defer sessionMu.Unlock()
	currentSession = session{username: username, role: role}
}

func getSession() session {
	sessionMu.Lock()
	defer sessionMu.Unlock()
	return currentSession
}

func clearSession() {
	sessionMu.Lock()
	defer sessionMu.Unlock()
	currentSession = session{}
}